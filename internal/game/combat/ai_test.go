package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cory-johannsen/skirmish/internal/game/actor"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/item"
)

func TestFocusTarget_LowestHPFractionFirst(t *testing.T) {
	a, b := newHero("a"), newHero("b")
	a.HP = actor.Pool{Current: 5, Max: 10}
	b.HP = actor.Pool{Current: 2, Max: 10}
	assert.Equal(t, "b", combat.FocusTarget([]*actor.Actor{a, b}).ID)
}

func TestFocusTarget_TieBreaks(t *testing.T) {
	a, b := newHero("a"), newHero("b")
	b.Equipment[actor.SlotHelm] = newArmor(item.SlotHelm, 2)
	assert.Equal(t, "a", combat.FocusTarget([]*actor.Actor{b, a}).ID, "lower armor")

	c, d := newHero("c"), newHero("d")
	c.Base.Str = 9
	assert.Equal(t, "d", combat.FocusTarget([]*actor.Actor{c, d}).ID, "lower threat")

	e, f := newHero("f"), newHero("e")
	assert.Equal(t, "e", combat.FocusTarget([]*actor.Actor{e, f}).ID, "id ascending")

	assert.Nil(t, combat.FocusTarget(nil))
}

func TestDecideAction_HealthyNeverDrawsRNG(t *testing.T) {
	e := newEngine(1, nil)
	s := e.Init([]*actor.Actor{newHero("hero")}, []*actor.Actor{newGoblin("gob")})
	used, fresh := dice.NewSeededRNG(7, nil), dice.NewSeededRNG(7, nil)

	act := combat.DecideAction(s, s.Actors["gob"], used, combat.DefaultRules())

	assert.Equal(t, combat.Attack{TargetID: "hero"}, act)
	assert.Equal(t, fresh.Int("next", 1, 1000000), used.Int("next", 1, 1000000))
}

func TestDecideAction_PanicDrawsOnceWhenLow(t *testing.T) {
	e := newEngine(1, nil)
	g := newGoblin("gob")
	g.HP.Set(2)
	s := e.Init([]*actor.Actor{newHero("hero")}, []*actor.Actor{g})
	used, fresh := dice.NewSeededRNG(7, nil), dice.NewSeededRNG(7, nil)

	act := combat.DecideAction(s, s.Actors["gob"], used, combat.DefaultRules())
	panicked := fresh.Chance("panic", 0.25)

	if panicked {
		assert.Equal(t, combat.Defend{}, act)
	} else {
		assert.Equal(t, combat.Attack{TargetID: "hero"}, act)
	}
	assert.Equal(t, fresh.Int("next", 1, 1000000), used.Int("next", 1, 1000000))
}

func TestDecideAction_PanicAlwaysWithFullChance(t *testing.T) {
	r := combat.DefaultRules()
	r.PanicChance = 1
	e := newEngine(1, nil)
	g := newGoblin("gob")
	g.HP.Set(1)
	s := e.Init([]*actor.Actor{newHero("hero")}, []*actor.Actor{g})
	assert.Equal(t, combat.Defend{}, combat.DecideAction(s, s.Actors["gob"], dice.NewSeededRNG(1, nil), r))
}

func TestDecideAction_NoCandidatesDefends(t *testing.T) {
	e := newEngine(1, nil)
	s := e.Init([]*actor.Actor{newHero("hero")}, []*actor.Actor{newGoblin("gob")})
	s.Actors["hero"].HP.Set(0)
	assert.Equal(t, combat.Defend{}, combat.DecideAction(s, s.Actors["gob"], dice.NewSeededRNG(1, nil), combat.DefaultRules()))
}

func TestAutoAction_PlayerTargetsWeakestFoe(t *testing.T) {
	e := newEngine(1, nil)
	s := e.Init([]*actor.Actor{newHero("hero")}, []*actor.Actor{newGoblin("g1"), newGoblin("g2")})
	s.Actors["hero"].HP.Set(1)
	s.Actors["g2"].HP.Set(4)
	assert.Equal(t, combat.Attack{TargetID: "g2"}, combat.AutoAction(s, s.Actors["hero"]))
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "auto", combat.Describe(nil))
	assert.Equal(t, "defend", combat.Describe(combat.Defend{}))
	assert.Equal(t, "ability:parry_lv1", combat.Describe(combat.UseAbility{AbilityID: combat.ParryStance}))
}
