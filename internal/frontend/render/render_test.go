package render_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/skirmish/internal/frontend/render"
	"github.com/cory-johannsen/skirmish/internal/game/actor"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/command"
	"github.com/cory-johannsen/skirmish/internal/game/item"
	"github.com/cory-johannsen/skirmish/internal/game/status"
)

func TestBar(t *testing.T) {
	assert.Equal(t, "[##  ]", render.Bar(actor.Pool{Current: 5, Max: 10}, 4))
	assert.Equal(t, "[    ]", render.Bar(actor.Pool{Current: 0, Max: 10}, 4))
	assert.Equal(t, "[#   ]", render.Bar(actor.Pool{Current: 1, Max: 100}, 4), "a living actor always shows a sliver")
	assert.Equal(t, "[    ]", render.Bar(actor.Pool{}, 4))
}

func TestPropertyBarWidthIsFixed(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		max := rapid.IntRange(0, 500).Draw(t, "max")
		cur := rapid.IntRange(0, max).Draw(t, "cur")
		width := rapid.IntRange(1, 40).Draw(t, "width")
		bar := render.Bar(actor.Pool{Current: cur, Max: max}, width)
		if len(bar) != width+2 {
			t.Fatalf("bar %q has width %d, want %d", bar, len(bar), width+2)
		}
	})
}

func TestEvent_ColorsByKind(t *testing.T) {
	e := combat.LogEvent{Kind: combat.EventReward, Text: "Knight gained 20 XP (20/100)"}
	out := render.Event(e)
	assert.True(t, strings.HasPrefix(out, render.Yellow))
	assert.Equal(t, e.Text, render.StripANSI(out))
	assert.NotEqual(t, render.EventColor(combat.EventAttack), render.EventColor(combat.EventStatus))
}

func TestEvents_OneLineEach(t *testing.T) {
	out := render.StripANSI(render.Events([]combat.LogEvent{{Text: "a"}, {Text: "b"}}))
	assert.Equal(t, "a\nb\n", out)
}

func battle() *combat.State {
	hero := &actor.Actor{ID: "hero", Name: "Knight", IsPlayer: true, Level: 2, HP: actor.NewPool(20), SP: actor.NewPool(8)}
	dead := &actor.Actor{ID: "rat", Name: "Rat", Level: 1, HP: actor.Pool{Current: 0, Max: 6}}
	gob := &actor.Actor{ID: "gob", Name: "Goblin", Level: 1, HP: actor.Pool{Current: 3, Max: 12}}
	ledger := status.NewLedger()
	ledger.Add("gob", status.Effect{Kind: status.Stun, Turns: 1})
	return &combat.State{
		Order:    []string{"hero", "rat", "gob"},
		Party:    []string{"hero"},
		Foes:     []string{"rat", "gob"},
		Actors:   map[string]*actor.Actor{"hero": hero, "rat": dead, "gob": gob},
		Statuses: ledger,
	}
}

func TestBattle_NumbersLivingFoes(t *testing.T) {
	out := render.StripANSI(render.Battle(battle()))
	assert.Contains(t, out, "== Turn 1 ==")
	assert.Contains(t, out, ">   Knight")
	assert.Contains(t, out, "Rat")
	assert.Contains(t, out, "defeated")
	assert.Contains(t, out, "1.  Goblin")
	assert.Contains(t, out, "(stun 1)")
	assert.Contains(t, out, "SP 8/8")
}

func TestSheet(t *testing.T) {
	a := &actor.Actor{
		Name: "Knight", Level: 3, XP: 40, XPToNext: 300, Gold: 12,
		Base: actor.Attributes{Str: 5, Armor: 2},
		HP:   actor.NewPool(30),
		Equipment: actor.Equipment{actor.SlotWeapon: {
			ID: "itm-1", Code: "iron-sword", Name: "Iron Sword", Type: item.TypeWeapon, Slot: item.SlotWeapon,
			Mods: item.Modifiers{Str: 2},
		}},
	}
	out := render.StripANSI(render.Sheet(a))
	assert.Contains(t, out, "Knight  Level 3  XP 40/300  Gold 12")
	assert.Contains(t, out, "STR 7 (+2)")
	assert.Contains(t, out, "ARM 2")
	assert.Contains(t, out, "Iron Sword")
	assert.Contains(t, out, "(empty)")
}

func TestSkills_ShowsReasons(t *testing.T) {
	a := &actor.Actor{Level: 1, SP: actor.NewPool(8)}
	out := render.StripANSI(render.Skills(a))
	assert.Contains(t, out, "Power Slash")
	assert.Contains(t, out, "Requires a shield.")
	assert.Contains(t, out, "Requires level 4.")
}

func TestHelp_ListsEveryCommand(t *testing.T) {
	reg := command.DefaultRegistry()
	out := render.StripANSI(render.Help(reg))
	for _, c := range reg.Commands() {
		assert.Contains(t, out, c.Usage)
	}
	assert.Contains(t, out, "Battle")
}

func TestOutcomeAndPrompt(t *testing.T) {
	assert.Equal(t, "*** VICTORY ***", render.StripANSI(render.Outcome(combat.ResultVictory)))
	assert.Equal(t, "*** DEFEAT ***", render.StripANSI(render.Outcome(combat.ResultDefeat)))
	assert.Empty(t, render.Outcome(combat.ResultNone))

	assert.Equal(t, "camp> ", render.StripANSI(render.Prompt(nil)))
	assert.Equal(t, "Knight> ", render.StripANSI(render.Prompt(battle())))
}
