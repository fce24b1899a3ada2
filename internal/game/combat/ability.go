package combat

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cory-johannsen/skirmish/internal/game/actor"
	"github.com/cory-johannsen/skirmish/internal/game/status"
)

// AbilityID is the stable key of an ability.
type AbilityID string

const (
	PowerSlash  AbilityID = "power_slash_lv1"
	ShieldBash  AbilityID = "shield_bash_lv1"
	ParryStance AbilityID = "parry_lv1"
	Flurry      AbilityID = "flurry_lv2"
	Sunder      AbilityID = "sunder_lv3"
	NerveStrike AbilityID = "nerve_strike_lv4"
)

// AbilityClass separates damage-dealing abilities from status abilities.
type AbilityClass int

const (
	AbilityAttack AbilityClass = iota
	AbilityStatus
)

// Ability is the static definition of a special move.
type Ability struct {
	ID            AbilityID
	Name          string
	SPCost        int
	LevelReq      int
	RequireShield bool
	Class         AbilityClass
	// SelfTargeted abilities never look for a foe.
	SelfTargeted bool
}

// Abilities is the read-only ability registry.
var Abilities = map[AbilityID]Ability{
	PowerSlash:  {ID: PowerSlash, Name: "Power Slash", SPCost: 2, LevelReq: 1, Class: AbilityAttack},
	ShieldBash:  {ID: ShieldBash, Name: "Shield Bash", SPCost: 2, LevelReq: 1, RequireShield: true, Class: AbilityStatus},
	ParryStance: {ID: ParryStance, Name: "Parry", SPCost: 0, LevelReq: 2, Class: AbilityStatus, SelfTargeted: true},
	Flurry:      {ID: Flurry, Name: "Flurry", SPCost: 3, LevelReq: 2, Class: AbilityAttack},
	Sunder:      {ID: Sunder, Name: "Sunder", SPCost: 3, LevelReq: 3, Class: AbilityStatus},
	NerveStrike: {ID: NerveStrike, Name: "Nerve Strike", SPCost: 4, LevelReq: 4, Class: AbilityStatus},
}

// ErrUnknownAbility is returned for ability ids missing from Abilities.
var ErrUnknownAbility = errors.New("unknown ability")

// UnusableError reports why an actor cannot use an ability right now.
// The state it was returned with is unchanged.
type UnusableError struct {
	ActorName string
	Ability   string
	Reason    string
}

func (e *UnusableError) Error() string {
	return fmt.Sprintf("%s cannot use %s: %s", e.ActorName, e.Ability, e.Reason)
}

// LookupAbility returns the ability registered under id.
func LookupAbility(id AbilityID) (Ability, error) {
	ab, ok := Abilities[id]
	if !ok {
		return Ability{}, fmt.Errorf("ability %q: %w", id, ErrUnknownAbility)
	}
	return ab, nil
}

// MustAbility is LookupAbility that panics on an unknown id.
func MustAbility(id AbilityID) Ability {
	ab, err := LookupAbility(id)
	if err != nil {
		panic(err)
	}
	return ab
}

// AbilityIDs returns every registered id ordered by level requirement, then id.
func AbilityIDs() []AbilityID {
	ids := make([]AbilityID, 0, len(Abilities))
	for id := range Abilities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := Abilities[ids[i]], Abilities[ids[j]]
		if a.LevelReq != b.LevelReq {
			return a.LevelReq < b.LevelReq
		}
		return a.ID < b.ID
	})
	return ids
}

// Check returns the reason a cannot use ab, or "" when usable.
func (ab Ability) Check(a *actor.Actor) string {
	switch {
	case a.Level < ab.LevelReq:
		return fmt.Sprintf("Requires level %d.", ab.LevelReq)
	case a.SP.Current < ab.SPCost:
		return "Not enough Stamina."
	case ab.RequireShield && !a.HasShield():
		return "Requires a shield."
	}
	return ""
}

const (
	powerSlashMultiplier = 2.0
	powerSlashSurgePct   = 70
	powerSlashSurge      = 1.5
	flurryCleaveFoes     = 3
	flurryCleaveFactor   = 0.6
	parryPotency         = 0.15
	sunderAmount         = 3
	sunderTurns          = 2
)

// validateAbility resolves act against the acting actor without mutating
// anything.
func validateAbility(user *actor.Actor, act UseAbility) (Ability, error) {
	ab, err := LookupAbility(act.AbilityID)
	if err != nil {
		return Ability{}, err
	}
	if reason := ab.Check(user); reason != "" {
		return Ability{}, &UnusableError{ActorName: user.Name, Ability: ab.Name, Reason: reason}
	}
	return ab, nil
}

// abilityTarget returns the requested living opponent, or the focus target.
func abilityTarget(s *State, user *actor.Actor, id string) *actor.Actor {
	if t := s.Actors[id]; t != nil && t.Alive() && t.IsPlayer != user.IsPlayer {
		return t
	}
	return FocusTarget(s.Opponents(user))
}

// useAbility spends SP and runs ab's resolution on s.
//
// Precondition: ab passed Check for user; s is the engine's working clone.
func (e *Engine) useAbility(s *State, user *actor.Actor, ab Ability, targetID string) {
	user.SP.Sub(ab.SPCost)

	if ab.SelfTargeted {
		s.Statuses.Add(user.ID, status.NewParry(1, parryPotency))
		s.logf(EventAbility, "%s prepares to parry, reducing damage by %d%% until next turn.", user.Name, int(parryPotency*100))
		return
	}

	target := abilityTarget(s, user, targetID)
	if target == nil {
		s.logf(EventAbility, "%s uses %s, but there is no target.", user.Name, ab.Name)
		return
	}

	switch ab.ID {
	case PowerSlash:
		e.powerSlash(s, user, target)
	case Flurry:
		e.flurry(s, user, target)
	case ShieldBash:
		chance := clampI(10, 90, 50-5*target.Effective().Dex)
		if !e.rng.Percent("shield bash", float64(chance)) {
			s.logf(EventAbility, "%s tries Shield Bash, but %s keeps their footing.", user.Name, target.Name)
			return
		}
		s.Statuses.Add(target.ID, status.NewStun(1))
		s.logf(EventStatus, "%s slams %s with Shield Bash. %s is stunned for 1 turn!", user.Name, target.Name, target.Name)
	case Sunder:
		chance := clampI(20, 90, 70-3*target.Effective().Dex)
		if !e.rng.Percent("sunder", float64(chance)) {
			s.logf(EventAbility, "%s swings Sunder at %s but finds no gap.", user.Name, target.Name)
			return
		}
		s.Statuses.Add(target.ID, status.NewArmorDown(sunderTurns, sunderAmount))
		s.logf(EventStatus, "%s sunders %s's armor (-%d armor for %d turns).", user.Name, target.Name, sunderAmount, sunderTurns)
	case NerveStrike:
		chance := clampI(5, 60, 35-4*target.Effective().Dex+user.Effective().Luck)
		if !e.rng.Percent("nerve strike", float64(chance)) {
			s.logf(EventAbility, "%s jabs at %s's nerves, but nothing takes.", user.Name, target.Name)
			return
		}
		s.Statuses.Add(target.ID, status.NewParalyzed(1))
		s.logf(EventStatus, "%s strikes a nerve. %s is paralyzed for 1 turn!", user.Name, target.Name)
	default:
		s.logf(EventAbility, "%s fumbles %s.", user.Name, ab.Name)
	}
}

// powerSlash rolls to hit once with no graze band, then deals twice the
// baseline with a chance to surge.
func (e *Engine) powerSlash(s *State, user, target *actor.Actor) {
	toHit := HitChance(user, target, e.rules)
	if !e.rng.Percent("power slash hit", toHit) {
		s.logf(EventAbility, "%s uses Power Slash and misses %s.", user.Name, target.Name)
		return
	}
	dmg := int(float64(Baseline(user, target, s.Statuses.ArmorDelta(target.ID), e.rules)) * powerSlashMultiplier)
	if e.rng.Percent("power slash surge", powerSlashSurgePct) {
		dmg = int(math.Floor(float64(dmg) * powerSlashSurge))
	}
	dealt := e.applyDamage(s, target, dmg)
	s.logf(EventAbility, "%s unleashes Power Slash on %s for %d damage! (%d/%d HP)",
		user.Name, target.Name, dealt, target.HP.Current, target.HP.Max)
}

// flurry lands one or two independent strikes on target, or with enough
// living foes cleaves every foe at reduced damage.
func (e *Engine) flurry(s *State, user, target *actor.Actor) {
	foes := s.Opponents(user)
	if len(foes) >= flurryCleaveFoes {
		s.logf(EventAbility, "%s whirls into a cleaving Flurry!", user.Name)
		for _, foe := range foes {
			res := ResolveAttack(user, foe, s.Statuses.ArmorDelta(foe.ID), e.rng, e.rules)
			if res.Hit {
				res.Damage = int(math.Floor(float64(res.Damage) * flurryCleaveFactor))
				if res.Damage < 1 {
					res.Damage = 1
				}
			}
			e.landAttack(s, user, foe, res)
		}
		return
	}

	hits := e.rng.Int("flurry hits", 1, 2)
	s.logf(EventAbility, "%s unleashes a Flurry of %d strike(s) on %s!", user.Name, hits, target.Name)
	for i := 0; i < hits; i++ {
		if !target.Alive() {
			break
		}
		res := ResolveAttack(user, target, s.Statuses.ArmorDelta(target.ID), e.rng, e.rules)
		e.landAttack(s, user, target, res)
	}
}
