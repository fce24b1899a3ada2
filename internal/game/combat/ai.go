package combat

import (
	"sort"

	"github.com/cory-johannsen/skirmish/internal/game/actor"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// FocusTarget picks the weakest candidate: lowest HP fraction, then lowest
// total armor, then lowest threat (level + STR), then id ascending.
//
// Postcondition: Returns nil iff candidates is empty.
func FocusTarget(candidates []*actor.Actor) *actor.Actor {
	if len(candidates) == 0 {
		return nil
	}
	sorted := append([]*actor.Actor(nil), candidates...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if fa, fb := hpFraction(a), hpFraction(b); fa != fb {
			return fa < fb
		}
		if aa, ba := TotalArmor(a), TotalArmor(b); aa != ba {
			return aa < ba
		}
		if ta, tb := threat(a), threat(b); ta != tb {
			return ta < tb
		}
		return a.ID < b.ID
	})
	return sorted[0]
}

func hpFraction(a *actor.Actor) float64 {
	max := a.HP.Max
	if max < 1 {
		max = 1
	}
	return float64(a.HP.Current) / float64(max)
}

func threat(a *actor.Actor) int { return a.Level + a.Base.Str }

// DecideAction chooses a non-player's action. A non-player at or below the
// panic threshold may defend instead; the RNG is drawn only in that case.
func DecideAction(s *State, a *actor.Actor, rng *dice.RNG, r Rules) Action {
	target := FocusTarget(s.Opponents(a))
	if target == nil {
		return Defend{}
	}
	if !a.IsPlayer && hpFraction(a) <= r.PanicThreshold && rng.Chance("panic", r.PanicChance) {
		return Defend{}
	}
	return Attack{TargetID: target.ID}
}

// AutoAction is the fallback for a player with no submitted action. It uses
// the same targeting as DecideAction without the panic roll.
func AutoAction(s *State, a *actor.Actor) Action {
	target := FocusTarget(s.Opponents(a))
	if target == nil {
		return Defend{}
	}
	return Attack{TargetID: target.ID}
}
