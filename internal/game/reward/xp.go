package reward

import (
	"github.com/cory-johannsen/skirmish/internal/game/actor"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// XPToNext is the experience needed to advance from level to level+1.
//
// Postcondition: XPToNext(1) == 100, XPToNext(2) == 250.
func XPToNext(level int) int {
	return 25*level*level + 75*level
}

// XPFor returns the experience hero earns for defeating foe. Boss-like foes
// draw from the boss range; every other foe is a pure function of the level
// difference and never touches rng.
func XPFor(hero, foe *actor.Actor, rng *dice.RNG, r Rules) int {
	if foe.Tags.IsBossLike() {
		return rng.Int("boss xp", r.BossXPMin, r.BossXPMax)
	}
	delta := foe.Level - hero.Level
	switch {
	case delta == 0:
		return r.EqualLevelXP
	case delta > 0:
		return bracket(r.AboveXP, delta)
	default:
		return bracket(r.BelowXP, -delta)
	}
}

// bracket returns brackets[n-1], repeating the last entry past the end.
func bracket(brackets []int, n int) int {
	if len(brackets) == 0 {
		return 0
	}
	if n > len(brackets) {
		n = len(brackets)
	}
	return brackets[n-1]
}
