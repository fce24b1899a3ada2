// Package reward resolves the spoils of a won battle: experience for every
// surviving hero, level-ups with attribute growth, and loot.
package reward

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// GrowthMode selects how attributes grow on level-up.
type GrowthMode string

const (
	// GrowthDice rolls Rules.GrowthDice for every attribute except armor.
	GrowthDice GrowthMode = "dice"
	// GrowthControlled applies small fixed gains with occasional bonuses.
	GrowthControlled GrowthMode = "controlled"
)

// Drop is a single fallback item roll.
type Drop struct {
	Item   string
	Chance float64
}

// Rules holds every tunable of the reward pipeline.
type Rules struct {
	// EqualLevelXP is awarded for a foe of the hero's level.
	EqualLevelXP int
	// AboveXP[i] is awarded for a foe i+1 levels above the hero; the last
	// entry repeats.
	AboveXP []int
	// BelowXP[i] is awarded for a foe i+1 levels below the hero; the last
	// entry repeats.
	BelowXP []int
	// BossXPMin and BossXPMax bound the XP for a boss or miniboss.
	BossXPMin int
	BossXPMax int

	Growth     GrowthMode
	GrowthDice string

	// DefaultDrop is rolled for foes without a loot table.
	DefaultDrop Drop
}

// DefaultRules returns the stock reward tuning.
func DefaultRules() Rules {
	return Rules{
		EqualLevelXP: 10,
		AboveXP:      []int{20, 30, 40, 50, 60},
		BelowXP:      []int{8, 6, 5, 4, 3, 2},
		BossXPMin:    100,
		BossXPMax:    200,
		Growth:       GrowthDice,
		GrowthDice:   "1d4",
		DefaultDrop:  Drop{Item: "heal-lesser", Chance: 0.40},
	}
}

// Validate reports every inconsistency in r.
//
// Postcondition: Returns nil iff r can be used by a Pipeline.
func (r Rules) Validate() error {
	var errs []error
	if r.EqualLevelXP < 0 {
		errs = append(errs, fmt.Errorf("equal level xp must be >= 0, got %d", r.EqualLevelXP))
	}
	if len(r.AboveXP) == 0 {
		errs = append(errs, errors.New("above xp brackets must not be empty"))
	}
	if len(r.BelowXP) == 0 {
		errs = append(errs, errors.New("below xp brackets must not be empty"))
	}
	if r.BossXPMin < 0 || r.BossXPMin > r.BossXPMax {
		errs = append(errs, fmt.Errorf("boss xp range [%d, %d] is invalid", r.BossXPMin, r.BossXPMax))
	}
	switch r.Growth {
	case GrowthDice:
		if _, err := dice.Parse(r.GrowthDice); err != nil {
			errs = append(errs, fmt.Errorf("growth dice: %w", err))
		}
	case GrowthControlled:
	default:
		errs = append(errs, fmt.Errorf("unknown growth mode %q", r.Growth))
	}
	if r.DefaultDrop.Chance < 0 || r.DefaultDrop.Chance > 1 {
		errs = append(errs, fmt.Errorf("default drop chance must be in [0, 1], got %v", r.DefaultDrop.Chance))
	}
	if r.DefaultDrop.Chance > 0 && r.DefaultDrop.Item == "" {
		errs = append(errs, errors.New("default drop item must not be empty"))
	}
	return errors.Join(errs...)
}
