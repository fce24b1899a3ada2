package reward

import (
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/game/actor"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// LevelUp advances a while its XP covers XPToNext, possibly several levels at
// once. Each level applies attribute growth, recomputes the pool maxima and
// refills them. It returns the log lines produced.
//
// Precondition: r passed Validate.
// Postcondition: a.XP < a.XPToNext.
func LevelUp(a *actor.Actor, rng *dice.RNG, r Rules) ([]string, error) {
	var lines []string
	for a.XPToNext > 0 && a.XP >= a.XPToNext {
		a.XP -= a.XPToNext
		a.Level++
		a.XPToNext = XPToNext(a.Level)
		lines = append(lines, fmt.Sprintf("%s leveled up to %d!", a.Name, a.Level))

		gains, err := grow(a, rng, r)
		if err != nil {
			return lines, err
		}
		lines = append(lines, gains...)
		RecomputeMaxima(a, true)
	}
	return lines, nil
}

func grow(a *actor.Actor, rng *dice.RNG, r Rules) ([]string, error) {
	before := a.Base
	switch r.Growth {
	case GrowthDice:
		// Armor comes from gear only.
		for _, attr := range []*int{
			&a.Base.Str, &a.Base.Dex, &a.Base.Int, &a.Base.Wis,
			&a.Base.Vit, &a.Base.Speed, &a.Base.Resist, &a.Base.Luck,
		} {
			res, err := rng.Roll("growth", r.GrowthDice)
			if err != nil {
				return nil, fmt.Errorf("rolling growth: %w", err)
			}
			*attr += res.Total()
		}
		return deltas(before, a.Base, true), nil
	case GrowthControlled:
		a.Base.Vit++
		a.Base.Str++
		if rng.Chance("growth str", 0.25) {
			a.Base.Str++
		}
		if rng.Chance("growth dex", 0.15) {
			a.Base.Dex++
		}
		if a.Level%4 == 0 {
			a.Base.Speed++
		}
		if rng.Chance("growth luck", 0.10) {
			a.Base.Luck++
		}
		return deltas(before, a.Base, false), nil
	default:
		return nil, fmt.Errorf("unknown growth mode %q", r.Growth)
	}
}

// deltas renders "STR 4→6" lines. Armor never grows and is omitted; with all
// false, unchanged attributes are omitted too.
func deltas(before, after actor.Attributes, all bool) []string {
	var lines []string
	old := before.Fields()
	for i, f := range after.Fields() {
		if f.Name == "ARM" {
			continue
		}
		if !all && f.Value == old[i].Value {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %d→%d", f.Name, old[i].Value, f.Value))
	}
	return lines
}
