package combat

import "github.com/cory-johannsen/skirmish/internal/game/actor"

// TotalArmor returns base armor plus the armor modifier of every equipped item.
//
// Postcondition: Returns >= 0.
func TotalArmor(a *actor.Actor) int {
	total := a.Base.Armor + a.GearMods().Armor
	if total < 0 {
		return 0
	}
	return total
}

// Mitigation converts an armor total into a damage-reduction fraction.
//
// Postcondition: 0 <= result <= r.MaxMitigation; non-decreasing in total.
func Mitigation(total int, r Rules) float64 {
	return clampF(0, r.MaxMitigation, float64(total)*r.PctPerArmor)
}

// effectiveArmor is TotalArmor reduced by active armor-down effects, floored at 0.
func effectiveArmor(a *actor.Actor, armorDelta int) int {
	v := TotalArmor(a) - armorDelta
	if v < 0 {
		return 0
	}
	return v
}
