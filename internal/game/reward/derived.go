package reward

import "github.com/cory-johannsen/skirmish/internal/game/actor"

// HPMax is a hero's maximum HP for its level, vitality and gear. Non-players
// keep the maximum they were spawned with.
func HPMax(a *actor.Actor) int {
	if !a.IsPlayer {
		return a.HP.Max
	}
	perLevel := a.Base.Vit/2 + 2
	return 10 + perLevel*(a.Level-1) + a.GearMods().HPMax
}

// MPMax grows with intelligence only for spellcasters; everyone else has
// just what their gear grants.
func MPMax(a *actor.Actor) int {
	gear := a.GearMods().MPMax
	if !a.Tags.Spellcaster {
		return gear
	}
	return (a.Base.Int/2)*(a.Level-1) + gear
}

// SPMax is the stamina maximum.
func SPMax(a *actor.Actor) int {
	return 5 + (a.Base.Str+a.Base.Vit)/2 + (a.Level - 1) + a.GearMods().SPMax
}

// RecomputeMaxima re-derives all three pool maxima. With refill the pools are
// topped up; otherwise current values are clamped into the new bounds.
func RecomputeMaxima(a *actor.Actor, refill bool) {
	a.HP.SetMax(HPMax(a))
	a.MP.SetMax(MPMax(a))
	a.SP.SetMax(SPMax(a))
	if refill {
		a.HP.Refill()
		a.MP.Refill()
		a.SP.Refill()
	}
}
