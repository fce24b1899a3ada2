package item

import "fmt"

// Effect is the closed set of on-use consumable effects.
type Effect string

const (
	EffectNone       Effect = "none"
	EffectHeal10     Effect = "heal_10"
	EffectHeal25     Effect = "heal_25"
	EffectHeal50     Effect = "heal_50"
	EffectHeal100    Effect = "heal_100"
	EffectMana10     Effect = "mana_10"
	EffectMana25     Effect = "mana_25"
	EffectMana50     Effect = "mana_50"
	EffectMana100    Effect = "mana_100"
	EffectStamina10  Effect = "stamina_10"
	EffectStamina25  Effect = "stamina_25"
	EffectStamina50  Effect = "stamina_50"
	EffectStamina100 Effect = "stamina_100"
	EffectSpeedBuff  Effect = "speed_buff"
	EffectFireResist Effect = "fire_res"
	EffectIceResist  Effect = "ice_res"
)

// Resource names the pool an effect restores.
type Resource int

const (
	ResourceNone Resource = iota
	ResourceHP
	ResourceMP
	ResourceSP
)

// String returns the pool label used in log lines.
func (r Resource) String() string {
	switch r {
	case ResourceHP:
		return "HP"
	case ResourceMP:
		return "MP"
	case ResourceSP:
		return "SP"
	default:
		return "none"
	}
}

type restore struct {
	res    Resource
	amount int
}

var restores = map[Effect]restore{
	EffectHeal10: {ResourceHP, 10}, EffectHeal25: {ResourceHP, 25},
	EffectHeal50: {ResourceHP, 50}, EffectHeal100: {ResourceHP, 100},
	EffectMana10: {ResourceMP, 10}, EffectMana25: {ResourceMP, 25},
	EffectMana50: {ResourceMP, 50}, EffectMana100: {ResourceMP, 100},
	EffectStamina10: {ResourceSP, 10}, EffectStamina25: {ResourceSP, 25},
	EffectStamina50: {ResourceSP, 50}, EffectStamina100: {ResourceSP, 100},
}

var validEffects = map[Effect]bool{
	EffectNone: true, EffectSpeedBuff: true, EffectFireResist: true, EffectIceResist: true,
}

func init() {
	for e := range restores {
		validEffects[e] = true
	}
}

// ParseEffect validates s as an Effect. The empty string maps to EffectNone.
func ParseEffect(s string) (Effect, error) {
	if s == "" {
		return EffectNone, nil
	}
	e := Effect(s)
	if !validEffects[e] {
		return EffectNone, fmt.Errorf("unknown on_use effect %q", s)
	}
	return e, nil
}

// Resource returns the pool this effect restores, or ResourceNone.
func (e Effect) Resource() Resource { return restores[e].res }

// Amount returns the restored amount, or 0 for non-restoring effects.
func (e Effect) Amount() int { return restores[e].amount }
