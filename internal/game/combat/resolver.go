package combat

import (
	"math"

	"github.com/cory-johannsen/skirmish/internal/game/actor"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// AttackResult holds the outcome of a single basic attack.
type AttackResult struct {
	AttackerID string
	TargetID   string
	// Hit is true for clean hits, grazes and crits.
	Hit   bool
	Graze bool
	Crit  bool
	// Roll is the 1..100 hit roll.
	Roll  int
	ToHit float64
	// Raw is the pre-mitigation damage.
	Raw        float64
	Mitigation float64
	// Baseline is the mitigated non-crit damage before variance.
	Baseline int
	// Damage is the final damage before status mitigation. 0 on a miss.
	Damage int
	Line   string
}

// Outcome classifies r for narration.
func (r AttackResult) Outcome() string {
	switch {
	case !r.Hit:
		return "miss"
	case r.Graze:
		return "graze"
	case r.Crit:
		return "crit"
	default:
		return "hit"
	}
}

// HitChance returns the attacker's to-hit percentage against defender.
//
// Postcondition: r.MinHit <= result <= r.MaxHit.
func HitChance(attacker, defender *actor.Actor, r Rules) float64 {
	ae, de := attacker.Effective(), defender.Effective()
	chance := r.BaseHit +
		r.DexWeight*float64(ae.Dex-de.Dex) +
		r.LuckWeight*float64(ae.Luck-de.Luck) +
		r.LevelWeight*float64(attacker.Level-defender.Level)
	if w := attacker.Weapon(); w != nil {
		chance += float64(w.Mods.Accuracy)
	}
	return clampF(r.MinHit, r.MaxHit, chance)
}

// CritChance returns the attacker's crit percentage.
//
// Postcondition: 0 <= result <= r.MaxCrit.
func CritChance(attacker *actor.Actor, r Rules) float64 {
	chance := r.BaseCrit + float64(attacker.Effective().Luck)
	if w := attacker.Weapon(); w != nil {
		chance += float64(w.Mods.CritPct)
	}
	return clampF(0, r.MaxCrit, chance)
}

// RawDamage returns weapon damage (UnarmedDamage when unarmed) plus the
// strength contribution.
func RawDamage(attacker *actor.Actor, r Rules) float64 {
	base := r.UnarmedDamage
	if w := attacker.Weapon(); w != nil {
		base = w.Mods.Damage
	}
	return float64(base) + r.StrFactor*float64(attacker.Effective().Str)
}

// Baseline returns the mitigated non-crit damage of attacker against defender.
//
// Postcondition: Returns >= 1.
func Baseline(attacker, defender *actor.Actor, armorDelta int, r Rules) int {
	mit := Mitigation(effectiveArmor(defender, armorDelta), r)
	return mitigate(RawDamage(attacker, r), mit)
}

func mitigate(raw, mit float64) int {
	v := int(math.Floor(raw * (1 - mit)))
	if v < 1 {
		return 1
	}
	return v
}

// ResolveAttack performs one basic attack of attacker against defender.
// armorDelta is the defender's active armor-down total.
//
// RNG draw order: hit roll; variance on any hit; crit roll and crit bonus on
// clean hits only.
//
// Precondition: attacker and defender are non-nil; rng is non-nil.
// Postcondition: Damage is 0 on a miss, >= 1 otherwise; a crit's Damage
// exceeds both Baseline and the non-crit hit damage.
func ResolveAttack(attacker, defender *actor.Actor, armorDelta int, rng *dice.RNG, r Rules) AttackResult {
	res := AttackResult{
		AttackerID: attacker.ID,
		TargetID:   defender.ID,
		ToHit:      HitChance(attacker, defender, r),
		Raw:        RawDamage(attacker, r),
		Mitigation: Mitigation(effectiveArmor(defender, armorDelta), r),
	}
	res.Roll = rng.Int("hit", 1, 100)
	if float64(res.Roll) > res.ToHit+r.GrazeWindow {
		res.Line = Narrate(attacker, defender, res, defender.HP.Current)
		return res
	}
	res.Hit = true
	res.Baseline = mitigate(res.Raw, res.Mitigation)
	hitDamage := res.Baseline + rng.Int("variance", -r.Variance, r.Variance)
	if hitDamage < 1 {
		hitDamage = 1
	}

	switch {
	case float64(res.Roll) > res.ToHit:
		res.Graze = true
		res.Damage = int(math.Floor(float64(res.Baseline) * r.GrazeFactor))
		if res.Damage < 1 {
			res.Damage = 1
		}
	case float64(rng.Int("crit", 1, 100)) <= CritChance(attacker, r):
		res.Crit = true
		crit := mitigate(res.Raw*r.CritMultiplier, res.Mitigation) + rng.Int("crit bonus", 0, r.CritBonusVariance)
		floor := res.Baseline
		if hitDamage > floor {
			floor = hitDamage
		}
		if crit <= floor {
			crit = floor + 1
		}
		res.Damage = crit
	default:
		res.Damage = hitDamage
	}
	after := defender.HP.Current - res.Damage
	if after < 0 {
		after = 0
	}
	res.Line = Narrate(attacker, defender, res, after)
	return res
}
