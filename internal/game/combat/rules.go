package combat

import (
	"errors"
	"fmt"
)

// Rules holds every tuning constant of the combat math.
type Rules struct {
	// PctPerArmor is the mitigation fraction granted per armor point.
	PctPerArmor float64
	// MaxMitigation caps mitigation regardless of armor total.
	MaxMitigation float64

	BaseHit     float64
	DexWeight   float64
	LuckWeight  float64
	LevelWeight float64
	MinHit      float64
	MaxHit      float64
	// GrazeWindow is the band above the to-hit chance that still grazes.
	GrazeWindow float64
	GrazeFactor float64

	UnarmedDamage int
	StrFactor     float64
	// Variance bounds the [-Variance, +Variance] roll applied to hit damage.
	Variance int

	BaseCrit          float64
	MaxCrit           float64
	CritMultiplier    float64
	CritBonusVariance int

	DefendPotency float64
	DefendTurns   int

	// PanicThreshold is the HP fraction at or below which non-players may panic.
	PanicThreshold float64
	// PanicChance is the probability in [0,1] that a panicking actor defends.
	PanicChance float64
}

// DefaultRules returns the reference tuning.
func DefaultRules() Rules {
	return Rules{
		PctPerArmor:       0.02,
		MaxMitigation:     0.60,
		BaseHit:           88,
		DexWeight:         2,
		LuckWeight:        0.5,
		LevelWeight:       1.5,
		MinHit:            60,
		MaxHit:            98,
		GrazeWindow:       8,
		GrazeFactor:       0.5,
		UnarmedDamage:     2,
		StrFactor:         0.5,
		Variance:          2,
		BaseCrit:          5,
		MaxCrit:           50,
		CritMultiplier:    1.5,
		CritBonusVariance: 2,
		DefendPotency:     0.5,
		DefendTurns:       1,
		PanicThreshold:    0.20,
		PanicChance:       0.25,
	}
}

// Validate reports every inconsistent constant.
//
// Postcondition: Returns nil iff every range is ordered and every
// probability or fraction lies in [0, 1].
func (r Rules) Validate() error {
	var errs []error
	fraction := func(name string, v float64) {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s must be in [0, 1], got %v", name, v))
		}
	}
	fraction("max mitigation", r.MaxMitigation)
	fraction("graze factor", r.GrazeFactor)
	fraction("defend potency", r.DefendPotency)
	fraction("panic threshold", r.PanicThreshold)
	fraction("panic chance", r.PanicChance)
	if r.PctPerArmor < 0 {
		errs = append(errs, fmt.Errorf("pct per armor must be >= 0, got %v", r.PctPerArmor))
	}
	if r.MinHit < 0 || r.MinHit > r.MaxHit || r.MaxHit > 100 {
		errs = append(errs, fmt.Errorf("hit range [%v, %v] must lie within [0, 100]", r.MinHit, r.MaxHit))
	}
	if r.BaseCrit < 0 || r.BaseCrit > r.MaxCrit || r.MaxCrit > 100 {
		errs = append(errs, fmt.Errorf("crit range [%v, %v] must lie within [0, 100]", r.BaseCrit, r.MaxCrit))
	}
	if r.GrazeWindow < 0 {
		errs = append(errs, errors.New("graze window must be >= 0"))
	}
	if r.Variance < 0 || r.CritBonusVariance < 0 || r.UnarmedDamage < 0 {
		errs = append(errs, errors.New("variance, crit bonus variance and unarmed damage must be >= 0"))
	}
	if r.CritMultiplier < 1 {
		errs = append(errs, fmt.Errorf("crit multiplier must be >= 1, got %v", r.CritMultiplier))
	}
	if r.DefendTurns < 1 {
		errs = append(errs, fmt.Errorf("defend turns must be >= 1, got %d", r.DefendTurns))
	}
	return errors.Join(errs...)
}

func clampF(lo, hi, v float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampI(lo, hi, v int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
