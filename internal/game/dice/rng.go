package dice

import (
	"fmt"

	"go.uber.org/zap"
)

// floatSteps is the resolution of Float.
const floatSteps = 1 << 30

// RNG is the engine-facing random generator. Every probabilistic decision in
// combat, AI, leveling and loot draws from one RNG threaded through the call
// chain; nothing reaches for an ambient random source.
type RNG struct {
	src    Source
	logger *zap.Logger
}

// NewRNG wraps src. logger may be nil, in which case draws are not logged.
//
// Precondition: src must be non-nil.
func NewRNG(src Source, logger *zap.Logger) *RNG {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RNG{src: src, logger: logger}
}

// NewSeededRNG is shorthand for NewRNG(NewSeededSource(seed), logger).
func NewSeededRNG(seed uint32, logger *zap.Logger) *RNG {
	return NewRNG(NewSeededSource(seed), logger)
}

// Every draw takes a label naming its purpose ("hit", "crit", "panic",
// "loot"...). The label only appears in the debug log.

// Int returns a uniformly distributed integer in [min, max].
//
// Precondition: min <= max.
func (r *RNG) Int(label string, min, max int) int {
	if max < min {
		panic(fmt.Sprintf("dice: Int(%s) called with max %d < min %d", label, max, min))
	}
	v := min + r.src.Intn(max-min+1)
	r.logger.Debug("rng int",
		zap.String("label", label),
		zap.Int("min", min),
		zap.Int("max", max),
		zap.Int("value", v),
	)
	return v
}

// Float returns a value in [0, 1).
func (r *RNG) Float(label string) float64 {
	v := float64(r.src.Intn(floatSteps)) / floatSteps
	r.logger.Debug("rng float", zap.String("label", label), zap.Float64("value", v))
	return v
}

// Percent rolls 1..100 and reports whether the roll is <= p.
// p <= 0 never succeeds but still consumes a draw, so call order stays stable.
func (r *RNG) Percent(label string, p float64) bool {
	return float64(r.Int(label, 1, 100)) <= p
}

// Chance reports whether a Float draw falls below p.
func (r *RNG) Chance(label string, p float64) bool {
	return r.Float(label) < p
}

// Roll parses and evaluates a dice expression such as "1d4" or "1d101+99".
//
// Postcondition: Returns the roll or a parse error; no draw happens on error.
func (r *RNG) Roll(label, expr string) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	res := Roll(e, r.src)
	r.logger.Debug("dice roll",
		zap.String("label", label),
		zap.String("expression", res.Expression),
		zap.Ints("dice", res.Dice),
		zap.Int("modifier", res.Modifier),
		zap.Int("total", res.Total()),
	)
	return res, nil
}
