package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

func TestRollResult_Total(t *testing.T) {
	r := dice.RollResult{Expression: "2d6+3", Dice: []int{4, 5}, Modifier: 3}
	assert.Equal(t, 12, r.Total())
	assert.Equal(t, "2d6+3 → [4 5] +3 = 12", r.String())
}

func TestSeededSource_SameSeedSameSequence(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint32().Draw(rt, "seed")
		n := rapid.IntRange(2, 1000).Draw(rt, "n")
		a := dice.NewSeededSource(seed)
		b := dice.NewSeededSource(seed)
		for i := 0; i < 50; i++ {
			assert.Equal(rt, a.Intn(n), b.Intn(n))
		}
	})
}

func TestSeededSource_ZeroSeedStillAdvances(t *testing.T) {
	src := dice.NewSeededSource(0)
	seen := map[int]bool{}
	for i := 0; i < 100; i++ {
		seen[src.Intn(1000)] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestSeededSource_PanicsOnZero(t *testing.T) {
	src := dice.NewSeededSource(7)
	assert.Panics(t, func() { src.Intn(0) })
}

func TestRNG_Int_InRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint32().Draw(rt, "seed")
		lo := rapid.IntRange(-100, 100).Draw(rt, "lo")
		hi := lo + rapid.IntRange(0, 200).Draw(rt, "span")
		r := dice.NewSeededRNG(seed, nil)
		for i := 0; i < 20; i++ {
			v := r.Int("test", lo, hi)
			assert.GreaterOrEqual(rt, v, lo)
			assert.LessOrEqual(rt, v, hi)
		}
	})
}

func TestRNG_Int_DegenerateRange(t *testing.T) {
	r := dice.NewSeededRNG(1, nil)
	assert.Equal(t, 5, r.Int("test", 5, 5))
	assert.Panics(t, func() { r.Int("test", 3, 2) })
}

func TestRNG_Float_InUnitInterval(t *testing.T) {
	r := dice.NewSeededRNG(99, nil)
	for i := 0; i < 1000; i++ {
		f := r.Float("test")
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
	}
}

func TestRNG_Percent_Bounds(t *testing.T) {
	r := dice.NewSeededRNG(3, nil)
	for i := 0; i < 200; i++ {
		assert.True(t, r.Percent("test", 100))
		assert.False(t, r.Percent("test", 0))
	}
}

func TestParse_Valid(t *testing.T) {
	cases := map[string]dice.Expression{
		"d4":       {Raw: "d4", Count: 1, Sides: 4},
		"2d6":      {Raw: "2d6", Count: 2, Sides: 6},
		"1d4+1":    {Raw: "1d4+1", Count: 1, Sides: 4, Modifier: 1},
		"1d101+99": {Raw: "1d101+99", Count: 1, Sides: 101, Modifier: 99},
		"3d8-2":    {Raw: "3d8-2", Count: 3, Sides: 8, Modifier: -2},
	}
	for in, want := range cases {
		got, err := dice.Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "4", "0d6", "1d1", "xd6", "1d6+x"} {
		_, err := dice.Parse(in)
		assert.Error(t, err, in)
	}
	assert.Panics(t, func() { dice.MustParse("nope") })
}

func TestRNG_Roll_Bounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := dice.NewSeededRNG(rapid.Uint32().Draw(rt, "seed"), nil)
		res, err := r.Roll("test", "1d101+99")
		require.NoError(rt, err)
		assert.GreaterOrEqual(rt, res.Total(), 100)
		assert.LessOrEqual(rt, res.Total(), 200)
	})
}

func TestNewSeed_NonZero(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.NotZero(t, dice.NewSeed())
	}
}

func TestRNG_LogsDrawLabels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := dice.NewSeededRNG(7, zap.New(core))

	r.Int("hit", 1, 100)
	r.Chance("panic", 0.25)
	_, err := r.Roll("growth", "1d4")
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 3)
	var labels []any
	for _, e := range entries {
		labels = append(labels, e.ContextMap()["label"])
	}
	assert.Equal(t, []any{"hit", "panic", "growth"}, labels)
	assert.Equal(t, "1d4", entries[2].ContextMap()["expression"])
}
