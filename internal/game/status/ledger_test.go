package status_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/skirmish/internal/game/status"
)

func TestLedger_AddStacksSameKind(t *testing.T) {
	l := status.NewLedger()
	l.Add("a", status.NewParry(1, 0.15))
	l.Add("a", status.NewParry(2, 0.15))
	assert.Len(t, l.Effects("a"), 2)

	e, ok := l.Has("a", status.Parry)
	require.True(t, ok)
	assert.Equal(t, 1, e.Turns, "first match wins")
}

func TestLedger_TickRemovesExpired(t *testing.T) {
	l := status.NewLedger()
	l.Add("a", status.NewStun(1))
	l.Add("a", status.NewArmorDown(2, 3))

	expired := l.Tick("a")
	require.Len(t, expired, 1)
	assert.Equal(t, status.Stun, expired[0].Kind)
	_, stunned := l.Skips("a")
	assert.False(t, stunned)
	assert.Equal(t, 3, l.ArmorDelta("a"))

	l.Tick("a")
	assert.Empty(t, l.Effects("a"))
	assert.Equal(t, 0, l.ArmorDelta("a"))
}

func TestLedger_TickOnlyTouchesOwner(t *testing.T) {
	l := status.NewLedger()
	l.Add("a", status.NewStun(1))
	l.Add("b", status.NewStun(1))
	l.Tick("a")
	_, ok := l.Skips("b")
	assert.True(t, ok)
}

func TestLedger_SkipsParalysis(t *testing.T) {
	l := status.NewLedger()
	l.Add("a", status.NewDefend(1, 0.5))
	l.Add("a", status.NewParalyzed(1))
	e, ok := l.Skips("a")
	require.True(t, ok)
	assert.Equal(t, status.Paralyzed, e.Kind)
}

func TestLedger_MitigateIncoming_ParryThenDefend(t *testing.T) {
	l := status.NewLedger()
	l.Add("a", status.NewDefend(1, 0.5))
	l.Add("a", status.NewParry(1, 0.15))
	// 20 * 0.85 = 17, 17 * 0.5 = 8.5 -> 8
	assert.Equal(t, 8, l.MitigateIncoming("a", 20))
	assert.Equal(t, 20, l.MitigateIncoming("b", 20))
}

func TestLedger_MitigateIncoming_NeverNegativeNorAmplifies(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		l := status.NewLedger()
		n := rapid.IntRange(0, 4).Draw(rt, "n")
		for i := 0; i < n; i++ {
			p := rapid.Float64Range(0, 1).Draw(rt, "potency")
			if rapid.Bool().Draw(rt, "parry") {
				l.Add("a", status.NewParry(1, p))
			} else {
				l.Add("a", status.NewDefend(1, p))
			}
		}
		dmg := rapid.IntRange(0, 1000).Draw(rt, "dmg")
		got := l.MitigateIncoming("a", dmg)
		if got < 0 || got > dmg {
			rt.Fatalf("mitigated %d to %d", dmg, got)
		}
	})
}

func TestLedger_CloneIsIndependent(t *testing.T) {
	l := status.NewLedger()
	l.Add("a", status.NewStun(2))
	cp := l.Clone()
	cp.Tick("a")
	cp.Add("b", status.NewStun(1))

	e, _ := l.Has("a", status.Stun)
	assert.Equal(t, 2, e.Turns)
	assert.Empty(t, l.Effects("b"))
}

func TestConstructors_ClampTurns(t *testing.T) {
	assert.Equal(t, 1, status.NewStun(0).Turns)
	assert.Equal(t, 3, status.NewArmorDown(2, 3).Amount)
}

func TestKind_TextEncoding(t *testing.T) {
	b, err := json.Marshal(status.NewArmorDown(2, 3))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"armor_down","turns":2,"amount":3}`, string(b))

	var e status.Effect
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"stun","turns":1}`), &e))
	assert.Equal(t, status.Stun, e.Kind)
	assert.Error(t, json.Unmarshal([]byte(`{"kind":"sleep","turns":1}`), &e))
}
