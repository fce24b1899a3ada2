package combat_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/skirmish/internal/game/actor"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
)

func awaitsLivingPlayer(s *combat.State) bool {
	a := s.Actors[s.Current()]
	return a.IsPlayer && a.Alive()
}

func TestStepUntilPlayer_ReturnsControlToPlayer(t *testing.T) {
	e := newEngine(4, nil)
	h := newHero("hero")
	h.Base.Speed = 0
	s := e.Init([]*actor.Actor{h}, []*actor.Actor{newGoblin("g1"), newGoblin("g2")})
	require.Equal(t, "g2", s.Current())

	pauses := 0
	out, err := e.StepUntilPlayer(s, combat.PacerFunc(func() { pauses++ }))
	require.NoError(t, err)

	assert.True(t, out.Over || awaitsLivingPlayer(out))
	assert.Equal(t, 2, pauses)
	assert.Equal(t, 2, out.Turn)
}

func TestStepUntilPlayer_StepsThroughFallenPlayers(t *testing.T) {
	e := newEngine(4, nil)
	fallen := newHero("fallen")
	fallen.Base.Speed = 9
	fallen.HP.Set(0)
	s := e.Init([]*actor.Actor{fallen, newHero("hero")}, []*actor.Actor{newGoblin("gob")})
	require.Equal(t, "fallen", s.Current())

	out, err := e.StepUntilPlayer(s, nil)
	require.NoError(t, err)
	assert.Equal(t, "hero", out.Current())
	assert.Equal(t, 1, out.Turn)
}

func TestStepUntilPlayer_NoOpWhenPlayerActs(t *testing.T) {
	e := newEngine(4, nil)
	s := e.Init([]*actor.Actor{newHero("hero")}, []*actor.Actor{newGoblin("gob")})
	out, err := e.StepUntilPlayer(s, combat.NoPause)
	require.NoError(t, err)
	assert.Same(t, s, out)
}

func TestStepUntilPlayerAsync_StreamsEveryState(t *testing.T) {
	e := newEngine(4, nil)
	h := newHero("hero")
	h.Base.Speed = 0
	s := e.Init([]*actor.Actor{h}, []*actor.Actor{newGoblin("g1"), newGoblin("g2")})

	var states []*combat.State
	for st := range e.StepUntilPlayerAsync(s, combat.NewDelayPacer(time.Millisecond)) {
		states = append(states, st)
	}

	require.Len(t, states, 2)
	assert.Equal(t, 1, states[0].Turn)
	last := states[len(states)-1]
	assert.True(t, last.Over || awaitsLivingPlayer(last))
}

func TestStepUntilPlayerAsync_ClosesImmediatelyWhenOver(t *testing.T) {
	e := newEngine(4, nil)
	s := e.Init([]*actor.Actor{newHero("hero")}, []*actor.Actor{newGoblin("gob")})
	s.Over = true
	_, open := <-e.StepUntilPlayerAsync(s, nil)
	assert.False(t, open)
}

func TestNewDelayPacer_NonPositiveIsNoPause(t *testing.T) {
	_, delayed := combat.NewDelayPacer(0).(combat.DelayPacer)
	assert.False(t, delayed)
	start := time.Now()
	combat.NewDelayPacer(5 * time.Millisecond).Pause()
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
}
