package combat

import (
	"time"

	"go.uber.org/zap"
)

// Pacer pauses between AI-driven steps so turns play out visibly. Pacing
// carries no correctness obligation.
type Pacer interface {
	Pause()
}

// PacerFunc adapts a function to Pacer.
type PacerFunc func()

// Pause calls f.
func (f PacerFunc) Pause() { f() }

// NoPause is a Pacer that returns immediately.
var NoPause Pacer = PacerFunc(func() {})

// DelayPacer sleeps for a fixed duration.
type DelayPacer struct {
	Delay time.Duration
}

// NewDelayPacer returns a pacer sleeping d between steps; d <= 0 yields NoPause.
func NewDelayPacer(d time.Duration) Pacer {
	if d <= 0 {
		return NoPause
	}
	return DelayPacer{Delay: d}
}

// Pause blocks for Delay.
func (p DelayPacer) Pause() {
	t := time.NewTimer(p.Delay)
	defer t.Stop()
	<-t.C
}

// awaitingPlayer reports whether control belongs to a living player.
func awaitingPlayer(s *State) bool {
	a := s.Actors[s.Current()]
	return a != nil && a.IsPlayer && a.Alive()
}

// StepUntilPlayer steps non-player turns, and the turns of fallen players,
// pausing before each, until a living player is to act or the battle ends.
//
// Postcondition: the returned state is over or awaits a living player.
func (e *Engine) StepUntilPlayer(s *State, p Pacer) (*State, error) {
	if p == nil {
		p = NoPause
	}
	for !s.Over && !awaitingPlayer(s) {
		p.Pause()
		next, err := e.Step(s, nil)
		if err != nil {
			return s, err
		}
		s = next
	}
	return s, nil
}

// StepUntilPlayerAsync runs the StepUntilPlayer loop in a goroutine and
// sends every intermediate state. The channel is closed once a living player
// is to act or the battle is over. Only the end of the battle, or control
// returning to a player, stops the loop; there is no external cancellation.
//
// The caller must drain the channel and must not use e until it is closed.
func (e *Engine) StepUntilPlayerAsync(s *State, p Pacer) <-chan *State {
	if p == nil {
		p = NoPause
	}
	out := make(chan *State)
	go func() {
		defer close(out)
		for !s.Over && !awaitingPlayer(s) {
			p.Pause()
			next, err := e.Step(s, nil)
			if err != nil {
				e.logger.Error("auto step failed", zap.Int("turn", s.Turn), zap.Error(err))
				return
			}
			s = next
			out <- s
		}
	}()
	return out
}
