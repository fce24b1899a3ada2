package combat

import (
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/game/actor"
	"github.com/cory-johannsen/skirmish/internal/game/status"
)

// Result is the terminal outcome of a battle.
type Result int

const (
	ResultNone Result = iota
	ResultVictory
	ResultDefeat
)

// String returns the result label.
func (r Result) String() string {
	switch r {
	case ResultVictory:
		return "victory"
	case ResultDefeat:
		return "defeat"
	default:
		return "none"
	}
}

// EventKind classifies a log event for presentation.
type EventKind int

const (
	EventInfo EventKind = iota
	EventAttack
	EventAbility
	EventStatus
	EventItem
	EventOutcome
	EventReward
)

// LogEvent is one narrated line of the battle log.
type LogEvent struct {
	Turn int
	Kind EventKind
	Text string
}

// State is the root of one battle. Engine.Step never mutates a State it is
// given; it returns a modified clone.
type State struct {
	Turn int
	// Order is the initiative order, fixed at battle start.
	Order []string
	// Party and Foes list actor ids in roster order.
	Party    []string
	Foes     []string
	Actors   map[string]*actor.Actor
	Log      []LogEvent
	Statuses *status.Ledger
	Over     bool
	Result   Result
	// Seed is the RNG seed the battle was started with, kept for replay.
	Seed uint32
}

// Current returns the id of the actor whose turn it is.
func (s *State) Current() string {
	if len(s.Order) == 0 {
		return ""
	}
	return s.Order[s.Turn%len(s.Order)]
}

// Actor returns the actor with id, or nil.
func (s *State) Actor(id string) *actor.Actor { return s.Actors[id] }

// Heroes returns the party actors in roster order.
func (s *State) Heroes() []*actor.Actor { return s.pick(s.Party) }

// Enemies returns the foe actors in roster order.
func (s *State) Enemies() []*actor.Actor { return s.pick(s.Foes) }

func (s *State) pick(ids []string) []*actor.Actor {
	out := make([]*actor.Actor, 0, len(ids))
	for _, id := range ids {
		if a := s.Actors[id]; a != nil {
			out = append(out, a)
		}
	}
	return out
}

// PartyAlive reports whether any hero has HP left.
func (s *State) PartyAlive() bool { return anyAlive(s.Heroes()) }

// FoesAlive reports whether any foe has HP left.
func (s *State) FoesAlive() bool { return anyAlive(s.Enemies()) }

func anyAlive(as []*actor.Actor) bool {
	for _, a := range as {
		if a.Alive() {
			return true
		}
	}
	return false
}

// Opponents returns the living actors opposing a, in initiative order.
func (s *State) Opponents(a *actor.Actor) []*actor.Actor {
	var out []*actor.Actor
	for _, id := range s.Order {
		o := s.Actors[id]
		if o != nil && o.IsPlayer != a.IsPlayer && o.Alive() {
			out = append(out, o)
		}
	}
	return out
}

func (s *State) logf(kind EventKind, format string, args ...any) {
	s.Log = append(s.Log, LogEvent{Turn: s.Turn, Kind: kind, Text: fmt.Sprintf(format, args...)})
}

// Lines returns the log text only.
func (s *State) Lines() []string {
	out := make([]string, len(s.Log))
	for i, e := range s.Log {
		out[i] = e.Text
	}
	return out
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	cp := &State{
		Turn:     s.Turn,
		Order:    append([]string(nil), s.Order...),
		Party:    append([]string(nil), s.Party...),
		Foes:     append([]string(nil), s.Foes...),
		Actors:   make(map[string]*actor.Actor, len(s.Actors)),
		Log:      append([]LogEvent(nil), s.Log...),
		Statuses: s.Statuses.Clone(),
		Over:     s.Over,
		Result:   s.Result,
		Seed:     s.Seed,
	}
	for id, a := range s.Actors {
		cp.Actors[id] = a.Clone()
	}
	return cp
}
