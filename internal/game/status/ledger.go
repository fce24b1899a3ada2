package status

import "math"

// Ledger maps actor ids to their live effects in application order.
// It is not safe for concurrent use; the caller must serialise access.
type Ledger struct {
	effects map[string][]Effect
}

// NewLedger creates an empty Ledger.
func NewLedger() *Ledger {
	return &Ledger{effects: make(map[string][]Effect)}
}

// Add appends eff to id's effects. Effects of the same kind stack.
func (l *Ledger) Add(id string, eff Effect) {
	if l.effects == nil {
		l.effects = make(map[string][]Effect)
	}
	l.effects[id] = append(l.effects[id], eff)
}

// Has returns the first live effect of kind on id.
func (l *Ledger) Has(id string, kind Kind) (Effect, bool) {
	for _, e := range l.effects[id] {
		if e.Kind == kind {
			return e, true
		}
	}
	return Effect{}, false
}

// Skips returns the first effect on id that consumes a turn.
func (l *Ledger) Skips(id string) (Effect, bool) {
	for _, e := range l.effects[id] {
		if e.Kind.SkipsTurn() {
			return e, true
		}
	}
	return Effect{}, false
}

// Tick decrements every effect on id by one turn and removes those that
// reach zero.
//
// Postcondition: the returned slice holds exactly the removed effects.
func (l *Ledger) Tick(id string) []Effect {
	cur := l.effects[id]
	if len(cur) == 0 {
		return nil
	}
	var expired []Effect
	live := make([]Effect, 0, len(cur))
	for _, e := range cur {
		e.Turns--
		if e.Turns <= 0 {
			expired = append(expired, e)
			continue
		}
		live = append(live, e)
	}
	if len(live) == 0 {
		delete(l.effects, id)
	} else {
		l.effects[id] = live
	}
	return expired
}

// MitigateIncoming applies every Parry reduction, then every Defend
// reduction, to dmg and floors the result at zero.
func (l *Ledger) MitigateIncoming(id string, dmg int) int {
	v := float64(dmg)
	for _, kind := range []Kind{Parry, Defend} {
		for _, e := range l.effects[id] {
			if e.Kind == kind {
				v *= 1 - e.Potency
			}
		}
	}
	out := int(math.Floor(v))
	if out < 0 {
		return 0
	}
	return out
}

// ArmorDelta returns the summed ArmorDown amount on id.
func (l *Ledger) ArmorDelta(id string) int {
	total := 0
	for _, e := range l.effects[id] {
		if e.Kind == ArmorDown {
			total += e.Amount
		}
	}
	return total
}

// Effects returns a copy of id's live effects.
func (l *Ledger) Effects(id string) []Effect {
	cur := l.effects[id]
	if len(cur) == 0 {
		return nil
	}
	return append([]Effect(nil), cur...)
}

// Snapshot returns a copy of every actor's effects.
func (l *Ledger) Snapshot() map[string][]Effect {
	out := make(map[string][]Effect, len(l.effects))
	for id, effs := range l.effects {
		out[id] = append([]Effect(nil), effs...)
	}
	return out
}

// Clone returns a deep copy of l.
func (l *Ledger) Clone() *Ledger {
	if l == nil {
		return NewLedger()
	}
	return &Ledger{effects: l.Snapshot()}
}
