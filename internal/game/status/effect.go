// Package status tracks timed per-actor effects such as stun, parry and
// armor-down during one battle.
package status

import "fmt"

// Kind is the closed set of status effect kinds.
type Kind int

const (
	Stun Kind = iota + 1
	Paralyzed
	Parry
	Defend
	ArmorDown
)

var kindNames = map[Kind]string{
	Stun:      "stun",
	Paralyzed: "paralyzed",
	Parry:     "parry",
	Defend:    "defend",
	ArmorDown: "armor_down",
}

// String returns the effect code.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText encodes the kind as its code.
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("unknown status kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes an effect code.
func (k *Kind) UnmarshalText(b []byte) error {
	for kind, name := range kindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown status kind %q", string(b))
}

// SkipsTurn reports whether the kind consumes the owner's turn.
func (k Kind) SkipsTurn() bool { return k == Stun || k == Paralyzed }

// Effect is one timed status on an actor. Potency is a fractional damage
// reduction used by Parry and Defend; Amount is a flat armor delta used by
// ArmorDown.
type Effect struct {
	Kind    Kind    `json:"kind"`
	Turns   int     `json:"turns"`
	Potency float64 `json:"potency,omitempty"`
	Amount  int     `json:"amount,omitempty"`
}

func clampTurns(turns int) int {
	if turns < 1 {
		return 1
	}
	return turns
}

// NewStun returns a stun lasting turns owner turns.
func NewStun(turns int) Effect { return Effect{Kind: Stun, Turns: clampTurns(turns)} }

// NewParalyzed returns a paralysis lasting turns owner turns.
func NewParalyzed(turns int) Effect { return Effect{Kind: Paralyzed, Turns: clampTurns(turns)} }

// NewParry returns a parry reducing incoming damage by potency.
func NewParry(turns int, potency float64) Effect {
	return Effect{Kind: Parry, Turns: clampTurns(turns), Potency: potency}
}

// NewDefend returns a guard reducing incoming damage by potency.
func NewDefend(turns int, potency float64) Effect {
	return Effect{Kind: Defend, Turns: clampTurns(turns), Potency: potency}
}

// NewArmorDown returns an armor reduction of amount points.
func NewArmorDown(turns, amount int) Effect {
	return Effect{Kind: ArmorDown, Turns: clampTurns(turns), Amount: amount}
}
