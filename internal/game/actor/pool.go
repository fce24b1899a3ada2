package actor

// Pool is a bounded resource such as HP, MP or SP.
//
// Invariant: 0 <= Current <= Max. Every mutator clamps.
type Pool struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// NewPool returns a full pool of size max.
func NewPool(max int) Pool {
	if max < 0 {
		max = 0
	}
	return Pool{Current: max, Max: max}
}

// Add raises Current by n and returns the amount actually gained.
func (p *Pool) Add(n int) int {
	before := p.Current
	p.Set(p.Current + n)
	return p.Current - before
}

// Sub lowers Current by n and returns the amount actually lost.
func (p *Pool) Sub(n int) int {
	before := p.Current
	p.Set(p.Current - n)
	return before - p.Current
}

// Set assigns Current clamped to [0, Max].
func (p *Pool) Set(n int) {
	switch {
	case n < 0:
		n = 0
	case n > p.Max:
		n = p.Max
	}
	p.Current = n
}

// SetMax changes Max (floored at 0) and clamps Current into the new range.
func (p *Pool) SetMax(max int) {
	if max < 0 {
		max = 0
	}
	p.Max = max
	p.Set(p.Current)
}

// Refill sets Current to Max.
func (p *Pool) Refill() { p.Current = p.Max }

// Empty reports whether Current is zero.
func (p Pool) Empty() bool { return p.Current <= 0 }

// Fraction returns Current/Max, or 0 when Max is zero.
func (p Pool) Fraction() float64 {
	if p.Max <= 0 {
		return 0
	}
	return float64(p.Current) / float64(p.Max)
}
