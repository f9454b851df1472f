package random

// LCG is a 32-bit linear congruential generator. The multiplier and increment
// are the Numerical Recipes constants; the modulus is 2^32 by unsigned
// wraparound. Identical seeds plus identical call sequences produce identical
// outputs, which is the determinism contract behind seeded daily boards: the
// raw state can be persisted mid-stream and restored on another machine.
type LCG struct {
	state uint32
}

// Ensure LCG implements Random
var _ Random = (*LCG)(nil)

// NewLCG creates a generator seeded with the given value
func NewLCG(seed uint32) *LCG {
	return &LCG{state: seed}
}

// Float64 advances the generator and returns state / 2^32, in [0, 1)
func (g *LCG) Float64() float64 {
	g.state = g.state*1664525 + 1013904223
	return float64(g.state) / float64(1<<32)
}

// Intn returns a random int in [0, n), consuming one Float64
func (g *LCG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(g.Float64() * float64(n))
}

// String generates a random string of the given length from the given alphabet
func (g *LCG) String(length int, alphabet string) string {
	if length <= 0 || len(alphabet) == 0 {
		return ""
	}
	result := make([]byte, length)
	for i := 0; i < length; i++ {
		result[i] = alphabet[g.Intn(len(alphabet))]
	}
	return string(result)
}

// State returns the raw generator state for persistence
func (g *LCG) State() uint32 {
	return g.state
}

// SetState restores a previously persisted state
func (g *LCG) SetState(state uint32) {
	g.state = state
}
