package bbp

import "math"

// PowerTable caches successive powers of two used by the left-to-right
// binary exponentiation in ModPow16. The table is an explicit, caller-owned
// context object: one table is created per digit computation, fully built
// before any concurrent chunk evaluation starts, and only read afterwards.
//
// A PowerTable is safe for concurrent readers once constructed. EnsureUpTo
// mutates the table and must not be called while other goroutines read it.
type PowerTable struct {
	// powers holds 1, 2, 4, 8, ... up to the smallest power of two that is
	// greater than or equal to the largest exponent requested so far.
	// Every entry is an exact float64 integer (all values stay far below 2^53).
	powers []float64
}

// NewPowerTable builds a table covering exponents up to maxExp. A maxExp
// below 1 yields the minimal table {1}.
func NewPowerTable(maxExp float64) *PowerTable {
	t := &PowerTable{powers: []float64{1}}
	t.EnsureUpTo(maxExp)
	return t
}

// EnsureUpTo grows the table until its largest entry is >= maxExp. The table
// only ever grows, never shrinks. Not safe for use concurrently with readers;
// grow the table before dispatching parallel work.
func (t *PowerTable) EnsureUpTo(maxExp float64) {
	for t.powers[len(t.powers)-1] < maxExp {
		t.powers = append(t.powers, t.powers[len(t.powers)-1]*2)
	}
}

// Len returns the number of cached powers of two.
func (t *PowerTable) Len() int { return len(t.powers) }

// ModPow16 computes 16^n mod k without materializing 16^n, using
// left-to-right binary exponentiation by squaring: n's binary representation
// is consumed most-significant-bit first via the cached powers of two, and
// every intermediate product is reduced mod k immediately.
//
// n is a non-negative integer magnitude carried in a float64; k must be
// positive. The result is exact as long as k·k stays below 2^53, which holds
// for every modulus 8k+j reachable from positions up to MaxAccuratePosition.
// Exponents below 1 return 1 mod k, matching 16^0.
//
// The exponent must be covered by the table (n <= largest cached power·2−1);
// callers construct the table from the digit position, which bounds every
// exponent they request.
func (t *PowerTable) ModPow16(n, k float64) float64 {
	if n < 1 {
		return math.Mod(1, k)
	}

	// Largest cached power of two <= n.
	i := len(t.powers) - 1
	for t.powers[i] > n {
		i--
	}

	p := t.powers[i]
	r := 1.0
	for ; i >= 0; i-- {
		if n >= p {
			r = math.Mod(r*16, k)
			n -= p
		}
		p /= 2
		if p >= 1 {
			r = math.Mod(r*r, k)
		}
	}
	return r
}
