package bbp

import "math"

// Chunk describes one unit of parallel work: a contiguous range of series
// terms k ∈ [Start, Start+Count). Chunks are copied to workers at dispatch
// time; workers share nothing beyond the read-only power table.
type Chunk struct {
	// Start is the index of the first term in the chunk.
	Start uint64
	// Count is the number of terms in the chunk.
	Count uint64
}

// EvaluateChunk computes the fractional partial sum
//
//	Σ_{k=Start}^{Start+Count−1} (16^(d−k) mod (8k+j)) / (8k+j)
//
// reducing mod 1 after every term so the accumulator never grows beyond
// [0,1) across potentially millions of terms.
//
// All inputs are well-formed by construction of the caller: every k in the
// chunk satisfies k < d, so the exponent d−k is a positive integer covered
// by the table, and the denominator 8k+j is always positive.
func EvaluateChunk(tbl *PowerTable, c Chunk, j SeriesIndex, d uint64) float64 {
	s := 0.0
	end := c.Start + c.Count
	for k := c.Start; k < end; k++ {
		denom := float64(8*k + uint64(j))
		s += tbl.ModPow16(float64(d-k), denom) / denom
		s -= math.Floor(s)
	}
	return s
}
