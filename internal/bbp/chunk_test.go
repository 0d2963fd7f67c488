package bbp

import (
	"math"
	"testing"
)

// naiveChunkSum recomputes a chunk term by term without the shared helper,
// as an independent check of EvaluateChunk.
func naiveChunkSum(tbl *PowerTable, c Chunk, j SeriesIndex, d uint64) float64 {
	s := 0.0
	for k := c.Start; k < c.Start+c.Count; k++ {
		denom := float64(8*k + uint64(j))
		s += tbl.ModPow16(float64(d-k), denom) / denom
		s -= math.Floor(s)
	}
	return s
}

// TestEvaluateChunk_MatchesNaive verifies the chunk evaluator against a
// direct per-term computation.
func TestEvaluateChunk_MatchesNaive(t *testing.T) {
	const d = 300
	tbl := NewPowerTable(d)

	chunks := []Chunk{
		{Start: 0, Count: 1},
		{Start: 0, Count: 50},
		{Start: 120, Count: 37},
		{Start: 299, Count: 1},
	}
	for _, c := range chunks {
		for _, j := range []SeriesIndex{Series1, Series4, Series5, Series6} {
			got := EvaluateChunk(tbl, c, j, d)
			want := naiveChunkSum(tbl, c, j, d)
			if got != want {
				t.Errorf("EvaluateChunk(%+v, j=%d) = %v, want %v", c, j, got, want)
			}
		}
	}
}

// TestEvaluateChunk_SplitInvariance verifies the partitioning invariant: the
// partial results of a split range, reduced mod 1, agree with the value of
// the whole range up to floating-point error.
func TestEvaluateChunk_SplitInvariance(t *testing.T) {
	const d = 500
	tbl := NewPowerTable(d)

	whole := EvaluateChunk(tbl, Chunk{Start: 0, Count: 400}, Series1, d)

	split := 0.0
	for _, c := range []Chunk{
		{Start: 0, Count: 100},
		{Start: 100, Count: 100},
		{Start: 200, Count: 150},
		{Start: 350, Count: 50},
	} {
		split += EvaluateChunk(tbl, c, Series1, d)
		split -= math.Floor(split)
	}

	if math.Abs(whole-split) > sumTolerance {
		t.Errorf("split partials %v differ from whole chunk %v beyond %v", split, whole, sumTolerance)
	}
}

// TestEvaluateChunk_AccumulatorBounded verifies the fractional reduction:
// the partial result always lies in [0,1), even over long ranges.
func TestEvaluateChunk_AccumulatorBounded(t *testing.T) {
	const d = 5_000
	tbl := NewPowerTable(d)

	s := EvaluateChunk(tbl, Chunk{Start: 0, Count: d}, Series4, d)
	if s < 0 || s >= 1 {
		t.Errorf("chunk partial %v outside [0,1)", s)
	}
}
