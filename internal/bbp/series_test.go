package bbp

import (
	"context"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

const sumTolerance = 1e-12

// sequentialSum computes S_j(d) through the purely sequential path: a
// single-worker dispatcher whose chunk span never fits the left portion,
// so every term goes through the per-term fallback.
func sequentialSum(t *testing.T, j SeriesIndex, d uint64) float64 {
	t.Helper()
	tbl := NewPowerTable(float64(d))
	disp := NewPoolDispatcher(1, d+1)
	s, err := SumSeries(context.Background(), j, d, tbl, disp, ReduceForward, nil)
	if err != nil {
		t.Fatalf("sequential SumSeries(%d, %d) failed: %v", j, d, err)
	}
	return s
}

// parallelSum computes S_j(d) with the given worker count and chunk size.
func parallelSum(t *testing.T, j SeriesIndex, d uint64, workers int, chunkSize uint64, order ReduceOrder) float64 {
	t.Helper()
	tbl := NewPowerTable(float64(d))
	disp := NewPoolDispatcher(workers, chunkSize)
	s, err := SumSeries(context.Background(), j, d, tbl, disp, order, nil)
	if err != nil {
		t.Fatalf("parallel SumSeries(%d, %d) failed: %v", j, d, err)
	}
	return s
}

// TestSumSeries_ParallelMatchesSequential verifies that chunk partitioning
// does not change the mathematical value of the series.
func TestSumSeries_ParallelMatchesSequential(t *testing.T) {
	for _, d := range []uint64{0, 1, 2, 63, 200, 997} {
		for _, j := range []SeriesIndex{Series1, Series4, Series5, Series6} {
			seq := sequentialSum(t, j, d)
			par := parallelSum(t, j, d, 4, 16, ReduceForward)
			if math.Abs(seq-par) > sumTolerance {
				t.Errorf("S_%d(%d): sequential %v vs parallel %v differ beyond %v",
					j, d, seq, par, sumTolerance)
			}
		}
	}
}

// TestSumSeries_WorkerCountInvariance verifies that one worker and eight
// workers agree within tolerance for the same position.
func TestSumSeries_WorkerCountInvariance(t *testing.T) {
	const d = 800
	for _, j := range []SeriesIndex{Series1, Series4, Series5, Series6} {
		one := parallelSum(t, j, d, 1, 32, ReduceForward)
		eight := parallelSum(t, j, d, 8, 32, ReduceForward)
		if math.Abs(one-eight) > sumTolerance {
			t.Errorf("S_%d(%d): 1 worker %v vs 8 workers %v differ beyond %v",
				j, d, one, eight, sumTolerance)
		}
	}
}

// TestSumSeries_Deterministic verifies that the same partition folded in the
// same order produces a bit-identical sum across runs.
func TestSumSeries_Deterministic(t *testing.T) {
	const d = 600
	for _, order := range []ReduceOrder{ReduceForward, ReduceBackward} {
		first := parallelSum(t, Series1, d, 4, 16, order)
		second := parallelSum(t, Series1, d, 4, 16, order)
		if first != second {
			t.Errorf("order %v: repeated run not bit-identical: %v vs %v", order, first, second)
		}
	}
}

// TestSumSeries_ReduceOrderAgreement verifies that forward and backward fold
// orders agree within the floating-point tolerance. The orders may legally
// differ in the last bits; they must not differ mathematically.
func TestSumSeries_ReduceOrderAgreement(t *testing.T) {
	const d = 600
	fwd := parallelSum(t, Series5, d, 4, 16, ReduceForward)
	bwd := parallelSum(t, Series5, d, 4, 16, ReduceBackward)
	if math.Abs(fwd-bwd) > sumTolerance {
		t.Errorf("fold orders disagree: forward %v vs backward %v", fwd, bwd)
	}
}

// TestSumSeries_ResultInUnitInterval checks the fractional invariant over
// random positions and series indices.
func TestSumSeries_ResultInUnitInterval(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("S_j(d) lies in [0,1)", prop.ForAll(
		func(d uint64, pick uint8) bool {
			j := []SeriesIndex{Series1, Series4, Series5, Series6}[pick%4]
			s := parallelSum(t, j, d, 3, 8, ReduceForward)
			return s >= 0 && s < 1
		},
		gen.UInt64Range(0, 400),
		gen.UInt8(),
	))

	properties.TestingRun(t)
}

// TestSumSeries_RightTail verifies the tail regime: for k >= d the direct
// powers of 16 underflow quickly, the first dropped term is below the
// epsilon cutoff, and the cutoff is always reached well inside the loop
// bound.
func TestSumSeries_RightTail(t *testing.T) {
	for _, d := range []uint64{0, 1, 5, 50} {
		for _, j := range []SeriesIndex{Series1, Series6} {
			// Locate the first dropped term independently.
			dropped := false
			for k := d; k <= d+rightTailBound; k++ {
				term := math.Pow(16, float64(d)-float64(k)) / float64(8*k+uint64(j))
				if term < rightTailEpsilon {
					dropped = true
					break
				}
			}
			if !dropped {
				t.Errorf("d=%d j=%d: tail never fell below %v within the bound", d, j, rightTailEpsilon)
			}
		}
	}

	// The tail-only value of S_j(0) against an independent direct sum.
	for _, j := range []SeriesIndex{Series1, Series4, Series5, Series6} {
		want := 0.0
		for k := uint64(0); k <= 30; k++ {
			want += math.Pow(16, -float64(k)) / float64(8*k+uint64(j))
		}
		want -= math.Floor(want)

		got := sequentialSum(t, j, 0)
		if math.Abs(got-want) > 1e-15 {
			t.Errorf("S_%d(0) = %v, want %v", j, got, want)
		}
	}
}

// TestSumSeries_Canceled verifies that cancellation surfaces as an error
// instead of a partial value.
func TestSumSeries_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	const d = 10_000
	tbl := NewPowerTable(float64(d))
	disp := NewPoolDispatcher(2, 64)
	if _, err := SumSeries(ctx, Series1, d, tbl, disp, ReduceForward, nil); err == nil {
		t.Error("SumSeries with canceled context returned nil error")
	}
}
