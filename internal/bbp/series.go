package bbp

import (
	"context"
	"math"
)

// ReduceOrder selects the order in which partial results from one dispatch
// round are folded into the running sum. The fold order does not change the
// mathematical value, but it does change floating-point rounding, so it is
// an explicit, tested parameter: the same partition folded in the same order
// always produces a bit-identical sum.
type ReduceOrder int

const (
	// ReduceForward folds lane results in ascending lane order.
	ReduceForward ReduceOrder = iota
	// ReduceBackward folds lane results in descending lane order.
	ReduceBackward
)

// String returns the flag spelling of the order.
func (o ReduceOrder) String() string {
	if o == ReduceBackward {
		return "backward"
	}
	return "forward"
}

// SumSeries computes S_j(d), the fractional value of one BBP sub-series as
// needed by the digit combination step.
//
// The left portion (k < d) needs modular exponentiation and is parallelized:
// while the remaining range can still give every dispatcher lane a full
// chunk, one chunk per lane is dispatched and the collected partials are
// folded into the running sum, mod 1 after each fold. Once the range is too
// small to fill the lanes, the remainder is evaluated sequentially per term.
//
// The right portion (k >= d) needs no modular exponentiation: 16^(d−k) is a
// directly representable non-positive power of 16. Terms are summed
// sequentially and the loop stops as soon as a term falls below 1e-17, with
// a hard bound of d+100 iterations guarding termination.
//
// report, when non-nil, is called with the number of left-portion terms
// completed so far; it is invoked once per dispatch round and periodically
// during sequential evaluation.
func SumSeries(ctx context.Context, j SeriesIndex, d uint64, tbl *PowerTable, disp Dispatcher, order ReduceOrder, report func(termsDone uint64)) (float64, error) {
	chunkSize := disp.ChunkSize()
	if chunkSize < 1 {
		chunkSize = 1
	}
	width := uint64(disp.Width())
	roundSpan := chunkSize * width

	s := 0.0
	var k uint64

	// Left portion: k in [0, d).
	for k < d {
		if k+roundSpan < d {
			chunks := make([]Chunk, width)
			for i := range chunks {
				chunks[i] = Chunk{Start: k + uint64(i)*chunkSize, Count: chunkSize}
			}
			partials, err := disp.Dispatch(ctx, chunks, func(c Chunk) float64 {
				return EvaluateChunk(tbl, c, j, d)
			})
			if err != nil {
				return 0, err
			}
			s = foldPartials(s, partials, order)
			k += roundSpan
			if report != nil {
				report(k)
			}
		} else {
			// Remainder too small to fill every lane: finish sequentially.
			if k%ctxCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return 0, err
				}
				if report != nil {
					report(k)
				}
			}
			denom := float64(8*k + uint64(j))
			s += tbl.ModPow16(float64(d-k), denom) / denom
			s -= math.Floor(s)
			k++
		}
	}
	if report != nil {
		report(d)
	}

	// Right portion: k in [d, d+rightTailBound], early-terminating tail.
	for k := d; k <= d+rightTailBound; k++ {
		term := math.Pow(16, float64(d)-float64(k)) / float64(8*k+uint64(j))
		if term < rightTailEpsilon {
			break
		}
		s += term
		s -= math.Floor(s)
	}

	return s - math.Floor(s), nil
}

// foldPartials folds one round of lane partials into the running sum in the
// requested order, reducing mod 1 after every fold.
func foldPartials(s float64, partials []float64, order ReduceOrder) float64 {
	if order == ReduceBackward {
		for i := len(partials) - 1; i >= 0; i-- {
			s += partials[i]
			s -= math.Floor(s)
		}
		return s
	}
	for _, p := range partials {
		s += p
		s -= math.Floor(s)
	}
	return s
}
