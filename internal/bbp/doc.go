// Package bbp implements digit extraction for π using the
// Bailey–Borwein–Plouffe formula: a single hexadecimal digit window at an
// arbitrary position, computed without any of the preceding digits.
//
// The package is organized leaf-first:
//
//   - PowerTable.ModPow16 performs fractional modular exponentiation
//     16^n mod k (the ModularPowerEngine).
//   - EvaluateChunk sums a contiguous range of series terms (the
//     ChunkEvaluator).
//   - SumSeries computes one full sub-series S_j(d) by dispatching chunks
//     onto a Dispatcher and folding the partial results mod 1.
//   - CombineSeries and HexDigits turn the four series values into the
//     rendered digit window (the DigitExtractor).
//
// Two Dispatcher substrates are provided: a CPU worker pool and a
// SIMT-style lane grid. Both run the identical per-term code; only the
// dispatch and reduction layer differs.
//
// All state is native float64. The arithmetic is exact while intermediates
// stay below 2^53, which holds for positions up to MaxAccuratePosition;
// beyond that, accuracy degrades silently rather than raising an error.
// Changing the worker count or chunk size may flip the least significant
// digit(s) of the window due to floating-point rounding order; for a fixed
// partition and fold order the result is bit-identical across runs.
package bbp
