package bbp

// ─────────────────────────────────────────────────────────────────────────────
// BBP Series Constants
// ─────────────────────────────────────────────────────────────────────────────
//
// The Bailey–Borwein–Plouffe formula expresses π as
//
//	π = Σ_{k≥0} 16^(−k) · (4/(8k+1) − 2/(8k+4) − 1/(8k+5) − 1/(8k+6))
//
// which allows the hexadecimal digits starting at an arbitrary position to be
// computed from the fractional parts of the four series S_j(d), j ∈ {1,4,5,6}.

// SeriesIndex selects one of the four BBP sub-series.
type SeriesIndex uint64

// The four series indices used by the BBP combination.
const (
	Series1 SeriesIndex = 1
	Series4 SeriesIndex = 4
	Series5 SeriesIndex = 5
	Series6 SeriesIndex = 6
)

const (
	// DefaultDigits is the length of the hexadecimal digit window rendered
	// by a single extraction.
	DefaultDigits = 9

	// MaxDigits caps the digit window. Beyond roughly 12 hex digits the
	// float64 accumulator carries no further information.
	MaxDigits = 16

	// DefaultChunkSize is the number of series terms evaluated by one CPU
	// worker per dispatch. Dispatch overhead dominates for small chunks,
	// so each worker gets a substantial contiguous range.
	DefaultChunkSize = 100_000

	// DefaultGridBlocks and DefaultGridLanes define the default grid
	// geometry of the lane-based engine: blocks × lanes flat lane count.
	DefaultGridBlocks = 80
	DefaultGridLanes  = 60

	// DefaultGridChunkSize is the number of terms evaluated by one grid
	// lane per launch. Lanes are far lighter than pool workers, so each
	// lane takes a much smaller range.
	DefaultGridChunkSize = 2_000

	// rightTailEpsilon is the magnitude below which right-portion terms
	// fall under the representable precision of the accumulator and the
	// tail loop stops.
	rightTailEpsilon = 1e-17

	// rightTailBound caps the right-portion tail at d+rightTailBound terms
	// in case the epsilon cutoff is never reached.
	rightTailBound = 100

	// MaxAccuratePosition is the largest 1-based digit position for which
	// the float64 arithmetic is known to deliver a correct digit window.
	// Larger positions silently degrade accuracy; they are not an error.
	MaxAccuratePosition = 10_000_000

	// ctxCheckInterval is the number of sequential terms evaluated between
	// context cancellation checks in the non-parallel paths.
	ctxCheckInterval = 4096
)

// hexAlphabet maps a nibble value 0–15 to its hexadecimal character.
const hexAlphabet = "0123456789ABCDEF"
