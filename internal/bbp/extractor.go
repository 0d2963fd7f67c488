package bbp

import (
	"context"
	"fmt"
	"sort"

	apperrors "github.com/agbru/bbpcalc/internal/errors"
	"github.com/agbru/bbpcalc/internal/progress"
)

// Options carries the tunable parameters of one extraction.
type Options struct {
	// Digits is the length of the rendered hex digit window.
	Digits int
	// Workers is the pool engine's worker count; <= 0 means NumCPU.
	Workers int
	// ChunkSize is the pool engine's per-worker term count; 0 means default.
	ChunkSize uint64
	// GridBlocks and GridLanes define the grid engine geometry; <= 0 means default.
	GridBlocks int
	GridLanes  int
	// GridChunkSize is the grid engine's per-lane term count; 0 means default.
	GridChunkSize uint64
	// ReduceOrder selects the partial-result fold order.
	ReduceOrder ReduceOrder
	// Instrument, when non-nil, observes completed dispatch rounds.
	Instrument InstrumentFunc
}

// normalized returns opts with zero values replaced by the package defaults.
func (o Options) normalized() Options {
	if o.Digits <= 0 {
		o.Digits = DefaultDigits
	}
	if o.Digits > MaxDigits {
		o.Digits = MaxDigits
	}
	if o.ChunkSize == 0 {
		o.ChunkSize = DefaultChunkSize
	}
	if o.GridChunkSize == 0 {
		o.GridChunkSize = DefaultGridChunkSize
	}
	return o
}

// Extractor computes a window of hexadecimal digits of π starting at a
// 1-based digit position. Implementations differ only in their parallel
// execution substrate; the per-term mathematics is shared.
type Extractor interface {
	// Name returns a human-readable engine identifier.
	Name() string

	// Extract computes the digit window for the given position. Progress
	// updates tagged with idx are sent on progressChan when non-nil; the
	// channel is never closed by the extractor.
	Extract(ctx context.Context, progressChan chan<- progress.ProgressUpdate, idx int, position uint64, opts Options) (string, error)
}

// seriesWeights pairs each BBP sub-series with its combination coefficient.
var seriesWeights = []struct {
	j      SeriesIndex
	weight float64
}{
	{Series1, 4},
	{Series4, -2},
	{Series5, -1},
	{Series6, -1},
}

// extract runs the four series summations on the given dispatcher and
// renders the digit window. position is 1-based; d = position − 1 is the
// 0-based index of the first digit of the window.
//
// The power table is built eagerly for the full exponent range before any
// chunk is dispatched, so workers only ever read it.
func extract(ctx context.Context, disp Dispatcher, progressChan chan<- progress.ProgressUpdate, idx int, position uint64, opts Options) (string, error) {
	if position < 1 {
		return "", apperrors.ValidationError{Field: "position", Message: "must be at least 1"}
	}
	d := position - 1

	tbl := NewPowerTable(float64(d))

	// Total left-portion work across the four series, for progress scaling.
	total := float64(4 * d)

	x := 0.0
	for i, sw := range seriesWeights {
		base := float64(i) * float64(d)
		sj, err := SumSeries(ctx, sw.j, d, tbl, disp, opts.ReduceOrder, func(termsDone uint64) {
			if total > 0 {
				progress.Send(progressChan, idx, (base+float64(termsDone))/total)
			}
		})
		if err != nil {
			return "", apperrors.CalculationError{Cause: err}
		}
		x += sw.weight * sj
	}
	progress.Send(progressChan, idx, 1.0)

	return HexDigits(fracPart(x), opts.Digits), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Engines
// ─────────────────────────────────────────────────────────────────────────────

// PoolExtractor is the CPU-pool engine: few heavy workers, large chunks.
type PoolExtractor struct{}

// Name returns the engine identifier.
func (PoolExtractor) Name() string { return "Worker Pool (CPU threads)" }

// Extract computes the digit window on a worker-pool dispatcher.
func (PoolExtractor) Extract(ctx context.Context, progressChan chan<- progress.ProgressUpdate, idx int, position uint64, opts Options) (string, error) {
	opts = opts.normalized()
	disp := NewPoolDispatcher(opts.Workers, opts.ChunkSize)
	disp.Instrument = opts.Instrument
	return extract(ctx, disp, progressChan, idx, position, opts)
}

// GridExtractor is the lane-grid engine: many lightweight lanes, small
// chunks, modeled on a GPU kernel launch.
type GridExtractor struct{}

// Name returns the engine identifier.
func (GridExtractor) Name() string { return "Lane Grid (SIMT-style)" }

// Extract computes the digit window on a grid dispatcher.
func (GridExtractor) Extract(ctx context.Context, progressChan chan<- progress.ProgressUpdate, idx int, position uint64, opts Options) (string, error) {
	opts = opts.normalized()
	disp := NewGridDispatcher(opts.GridBlocks, opts.GridLanes, opts.GridChunkSize)
	disp.Instrument = opts.Instrument
	return extract(ctx, disp, progressChan, idx, position, opts)
}

// ─────────────────────────────────────────────────────────────────────────────
// Factory
// ─────────────────────────────────────────────────────────────────────────────

// ExtractorFactory resolves engine names to implementations.
type ExtractorFactory interface {
	// Get returns the extractor registered under name.
	Get(name string) (Extractor, error)
	// List returns the sorted registered names.
	List() []string
	// GetAll returns every registered extractor, ordered by List().
	GetAll() []Extractor
}

// defaultFactory is the standard registry of extraction engines.
type defaultFactory struct {
	engines map[string]Extractor
}

// NewDefaultFactory returns a factory with the pool and grid engines
// registered under the names "pool" and "grid".
func NewDefaultFactory() ExtractorFactory {
	return &defaultFactory{engines: map[string]Extractor{
		"pool": PoolExtractor{},
		"grid": GridExtractor{},
	}}
}

// Get returns the extractor registered under name.
func (f *defaultFactory) Get(name string) (Extractor, error) {
	ex, ok := f.engines[name]
	if !ok {
		return nil, fmt.Errorf("unknown engine %q (available: %v)", name, f.List())
	}
	return ex, nil
}

// List returns the sorted registered names.
func (f *defaultFactory) List() []string {
	names := make([]string, 0, len(f.engines))
	for name := range f.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll returns every registered extractor in List() order.
func (f *defaultFactory) GetAll() []Extractor {
	names := f.List()
	all := make([]Extractor, 0, len(names))
	for _, name := range names {
		ex, _ := f.Get(name)
		all = append(all, ex)
	}
	return all
}
