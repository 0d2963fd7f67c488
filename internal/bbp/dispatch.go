package bbp

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	apperrors "github.com/agbru/bbpcalc/internal/errors"
)

// EvalFunc evaluates one chunk and returns its fractional partial result.
// Implementations must be pure: no shared mutable state beyond read-only
// inputs, so that any number of evaluations can run concurrently.
type EvalFunc func(Chunk) float64

// InstrumentFunc observes one completed dispatch round: the number of lanes
// that ran and the total number of series terms they evaluated. Used to feed
// the Prometheus counters without coupling the core to the metrics package.
type InstrumentFunc func(lanes int, terms uint64)

// Dispatcher abstracts the parallel-execution substrate: "run N independent
// chunk computations, write each result into an N-length buffer, block until
// all have completed". The summation layer only depends on this contract,
// so the per-term math is written once and executed by either substrate.
type Dispatcher interface {
	// Width returns the number of chunks dispatched per round, i.e. how
	// many parallel lanes one Dispatch call fills.
	Width() int

	// ChunkSize returns the number of series terms assigned to each lane.
	// Always at least 1.
	ChunkSize() uint64

	// Dispatch evaluates every chunk concurrently and returns the partial
	// results indexed like chunks. Each result is owned exclusively by the
	// lane that produced it until Dispatch returns.
	Dispatch(ctx context.Context, chunks []Chunk, eval EvalFunc) ([]float64, error)
}

// ─────────────────────────────────────────────────────────────────────────────
// Pool dispatcher (CPU worker pool)
// ─────────────────────────────────────────────────────────────────────────────

// PoolDispatcher runs chunks on a bounded pool of goroutine workers, one per
// lane. This is the CPU substrate: few heavy workers, large chunks.
type PoolDispatcher struct {
	workers   int
	chunkSize uint64

	// Instrument, when non-nil, is called once per completed dispatch round.
	Instrument InstrumentFunc
}

// NewPoolDispatcher creates a pool dispatcher with the given worker count and
// chunk size. A worker count <= 0 defaults to runtime.NumCPU(). A chunk size
// of zero is clamped to 1 so a dispatch round always makes progress.
func NewPoolDispatcher(workers int, chunkSize uint64) *PoolDispatcher {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if chunkSize < 1 {
		chunkSize = 1
	}
	return &PoolDispatcher{workers: workers, chunkSize: chunkSize}
}

// Width returns the worker count.
func (p *PoolDispatcher) Width() int { return p.workers }

// ChunkSize returns the per-worker term count.
func (p *PoolDispatcher) ChunkSize() uint64 { return p.chunkSize }

// Dispatch runs every chunk on its own worker goroutine and blocks until all
// have completed. Each worker writes only its own slot of the result buffer.
func (p *PoolDispatcher) Dispatch(ctx context.Context, chunks []Chunk, eval EvalFunc) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]float64, len(chunks))
	g, _ := errgroup.WithContext(ctx)
	for i, c := range chunks {
		g.Go(func() error {
			results[i] = eval(c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperrors.ResourceError{Workers: p.workers, BufferBytes: uint64(len(chunks)) * 8, Cause: err}
	}

	if p.Instrument != nil {
		p.Instrument(len(chunks), uint64(len(chunks))*p.chunkSize)
	}
	return results, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Grid dispatcher (SIMT-style lane grid)
// ─────────────────────────────────────────────────────────────────────────────

// GridDispatcher runs chunks on a two-dimensional grid of lightweight lanes
// (blocks × lanes per block), mirroring a GPU kernel launch: many small
// lanes, small chunks, a flat result buffer written by lane index. Lane
// occupancy is capped at the host's logical CPU count with a weighted
// semaphore so thousands of lanes do not thrash the scheduler.
type GridDispatcher struct {
	blocks        int
	lanesPerBlock int
	chunkSize     uint64
	occupancy     *semaphore.Weighted

	// Instrument, when non-nil, is called once per completed launch.
	Instrument InstrumentFunc
}

// NewGridDispatcher creates a grid dispatcher with the given geometry.
// Non-positive dimensions fall back to the defaults (80 blocks × 60 lanes);
// a chunk size of zero is clamped to 1.
func NewGridDispatcher(blocks, lanesPerBlock int, chunkSize uint64) *GridDispatcher {
	if blocks <= 0 {
		blocks = DefaultGridBlocks
	}
	if lanesPerBlock <= 0 {
		lanesPerBlock = DefaultGridLanes
	}
	if chunkSize < 1 {
		chunkSize = 1
	}
	return &GridDispatcher{
		blocks:        blocks,
		lanesPerBlock: lanesPerBlock,
		chunkSize:     chunkSize,
		occupancy:     semaphore.NewWeighted(int64(runtime.NumCPU())),
	}
}

// Width returns the flat lane count, blocks × lanes per block.
func (gr *GridDispatcher) Width() int { return gr.blocks * gr.lanesPerBlock }

// ChunkSize returns the per-lane term count.
func (gr *GridDispatcher) ChunkSize() uint64 { return gr.chunkSize }

// Launch is the kernel-launch primitive: execute n independent lane
// computations, each given its flat lane index, write the results into the
// provided buffer of length n, and block until all lanes have completed.
func (gr *GridDispatcher) Launch(ctx context.Context, n int, kernel func(lane int) float64, out []float64) error {
	if len(out) < n {
		return apperrors.ResourceError{Workers: n, BufferBytes: uint64(n) * 8,
			Cause: apperrors.NewConfigError("result buffer too small: %d < %d", len(out), n)}
	}

	g, gctx := errgroup.WithContext(ctx)
	for lane := 0; lane < n; lane++ {
		g.Go(func() error {
			if err := gr.occupancy.Acquire(gctx, 1); err != nil {
				return err
			}
			defer gr.occupancy.Release(1)
			out[lane] = kernel(lane)
			return nil
		})
	}
	return g.Wait()
}

// Dispatch maps each chunk onto one grid lane and launches the full grid.
// The lane index selects the chunk, exactly as a GPU lane derives its k₀
// offset from its thread index.
func (gr *GridDispatcher) Dispatch(ctx context.Context, chunks []Chunk, eval EvalFunc) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]float64, len(chunks))
	err := gr.Launch(ctx, len(chunks), func(lane int) float64 {
		return eval(chunks[lane])
	}, results)
	if err != nil {
		if apperrors.IsContextError(err) {
			return nil, err
		}
		return nil, apperrors.ResourceError{Workers: gr.Width(), BufferBytes: uint64(len(chunks)) * 8, Cause: err}
	}

	if gr.Instrument != nil {
		gr.Instrument(len(chunks), uint64(len(chunks))*gr.chunkSize)
	}
	return results, nil
}
