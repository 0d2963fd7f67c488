package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/bbpcalc/internal/bbp"
	"github.com/agbru/bbpcalc/internal/cli"
	apperrors "github.com/agbru/bbpcalc/internal/errors"
	"github.com/agbru/bbpcalc/internal/format"
	"github.com/agbru/bbpcalc/internal/logging"
	"github.com/agbru/bbpcalc/internal/metrics"
	"github.com/agbru/bbpcalc/internal/orchestration"
	"github.com/agbru/bbpcalc/internal/sysmon"
)

// capturingPresenter delegates to an inner presenter while remembering the
// final presented result, so the application can save it to a file afterward.
type capturingPresenter struct {
	inner orchestration.ResultPresenter
	best  *orchestration.ExtractionResult
}

func (p *capturingPresenter) PresentComparisonTable(results []orchestration.ExtractionResult, out io.Writer) {
	p.inner.PresentComparisonTable(results, out)
}

func (p *capturingPresenter) PresentResult(result orchestration.ExtractionResult, opts orchestration.PresentationOptions, out io.Writer) {
	p.best = &result
	p.inner.PresentResult(result, opts, out)
}

func (p *capturingPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return p.inner.HandleError(err, duration, out)
}

// runExtraction performs a complete extraction run: signal handling, timeout,
// concurrent engine execution, result analysis, and optional file output.
func (a *Application) runExtraction(ctx context.Context, out io.Writer) int {
	cfg := a.Config

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	extractors := orchestration.GetExtractorsToRun(cfg.Engine, a.Factory)
	if len(extractors) == 0 {
		fmt.Fprintf(a.ErrWriter, "Error: unknown engine %q\n", cfg.Engine)
		return apperrors.ExitErrorConfig
	}
	names := make([]string, len(extractors))
	for i, ex := range extractors {
		names[i] = ex.Name()
	}

	var memBefore metrics.MemorySnapshot
	if cfg.Verbose {
		memBefore = metrics.SnapshotMemory()
		dev := sysmon.DescribeDevice()
		a.logger.Debug("host capabilities",
			logging.String("cpu", dev.Model),
			logging.Int("cores", dev.LogicalCores),
			logging.Uint64("mem_mb", dev.TotalMemMB))
	}

	if !cfg.Quiet {
		cli.PrintExecutionConfig(cli.ExecutionConfig{
			Position:         cfg.Position,
			Digits:           cfg.Digits,
			Workers:          cfg.Workers,
			ChunkSize:        cfg.ChunkSize,
			GridBlocks:       cfg.GridBlocks,
			GridLanes:        cfg.GridLanes,
			GridChunkSize:    cfg.GridChunkSize,
			Timeout:          cfg.Timeout,
			PrecisionWarning: cfg.Position > bbp.MaxAccuratePosition,
		}, out)
		cli.PrintExecutionMode(names, out)
	}

	opts := cfg.ToExtractionOptions()
	opts.Instrument = a.metrics.ObserveDispatch

	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	if cfg.Quiet {
		reporter = orchestration.NullProgressReporter{}
	}

	a.metrics.ExtractionStarted()
	start := time.Now()
	results := orchestration.ExecuteExtractions(ctx, extractors, cfg.Position, opts, reporter, out)
	a.metrics.ExtractionFinished()
	a.metrics.ObserveExtraction(time.Since(start))

	if cfg.Verbose {
		snap := metrics.SnapshotMemory()
		a.logger.Debug("memory after extraction",
			logging.String("heap_alloc", format.FormatBytes(snap.HeapAlloc)),
			logging.String("heap_growth", format.FormatBytes(snap.HeapGrowth(memBefore))),
			logging.String("sys", format.FormatBytes(snap.Sys)),
			logging.Int("gc_cycles", int(snap.NumGC)))
	}

	presOpts := orchestration.PresentationOptions{Position: cfg.Position, Verbose: cfg.Verbose}

	var inner orchestration.ResultPresenter = cli.CLIResultPresenter{}
	analysisOut := out
	if cfg.Quiet {
		// Digits alone go to out; status noise and errors go to stderr.
		inner = cli.QuietResultPresenter{Out: out, ErrOut: a.ErrWriter}
		analysisOut = a.ErrWriter
	}
	presenter := &capturingPresenter{inner: inner}

	code := orchestration.AnalyzeComparisonResults(results, presOpts, presenter, analysisOut)

	if code == apperrors.ExitSuccess && cfg.OutputFile != "" && presenter.best != nil {
		if err := cli.WriteResultToFile(cfg.OutputFile, *presenter.best, cfg.Position); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		if !cfg.Quiet {
			fmt.Fprintf(out, "Result saved to %s\n", cfg.OutputFile)
		}
	}
	return code
}
