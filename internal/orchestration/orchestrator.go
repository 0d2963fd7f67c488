// Package orchestration coordinates the concurrent execution of one or more
// extraction engines and the analysis of their results.
package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/bbpcalc/internal/bbp"
	apperrors "github.com/agbru/bbpcalc/internal/errors"
	"github.com/agbru/bbpcalc/internal/progress"
)

// ProgressBufferMultiplier sizes the progress channel buffer per engine.
// A larger buffer reduces the likelihood of dropped updates when the UI is
// slow to consume them.
const ProgressBufferMultiplier = 64

// tracerName identifies this package's OpenTelemetry tracer.
const tracerName = "bbpcalc/orchestration"

// GetExtractorsToRun resolves the engine selection to concrete extractors.
// "all" yields every registered engine in sorted-name order.
func GetExtractorsToRun(engine string, factory bbp.ExtractorFactory) []bbp.Extractor {
	if engine == "all" {
		return factory.GetAll()
	}
	if ex, err := factory.Get(engine); err == nil {
		return []bbp.Extractor{ex}
	}
	return nil
}

// ExecuteExtractions runs every extractor concurrently against the same
// digit position, collecting one ExtractionResult per engine. Progress
// updates flow through a buffered channel to the reporter, which runs in its
// own goroutine until all extractions finish.
//
// Each engine gets an OpenTelemetry span; with no SDK installed the tracer
// is a no-op.
func ExecuteExtractions(ctx context.Context, extractors []bbp.Extractor, position uint64, opts bbp.Options, reporter ProgressReporter, out io.Writer) []ExtractionResult {
	tracer := otel.Tracer(tracerName)

	g, gctx := errgroup.WithContext(ctx)
	results := make([]ExtractionResult, len(extractors))
	progressChan := make(chan progress.ProgressUpdate, len(extractors)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(extractors), out)

	for i, ex := range extractors {
		g.Go(func() error {
			spanCtx, span := tracer.Start(gctx, "extract",
				trace.WithAttributes(
					attribute.String("engine", ex.Name()),
					attribute.Int64("position", int64(position)),
				))
			defer span.End()

			startTime := time.Now()
			digits, err := ex.Extract(spanCtx, progressChan, i, position, opts)
			if err != nil {
				span.RecordError(err)
			}
			results[i] = ExtractionResult{
				Name: ex.Name(), Digits: digits, Duration: time.Since(startTime), Err: err,
			}
			return nil
		})
	}

	g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// stablePrefix returns the digit prefix that must agree between engines:
// everything but the last two digits, which may legally differ because the
// engines partition and fold the series differently.
func stablePrefix(digits string) string {
	if len(digits) <= 2 {
		return digits
	}
	return digits[:len(digits)-2]
}

// AnalyzeComparisonResults sorts the results (successes first, fastest
// first), validates that all successful engines agree on the stable digit
// prefix, and renders the summary. Returns the process exit code.
func AnalyzeComparisonResults(results []ExtractionResult, opts PresentationOptions, presenter ResultPresenter, out io.Writer) int {
	sort.Slice(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValid *ExtractionResult
	var firstError error
	successCount := 0
	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
		} else {
			successCount++
			if firstValid == nil {
				firstValid = &results[i]
			}
		}
	}

	presenter.PresentComparisonTable(results, out)

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No engine could complete the extraction.\n")
		return presenter.HandleError(firstError, 0, out)
	}

	for _, res := range results {
		if res.Err == nil && stablePrefix(res.Digits) != stablePrefix(firstValid.Digits) {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! Engines disagree on the digit window beyond rounding: %q vs %q.\n",
				firstValid.Digits, res.Digits)
			return apperrors.ExitErrorMismatch
		}
	}

	if successCount > 1 {
		fmt.Fprintf(out, "\nGlobal Status: Success. All engines agree on the digit window.\n")
	}
	presenter.PresentResult(*firstValid, opts, out)
	return apperrors.ExitSuccess
}
