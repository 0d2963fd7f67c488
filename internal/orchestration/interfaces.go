package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/bbpcalc/internal/progress"
)

// ExtractionResult encapsulates the outcome of a single digit extraction.
// It is the shared domain type between orchestration and presentation.
type ExtractionResult struct {
	// Name is the identifier of the engine used.
	Name string
	// Digits is the rendered hexadecimal digit window. Empty on error.
	Digits string
	// Duration is the time taken to complete the extraction.
	Duration time.Duration
	// Err contains any error that occurred during the extraction.
	Err error
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	Position uint64
	Verbose  bool
}

// ProgressReporter defines the interface for displaying extraction progress.
// It decouples the orchestration layer from the presentation layer: the
// orchestrator coordinates engines, implementations render spinners or bars.
type ProgressReporter interface {
	// DisplayProgress consumes updates until progressChan is closed, then
	// signals wg. It should run in its own goroutine.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numEngines int, out io.Writer)
}

// NullProgressReporter drains the progress channel without displaying
// anything. Used in quiet mode and tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
	}
}

// ResultPresenter defines the interface for presenting extraction results,
// so output formats can vary without touching the orchestration logic.
type ResultPresenter interface {
	// PresentComparisonTable displays the engine comparison summary.
	PresentComparisonTable(results []ExtractionResult, out io.Writer)

	// PresentResult displays the final digit window.
	PresentResult(result ExtractionResult, opts PresentationOptions, out io.Writer)

	// HandleError reports an extraction error and returns an exit code.
	HandleError(err error, duration time.Duration, out io.Writer) int
}
