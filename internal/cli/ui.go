//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/bbpcalc/internal/format"
	"github.com/agbru/bbpcalc/internal/progress"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts the terminal spinner so DisplayProgress can be tested
// against a mock instead of a live terminal animation.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }
func (rs *realSpinner) Stop()  { rs.s.Stop() }
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

// newSpinner creates the production spinner. Tests replace this variable.
var newSpinner = func(options ...spinner.Option) Spinner {
	// Same interval as ProgressRefreshRate to keep redraws synchronized.
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress renders a consolidated progress bar with ETA for all
// running engines, consuming updates until progressChan is closed.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numEngines int, out io.Writer) {
	defer wg.Done()

	if numEngines <= 0 {
		for range progressChan {
		}
		return
	}

	state := format.NewProgressWithETA(numEngines)
	spin := newSpinner(spinner.WithWriter(out))
	spin.Start()
	defer spin.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	refresh := func(avg float64, eta time.Duration) {
		spin.UpdateSuffix(" " + format.FormatProgressBarWithETA(avg, eta, ProgressBarWidth))
	}

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				refresh(1.0, 0)
				return
			}
			avg, eta := state.UpdateWithETA(update.CalculatorIndex, update.Value)
			refresh(avg, eta)
		case <-ticker.C:
			refresh(state.CalculateAverage(), state.GetETA())
		}
	}
}

// PrintExecutionConfig displays the extraction parameters before a run.
func PrintExecutionConfig(cfg ExecutionConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Extracting %d hex digits of π starting at position %d (timeout %s).\n",
		cfg.Digits, cfg.Position, cfg.Timeout)
	fmt.Fprintf(out, "Workers: %d, chunk size: %d terms; grid: %d×%d lanes × %d terms.\n",
		cfg.Workers, cfg.ChunkSize, cfg.GridBlocks, cfg.GridLanes, cfg.GridChunkSize)
	if cfg.PrecisionWarning {
		fmt.Fprintf(out, "Warning: positions beyond the float64 accuracy ceiling degrade silently.\n")
	}
}

// PrintExecutionMode displays whether one engine or a comparison will run.
func PrintExecutionMode(engineNames []string, out io.Writer) {
	var modeDesc string
	if len(engineNames) > 1 {
		modeDesc = "Parallel comparison of all engines"
	} else {
		modeDesc = fmt.Sprintf("Single extraction with the %s engine", engineNames[0])
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Extraction ---\n")
}

// ExecutionConfig carries the values PrintExecutionConfig reports.
type ExecutionConfig struct {
	Position         uint64
	Digits           int
	Workers          int
	ChunkSize        uint64
	GridBlocks       int
	GridLanes        int
	GridChunkSize    uint64
	Timeout          time.Duration
	PrecisionWarning bool
}
