package cli

import (
	"fmt"
	"io"
	"regexp"
	"sync"
	"time"

	apperrors "github.com/agbru/bbpcalc/internal/errors"
	"github.com/agbru/bbpcalc/internal/format"
	"github.com/agbru/bbpcalc/internal/orchestration"
	"github.com/agbru/bbpcalc/internal/progress"
	"github.com/agbru/bbpcalc/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with the
// spinner-backed progress bar.
type CLIProgressReporter struct{}

// DisplayProgress renders the consolidated progress bar.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numEngines int, out io.Writer) {
	DisplayProgress(wg, progressChan, numEngines, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter for terminal
// output.
type CLIResultPresenter struct{}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// visibleLen returns the display width of s, ignoring ANSI escape codes.
func visibleLen(s string) int {
	return len(ansiPattern.ReplaceAllString(s, ""))
}

// padRight pads s with spaces to the given display width, counting only
// visible characters so colored cells stay aligned.
func padRight(s string, width int) string {
	pad := width - visibleLen(s)
	if pad <= 0 {
		return s
	}
	for i := 0; i < pad; i++ {
		s += " "
	}
	return s
}

// PresentComparisonTable renders one row per engine with status, duration,
// and the digit window.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.ExtractionResult, out io.Writer) {
	const (
		colEngine = 28
		colStatus = 18
		colTime   = 14
	)

	fmt.Fprintf(out, "\n--- Engine Comparison ---\n")
	header := padRight("ENGINE", colEngine) + padRight("STATUS", colStatus) + padRight("TIME", colTime) + "DIGITS"
	fmt.Fprintf(out, "%s%s%s\n", ui.ColorBold(), header, ui.ColorReset())

	for _, res := range results {
		status := ui.ColorGreen() + "OK" + ui.ColorReset()
		digits := res.Digits
		if res.Err != nil {
			status = ui.ColorRed() + "FAILED" + ui.ColorReset()
			digits = res.Err.Error()
		}
		row := padRight(res.Name, colEngine) +
			padRight(status, colStatus) +
			padRight(format.FormatExecutionDuration(res.Duration), colTime) +
			digits
		fmt.Fprintln(out, row)
	}
}

// PresentResult displays the final digit window.
func (CLIResultPresenter) PresentResult(result orchestration.ExtractionResult, opts orchestration.PresentationOptions, out io.Writer) {
	DisplayResult(result, opts, out)
}

// HandleError reports the error and maps it to a process exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out)
}

// QuietResultPresenter prints only the digit window, for scripting. Errors
// and status lines go to ErrOut so stdout stays machine-readable.
type QuietResultPresenter struct {
	Out    io.Writer
	ErrOut io.Writer
}

// PresentComparisonTable prints nothing in quiet mode.
func (QuietResultPresenter) PresentComparisonTable([]orchestration.ExtractionResult, io.Writer) {}

// PresentResult prints the digits alone to Out.
func (p QuietResultPresenter) PresentResult(result orchestration.ExtractionResult, _ orchestration.PresentationOptions, _ io.Writer) {
	DisplayQuietResult(result, p.Out)
}

// HandleError reports the error to ErrOut and maps it to an exit code.
func (p QuietResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, p.ErrOut)
}
