// Package tui provides an interactive terminal dashboard for watching an
// extraction run: per-engine progress bars, host CPU/memory gauges, and the
// final engine comparison.
package tui

import (
	"context"
	"fmt"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/bbpcalc/internal/bbp"
	"github.com/agbru/bbpcalc/internal/cli"
	"github.com/agbru/bbpcalc/internal/config"
	apperrors "github.com/agbru/bbpcalc/internal/errors"
	"github.com/agbru/bbpcalc/internal/orchestration"
	appprogress "github.com/agbru/bbpcalc/internal/progress"
)

// teaReporter bridges orchestration progress updates into bubbletea
// messages.
type teaReporter struct {
	program *tea.Program
}

func (r teaReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan appprogress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for update := range progressChan {
		r.program.Send(progressMsg(update))
	}
}

// Run drives the dashboard for one extraction and returns the process exit
// code. The final comparison summary is printed to out after the dashboard
// closes, so it survives the alternate screen.
func Run(ctx context.Context, factory bbp.ExtractorFactory, cfg config.AppConfig, version string, out io.Writer) int {
	extractors := orchestration.GetExtractorsToRun(cfg.Engine, factory)
	if len(extractors) == 0 {
		fmt.Fprintf(out, "Error: unknown engine %q\n", cfg.Engine)
		return apperrors.ExitErrorConfig
	}

	program := tea.NewProgram(newModel(cfg, extractors, version), tea.WithContext(ctx))

	// Quitting the dashboard cancels the extraction through runCtx.
	runCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	var results []orchestration.ExtractionResult
	var runWg sync.WaitGroup
	runWg.Add(1)
	go func() {
		defer runWg.Done()
		results = orchestration.ExecuteExtractions(runCtx, extractors, cfg.Position,
			cfg.ToExtractionOptions(), teaReporter{program}, io.Discard)
		program.Send(resultsMsg(results))
	}()

	_, err := program.Run()
	cancel()
	runWg.Wait()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}

	return orchestration.AnalyzeComparisonResults(results,
		orchestration.PresentationOptions{Position: cfg.Position, Verbose: cfg.Verbose},
		cli.CLIResultPresenter{}, out)
}
