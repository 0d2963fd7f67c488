// Package app wires configuration, engines, metrics, and presentation into
// the runnable application.
package app

import (
	"context"
	"errors"
	"flag"
	"io"

	"github.com/rs/zerolog"

	"github.com/agbru/bbpcalc/internal/bbp"
	"github.com/agbru/bbpcalc/internal/config"
	apperrors "github.com/agbru/bbpcalc/internal/errors"
	"github.com/agbru/bbpcalc/internal/logging"
	"github.com/agbru/bbpcalc/internal/metrics"
	"github.com/agbru/bbpcalc/internal/server"
	"github.com/agbru/bbpcalc/internal/tui"
	"github.com/agbru/bbpcalc/internal/ui"
)

const programName = "bbpcalc"

// Application bundles the parsed configuration with the services needed to
// run an extraction.
type Application struct {
	Config    config.AppConfig
	Factory   bbp.ExtractorFactory
	ErrWriter io.Writer

	logger  logging.Logger
	metrics *metrics.Metrics
}

// AppOption customizes the Application during construction.
type AppOption func(*Application)

// WithFactory substitutes the engine factory, for tests.
func WithFactory(f bbp.ExtractorFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// New parses args into a ready-to-run Application. A returned error may be
// flag.ErrHelp; callers should treat that as a successful exit.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	a := &Application{
		Factory:   bbp.NewDefaultFactory(),
		ErrWriter: errWriter,
	}
	for _, opt := range opts {
		opt(a)
	}

	cfg, err := config.ParseConfig(programName, args, errWriter, a.Factory.List())
	if err != nil {
		return nil, err
	}
	a.Config = cfg
	return a, nil
}

// IsHelpError reports whether err is the flag package's help pseudo-error.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// Run executes the application and returns its exit code. out receives the
// user-facing output; logs go to stderr.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	switch {
	case a.Config.Quiet:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
		a.logger = logging.NewNopLogger()
	case a.Config.Verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		a.logger = logging.NewDefaultLogger()
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		a.logger = logging.NewDefaultLogger()
	}

	ui.InitTheme(a.Config.NoColor)
	a.metrics = metrics.New()

	if a.Config.MetricsAddr != "" {
		srv := server.New(a.Config.MetricsAddr, a.metrics, a.logger)
		go func() {
			if err := srv.Start(); err != nil {
				a.logger.Error("metrics server failed", logging.Err(err))
			}
		}()
		defer srv.Shutdown()
	}

	if a.Config.TUI {
		return tui.Run(ctx, a.Factory, a.Config, Version, out)
	}

	return a.runExtraction(ctx, out)
}

// ExitCodeForError maps a construction error to an exit code, letting main
// stay a thin shell. Help requests are successful exits.
func ExitCodeForError(err error) int {
	if err == nil {
		return apperrors.ExitSuccess
	}
	if IsHelpError(err) {
		return apperrors.ExitSuccess
	}
	return apperrors.ExitErrorConfig
}
