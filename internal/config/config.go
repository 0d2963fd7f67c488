// Package config parses command-line flags and environment variables into
// the application configuration. Priority: CLI flags > environment
// variables (BBPCALC_ prefix) > built-in defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/agbru/bbpcalc/internal/bbp"
	apperrors "github.com/agbru/bbpcalc/internal/errors"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "BBPCALC_"

// DefaultPosition is the 1-based digit position extracted when none is
// given. It matches the documented accuracy ceiling of the float64 engine.
const DefaultPosition uint64 = 10_000_000

// DefaultTimeout bounds a single extraction run.
const DefaultTimeout = 10 * time.Minute

// AppConfig holds the complete application configuration.
type AppConfig struct {
	// Position is the 1-based index of the first hex digit to extract.
	Position uint64
	// Digits is the length of the rendered digit window.
	Digits int
	// Engine selects the execution substrate: "pool", "grid", or "all".
	Engine string
	// Workers is the pool engine worker count; 0 means NumCPU.
	Workers int
	// ChunkSize is the pool engine per-worker term count; 0 means adaptive.
	ChunkSize uint64
	// GridBlocks and GridLanes define the grid engine geometry; 0 means default.
	GridBlocks int
	GridLanes  int
	// GridChunkSize is the grid engine per-lane term count; 0 means default.
	GridChunkSize uint64
	// ReduceOrder is the partial-result fold order: "forward" or "backward".
	ReduceOrder string
	// Timeout bounds the whole extraction.
	Timeout time.Duration
	// OutputFile, when set, receives the digit window with a header.
	OutputFile string
	// MetricsAddr, when set, serves Prometheus metrics on that address.
	MetricsAddr string
	// Quiet suppresses everything but the digit window.
	Quiet bool
	// Verbose enables debug logging and extra result details.
	Verbose bool
	// TUI launches the interactive dashboard.
	TUI bool
	// NoColor disables ANSI colors.
	NoColor bool
}

// ToExtractionOptions converts the configuration into engine options.
func (c AppConfig) ToExtractionOptions() bbp.Options {
	order := bbp.ReduceForward
	if c.ReduceOrder == "backward" {
		order = bbp.ReduceBackward
	}
	return bbp.Options{
		Digits:        c.Digits,
		Workers:       c.Workers,
		ChunkSize:     c.ChunkSize,
		GridBlocks:    c.GridBlocks,
		GridLanes:     c.GridLanes,
		GridChunkSize: c.GridChunkSize,
		ReduceOrder:   order,
	}
}

// ParseConfig parses the command line into an AppConfig, applies environment
// overrides for flags left unset, fills adaptive defaults, and validates the
// result. engines lists the valid -engine values besides "all".
func ParseConfig(programName string, args []string, errWriter io.Writer, engines []string) (AppConfig, error) {
	cfg := AppConfig{}
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.Uint64Var(&cfg.Position, "position", DefaultPosition, "1-based hex digit position of π to extract")
	fs.Uint64Var(&cfg.Position, "p", DefaultPosition, "shorthand for -position")
	fs.IntVar(&cfg.Digits, "digits", bbp.DefaultDigits, "length of the digit window")
	fs.StringVar(&cfg.Engine, "engine", "pool", "execution engine: "+strings.Join(engines, ", ")+", or all")
	fs.IntVar(&cfg.Workers, "workers", 0, "pool worker count (0 = all logical CPUs)")
	fs.IntVar(&cfg.Workers, "w", 0, "shorthand for -workers")
	fs.Uint64Var(&cfg.ChunkSize, "chunk-size", 0, "terms per pool worker chunk (0 = adaptive)")
	fs.IntVar(&cfg.GridBlocks, "grid-blocks", 0, "grid engine block count (0 = default)")
	fs.IntVar(&cfg.GridLanes, "grid-lanes", 0, "grid engine lanes per block (0 = default)")
	fs.Uint64Var(&cfg.GridChunkSize, "grid-chunk-size", 0, "terms per grid lane (0 = default)")
	fs.StringVar(&cfg.ReduceOrder, "reduce-order", "forward", "partial-result fold order: forward or backward")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "extraction time limit")
	fs.StringVar(&cfg.OutputFile, "output", "", "save the digit window to a file")
	fs.StringVar(&cfg.OutputFile, "o", "", "shorthand for -output")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "print only the digit window")
	fs.BoolVar(&cfg.Quiet, "q", false, "shorthand for -quiet")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "enable debug logging and extra details")
	fs.BoolVar(&cfg.Verbose, "v", false, "shorthand for -verbose")
	fs.BoolVar(&cfg.TUI, "tui", false, "launch the interactive dashboard")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "disable ANSI colors")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [flags]\n\n", programName)
		fmt.Fprintf(errWriter, "Computes a window of hexadecimal digits of π at an arbitrary position\n")
		fmt.Fprintf(errWriter, "using the Bailey–Borwein–Plouffe digit-extraction formula, without\n")
		fmt.Fprintf(errWriter, "computing any preceding digits.\n\n")
		fmt.Fprintf(errWriter, "Positions up to %d are accurate with the native float64 arithmetic;\n", bbp.MaxAccuratePosition)
		fmt.Fprintf(errWriter, "larger positions degrade silently.\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	applyEnvOverrides(&cfg, fs)
	cfg = applyAdaptiveDefaults(cfg)

	if err := validate(cfg, engines); err != nil {
		fmt.Fprintf(errWriter, "Error: %v\n", err)
		return cfg, err
	}
	return cfg, nil
}

// validate checks the parsed configuration for user errors.
func validate(cfg AppConfig, engines []string) error {
	if cfg.Position < 1 {
		return apperrors.NewConfigError("position must be at least 1")
	}
	if cfg.Digits < 1 || cfg.Digits > bbp.MaxDigits {
		return apperrors.NewConfigError("digits must be between 1 and %d", bbp.MaxDigits)
	}
	if cfg.Workers < 0 {
		return apperrors.NewConfigError("workers must not be negative")
	}
	if cfg.GridBlocks < 0 || cfg.GridLanes < 0 {
		return apperrors.NewConfigError("grid dimensions must not be negative")
	}
	if cfg.ReduceOrder != "forward" && cfg.ReduceOrder != "backward" {
		return apperrors.NewConfigError("reduce-order must be forward or backward, got %q", cfg.ReduceOrder)
	}
	if cfg.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive")
	}
	if cfg.Engine != "all" {
		known := false
		for _, e := range engines {
			if cfg.Engine == e {
				known = true
				break
			}
		}
		if !known {
			return apperrors.NewConfigError("unknown engine %q (available: %s, all)", cfg.Engine, strings.Join(engines, ", "))
		}
	}
	return nil
}

// applyAdaptiveDefaults fills hardware-dependent defaults for values left at
// zero, preserving explicit user choices.
func applyAdaptiveDefaults(cfg AppConfig) AppConfig {
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = EstimateOptimalChunkSize(cfg.Workers)
	}
	return cfg
}

// EstimateOptimalChunkSize provides a heuristic per-worker chunk size.
// Few cores favor larger chunks (fewer dispatch rounds); many cores favor
// somewhat smaller chunks so the final partial rounds waste less work.
func EstimateOptimalChunkSize(workers int) uint64 {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	switch {
	case workers <= 2:
		return 2 * bbp.DefaultChunkSize
	case workers <= 16:
		return bbp.DefaultChunkSize
	default:
		return bbp.DefaultChunkSize / 2
	}
}
