// Package cli renders extraction results, progress, and errors for the
// command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/agbru/bbpcalc/internal/format"
	"github.com/agbru/bbpcalc/internal/orchestration"
	"github.com/agbru/bbpcalc/internal/ui"
)

// DisplayResult prints the digit window with position context and timing.
func DisplayResult(result orchestration.ExtractionResult, opts orchestration.PresentationOptions, out io.Writer) {
	fmt.Fprintf(out, "\n--- Result (%s engine) ---\n", result.Name)
	fmt.Fprintf(out, "Hex digits of π at position %s%d%s: %s%s%s\n",
		ui.ColorBold(), opts.Position, ui.ColorReset(),
		ui.ColorGreen(), result.Digits, ui.ColorReset())
	fmt.Fprintf(out, "Extraction time: %s%s%s\n",
		ui.ColorSecondary(), format.FormatExecutionDuration(result.Duration), ui.ColorReset())
	if opts.Verbose {
		fmt.Fprintf(out, "Fractional position index (zero-based): %d\n", opts.Position-1)
	}
}

// FormatQuietResult returns the machine-readable result line: digits only.
func FormatQuietResult(result orchestration.ExtractionResult) string {
	return result.Digits
}

// DisplayQuietResult prints the digits alone, for scripting.
func DisplayQuietResult(result orchestration.ExtractionResult, out io.Writer) {
	fmt.Fprintln(out, FormatQuietResult(result))
}

// WriteResultToFile saves the digit window to the given path with a short
// provenance header.
func WriteResultToFile(filename string, result orchestration.ExtractionResult, position uint64) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	fmt.Fprintf(f, "# Hexadecimal digits of π\n")
	fmt.Fprintf(f, "# Position: %d (first digit after the point is position 1)\n", position)
	fmt.Fprintf(f, "# Engine: %s\n", result.Name)
	fmt.Fprintf(f, "# Generated: %s\n", time.Now().UTC().Format(time.RFC3339))
	if _, err := fmt.Fprintln(f, result.Digits); err != nil {
		return fmt.Errorf("writing digits: %w", err)
	}
	return nil
}
