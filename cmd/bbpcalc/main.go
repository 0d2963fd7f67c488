// Command bbpcalc computes a window of hexadecimal digits of π at an
// arbitrary position using the Bailey–Borwein–Plouffe formula.
package main

import (
	"context"
	"os"

	"github.com/agbru/bbpcalc/internal/app"
)

func main() {
	args := os.Args[1:]

	if app.HasVersionFlag(args) {
		app.PrintVersion(os.Stdout)
		return
	}

	application, err := app.New(args, os.Stderr)
	if err != nil {
		os.Exit(app.ExitCodeForError(err))
	}

	os.Exit(application.Run(context.Background(), os.Stdout))
}
