// Package ui provides terminal color themes shared by the CLI output paths.
package ui

import (
	"os"
	"sync"
)

// Theme defines a color scheme for CLI output. Each field contains an ANSI
// escape code for the corresponding color category.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Primary is the main accent color for important elements.
	Primary string
	// Secondary is used for less prominent elements.
	Secondary string
	// Success indicates positive outcomes or completed operations.
	Success string
	// Warning is used for caution messages or non-critical issues.
	Warning string
	// Error indicates failures or critical issues.
	Error string
	// Info is used for informational messages.
	Info string
	// Bold is the escape code for bold text.
	Bold string
	// Underline is the escape code for underlined text.
	Underline string
	// Reset clears all formatting.
	Reset string
}

var (
	// DarkTheme is optimized for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",  // Bright blue
		Secondary: "\033[38;5;245m", // Grey
		Success:   "\033[38;5;82m",  // Bright green
		Warning:   "\033[38;5;220m", // Yellow
		Error:     "\033[38;5;196m", // Red
		Info:      "\033[38;5;141m", // Purple
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// PlainTheme disables all coloring, for non-TTY output and NO_COLOR.
	PlainTheme = Theme{Name: "plain"}
)

var (
	mu     sync.RWMutex
	active = DarkTheme
)

// InitTheme selects the active theme. Coloring is disabled when noColor is
// set or the NO_COLOR environment variable is present.
func InitTheme(noColor bool) {
	mu.Lock()
	defer mu.Unlock()
	if noColor || os.Getenv("NO_COLOR") != "" {
		active = PlainTheme
		return
	}
	active = DarkTheme
}

// ActiveTheme returns the currently selected theme.
func ActiveTheme() Theme {
	mu.RLock()
	defer mu.RUnlock()
	return active
}

// Accessors for the active theme's escape codes.

func ColorPrimary() string   { return ActiveTheme().Primary }
func ColorSecondary() string { return ActiveTheme().Secondary }
func ColorGreen() string     { return ActiveTheme().Success }
func ColorYellow() string    { return ActiveTheme().Warning }
func ColorRed() string       { return ActiveTheme().Error }
func ColorInfo() string      { return ActiveTheme().Info }
func ColorBold() string      { return ActiveTheme().Bold }
func ColorUnderline() string { return ActiveTheme().Underline }
func ColorReset() string     { return ActiveTheme().Reset }
