package cli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
	ColorGray   = "\033[90m"
)

// Terminal provides terminal-aware output utilities
type Terminal struct {
	IsTerminal bool
	UseColor   bool
	out        io.Writer
}

// NewTerminal creates a new Terminal instance
func NewTerminal() *Terminal {
	isTerminal := term.IsTerminal(int(os.Stdout.Fd()))
	return &Terminal{
		IsTerminal: isTerminal,
		UseColor:   isTerminal, // Only use color in terminal
		out:        os.Stdout,
	}
}

// Color wraps text in ANSI color codes (terminal only)
func (t *Terminal) Color(color, text string) string {
	if !t.UseColor {
		return text
	}
	return color + text + ColorReset
}

// Printf writes formatted output
func (t *Terminal) Printf(format string, args ...any) {
	fmt.Fprintf(t.out, format, args...)
}

// ScoreColor returns the color for a match score: strong matches are
// green, partial matches yellow, and anything at or below zero red.
func ScoreColor(score int) string {
	switch {
	case score >= 30:
		return ColorGreen
	case score > 0:
		return ColorYellow
	default:
		return ColorRed
	}
}

// CountColor returns the color for an import summary line
func CountColor(kind string, n int) string {
	if n == 0 {
		return ColorGray
	}
	switch kind {
	case "added":
		return ColorGreen
	case "duplicates", "too_far":
		return ColorYellow
	case "skipped", "rejected":
		return ColorRed
	default:
		return ColorCyan
	}
}
