// Package ui answers questions about the terminal henchman writes to.
package ui

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTerminal reports whether w writes to a terminal. Only an *os.File can;
// buffers and pipes wrapped in other writers never do.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && f != nil && isTerminal(f.Fd())
}

func isTerminal(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// ShouldUseColor determines if ANSI color codes should be used on stdout.
// Respects NO_COLOR (https://no-color.org/), CLICOLOR, and CLICOLOR_FORCE conventions.
func ShouldUseColor() bool {
	// NO_COLOR takes precedence - any value disables color
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}

	if os.Getenv("CLICOLOR") == "0" {
		return false
	}

	if _, exists := os.LookupEnv("CLICOLOR_FORCE"); exists {
		return true
	}

	return isTerminal(os.Stdout.Fd())
}

// ShouldUseEmoji determines if symbol decorations (✓, ✗, →) should be used.
// Disabled in non-TTY mode to keep output machine-readable.
func ShouldUseEmoji() bool {
	if _, exists := os.LookupEnv("HENCHMAN_NO_EMOJI"); exists {
		return false
	}
	return isTerminal(os.Stdout.Fd())
}
