// Package style provides consistent terminal styling for henchman output.
package style

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/steveyegge/henchman/internal/ui"
)

func init() {
	if !ui.ShouldUseColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

var (
	// Success renders completed steps.
	Success = lipgloss.NewStyle().Foreground(lipgloss.Color("76")).Bold(true)

	// Warning renders non-fatal problems.
	Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)

	// Error renders failures.
	Error = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	// Info renders neutral notices.
	Info = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	// Dim renders secondary detail such as command lines.
	Dim = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))

	// Bold renders emphasis.
	Bold = lipgloss.NewStyle().Bold(true)
)

// SuccessPrefix, WarningPrefix, ErrorPrefix and ArrowPrefix are the status
// markers printed before progress lines.
var (
	SuccessPrefix = prefix(Success, "✓", "ok")
	WarningPrefix = prefix(Warning, "⚠", "warning:")
	ErrorPrefix   = prefix(Error, "✗", "error:")
	ArrowPrefix   = prefix(Bold, "→", "->")
)

func prefix(s lipgloss.Style, symbol, plain string) string {
	if ui.ShouldUseEmoji() {
		return s.Render(symbol)
	}
	return s.Render(plain)
}

// SetColorProfile overrides the detected profile. Tests use termenv.Ascii to
// get plain output.
func SetColorProfile(p termenv.Profile) {
	lipgloss.SetColorProfile(p)
}

// PrintWarning writes a warning line to w.
func PrintWarning(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", WarningPrefix, fmt.Sprintf(format, args...))
}

// PrintError writes an error line to w.
func PrintError(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", ErrorPrefix, fmt.Sprintf(format, args...))
}
