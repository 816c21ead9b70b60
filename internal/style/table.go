package style

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Alignment controls how a cell is padded within its column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
)

// Column describes one table column.
type Column struct {
	Name  string
	Width int
	Align Alignment
	Style lipgloss.Style
}

// Table renders fixed-width rows, used by `compose config` to list services.
type Table struct {
	columns   []Column
	rows      [][]string
	headerSep bool
	indent    string
}

// NewTable creates a table with a header separator and two-space indent.
func NewTable(columns ...Column) *Table {
	return &Table{
		columns:   columns,
		headerSep: true,
		indent:    "  ",
	}
}

// SetIndent sets the prefix written before every line.
func (t *Table) SetIndent(indent string) *Table {
	t.indent = indent
	return t
}

// SetHeaderSeparator toggles the rule under the header.
func (t *Table) SetHeaderSeparator(enabled bool) *Table {
	t.headerSep = enabled
	return t
}

// AddRow appends a row. Missing trailing cells are padded with empty strings.
func (t *Table) AddRow(values ...string) *Table {
	row := make([]string, len(t.columns))
	copy(row, values)
	t.rows = append(t.rows, row)
	return t
}

// Render returns the table as text, one line per header/separator/row.
func (t *Table) Render() string {
	if len(t.columns) == 0 {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(t.indent)
	for i, col := range t.columns {
		text := truncate(col.Name, col.Width)
		sb.WriteString(t.pad(Bold.Render(text), text, col.Width, col.Align))
		if i < len(t.columns)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("\n")

	if t.headerSep {
		sb.WriteString(t.indent)
		total := 0
		for i, col := range t.columns {
			total += col.Width
			if i < len(t.columns)-1 {
				total++
			}
		}
		sb.WriteString(Dim.Render(strings.Repeat("─", total)))
		sb.WriteString("\n")
	}

	for _, row := range t.rows {
		sb.WriteString(t.indent)
		for i, col := range t.columns {
			text := truncate(row[i], col.Width)
			sb.WriteString(t.pad(col.Style.Render(text), text, col.Width, col.Align))
			if i < len(t.columns)-1 {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// pad pads styled text to width using the plain text length.
// When plain text is at least width wide the styled text is returned as-is.
func (t *Table) pad(styled, plain string, width int, align Alignment) string {
	n := lipgloss.Width(plain)
	if n >= width {
		return styled
	}
	gap := width - n
	switch align {
	case AlignRight:
		return strings.Repeat(" ", gap) + styled
	case AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + styled + strings.Repeat(" ", gap-left)
	default:
		return styled + strings.Repeat(" ", gap)
	}
}

func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripAnsi(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
