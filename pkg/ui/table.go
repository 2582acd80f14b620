package ui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cellStyle   = lipgloss.NewStyle().PaddingRight(2)
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

// Table is a simple column-aligned listing with a header row.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Render renders the table in the given format. FormatJSON emits an
// array of objects keyed by lower-cased header names; the other formats
// emit aligned columns, styled when the terminal supports it.
func (t Table) Render(format Format) (string, error) {
	if format == FormatJSON {
		return t.renderJSON()
	}
	return t.renderColumns(format == FormatTerminal), nil
}

func (t Table) renderJSON() (string, error) {
	rows := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		obj := make(map[string]string, len(t.Headers))
		for i, header := range t.Headers {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			obj[strings.ToLower(header)] = value
		}
		rows = append(rows, obj)
	}

	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode table as JSON: %w", err)
	}
	return string(data), nil
}

func (t Table) renderColumns(styled bool) string {
	widths := make([]int, len(t.Headers))
	for i, header := range t.Headers {
		widths[i] = len(header)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var out strings.Builder
	writeRow := func(cells []string, style lipgloss.Style) {
		for i, cell := range cells {
			padded := fmt.Sprintf("%-*s", widths[i], cell)
			if styled {
				padded = style.Render(padded)
			}
			out.WriteString(cellStyle.Render(padded))
		}
		out.WriteString("\n")
	}

	writeRow(t.Headers, headerStyle)
	if len(t.Rows) == 0 {
		empty := "(none)"
		if styled {
			empty = dimStyle.Render(empty)
		}
		out.WriteString(empty)
		out.WriteString("\n")
		return out.String()
	}
	for _, row := range t.Rows {
		writeRow(row, lipgloss.NewStyle())
	}
	return out.String()
}
