package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// maxCellWidth keeps one long title from blowing out a whole column.
const maxCellWidth = 48

// ResultTable renders query results as a plain table for the one-shot
// commands, where there is no interactive grid.
type ResultTable struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// NewResultTable creates a table with the given title and headers.
func NewResultTable(title string, headers []string) *ResultTable {
	return &ResultTable{
		Title:   title,
		Headers: headers,
		Rows:    make([][]string, 0),
	}
}

// AddRow appends a row, truncating oversized cells.
func (t *ResultTable) AddRow(row ...string) {
	clipped := make([]string, len(row))
	for i, cell := range row {
		clipped[i] = Truncate(cell, maxCellWidth)
	}
	t.Rows = append(t.Rows, clipped)
}

// View renders the table using the provided styles.
func (t *ResultTable) View(styles Styles) string {
	if len(t.Rows) == 0 {
		return ""
	}

	var sb strings.Builder

	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	// Column widths from the widest cell, padding included.
	colWidths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		colWidths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(colWidths) {
				if w := lipgloss.Width(cell); w > colWidths[i] {
					colWidths[i] = w
				}
			}
		}
	}
	for i := range colWidths {
		colWidths[i] += 2
	}

	headerStyle := styles.Bold.Padding(0, 1)
	rowStyle := styles.Body.Padding(0, 1)
	sepStyle := styles.Muted

	for i, h := range t.Headers {
		sb.WriteString(headerStyle.Width(colWidths[i]).Render(h))
		if i < len(t.Headers)-1 {
			sb.WriteString(sepStyle.Render("|"))
		}
	}
	sb.WriteString("\n")

	totalWidth := len(t.Headers) - 1
	for _, w := range colWidths {
		totalWidth += w
	}
	sb.WriteString(sepStyle.Render(strings.Repeat("-", totalWidth)) + "\n")

	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(colWidths) {
				sb.WriteString(rowStyle.Width(colWidths[i]).Render(cell))
				if i < len(row)-1 {
					sb.WriteString(sepStyle.Render("|"))
				}
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	return sb.String()
}
