package ui

import (
	"strings"
	"testing"
)

func TestResultTable(t *testing.T) {
	table := NewResultTable("Search Results", []string{"Title", "Released", "Rating"})
	table.AddRow("The Matrix", "1999-03-30", "8.2")
	table.AddRow("The Matrix Reloaded", "2003-05-15", "7.0")

	styles := NewStyles(LightTheme())
	view := table.View(styles)

	t.Logf("View:\n%q", view)

	if !strings.Contains(view, "Search Results") {
		t.Error("view missing title")
	}
	if !strings.Contains(view, "The Matrix Reloaded") {
		t.Error("view missing cell content")
	}
	if !strings.Contains(view, "Released") {
		t.Error("view missing header")
	}
}

func TestResultTableEmpty(t *testing.T) {
	table := NewResultTable("Empty", []string{"Col"})
	if got := table.View(NewStyles(LightTheme())); got != "" {
		t.Errorf("expected empty render for a table with no rows, got %q", got)
	}
}

func TestResultTableTruncatesCells(t *testing.T) {
	table := NewResultTable("", []string{"Title"})
	table.AddRow(strings.Repeat("x", maxCellWidth+20))

	if got := table.Rows[0][0]; len([]rune(got)) != maxCellWidth {
		t.Errorf("expected cell clipped to %d runes, got %d", maxCellWidth, len([]rune(got)))
	}
}
