package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"marquee/internal/present"
)

// Rating thresholds for badge coloring.
const (
	ratingHighFloor = 7.0
	ratingMidFloor  = 4.0
)

// Truncate shortens a string to max runes, ending with an ellipsis.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}

// RatingBadge renders a colored star rating.
func RatingBadge(s Styles, rating float64) string {
	color := RatingLow
	switch {
	case rating >= ratingHighFloor:
		color = RatingHigh
	case rating >= ratingMidFloor:
		color = RatingMid
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(fmt.Sprintf("★ %.1f", rating))
}

// RenderCard renders one movie card at the fixed card width.
func RenderCard(s Styles, c present.Card, selected bool) string {
	innerWidth := CardContentWidth()

	title := s.CardTitle.Render(Truncate(c.Title, innerWidth))
	meta := s.CardMeta.Render(c.ReleaseDate) + "  " + RatingBadge(s, c.Rating)
	overview := s.CardOverview.
		Width(innerWidth).
		MaxHeight(OverviewLines).
		Render(c.Overview)

	content := lipgloss.JoinVertical(lipgloss.Left, title, meta, "", overview)

	style := s.Card
	if selected {
		style = s.CardSelected
	}
	return style.
		Width(CardWidth - CardBorderWidth).
		Height(OverviewLines + 3).
		Render(content)
}

// RenderGrid lays cards out in rows, highlighting the cursor position.
// The cache may be nil, in which case every card is rendered fresh.
func RenderGrid(s Styles, cards []present.Card, cursor int, totalWidth int, cache *CardCache) string {
	if len(cards) == 0 {
		return ""
	}

	cols := ColumnsForWidth(totalWidth)
	rows := make([]string, 0, GridRows(len(cards), cols))

	for start := 0; start < len(cards); start += cols {
		end := start + cols
		if end > len(cards) {
			end = len(cards)
		}
		cells := make([]string, 0, cols)
		for i := start; i < end; i++ {
			card := cards[i]
			selected := i == cursor
			key := CardKey{ID: card.ID, Selected: selected, Dark: s.Theme.IsDark, Width: totalWidth}
			cell := cache.GetOrCompute(key, func() string {
				return RenderCard(s, card, selected)
			})
			cells = append(cells, cell)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
