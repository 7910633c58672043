package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"marquee/cmd/marquee/ui"
)

// newOverlayRenderer builds the markdown renderer for the detail
// overlay at the given word-wrap width.
func newOverlayRenderer(styles ui.Styles, wrap int) *glamour.TermRenderer {
	if wrap < 20 {
		wrap = 20
	}
	var renderer *glamour.TermRenderer
	if styles.Theme.IsDark {
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		)
	} else {
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithStylePath("light"),
			glamour.WithWordWrap(wrap),
		)
	}
	return renderer
}

// safeRenderMarkdown renders markdown with panic recovery
func (m browseModel) safeRenderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			// If glamour panics, return plain text
			result = content
		}
	}()

	if m.renderer != nil && content != "" {
		rendered, err := m.renderer.Render(content)
		if err == nil {
			return rendered
		}
	}
	return content
}

// setDetailContent fills the overlay viewport for the card under the
// cursor.
func (m *browseModel) setDetailContent() {
	if m.cursor >= len(m.cards) {
		return
	}
	card := m.cards[m.cursor]

	var sb strings.Builder
	sb.WriteString("# " + card.Title + "\n\n")
	sb.WriteString(fmt.Sprintf("**Released:** %s · **Rating:** %.1f\n\n", card.ReleaseDate, card.Rating))
	if card.Overview != "" {
		sb.WriteString(card.Overview + "\n\n")
	} else {
		sb.WriteString("_No overview available._\n\n")
	}
	sb.WriteString("Poster: " + card.PosterURL + "\n")

	m.viewport.SetContent(m.safeRenderMarkdown(sb.String()))
	m.viewport.GotoTop()
}

func (m browseModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := m.renderHeader()
	searchBar := m.renderSearchBar()

	layout := ui.NewLayoutConfig(m.width, m.height)
	bodyHeight := layout.GridHeight()
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	if m.showDetail {
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, m.renderDetailOverlay())
	} else {
		body = m.renderBody()
	}

	statusBar := m.renderStatusBar()
	footer := m.renderFooter()

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		searchBar,
		body,
		statusBar,
		footer,
	)
}

func (m browseModel) renderHeader() string {
	title := m.styles.Header.Render(" 🎬 marquee ")

	var status string
	switch {
	case m.isLoading:
		status = m.styles.Warning.Render("● Loading")
	case m.configErr != nil || m.fetchErr != nil:
		status = m.styles.Error.Render("● Error")
	default:
		status = m.styles.Success.Render("● Ready")
	}

	var context string
	if m.submittedQuery == "" {
		context = m.styles.Muted.Render(" Discover")
	} else {
		context = m.styles.Muted.Render(fmt.Sprintf(" Results for %q", m.submittedQuery))
	}

	headerLine := lipgloss.JoinHorizontal(
		lipgloss.Center,
		title,
		"  ",
		status,
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		headerLine,
		context,
		m.styles.RenderDivider(m.width),
	)
}

func (m browseModel) renderSearchBar() string {
	borderColor := m.styles.Theme.Border
	if m.focus == focusSearch {
		borderColor = m.styles.Theme.Accent
	}
	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1)

	return inputStyle.Render(m.textinput.View())
}

// renderBody picks exactly one of the mutually exclusive result states:
// configuration error, loading, request error, no results, or the grid.
func (m browseModel) renderBody() string {
	if m.configErr != nil {
		return m.styles.Error.Render("Configuration error: "+m.configErr.Error()) + "\n" +
			m.styles.Muted.Render("Querying is disabled until the key is configured and marquee restarts.")
	}

	if m.isLoading {
		what := fmt.Sprintf("Loading page %d...", m.page)
		if m.submittedQuery != "" {
			what = fmt.Sprintf("Searching %q, page %d...", m.submittedQuery, m.page)
		}
		return m.styles.Spinner.Render(m.spinner.View()) + " " + what
	}

	if m.fetchErr != nil {
		return m.styles.Error.Render("Request failed: "+m.fetchErr.Error()) + "\n" +
			m.styles.Muted.Render("Press Enter to retry.")
	}

	if len(m.cards) == 0 {
		if m.submittedQuery != "" {
			return m.styles.Bold.Render(fmt.Sprintf("No results for %q.", m.submittedQuery)) + "\n" +
				m.styles.Muted.Render("Press / to edit the search.")
		}
		return m.styles.Bold.Render("No movies to show.")
	}

	return ui.RenderGrid(m.styles, m.cards, m.cursor, m.width, m.cache)
}

func (m browseModel) renderDetailOverlay() string {
	if m.cursor >= len(m.cards) {
		return ""
	}
	card := m.cards[m.cursor]
	overlayW, _ := ui.OverlaySize(m.width, m.height)

	title := m.styles.Title.Render(ui.Truncate(card.Title, overlayW-8))
	hint := m.styles.Muted.Render("↑/↓: scroll · Esc: close")

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		m.viewport.View(),
		hint,
	)
	return m.styles.Overlay.Width(overlayW - 4).Render(content)
}

func (m browseModel) renderStatusBar() string {
	var parts []string

	if m.totalPages > 0 {
		parts = append(parts, fmt.Sprintf("Page %d/%d", m.page, m.totalPages))
	} else {
		parts = append(parts, fmt.Sprintf("Page %d", m.page))
	}
	if m.totalResults > 0 {
		parts = append(parts, fmt.Sprintf("%d titles", m.totalResults))
	}
	parts = append(parts, "sort: "+m.sortKey.String())

	return m.styles.StatusBar.Width(m.width).Render(strings.Join(parts, " · "))
}

func (m browseModel) renderFooter() string {
	var help string
	if m.focus == focusSearch {
		help = "Enter: search · Esc: clear · Tab: grid · Ctrl+N/Ctrl+P: page · Ctrl+C: quit"
	} else {
		help = "←↑↓→/hjkl: move · Enter: details · s: sort · n/p: page · /: search · q: quit"
	}
	return m.styles.Footer.Render(help)
}
