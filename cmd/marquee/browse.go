// Package main provides the marquee CLI entry point.
// This file implements the interactive movie browser using bubbletea.
package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"marquee/cmd/marquee/ui"
	"marquee/internal/config"
	"marquee/internal/logging"
	"marquee/internal/present"
	"marquee/internal/tmdb"
)

// focusArea tracks which part of the screen receives plain key input.
type focusArea int

const (
	focusSearch focusArea = iota
	focusGrid
)

// fetchFunc launches one page fetch and resolves to a resultsMsg or
// fetchFailedMsg carrying the same generation it was launched with.
type fetchFunc func(generation uint64, query string, page int, key present.SortKey) tea.Cmd

// browseModel is the main model for the interactive browser
type browseModel struct {
	// UI Components
	textinput textinput.Model
	spinner   spinner.Model
	viewport  viewport.Model
	styles    ui.Styles
	renderer  *glamour.TermRenderer
	cache     *ui.CardCache

	// Query State
	page           int
	submittedQuery string
	sortKey        present.SortKey

	// Results
	movies       []tmdb.Movie
	cards        []present.Card
	totalPages   int
	totalResults int

	// Fetch Lifecycle
	generation uint64
	isLoading  bool
	fetchErr   error
	configErr  error

	// Navigation
	focus      focusArea
	cursor     int
	showDetail bool

	// Layout
	width  int
	height int
	ready  bool

	// Backend
	cfg   config.Config
	fetch fetchFunc
}

// Messages for tea updates
type (
	resultsMsg struct {
		generation uint64
		page       tmdb.Page
	}
	fetchFailedMsg struct {
		generation uint64
		err        error
	}
)

// initBrowse initializes the interactive browser model
func initBrowse(cfg config.Config) browseModel {
	styles := ui.NewStyles(ui.ThemeFromName(cfg.UI.Theme))

	ti := textinput.New()
	ti.Placeholder = "Search movies... (Enter to submit, Tab for the grid)"
	ti.Focus()
	ti.Prompt = "│ "
	ti.CharLimit = 256
	ti.Width = 60
	ti.PromptStyle = styles.Prompt
	ti.TextStyle = styles.SearchInput

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	vp := viewport.New(60, 20)
	vp.SetContent("")

	renderer := newOverlayRenderer(styles, 80)

	client := tmdb.NewClient(cfg.TMDB.APIKey, tmdb.Options{
		BaseURL:    cfg.TMDB.BaseURL,
		Language:   cfg.TMDB.Language,
		HTTPClient: &http.Client{Timeout: cfg.GetTimeout()},
		Logger:     logging.Std(logging.CategoryTMDB),
	})

	m := browseModel{
		textinput: ti,
		spinner:   sp,
		viewport:  vp,
		styles:    styles,
		renderer:  renderer,
		cache:     ui.NewCardCache(512),
		page:      1,
		sortKey:   present.SortNone,
		focus:     focusSearch,
		cfg:       cfg,
	}
	m.fetch = newFetchFunc(client, cfg.GetTimeout())

	if err := cfg.Validate(); err != nil {
		m.configErr = err
		logging.Config("startup validation failed: %v", err)
		return m
	}

	// The model starts in loading state; Init launches the matching
	// discovery fetch for this generation.
	m.generation = 1
	m.isLoading = true

	return m
}

// newFetchFunc builds the production fetch command against the TMDB
// client. Tests swap in their own fetchFunc.
func newFetchFunc(client *tmdb.Client, timeout time.Duration) fetchFunc {
	return func(generation uint64, query string, page int, key present.SortKey) tea.Cmd {
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			start := time.Now()
			var (
				result tmdb.Page
				err    error
				ev     logging.RequestEvent
			)
			if query == "" {
				ev.Type = logging.RequestDiscover
				ev.SortBy = key.DiscoverParam()
				result, err = client.DiscoverMovies(ctx, page, key.DiscoverParam())
			} else {
				ev.Type = logging.RequestSearch
				ev.Query = query
				result, err = client.SearchMovies(ctx, query, page)
			}

			ev.Page = page
			ev.DurationMs = time.Since(start).Milliseconds()
			if err != nil {
				ev.Success = false
				ev.Error = err.Error()
				logging.LogRequest(ev)
				return fetchFailedMsg{generation: generation, err: err}
			}
			ev.Success = true
			ev.Results = len(result.Results)
			ev.TotalPages = result.TotalPages
			logging.LogRequest(ev)
			return resultsMsg{generation: generation, page: result}
		}
	}
}

func (m browseModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spinner.Tick}
	if m.configErr == nil && m.isLoading {
		cmds = append(cmds, m.fetch(m.generation, m.submittedQuery, m.page, m.sortKey))
	}
	return tea.Batch(cmds...)
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showDetail {
			return m.updateDetail(msg)
		}

		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit

		case tea.KeyEsc:
			if m.focus == focusSearch && (m.textinput.Value() != "" || m.submittedQuery != "") {
				return m.clearSearch()
			}
			return m, tea.Quit

		case tea.KeyTab:
			if m.focus == focusSearch {
				m.focus = focusGrid
				m.textinput.Blur()
			} else {
				m.focus = focusSearch
				m.textinput.Focus()
				return m, textinput.Blink
			}
			return m, nil

		case tea.KeyEnter:
			if m.focus == focusSearch {
				return m.handleSubmit()
			}
			return m.openDetail()

		case tea.KeyCtrlN:
			return m.nextPage()

		case tea.KeyCtrlP:
			return m.prevPage()

		case tea.KeyUp, tea.KeyDown, tea.KeyLeft, tea.KeyRight:
			if m.focus == focusGrid {
				m.moveCursor(msg.Type)
				return m, nil
			}

		case tea.KeyRunes:
			if m.focus == focusGrid {
				switch string(msg.Runes) {
				case "q":
					return m, tea.Quit
				case "/":
					m.focus = focusSearch
					m.textinput.Focus()
					return m, textinput.Blink
				case "s":
					return m.cycleSort()
				case "n":
					return m.nextPage()
				case "p":
					return m.prevPage()
				case "d":
					return m.openDetail()
				case "h":
					m.moveCursor(tea.KeyLeft)
				case "j":
					m.moveCursor(tea.KeyDown)
				case "k":
					m.moveCursor(tea.KeyUp)
				case "l":
					m.moveCursor(tea.KeyRight)
				}
				return m, nil
			}
		}

		if m.focus == focusSearch {
			m.textinput, tiCmd = m.textinput.Update(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.textinput.Width = msg.Width - 8
		m.cache.Clear()

		overlayW, overlayH := ui.OverlaySize(msg.Width, msg.Height)
		m.viewport.Width = overlayW - 6
		m.viewport.Height = overlayH - 8
		m.renderer = newOverlayRenderer(m.styles, overlayW-8)
		if m.showDetail {
			m.setDetailContent()
		}

	case spinner.TickMsg:
		if m.isLoading {
			m.spinner, spCmd = m.spinner.Update(msg)
			return m, spCmd
		}

	case resultsMsg:
		if msg.generation != m.generation {
			logging.UIDebug("dropping superseded results (generation %d, current %d)", msg.generation, m.generation)
			return m, nil
		}
		m.isLoading = false
		m.fetchErr = nil
		m.movies = msg.page.Results
		m.totalPages = msg.page.TotalPages
		m.totalResults = msg.page.TotalResults
		m.cards = present.Cards(m.movies, m.sortKey, m.cfg.UI.PosterSize)
		m.cursor = 0
		m.showDetail = false
		m.cache.Clear()
		logging.UI("results applied: page=%d of %d, %d movies", m.page, m.totalPages, len(m.movies))

	case fetchFailedMsg:
		if msg.generation != m.generation {
			logging.UIDebug("dropping superseded error (generation %d, current %d)", msg.generation, m.generation)
			return m, nil
		}
		m.isLoading = false
		m.fetchErr = msg.err
		logging.UI("fetch failed: %v", msg.err)
	}

	if m.showDetail {
		m.viewport, vpCmd = m.viewport.Update(msg)
	}

	return m, tea.Batch(tiCmd, vpCmd, spCmd)
}

// updateDetail handles keys while the detail overlay is open.
func (m browseModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc, tea.KeyEnter:
		m.showDetail = false
		return m, nil
	}
	if msg.Type == tea.KeyRunes && string(msg.Runes) == "q" {
		m.showDetail = false
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleSubmit commits the search text as the submitted query. The page
// resets to 1 only when the query actually changes; resubmitting the
// same query re-runs the current request, which doubles as the retry
// path after a failure.
func (m browseModel) handleSubmit() (tea.Model, tea.Cmd) {
	if m.configErr != nil {
		return m, nil
	}

	query := strings.TrimSpace(m.textinput.Value())
	if query != m.submittedQuery {
		m.submittedQuery = query
		m.page = 1
	}
	logging.UI("submit query=%q page=%d", m.submittedQuery, m.page)
	return m.startFetch()
}

// clearSearch empties the input and, when a query was active, returns
// to discovery mode on page 1.
func (m browseModel) clearSearch() (tea.Model, tea.Cmd) {
	m.textinput.SetValue("")
	if m.submittedQuery == "" || m.configErr != nil {
		return m, nil
	}
	m.submittedQuery = ""
	m.page = 1
	logging.UI("search cleared, back to discovery")
	return m.startFetch()
}

// startFetch supersedes any in-flight request and launches the fetch
// for the current query state. The display resets so stale cards never
// show next to a new page's loading state.
func (m browseModel) startFetch() (browseModel, tea.Cmd) {
	m.generation++
	m.isLoading = true
	m.movies = nil
	m.cards = nil
	m.cursor = 0
	m.showDetail = false

	return m, tea.Batch(
		m.spinner.Tick,
		m.fetch(m.generation, m.submittedQuery, m.page, m.sortKey),
	)
}

// nextPage advances one page. Disabled while loading and, when the
// server reported a page count, at the last page.
func (m browseModel) nextPage() (tea.Model, tea.Cmd) {
	if m.configErr != nil || m.isLoading {
		return m, nil
	}
	if m.totalPages > 0 && m.page >= m.totalPages {
		return m, nil
	}
	m.page++
	return m.startFetch()
}

// prevPage goes back one page. Disabled at page 1.
func (m browseModel) prevPage() (tea.Model, tea.Cmd) {
	if m.configErr != nil || m.page <= 1 {
		return m, nil
	}
	m.page--
	return m.startFetch()
}

// cycleSort advances to the next sort key and reorders the cards in
// place. No fetch: ordering is presentation state, not query state.
func (m browseModel) cycleSort() (tea.Model, tea.Cmd) {
	m.sortKey = m.sortKey.Next()
	m.cards = present.Cards(m.movies, m.sortKey, m.cfg.UI.PosterSize)
	if m.cursor >= len(m.cards) {
		m.cursor = 0
	}
	logging.UI("sort key now %s", m.sortKey)
	return m, nil
}

// moveCursor shifts the grid cursor by one cell or one row.
func (m *browseModel) moveCursor(key tea.KeyType) {
	if len(m.cards) == 0 {
		return
	}
	cols := ui.ColumnsForWidth(m.width)
	switch key {
	case tea.KeyLeft:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyRight:
		if m.cursor < len(m.cards)-1 {
			m.cursor++
		}
	case tea.KeyUp:
		if m.cursor-cols >= 0 {
			m.cursor -= cols
		}
	case tea.KeyDown:
		if m.cursor+cols <= len(m.cards)-1 {
			m.cursor += cols
		}
	}
}

// openDetail shows the overlay for the card under the cursor.
func (m browseModel) openDetail() (tea.Model, tea.Cmd) {
	if m.cursor >= len(m.cards) {
		return m, nil
	}
	m.showDetail = true
	m.setDetailContent()
	return m, nil
}

// runBrowse starts the interactive browser
func runBrowse(cfg config.Config) error {
	if err := logging.InitRequestLog(); err != nil {
		logging.Config("request log unavailable: %v", err)
	}
	defer logging.CloseRequestLog()

	p := tea.NewProgram(
		initBrowse(cfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
