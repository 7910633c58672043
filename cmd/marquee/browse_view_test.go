package main

import (
	"errors"
	"strings"
	"testing"

	"marquee/internal/tmdb"
)

func TestViewBeforeFirstWindowSize(t *testing.T) {
	m, _ := newTestModel(t)
	m.ready = false
	if got := m.View(); got != "Initializing..." {
		t.Fatalf("unexpected view: %q", got)
	}
}

func TestViewLoadingDiscover(t *testing.T) {
	m, _ := newTestModel(t)
	m.Init()

	view := m.View()
	if !strings.Contains(view, "Loading page 1") {
		t.Fatalf("expected discovery loading notice, got:\n%s", view)
	}
	if !strings.Contains(view, "Discover") {
		t.Fatalf("expected discover context in header, got:\n%s", view)
	}
}

func TestViewLoadingSearch(t *testing.T) {
	m, _ := newTestModel(t)
	m.Init()
	m.textinput.SetValue("matrix")
	m = asBrowse(t, first(m.handleSubmit()))

	view := m.View()
	if !strings.Contains(view, `Searching "matrix"`) {
		t.Fatalf("expected search loading notice, got:\n%s", view)
	}
}

func TestViewConfigError(t *testing.T) {
	m, _ := newTestModel(t)
	m.configErr = errors.New("TMDB API key not configured")
	m.isLoading = false

	view := m.View()
	if !strings.Contains(view, "Configuration error") {
		t.Fatalf("expected config error notice, got:\n%s", view)
	}
	if !strings.Contains(view, "disabled") {
		t.Fatalf("expected terminal-state hint, got:\n%s", view)
	}
}

func TestViewRequestError(t *testing.T) {
	m, _ := newTestModel(t)
	m.Init()
	m = asBrowse(t, first(m.Update(fetchFailedMsg{generation: 1, err: errors.New("request timeout")})))

	view := m.View()
	if !strings.Contains(view, "Request failed") {
		t.Fatalf("expected request error notice, got:\n%s", view)
	}
	if !strings.Contains(view, "retry") {
		t.Fatalf("expected retry hint, got:\n%s", view)
	}
}

func TestViewNoResults(t *testing.T) {
	m, _ := newTestModel(t)
	m.Init()
	m.submittedQuery = "zzzz"
	m = asBrowse(t, first(m.Update(resultsMsg{generation: 1, page: moviePage(0)})))

	view := m.View()
	if !strings.Contains(view, `No results for "zzzz"`) {
		t.Fatalf("expected empty-state notice, got:\n%s", view)
	}
	if strings.Contains(view, "Loading") {
		t.Fatalf("empty state must be distinct from loading, got:\n%s", view)
	}
}

func TestViewGrid(t *testing.T) {
	m, _ := newTestModel(t)
	m.Init()
	page := moviePage(5,
		tmdb.Movie{ID: 1, Title: "Alpha", ReleaseDate: "2020-01-01", VoteAverage: 7.5},
		tmdb.Movie{ID: 2, Title: "Beta", ReleaseDate: "2021-06-15", VoteAverage: 3.1},
	)
	m = asBrowse(t, first(m.Update(resultsMsg{generation: 1, page: page})))

	view := m.View()
	if !strings.Contains(view, "Alpha") || !strings.Contains(view, "Beta") {
		t.Fatalf("expected both titles in the grid, got:\n%s", view)
	}
	if !strings.Contains(view, "Page 1/5") {
		t.Fatalf("expected page position in status bar, got:\n%s", view)
	}
	if !strings.Contains(view, "sort: none") {
		t.Fatalf("expected sort key in status bar, got:\n%s", view)
	}
}

func TestViewFallbacksShown(t *testing.T) {
	m, _ := newTestModel(t)
	m.Init()
	page := moviePage(1, tmdb.Movie{ID: 7})
	m = asBrowse(t, first(m.Update(resultsMsg{generation: 1, page: page})))

	view := m.View()
	if !strings.Contains(view, "Untitled") {
		t.Fatalf("expected title fallback, got:\n%s", view)
	}
	if !strings.Contains(view, "Unknown") {
		t.Fatalf("expected date fallback, got:\n%s", view)
	}
}

func TestViewDetailOverlay(t *testing.T) {
	m, _ := newTestModel(t)
	m.Init()
	page := moviePage(1, tmdb.Movie{ID: 1, Title: "Alpha", ReleaseDate: "2020-01-01", VoteAverage: 7.5, Overview: "A test movie."})
	m = asBrowse(t, first(m.Update(resultsMsg{generation: 1, page: page})))
	m = asBrowse(t, first(m.openDetail()))

	if !m.showDetail {
		t.Fatal("openDetail should show the overlay")
	}
	view := m.View()
	if !strings.Contains(view, "Esc: close") {
		t.Fatalf("expected overlay hint, got:\n%s", view)
	}
}

func TestRenderFooterFollowsFocus(t *testing.T) {
	m, _ := newTestModel(t)

	m.focus = focusSearch
	if !strings.Contains(m.renderFooter(), "Enter: search") {
		t.Fatal("expected search help in footer")
	}
	m.focus = focusGrid
	if !strings.Contains(m.renderFooter(), "s: sort") {
		t.Fatal("expected grid help in footer")
	}
}
