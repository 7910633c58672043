package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestDiscoverMovies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/discover/movie" {
			t.Errorf("expected path /discover/movie, got %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("api_key") != "test-key" {
			t.Errorf("expected api_key param, got %q", q.Get("api_key"))
		}
		if q.Get("language") != "en-US" {
			t.Errorf("expected language en-US, got %q", q.Get("language"))
		}
		if q.Get("page") != "3" {
			t.Errorf("expected page 3, got %q", q.Get("page"))
		}
		if q.Get("sort_by") != "primary_release_date.desc" {
			t.Errorf("expected sort_by param, got %q", q.Get("sort_by"))
		}
		json.NewEncoder(w).Encode(Page{
			Page:       3,
			Results:    []Movie{{ID: 42, Title: "Test Movie", VoteAverage: 7.5}},
			TotalPages: 10,
		})
	}))
	defer server.Close()

	client := NewClient("test-key", Options{BaseURL: server.URL, HTTPClient: server.Client()})
	page, err := client.DiscoverMovies(context.Background(), 3, "primary_release_date.desc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Page != 3 || page.TotalPages != 10 {
		t.Errorf("unexpected envelope: page=%d total=%d", page.Page, page.TotalPages)
	}
	if len(page.Results) != 1 || page.Results[0].ID != 42 {
		t.Fatalf("unexpected results: %+v", page.Results)
	}
}

func TestDiscoverMoviesNoSortParam(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("sort_by") {
			t.Errorf("sort_by must be omitted for server default order, got %q", r.URL.Query().Get("sort_by"))
		}
		json.NewEncoder(w).Encode(Page{Page: 1})
	}))
	defer server.Close()

	client := NewClient("k", Options{BaseURL: server.URL, HTTPClient: server.Client()})
	if _, err := client.DiscoverMovies(context.Background(), 0, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSearchMoviesEscapesQuery(t *testing.T) {
	const query = "the matrix & friends"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Errorf("expected path /search/movie, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != query {
			t.Errorf("query did not survive escaping: %q", got)
		}
		if !strings.Contains(r.URL.RawQuery, "query=the+matrix+%26+friends") {
			t.Errorf("query not escaped on the wire: %s", r.URL.RawQuery)
		}
		if r.URL.Query().Get("page") != "1" {
			t.Errorf("expected page 1, got %q", r.URL.Query().Get("page"))
		}
		json.NewEncoder(w).Encode(Page{
			Page:       1,
			Results:    []Movie{{ID: 1, Title: "The Matrix"}},
			TotalPages: 1,
		})
	}))
	defer server.Close()

	client := NewClient("k", Options{BaseURL: server.URL, HTTPClient: server.Client()})
	page, err := client.SearchMovies(context.Background(), query, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Results) != 1 || page.Results[0].Title != "The Matrix" {
		t.Fatalf("unexpected results: %+v", page.Results)
	}
}

func TestErrorCarriesStatusAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status_message":"Invalid API key"}`))
	}))
	defer server.Close()

	client := NewClient("bad-key", Options{BaseURL: server.URL, HTTPClient: server.Client()})
	_, err := client.SearchMovies(context.Background(), "x", 1)
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("error should carry the status: %v", err)
	}
	if !strings.Contains(err.Error(), "Invalid API key") {
		t.Errorf("error should carry the response body: %v", err)
	}
}

func TestNotConfigured(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request may be issued without an api key")
	}))
	defer server.Close()

	client := NewClient("", Options{BaseURL: server.URL, HTTPClient: server.Client()})
	if client.IsConfigured() {
		t.Error("empty key must not count as configured")
	}
	_, err := client.DiscoverMovies(context.Background(), 1, "")
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestNormalizeLanguage(t *testing.T) {
	tests := map[string]string{
		"":      "en-US",
		"en":    "en-US",
		"en_US": "en-US",
		"pt-br": "pt-BR",
		"fr-FR": "fr-FR",
		"es":    "es-US",
	}
	for input, expect := range tests {
		if got := normalizeLanguage(input); got != expect {
			t.Fatalf("normalizeLanguage(%q) = %q, want %q", input, got, expect)
		}
	}
}

func TestImageURL(t *testing.T) {
	if got := ImageURL("", DefaultPosterSize); got != "" {
		t.Fatalf("expected empty URL for empty path, got %q", got)
	}
	if got := ImageURL("/poster.png", "w780"); got != "https://image.tmdb.org/t/p/w780/poster.png" {
		t.Fatalf("unexpected image url: %s", got)
	}
	if got := ImageURL("poster.png", ""); got != "https://image.tmdb.org/t/p/w342/poster.png" {
		t.Fatalf("missing slash and size defaults not applied: %s", got)
	}
}
