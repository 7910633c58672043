// Package tmdb is a minimal client for the TMDB v3 API covering the two
// listing endpoints marquee needs: movie discovery and title search.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the production TMDB v3 API root.
const DefaultBaseURL = "https://api.themoviedb.org/3"

// ErrNotConfigured is returned when a request is attempted without an API key.
var ErrNotConfigured = errors.New("tmdb: api key not configured")

// Client talks to the TMDB API. The zero value is not usable; construct with
// NewClient.
type Client struct {
	apiKey   string
	language string
	baseURL  string
	httpc    *http.Client
	logger   *log.Logger
}

// Options configures optional Client behavior. Zero values select defaults.
type Options struct {
	// BaseURL overrides the API root, mainly for tests.
	BaseURL string
	// Language is a BCP 47 tag sent with every request. It is normalized
	// the way TMDB expects ("pt-br" becomes "pt-BR", bare "en" becomes
	// "en-US").
	Language string
	// HTTPClient overrides the default client (15 second timeout).
	HTTPClient *http.Client
	// Logger receives one line per request. Nil disables request logging.
	Logger *log.Logger
}

// NewClient returns a TMDB client for the given API key.
func NewClient(apiKey string, opts Options) *Client {
	httpc := opts.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	baseURL := strings.TrimSuffix(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:   strings.TrimSpace(apiKey),
		language: normalizeLanguage(opts.Language),
		baseURL:  baseURL,
		httpc:    httpc,
		logger:   opts.Logger,
	}
}

// IsConfigured reports whether the client has an API key.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// DiscoverMovies fetches one page of the discovery listing. sortBy is a TMDB
// sort_by value such as "primary_release_date.desc"; empty leaves the server
// default order.
func (c *Client) DiscoverMovies(ctx context.Context, page int, sortBy string) (Page, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(clampPage(page)))
	if sortBy != "" {
		q.Set("sort_by", sortBy)
	}
	var p Page
	if err := c.doGET(ctx, "/discover/movie", q, &p); err != nil {
		return Page{}, err
	}
	return p, nil
}

// SearchMovies fetches one page of title-search results for query. The query
// is sent URL-escaped via the encoded query string.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (Page, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("page", strconv.Itoa(clampPage(page)))
	var p Page
	if err := c.doGET(ctx, "/search/movie", q, &p); err != nil {
		return Page{}, err
	}
	return p, nil
}

func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func (c *Client) doGET(ctx context.Context, path string, q url.Values, v any) error {
	if c.apiKey == "" {
		return ErrNotConfigured
	}
	if q == nil {
		q = url.Values{}
	}
	q.Set("api_key", c.apiKey)
	if c.language != "" {
		q.Set("language", c.language)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	// The key travels in the query string, so log the path only.
	if c.logger != nil {
		c.logger.Printf("GET %s page=%s query=%q", path, q.Get("page"), q.Get("query"))
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb get %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("tmdb get %s failed: %s: %s", path, resp.Status, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// normalizeLanguage canonicalizes a language tag to the lang-REGION form TMDB
// serves: lowercase language, uppercase region, "-" separator, with "en-US"
// for empty input and "US" filled in for bare two-letter codes.
func normalizeLanguage(lang string) string {
	lang = strings.TrimSpace(strings.ReplaceAll(lang, "_", "-"))
	if lang == "" {
		return "en-US"
	}
	parts := strings.SplitN(lang, "-", 2)
	code := strings.ToLower(parts[0])
	region := "US"
	if len(parts) == 2 && parts[1] != "" {
		region = strings.ToUpper(parts[1])
	}
	return code + "-" + region
}

// Movie is one record from a listing response. TMDB omits or zeroes fields it
// has no data for; empty strings and a zero vote average mean absent.
type Movie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	PosterPath  string  `json:"poster_path"`
	Overview    string  `json:"overview"`
}

// Page is the envelope both listing endpoints return.
type Page struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}
