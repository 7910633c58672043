package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"marquee/cmd/marquee/ui"
	"marquee/internal/logging"
	"marquee/internal/present"
	"marquee/internal/tmdb"
)

// concurrentPageFetches bounds the burst against the API when a page
// range is requested.
const concurrentPageFetches = 4

var (
	startPage int
	pageCount int
	sortFlag  string
)

// searchCmd prints search results without the interactive UI
var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search movies by title and print the results",
	Long: `Runs a title search against TMDB and prints the results as a table.

A page range can be fetched in one run:
  marquee search --pages 3 the matrix`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

// discoverCmd prints the discovery listing without the interactive UI
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "List discovery results without a search term",
	Long: `Fetches the TMDB discovery listing and prints it as a table.

The sort key is sent to the endpoint where supported and applied
client-side across all fetched pages:
  marquee discover --pages 2 --sort rating-desc`,
	RunE: runDiscover,
}

func newTMDBClient() *tmdb.Client {
	return tmdb.NewClient(cfg.TMDB.APIKey, tmdb.Options{
		BaseURL:    cfg.TMDB.BaseURL,
		Language:   cfg.TMDB.Language,
		HTTPClient: &http.Client{Timeout: cfg.GetTimeout()},
		Logger:     logging.Std(logging.CategoryTMDB),
	})
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	query := strings.Join(args, " ")
	key, err := present.ParseSortKey(sortFlag)
	if err != nil {
		return err
	}

	logger.Info("searching",
		zap.String("query", query),
		zap.Int("page", startPage),
		zap.Int("pages", pageCount))

	client := newTMDBClient()
	timer := logging.StartTimer(logging.CategoryTMDB, "search page range")
	movies, totalPages, err := fetchPages(cmd.Context(), startPage, pageCount, func(ctx context.Context, page int) (tmdb.Page, error) {
		return client.SearchMovies(ctx, query, page)
	})
	timer.Stop()
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	logger.Info("search complete", zap.Int("results", len(movies)))
	printMovies(fmt.Sprintf("Results for %q", query), movies, totalPages, key)
	return nil
}

func runDiscover(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	key, err := present.ParseSortKey(sortFlag)
	if err != nil {
		return err
	}

	logger.Info("discovering",
		zap.String("sort", key.String()),
		zap.Int("page", startPage),
		zap.Int("pages", pageCount))

	client := newTMDBClient()
	timer := logging.StartTimer(logging.CategoryTMDB, "discover page range")
	movies, totalPages, err := fetchPages(cmd.Context(), startPage, pageCount, func(ctx context.Context, page int) (tmdb.Page, error) {
		return client.DiscoverMovies(ctx, page, key.DiscoverParam())
	})
	timer.Stop()
	if err != nil {
		return fmt.Errorf("discover failed: %w", err)
	}

	logger.Info("discover complete", zap.Int("results", len(movies)))
	printMovies("Discover", movies, totalPages, key)
	return nil
}

// fetchPages fetches a contiguous page range concurrently. Results come
// back flattened in page order regardless of completion order.
func fetchPages(ctx context.Context, first, count int, fetch func(ctx context.Context, page int) (tmdb.Page, error)) ([]tmdb.Movie, int, error) {
	if first < 1 {
		first = 1
	}
	if count < 1 {
		count = 1
	}

	pages := make([]tmdb.Page, count)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrentPageFetches)
	for i := 0; i < count; i++ {
		g.Go(func() error {
			p, err := fetch(ctx, first+i)
			if err != nil {
				return err
			}
			pages[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	var movies []tmdb.Movie
	totalPages := 0
	for _, p := range pages {
		movies = append(movies, p.Results...)
		if p.TotalPages > totalPages {
			totalPages = p.TotalPages
		}
	}
	return movies, totalPages, nil
}

// printMovies renders the result table with display fallbacks applied.
func printMovies(title string, movies []tmdb.Movie, totalPages int, key present.SortKey) {
	styles := ui.NewStyles(ui.ThemeFromName(cfg.UI.Theme))

	if len(movies) == 0 {
		fmt.Println("No results.")
		return
	}

	cards := present.Cards(movies, key, cfg.UI.PosterSize)
	table := ui.NewResultTable(title, []string{"#", "Title", "Released", "Rating"})
	for i, card := range cards {
		table.AddRow(
			fmt.Sprintf("%d", i+1),
			card.Title,
			card.ReleaseDate,
			fmt.Sprintf("%.1f", card.Rating),
		)
	}
	fmt.Print(table.View(styles))

	if totalPages > 0 {
		fmt.Printf("%d titles shown · %d pages available\n", len(cards), totalPages)
	} else {
		fmt.Printf("%d titles shown\n", len(cards))
	}
}
