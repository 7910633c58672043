package present

import (
	"strings"

	"marquee/internal/tmdb"
)

// Fallbacks substituted when the server had no data for a field.
const (
	FallbackTitle = "Untitled"
	FallbackDate  = "Unknown"

	// PlaceholderPoster is the image reference used when a record has no
	// poster path. The dimensions match a w342 poster.
	PlaceholderPoster = "https://placehold.co/342x513?text=No+Poster"
)

// Card is the display form of one movie record.
type Card struct {
	ID          int64
	Title       string
	ReleaseDate string
	Rating      float64
	PosterURL   string
	Overview    string
}

// NewCard maps a record to its display card, substituting FallbackTitle,
// FallbackDate and PlaceholderPoster for absent fields. posterSize is a TMDB
// image size ("" selects the default).
func NewCard(m tmdb.Movie, posterSize string) Card {
	title := strings.TrimSpace(m.Title)
	if title == "" {
		title = FallbackTitle
	}
	date := strings.TrimSpace(m.ReleaseDate)
	if date == "" {
		date = FallbackDate
	}
	poster := tmdb.ImageURL(m.PosterPath, posterSize)
	if poster == "" {
		poster = PlaceholderPoster
	}
	return Card{
		ID:          m.ID,
		Title:       title,
		ReleaseDate: date,
		Rating:      m.VoteAverage,
		PosterURL:   poster,
		Overview:    strings.TrimSpace(m.Overview),
	}
}

// Cards arranges the result set by key and maps every record to its card.
func Cards(in []tmdb.Movie, key SortKey, posterSize string) []Card {
	ordered := Arrange(in, key)
	cards := make([]Card, len(ordered))
	for i, m := range ordered {
		cards[i] = NewCard(m, posterSize)
	}
	return cards
}
