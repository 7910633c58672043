package tmdb

import "strings"

// imageBaseURL is the static image host serving poster assets.
const imageBaseURL = "https://image.tmdb.org/t/p/"

// DefaultPosterSize is a TMDB poster size wide enough for a detail view
// without pulling the original asset.
const DefaultPosterSize = "w342"

// ImageURL builds the full image host URL for a TMDB-relative asset path.
// An empty or blank path returns "".
func ImageURL(path, size string) string {
	if strings.TrimSpace(path) == "" {
		return ""
	}
	if size == "" {
		size = DefaultPosterSize
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return imageBaseURL + size + path
}
