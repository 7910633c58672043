// Package present derives the display view from raw listing results: a
// stable client-side sort over the server-provided order, and the mapping
// from API records to display cards with fallbacks for absent fields.
package present

import (
	"fmt"
	"sort"
	"time"

	"marquee/internal/tmdb"
)

// SortKey selects the client-side ordering of a result set.
type SortKey int

const (
	SortNone SortKey = iota
	SortDateAsc
	SortDateDesc
	SortRatingAsc
	SortRatingDesc
)

var sortKeyNames = [...]string{
	SortNone:       "none",
	SortDateAsc:    "date-asc",
	SortDateDesc:   "date-desc",
	SortRatingAsc:  "rating-asc",
	SortRatingDesc: "rating-desc",
}

func (k SortKey) String() string {
	if k < 0 || int(k) >= len(sortKeyNames) {
		return "none"
	}
	return sortKeyNames[k]
}

// ParseSortKey maps a name ("none", "date-asc", ...) back to its key.
func ParseSortKey(s string) (SortKey, error) {
	for k, name := range sortKeyNames {
		if s == name {
			return SortKey(k), nil
		}
	}
	return SortNone, fmt.Errorf("unknown sort key %q", s)
}

// SortKeys lists all keys in selector cycle order.
func SortKeys() []SortKey {
	return []SortKey{SortNone, SortDateAsc, SortDateDesc, SortRatingAsc, SortRatingDesc}
}

// Next returns the following key in cycle order, wrapping around.
func (k SortKey) Next() SortKey {
	if k >= SortRatingDesc || k < 0 {
		return SortNone
	}
	return k + 1
}

// DiscoverParam maps the key to the TMDB discover sort_by value. SortNone
// maps to "" so the server default order is requested.
func (k SortKey) DiscoverParam() string {
	switch k {
	case SortDateAsc:
		return "primary_release_date.asc"
	case SortDateDesc:
		return "primary_release_date.desc"
	case SortRatingAsc:
		return "vote_average.asc"
	case SortRatingDesc:
		return "vote_average.desc"
	default:
		return ""
	}
}

// Arrange returns a new slice ordered by key. The input is never mutated, and
// records comparing equal keep their server-provided relative order. SortNone
// returns the copy unchanged.
func Arrange(in []tmdb.Movie, key SortKey) []tmdb.Movie {
	out := make([]tmdb.Movie, len(in))
	copy(out, in)

	var compare func(left, right tmdb.Movie) int
	var asc bool
	switch key {
	case SortDateAsc, SortDateDesc:
		compare = func(left, right tmdb.Movie) int {
			return compareTime(releaseTime(left), releaseTime(right))
		}
		asc = key == SortDateAsc
	case SortRatingAsc, SortRatingDesc:
		compare = func(left, right tmdb.Movie) int {
			return compareFloat(left.VoteAverage, right.VoteAverage)
		}
		asc = key == SortRatingAsc
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		cmp := compare(out[i], out[j])
		if asc {
			return cmp < 0
		}
		return cmp > 0
	})
	return out
}

// releaseTime parses the record's release date. The zero time stands in for
// absent or unparsable dates so they order before every real date.
func releaseTime(m tmdb.Movie) time.Time {
	t, err := time.Parse("2006-01-02", m.ReleaseDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

func compareFloat(left, right float64) int {
	switch {
	case left < right:
		return -1
	case left > right:
		return 1
	default:
		return 0
	}
}

func compareTime(left, right time.Time) int {
	switch {
	case left.Before(right):
		return -1
	case left.After(right):
		return 1
	default:
		return 0
	}
}
