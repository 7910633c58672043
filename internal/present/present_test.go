package present

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marquee/internal/tmdb"
)

func ids(movies []tmdb.Movie) []int64 {
	out := make([]int64, len(movies))
	for i, m := range movies {
		out[i] = m.ID
	}
	return out
}

func TestArrangeOrdersByKey(t *testing.T) {
	in := []tmdb.Movie{
		{ID: 1, Title: "A", ReleaseDate: "2020-01-01", VoteAverage: 5},
		{ID: 2, Title: "B", ReleaseDate: "1999-01-01", VoteAverage: 8},
	}

	tests := []struct {
		key  SortKey
		want []int64
	}{
		{SortNone, []int64{1, 2}},
		{SortDateAsc, []int64{2, 1}},
		{SortDateDesc, []int64{1, 2}},
		{SortRatingAsc, []int64{1, 2}},
		{SortRatingDesc, []int64{2, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			got := Arrange(in, tt.key)
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Errorf("order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestArrangeDoesNotMutateInput(t *testing.T) {
	in := []tmdb.Movie{
		{ID: 1, ReleaseDate: "2020-01-01"},
		{ID: 2, ReleaseDate: "1999-01-01"},
		{ID: 3, ReleaseDate: "2010-06-15"},
	}
	before := make([]tmdb.Movie, len(in))
	copy(before, in)

	_ = Arrange(in, SortDateAsc)

	if diff := cmp.Diff(before, in); diff != "" {
		t.Errorf("input mutated (-want +got):\n%s", diff)
	}
}

func TestArrangeIsStable(t *testing.T) {
	// Same rating everywhere: server order must survive.
	in := []tmdb.Movie{
		{ID: 10, VoteAverage: 7},
		{ID: 11, VoteAverage: 7},
		{ID: 12, VoteAverage: 7},
		{ID: 13, VoteAverage: 7},
	}
	got := Arrange(in, SortRatingDesc)
	if diff := cmp.Diff(ids(in), ids(got)); diff != "" {
		t.Errorf("ties must keep server order (-want +got):\n%s", diff)
	}

	// Mixed: equal-rated pairs keep their relative order around others.
	in = []tmdb.Movie{
		{ID: 1, VoteAverage: 5},
		{ID: 2, VoteAverage: 8},
		{ID: 3, VoteAverage: 5},
	}
	got = Arrange(in, SortRatingDesc)
	if diff := cmp.Diff([]int64{2, 1, 3}, ids(got)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestArrangeMissingDates(t *testing.T) {
	in := []tmdb.Movie{
		{ID: 1, ReleaseDate: "2020-01-01"},
		{ID: 2},                     // absent
		{ID: 3, ReleaseDate: "199"}, // unparsable
		{ID: 4, ReleaseDate: "1985-07-03"},
	}

	asc := Arrange(in, SortDateAsc)
	if diff := cmp.Diff([]int64{2, 3, 4, 1}, ids(asc)); diff != "" {
		t.Errorf("missing dates must sort earliest under date-asc (-want +got):\n%s", diff)
	}

	desc := Arrange(in, SortDateDesc)
	if diff := cmp.Diff([]int64{1, 4, 2, 3}, ids(desc)); diff != "" {
		t.Errorf("missing dates must sort last under date-desc (-want +got):\n%s", diff)
	}
}

func TestArrangeMissingRatingSortsAsZero(t *testing.T) {
	in := []tmdb.Movie{
		{ID: 1, VoteAverage: 3.1},
		{ID: 2}, // unrated
		{ID: 3, VoteAverage: 9.9},
	}
	got := Arrange(in, SortRatingAsc)
	if diff := cmp.Diff([]int64{2, 1, 3}, ids(got)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestSortKeyRoundTrip(t *testing.T) {
	for _, k := range SortKeys() {
		parsed, err := ParseSortKey(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
	_, err := ParseSortKey("release-asc")
	assert.Error(t, err)
}

func TestSortKeyCycle(t *testing.T) {
	seen := map[SortKey]bool{}
	k := SortNone
	for range SortKeys() {
		assert.False(t, seen[k], "cycle revisited %s early", k)
		seen[k] = true
		k = k.Next()
	}
	assert.Equal(t, SortNone, k, "cycle must wrap back to none")
}

func TestDiscoverParam(t *testing.T) {
	assert.Equal(t, "", SortNone.DiscoverParam())
	assert.Equal(t, "primary_release_date.asc", SortDateAsc.DiscoverParam())
	assert.Equal(t, "primary_release_date.desc", SortDateDesc.DiscoverParam())
	assert.Equal(t, "vote_average.asc", SortRatingAsc.DiscoverParam())
	assert.Equal(t, "vote_average.desc", SortRatingDesc.DiscoverParam())
}

func TestNewCardFallbacks(t *testing.T) {
	card := NewCard(tmdb.Movie{ID: 7}, "")
	assert.Equal(t, FallbackTitle, card.Title)
	assert.Equal(t, FallbackDate, card.ReleaseDate)
	assert.Equal(t, PlaceholderPoster, card.PosterURL)
	assert.Zero(t, card.Rating)
}

func TestNewCardComplete(t *testing.T) {
	card := NewCard(tmdb.Movie{
		ID:          42,
		Title:       "Night Train",
		ReleaseDate: "2007-11-02",
		VoteAverage: 6.8,
		PosterPath:  "/night.png",
		Overview:    "A night train.",
	}, "w780")
	assert.Equal(t, "Night Train", card.Title)
	assert.Equal(t, "2007-11-02", card.ReleaseDate)
	assert.Equal(t, "https://image.tmdb.org/t/p/w780/night.png", card.PosterURL)
	assert.InDelta(t, 6.8, card.Rating, 0.001)
}

func TestCardsArrangesAndMaps(t *testing.T) {
	in := []tmdb.Movie{
		{ID: 1, Title: "A", ReleaseDate: "2020-01-01", VoteAverage: 5},
		{ID: 2, ReleaseDate: "1999-01-01", VoteAverage: 8},
	}
	cards := Cards(in, SortRatingDesc, "")
	require.Len(t, cards, 2)
	assert.Equal(t, int64(2), cards[0].ID)
	assert.Equal(t, FallbackTitle, cards[0].Title)
	assert.Equal(t, "A", cards[1].Title)
}
