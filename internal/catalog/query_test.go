package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chakrasapp/chakras-server/internal/domain"
	"github.com/chakrasapp/chakras-server/internal/errors"
)

func readyService(t *testing.T, songs []domain.Song) *Service {
	t.Helper()
	holder := NewHolder()
	holder.Replace(New(songs))
	return NewService(holder)
}

func TestService_BeforeFirstScan(t *testing.T) {
	svc := NewService(NewHolder())

	_, err := svc.PaginateSongs(1, 50)
	assert.ErrorIs(t, err, errors.ErrNotScanned)

	_, err = svc.ListArtists()
	assert.ErrorIs(t, err, errors.ErrNotScanned)

	_, err = svc.Search("anything")
	assert.ErrorIs(t, err, errors.ErrNotScanned)

	_, err = svc.ResolveForStream("song-1")
	assert.ErrorIs(t, err, errors.ErrNotScanned)
}

func TestPaginateSongs_ReconstructsSequence(t *testing.T) {
	var songs []domain.Song
	for i := 0; i < 23; i++ {
		songs = append(songs, domain.Song{
			ID:    fmt.Sprintf("song-%02d", i),
			Title: fmt.Sprintf("t%d", i),
		})
	}
	svc := readyService(t, songs)

	first, err := svc.PaginateSongs(1, 5)
	require.NoError(t, err)
	totalPages := first.Pagination.TotalPages
	assert.Equal(t, 5, totalPages)

	var reassembled []string
	for p := 1; p <= totalPages; p++ {
		page, err := svc.PaginateSongs(p, 5)
		require.NoError(t, err)
		assert.Equal(t, p > 1, page.Pagination.HasPrev, "page %d hasPrev", p)
		assert.Equal(t, p < totalPages, page.Pagination.HasNext, "page %d hasNext", p)
		for _, s := range page.Songs {
			reassembled = append(reassembled, s.ID)
		}
	}

	require.Len(t, reassembled, len(songs))
	for i, id := range reassembled {
		assert.Equal(t, songs[i].ID, id, "position %d", i)
	}
}

func TestPaginateSongs_Defaults(t *testing.T) {
	svc := readyService(t, []domain.Song{{ID: "song-1", Title: "only"}})

	page, err := svc.PaginateSongs(0, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, page.Pagination.CurrentPage)
	assert.Equal(t, 1, page.Pagination.TotalSongs)
	assert.Len(t, page.Songs, 1)
}

func TestPaginateSongs_PastTheEnd(t *testing.T) {
	svc := readyService(t, []domain.Song{{ID: "song-1"}, {ID: "song-2"}})

	page, err := svc.PaginateSongs(10, 50)
	require.NoError(t, err)

	assert.Empty(t, page.Songs)
	assert.False(t, page.Pagination.HasNext)
	assert.True(t, page.Pagination.HasPrev)
}

func TestListArtists_Counts(t *testing.T) {
	svc := readyService(t, testSongs())

	artists, err := svc.ListArtists()
	require.NoError(t, err)
	require.Len(t, artists, 2)

	// Sorted by key: "real artist" < "unknown artist".
	real := artists[0]
	assert.Equal(t, "Real Artist", real.Name)
	assert.Equal(t, 2, real.AlbumCount)
	assert.Equal(t, 2, real.SongCount)
}

func TestListAlbums_FormattedDuration(t *testing.T) {
	svc := readyService(t, testSongs())

	albums, err := svc.ListAlbums()
	require.NoError(t, err)
	require.Len(t, albums, 3)

	byTitle := make(map[string]AlbumSummary)
	for _, a := range albums {
		byTitle[a.Title] = a
	}
	assert.Equal(t, "3:20", byTitle["Album1"].FormattedDuration)
	assert.Equal(t, 1, byTitle["Album1"].SongCount)
}

func TestListGenres_Counts(t *testing.T) {
	svc := readyService(t, testSongs())

	genres, err := svc.ListGenres()
	require.NoError(t, err)

	byName := make(map[string]GenreSummary)
	for _, g := range genres {
		byName[g.Name] = g
	}
	assert.Equal(t, 2, byName["Rock"].SongCount)
	assert.Equal(t, 1, byName["Pop"].SongCount)
}

func TestSongsByArtist_CaseInsensitive(t *testing.T) {
	svc := readyService(t, testSongs())

	songs, err := svc.SongsByArtist("REAL ARTIST")
	require.NoError(t, err)
	assert.Len(t, songs, 2)

	none, err := svc.SongsByArtist("nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSongsByAlbum_ScopedToArtist(t *testing.T) {
	svc := readyService(t, testSongs())

	songs, err := svc.SongsByAlbum("album1", "Real Artist")
	require.NoError(t, err)
	require.Len(t, songs, 1)
	assert.Equal(t, "song-2", songs[0].ID)

	// Right album title, wrong artist: empty, not an error.
	none, err := svc.SongsByAlbum("album1", "Someone Else")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSearch_SubstringAcrossFields(t *testing.T) {
	svc := readyService(t, testSongs())

	tests := []struct {
		query string
		want  int
	}{
		{"song", 2},   // titles Song1, Song2
		{"REAL", 2},   // artist
		{"albumx", 1}, // album
		{"pop", 1},    // genre
		{"zzz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			results, err := svc.Search(tt.query)
			require.NoError(t, err)
			assert.Len(t, results, tt.want)
		})
	}
}

func TestSearch_PreservesCatalogOrder(t *testing.T) {
	svc := readyService(t, testSongs())

	results, err := svc.Search("o") // matches everything via titles/defaults
	require.NoError(t, err)
	require.NotEmpty(t, results)

	for i := 1; i < len(results); i++ {
		assert.Less(t, results[i-1].ID, results[i].ID, "catalog order by construction")
	}
}

func TestResolveForStream(t *testing.T) {
	svc := readyService(t, testSongs())

	song, err := svc.ResolveForStream("song-2")
	require.NoError(t, err)
	assert.Equal(t, "Song1", song.Title)

	_, err = svc.ResolveForStream("song-999")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestHolder_ReplaceIsObservedWhole(t *testing.T) {
	holder := NewHolder()
	svc := NewService(holder)

	holder.Replace(New([]domain.Song{{ID: "song-1", Title: "old"}}))
	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalSongs)

	holder.Replace(New(testSongs()))
	stats, err = svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalSongs)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0:00"},
		{59, "0:59"},
		{60, "1:00"},
		{200, "3:20"},
		{754, "12:34"},
		{-5, "0:00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.seconds))
		})
	}
}
