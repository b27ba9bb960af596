package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chakrasapp/chakras-server/internal/domain"
	"github.com/chakrasapp/chakras-server/internal/errors"
)

// Default pagination values for song listings.
const (
	DefaultPage     = 1
	DefaultPageSize = 50
)

// Service exposes read operations over the current catalog. All operations
// fail with ErrNotScanned until the first scan has completed; none of them
// mutate catalog state.
type Service struct {
	holder *Holder
}

// NewService creates a query service reading from the given holder.
func NewService(holder *Holder) *Service {
	return &Service{holder: holder}
}

// Pagination describes the page window returned by PaginateSongs.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalSongs  int  `json:"totalSongs"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}

// SongPage is one page of the catalog's song sequence.
type SongPage struct {
	Songs      []domain.Song `json:"songs"`
	Pagination Pagination    `json:"pagination"`
}

// PaginateSongs returns the requested page of songs in catalog order.
// page and size fall back to 1/50 when non-positive; pages past the end
// yield an empty slice, not an error.
func (s *Service) PaginateSongs(page, size int) (*SongPage, error) {
	c, err := s.holder.Current()
	if err != nil {
		return nil, err
	}

	if page <= 0 {
		page = DefaultPage
	}
	if size <= 0 {
		size = DefaultPageSize
	}

	total := len(c.Songs)
	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	songs := make([]domain.Song, end-start)
	copy(songs, c.Songs[start:end])

	totalPages := (total + size - 1) / size

	return &SongPage{
		Songs: songs,
		Pagination: Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalSongs:  total,
			HasNext:     (page-1)*size+size < total,
			HasPrev:     (page-1)*size > 0,
		},
	}, nil
}

// ArtistSummary is an artist group annotated with derived counts.
type ArtistSummary struct {
	*domain.ArtistGroup
	AlbumCount int `json:"albumCount"`
	SongCount  int `json:"songCount"`
}

// ListArtists returns every artist group with album and song counts,
// ordered by grouping key for stable output.
func (s *Service) ListArtists() ([]ArtistSummary, error) {
	c, err := s.holder.Current()
	if err != nil {
		return nil, err
	}

	out := make([]ArtistSummary, 0, len(c.Artists))
	for _, key := range sortedKeys(c.Artists) {
		g := c.Artists[key]
		out = append(out, ArtistSummary{
			ArtistGroup: g,
			AlbumCount:  g.Albums.Len(),
			SongCount:   len(g.Songs),
		})
	}
	return out, nil
}

// AlbumSummary is an album group annotated with a song count and a
// human-readable total duration.
type AlbumSummary struct {
	*domain.AlbumGroup
	SongCount         int    `json:"songCount"`
	FormattedDuration string `json:"formattedDuration"`
}

// ListAlbums returns every album group with counts and formatted duration,
// ordered by grouping key for stable output.
func (s *Service) ListAlbums() ([]AlbumSummary, error) {
	c, err := s.holder.Current()
	if err != nil {
		return nil, err
	}

	out := make([]AlbumSummary, 0, len(c.Albums))
	for _, key := range sortedKeys(c.Albums) {
		g := c.Albums[key]
		out = append(out, AlbumSummary{
			AlbumGroup:        g,
			SongCount:         len(g.Songs),
			FormattedDuration: FormatDuration(g.TotalDuration),
		})
	}
	return out, nil
}

// GenreSummary is a genre group annotated with derived counts.
type GenreSummary struct {
	*domain.GenreGroup
	SongCount   int `json:"songCount"`
	ArtistCount int `json:"artistCount"`
}

// ListGenres returns every genre group with song and artist counts,
// ordered by grouping key for stable output.
func (s *Service) ListGenres() ([]GenreSummary, error) {
	c, err := s.holder.Current()
	if err != nil {
		return nil, err
	}

	out := make([]GenreSummary, 0, len(c.Genres))
	for _, key := range sortedKeys(c.Genres) {
		g := c.Genres[key]
		out = append(out, GenreSummary{
			GenreGroup:  g,
			SongCount:   len(g.Songs),
			ArtistCount: g.Artists.Len(),
		})
	}
	return out, nil
}

// SongsByArtist returns the songs grouped under the artist name,
// case-insensitively. An unknown artist yields an empty slice.
func (s *Service) SongsByArtist(name string) ([]*domain.Song, error) {
	c, err := s.holder.Current()
	if err != nil {
		return nil, err
	}

	group, ok := c.Artists[ArtistKey(name)]
	if !ok {
		return []*domain.Song{}, nil
	}
	return group.Songs, nil
}

// SongsByAlbum returns the songs of the album scoped to the artist,
// case-insensitively. An unknown album yields an empty slice.
func (s *Service) SongsByAlbum(title, artist string) ([]*domain.Song, error) {
	c, err := s.holder.Current()
	if err != nil {
		return nil, err
	}

	group, ok := c.Albums[AlbumKey(artist, title)]
	if !ok {
		return []*domain.Song{}, nil
	}
	return group.Songs, nil
}

// Search returns every song whose title, artist, album, or genre contains
// the query, case-insensitively, in catalog order. Validating that the
// query is non-empty is the caller's concern.
func (s *Service) Search(query string) ([]*domain.Song, error) {
	c, err := s.holder.Current()
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	var results []*domain.Song
	for i := range c.Songs {
		song := &c.Songs[i]
		if strings.Contains(strings.ToLower(song.Title), q) ||
			strings.Contains(strings.ToLower(song.Artist), q) ||
			strings.Contains(strings.ToLower(song.Album), q) ||
			strings.Contains(strings.ToLower(song.Genre), q) {
			results = append(results, song)
		}
	}
	if results == nil {
		results = []*domain.Song{}
	}
	return results, nil
}

// ResolveForStream returns the song with the given identifier for the
// streaming path. The caller is responsible for checking the underlying
// file still exists on disk before opening it.
func (s *Service) ResolveForStream(id string) (*domain.Song, error) {
	c, err := s.holder.Current()
	if err != nil {
		return nil, err
	}

	song := c.SongByID(id)
	if song == nil {
		return nil, errors.NotFound("song not found")
	}
	return song, nil
}

// Stats returns current catalog totals, or ErrNotScanned.
func (s *Service) Stats() (Stats, error) {
	c, err := s.holder.Current()
	if err != nil {
		return Stats{}, err
	}
	return c.Stats(), nil
}

// FormatDuration renders whole seconds as m:ss (e.g. 754 -> "12:34").
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// sortedKeys returns map keys in ascending order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
