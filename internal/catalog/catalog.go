// Package catalog holds the in-memory music catalog: the flat song list
// produced by a scan plus the derived artist/album/genre indices, and the
// single process-wide state cell the rest of the server reads from.
package catalog

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/chakrasapp/chakras-server/internal/domain"
	"github.com/chakrasapp/chakras-server/internal/errors"
)

// Catalog is one complete scan result. It is immutable once built; a
// re-scan constructs a new Catalog and swaps it in whole.
type Catalog struct {
	// Songs in discovery order: root loose files, then each artist
	// folder's loose files, then each album folder's files, depth-first.
	Songs []domain.Song

	Artists map[string]*domain.ArtistGroup
	Albums  map[string]*domain.AlbumGroup
	Genres  map[string]*domain.GenreGroup

	BuiltAt time.Time

	byID map[string]*domain.Song
}

// New builds a Catalog from a flat song list, constructing all three
// secondary indices. The input slice is owned by the catalog afterwards.
func New(songs []domain.Song) *Catalog {
	c := &Catalog{
		Songs:   songs,
		BuiltAt: time.Now(),
		byID:    make(map[string]*domain.Song, len(songs)),
	}
	c.Artists, c.Albums, c.Genres = BuildIndexes(c.Songs)
	for i := range c.Songs {
		c.byID[c.Songs[i].ID] = &c.Songs[i]
	}
	return c
}

// SongByID returns the song with the given ID, or nil.
func (c *Catalog) SongByID(id string) *domain.Song {
	return c.byID[id]
}

// Stats summarizes catalog totals for scan reports and status endpoints.
type Stats struct {
	TotalSongs   int `json:"totalSongs"`
	TotalArtists int `json:"totalArtists"`
	TotalAlbums  int `json:"totalAlbums"`
	TotalGenres  int `json:"totalGenres"`
}

// Stats returns the catalog's aggregate counts.
func (c *Catalog) Stats() Stats {
	return Stats{
		TotalSongs:   len(c.Songs),
		TotalArtists: len(c.Artists),
		TotalAlbums:  len(c.Albums),
		TotalGenres:  len(c.Genres),
	}
}

// ArtistKey returns the grouping key for an artist name.
func ArtistKey(artist string) string {
	return strings.ToLower(artist)
}

// AlbumKey returns the grouping key for an album. Albums are scoped per
// artist, so two artists' same-titled albums never collide.
func AlbumKey(artist, album string) string {
	return strings.ToLower(artist) + "_" + strings.ToLower(album)
}

// GenreKey returns the grouping key for a single genre token.
func GenreKey(genre string) string {
	return strings.ToLower(strings.TrimSpace(genre))
}

// Holder is the single-writer state cell owning the current catalog.
// The scan path replaces the whole catalog with one atomic pointer swap;
// readers always observe either the complete previous catalog or the
// complete new one, never a partially built one.
type Holder struct {
	current atomic.Pointer[Catalog]
}

// NewHolder creates an empty holder; Current fails until the first Replace.
func NewHolder() *Holder {
	return &Holder{}
}

// Replace installs a freshly built catalog, discarding the previous one.
func (h *Holder) Replace(c *Catalog) {
	h.current.Store(c)
}

// Current returns the current catalog, or ErrNotScanned before the first
// completed scan.
func (h *Holder) Current() (*Catalog, error) {
	c := h.current.Load()
	if c == nil {
		return nil, errors.NotScanned("music library not yet scanned")
	}
	return c, nil
}

// Ready reports whether a catalog exists.
func (h *Holder) Ready() bool {
	return h.current.Load() != nil
}
