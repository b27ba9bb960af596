// Package domain contains the core entities of the Chakras music server.
package domain

import "time"

// Song is one audio file discovered by a library scan.
//
// Songs are created exclusively by the scanner and are immutable afterwards.
// IDs are assigned per scan; a re-scan produces fresh IDs even for unchanged
// files, so nothing outside the current catalog may assume they persist.
type Song struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album"`
	// Genre is comma-joined when the source tags carry multiple genres.
	Genre string `json:"genre"`
	Year  *int   `json:"year"`
	Track *int   `json:"track"`
	// Duration in whole seconds, floor of the parsed value. 0 if unavailable.
	Duration int `json:"duration"`
	// Bitrate in kbps. 0 if unavailable.
	Bitrate       int       `json:"bitrate"`
	FilePath      string    `json:"filePath"`
	FileName      string    `json:"fileName"`
	FileSize      int64     `json:"fileSize"`
	CoverImage    string    `json:"coverImage,omitempty"`
	CoverBlurHash string    `json:"coverBlurHash,omitempty"`
	DateAdded     time.Time `json:"dateAdded"`

	// Transient playback state owned by the surrounding system, never
	// written back into the catalog.
	PlayCount  int        `json:"playCount"`
	LastPlayed *time.Time `json:"lastPlayed"`
}

// ArtistGroup is the per-artist secondary index entry.
// Name keeps the casing of the first song encountered for the key.
type ArtistGroup struct {
	Name          string     `json:"name"`
	Songs         []*Song    `json:"songs"`
	Albums        *StringSet `json:"albums"`
	TotalDuration int        `json:"totalDuration"`
	CoverImage    string     `json:"coverImage,omitempty"`
}

// AlbumGroup is the per-album secondary index entry.
// Albums are scoped per artist; see catalog.AlbumKey.
type AlbumGroup struct {
	Title         string  `json:"title"`
	Artist        string  `json:"artist"`
	Songs         []*Song `json:"songs"`
	Year          *int    `json:"year"`
	TotalDuration int     `json:"totalDuration"`
	CoverImage    string  `json:"coverImage,omitempty"`
}

// GenreGroup is the per-genre secondary index entry. A song with multiple
// comma-separated genres appears in one group per token.
type GenreGroup struct {
	Name    string     `json:"name"`
	Songs   []*Song    `json:"songs"`
	Artists *StringSet `json:"artists"`
}
