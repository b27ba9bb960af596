package scanner

import (
	"path/filepath"
	"strings"
)

// Literal defaults applied when neither tags nor folder context provide a value.
const (
	UnknownArtist = "Unknown Artist"
	UnknownAlbum  = "Unknown Album"
	UnknownGenre  = "Unknown"
)

// FolderContext carries the artist/album names inferred from the enclosing
// folders during traversal. Files directly under the library root have an
// empty context; files under an artist folder inherit Artist; files under
// an album folder inherit both.
type FolderContext struct {
	Artist string
	Album  string
}

// Each field resolves through an explicit ordered fallback chain
// (tag -> folder -> literal default), kept as standalone functions so the
// normalization rules are testable without touching the filesystem.

// resolveTitle falls back from the tag to the filename without extension.
func resolveTitle(tagTitle, fileName string) string {
	if tagTitle != "" {
		return tagTitle
	}
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}

// resolveArtist falls back from the tag to the artist folder name to the
// literal default.
func resolveArtist(tagArtist string, fc FolderContext) string {
	if tagArtist != "" {
		return tagArtist
	}
	if fc.Artist != "" {
		return fc.Artist
	}
	return UnknownArtist
}

// resolveAlbum falls back from the tag to the album folder name to the
// literal default.
func resolveAlbum(tagAlbum string, fc FolderContext) string {
	if tagAlbum != "" {
		return tagAlbum
	}
	if fc.Album != "" {
		return fc.Album
	}
	return UnknownAlbum
}

// resolveGenre joins multi-valued genre tags with ", ", or falls back to
// the literal default when the file carries none.
func resolveGenre(genres []string) string {
	if len(genres) == 0 {
		return UnknownGenre
	}
	return strings.Join(genres, ", ")
}
