package scanner

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chakrasapp/chakras-server/internal/domain"
	"github.com/chakrasapp/chakras-server/internal/errors"
	"github.com/chakrasapp/chakras-server/internal/id"
)

// supportedExtensions is the closed set of audio formats the library accepts.
var supportedExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".wav":  true,
	".m4a":  true,
	".aac":  true,
	".ogg":  true,
	".wma":  true,
}

// maxFolderDepth limits traversal to artist and album folders. Directories
// nested deeper than library/artist/album are not entered.
const maxFolderDepth = 2

// IsSupportedAudioFile reports whether the path has a supported audio
// extension, matched case-insensitively.
func IsSupportedAudioFile(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

// CoverStore persists raw cover-art bytes and returns the public URL plus
// a blurhash placeholder for the stored image.
type CoverStore interface {
	Save(data []byte) (url string, blurHash string, err error)
}

// Scanner walks a library root and produces the songs found there.
// A failing file is logged and skipped; it never aborts the scan.
type Scanner struct {
	extractor Extractor
	covers    CoverStore
	logger    *slog.Logger
}

// New creates a scanner. covers may be nil, in which case embedded art
// is ignored.
func New(extractor Extractor, covers CoverStore, logger *slog.Logger) *Scanner {
	return &Scanner{
		extractor: extractor,
		covers:    covers,
		logger:    logger,
	}
}

// Scan traverses root and returns every playable song discovered, in
// traversal order (root files first, then artist folders, then their album
// folders, each level in directory-listing order). A missing or unreadable
// root is the only fatal condition.
func (s *Scanner) Scan(ctx context.Context, root string) ([]domain.Song, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.NotFound("music directory not found").WithCause(err)
	}
	if !info.IsDir() {
		return nil, errors.NotFound("music path is not a directory")
	}

	start := time.Now()
	songs := make([]domain.Song, 0)
	s.walk(ctx, root, FolderContext{}, 0, start, &songs)

	s.logger.Info("library scan finished",
		"root", root,
		"songs", len(songs),
		"elapsed", time.Since(start).Round(time.Millisecond))

	return songs, nil
}

// walk processes one directory level. depth 0 is the library root, 1 an
// artist folder, 2 an album folder.
func (s *Scanner) walk(ctx context.Context, dir string, fc FolderContext, depth int, scanTime time.Time, songs *[]domain.Song) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		s.logger.Warn("skipping unreadable directory", "dir", dir, "error", err)
		return
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)

		if entry.IsDir() {
			if depth >= maxFolderDepth {
				continue
			}
			next := fc
			if depth == 0 {
				next.Artist = name
			} else {
				next.Album = name
			}
			s.walk(ctx, path, next, depth+1, scanTime, songs)
			continue
		}

		if !IsSupportedAudioFile(name) {
			continue
		}
		if song, ok := s.processFile(ctx, path, fc, scanTime); ok {
			*songs = append(*songs, song)
		}
	}
}

// processFile turns one audio file into a song. Returns ok=false when the
// file should be skipped.
func (s *Scanner) processFile(ctx context.Context, path string, fc FolderContext, scanTime time.Time) (domain.Song, bool) {
	info, err := os.Stat(path)
	if err != nil {
		s.logger.Warn("skipping unreadable file", "path", path, "error", err)
		return domain.Song{}, false
	}

	tags, cover, err := s.extractor.Extract(ctx, path)
	if err != nil {
		s.logger.Warn("skipping unparseable file", "path", path, "error", err)
		return domain.Song{}, false
	}

	songID, err := id.Generate("song")
	if err != nil {
		s.logger.Warn("skipping file, id generation failed", "path", path, "error", err)
		return domain.Song{}, false
	}

	fileName := filepath.Base(path)
	song := domain.Song{
		ID:        songID,
		Title:     resolveTitle(tags.Title, fileName),
		Artist:    resolveArtist(tags.Artist, fc),
		Album:     resolveAlbum(tags.Album, fc),
		Genre:     resolveGenre(tags.Genres),
		Year:      tags.Year,
		Track:     tags.Track,
		Duration:  tags.DurationSeconds,
		Bitrate:   tags.BitrateKbps,
		FilePath:  path,
		FileName:  fileName,
		FileSize:  info.Size(),
		DateAdded: scanTime,
	}

	if len(cover) > 0 && s.covers != nil {
		url, blurHash, err := s.covers.Save(cover)
		if err != nil {
			s.logger.Warn("failed to store cover art", "path", path, "error", err)
		} else {
			song.CoverImage = url
			song.CoverBlurHash = blurHash
		}
	}

	return song, true
}
