// Package service contains the application services sitting between the
// HTTP handlers and the catalog, scanner, and store.
package service

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/chakrasapp/chakras-server/internal/catalog"
	"github.com/chakrasapp/chakras-server/internal/domain"
	"github.com/chakrasapp/chakras-server/internal/errors"
)

// LibraryScanner abstracts the filesystem scanner for testability.
type LibraryScanner interface {
	Scan(ctx context.Context, root string) ([]domain.Song, error)
}

// LibraryService owns the scan lifecycle: it runs scans one at a time and
// atomically publishes the resulting catalog.
type LibraryService struct {
	scanner   LibraryScanner
	holder    *catalog.Holder
	musicPath string
	logger    *slog.Logger

	scanning atomic.Bool
}

// NewLibraryService creates the library service.
func NewLibraryService(scanner LibraryScanner, holder *catalog.Holder, musicPath string, logger *slog.Logger) *LibraryService {
	return &LibraryService{
		scanner:   scanner,
		holder:    holder,
		musicPath: musicPath,
		logger:    logger,
	}
}

// ScanSummary reports the outcome of a completed scan.
type ScanSummary struct {
	TotalSongs   int       `json:"totalSongs"`
	TotalArtists int       `json:"totalArtists"`
	TotalAlbums  int       `json:"totalAlbums"`
	TotalGenres  int       `json:"totalGenres"`
	CompletedAt  time.Time `json:"completedAt"`
}

// Scan walks the music directory and replaces the current catalog with the
// result. Only one scan runs at a time; a second request while one is in
// flight fails with ErrScanInProgress. Queries keep serving the previous
// catalog until the swap.
func (s *LibraryService) Scan(ctx context.Context) (*ScanSummary, error) {
	if !s.scanning.CompareAndSwap(false, true) {
		return nil, errors.ScanInProgress("scan already in progress")
	}
	defer s.scanning.Store(false)

	s.logger.Info("starting library scan", "path", s.musicPath)

	songs, err := s.scanner.Scan(ctx, s.musicPath)
	if err != nil {
		return nil, err
	}

	c := catalog.New(songs)
	s.holder.Replace(c)

	stats := c.Stats()
	return &ScanSummary{
		TotalSongs:   stats.TotalSongs,
		TotalArtists: stats.TotalArtists,
		TotalAlbums:  stats.TotalAlbums,
		TotalGenres:  stats.TotalGenres,
		CompletedAt:  c.BuiltAt,
	}, nil
}

// LibraryStatus describes whether a scan is running and what the current
// catalog holds.
type LibraryStatus struct {
	IsScanning bool           `json:"isScanning"`
	HasLibrary bool           `json:"hasLibrary"`
	Stats      *catalog.Stats `json:"stats,omitempty"`
}

// Status reports the current scan and catalog state. Unlike the query
// operations this never fails before the first scan.
func (s *LibraryService) Status() LibraryStatus {
	status := LibraryStatus{
		IsScanning: s.scanning.Load(),
		HasLibrary: s.holder.Ready(),
	}
	if c, err := s.holder.Current(); err == nil {
		stats := c.Stats()
		status.Stats = &stats
	}
	return status
}
