package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/chakrasapp/chakras-server/internal/auth"
	"github.com/chakrasapp/chakras-server/internal/catalog"
	"github.com/chakrasapp/chakras-server/internal/config"
	"github.com/chakrasapp/chakras-server/internal/logger"
	"github.com/chakrasapp/chakras-server/internal/scanner"
	"github.com/chakrasapp/chakras-server/internal/service"
)

// ProvideLibraryService provides the scan lifecycle service.
func ProvideLibraryService(i do.Injector) (*service.LibraryService, error) {
	fileScanner := do.MustInvoke[*scanner.Scanner](i)
	holder := do.MustInvoke[*catalog.Holder](i)
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewLibraryService(fileScanner, holder, cfg.Library.MusicPath, log.Logger), nil
}

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, log.Logger), nil
}

// ProvidePlaylistService provides the playlist and likes service.
func ProvidePlaylistService(i do.Injector) (*service.PlaylistService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	catalogService := do.MustInvoke[*catalog.Service](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPlaylistService(storeHandle.Store, catalogService, log.Logger), nil
}

// RunInitialScan performs the startup library scan so the catalog is
// populated without waiting for a manual scan request. Failures are logged
// and leave the server running; clients can retry via the scan endpoint.
func RunInitialScan(i do.Injector) {
	library := do.MustInvoke[*service.LibraryService](i)
	log := do.MustInvoke[*logger.Logger](i)

	summary, err := library.Scan(context.Background())
	if err != nil {
		log.Error("Initial library scan failed", "error", err)
		return
	}

	log.Info("Initial library scan complete",
		"songs", summary.TotalSongs,
		"artists", summary.TotalArtists,
		"albums", summary.TotalAlbums,
		"genres", summary.TotalGenres,
	)
}
