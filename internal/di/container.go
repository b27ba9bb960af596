// Package di provides dependency injection configuration for the Chakras server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/chakrasapp/chakras-server/internal/auth"
	"github.com/chakrasapp/chakras-server/internal/catalog"
	"github.com/chakrasapp/chakras-server/internal/config"
	"github.com/chakrasapp/chakras-server/internal/di/providers"
	"github.com/chakrasapp/chakras-server/internal/logger"
	"github.com/chakrasapp/chakras-server/internal/scanner"
	"github.com/chakrasapp/chakras-server/internal/service"
	"github.com/chakrasapp/chakras-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)
	do.Provide(injector, providers.ProvideValidator)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideCoverStorage)

	// Scanner and catalog
	do.Provide(injector, providers.ProvideExtractor)
	do.Provide(injector, providers.ProvideScanner)
	do.Provide(injector, providers.ProvideCatalogHolder)
	do.Provide(injector, providers.ProvideCatalogService)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideLibraryService)
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvidePlaylistService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)
	do.Provide(injector, providers.ProvideMDNSService)

	return injector
}

// Bootstrap initializes all services and starts the HTTP server.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.CoverStorage](injector)
	_ = do.MustInvoke[*scanner.Scanner](injector)
	_ = do.MustInvoke[*catalog.Holder](injector)
	_ = do.MustInvoke[*catalog.Service](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)
	_ = do.MustInvoke[*service.LibraryService](injector)
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.PlaylistService](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)
	_ = do.MustInvoke[*providers.MDNSServiceHandle](injector)

	// Run the initial library scan in the background so the server is
	// reachable immediately.
	go providers.RunInitialScan(injector)

	return nil
}
