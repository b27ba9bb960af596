package providers

import (
	"github.com/samber/do/v2"

	"github.com/chakrasapp/chakras-server/internal/catalog"
	"github.com/chakrasapp/chakras-server/internal/logger"
	"github.com/chakrasapp/chakras-server/internal/scanner"
)

// ProvideExtractor provides the taglib-based metadata extractor.
func ProvideExtractor(i do.Injector) (*scanner.TagLibExtractor, error) {
	return scanner.NewTagLibExtractor(), nil
}

// ProvideScanner provides the filesystem scanner.
func ProvideScanner(i do.Injector) (*scanner.Scanner, error) {
	extractor := do.MustInvoke[*scanner.TagLibExtractor](i)
	coverStorage := do.MustInvoke[*CoverStorage](i)
	log := do.MustInvoke[*logger.Logger](i)

	return scanner.New(extractor, coverStorage.Storage, log.Logger), nil
}

// ProvideCatalogHolder provides the process-wide catalog state cell.
func ProvideCatalogHolder(i do.Injector) (*catalog.Holder, error) {
	return catalog.NewHolder(), nil
}

// ProvideCatalogService provides the catalog query service.
func ProvideCatalogService(i do.Injector) (*catalog.Service, error) {
	holder := do.MustInvoke[*catalog.Holder](i)
	return catalog.NewService(holder), nil
}
