package providers

import (
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/chakrasapp/chakras-server/internal/config"
	"github.com/chakrasapp/chakras-server/internal/logger"
	"github.com/chakrasapp/chakras-server/internal/media/covers"
	"github.com/chakrasapp/chakras-server/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the database store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := filepath.Join(cfg.Data.BasePath, "db")
	db, err := store.New(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}

// CoverStorage wraps the cover art storage.
type CoverStorage struct {
	*covers.Storage
}

// ProvideCoverStorage provides content-addressed cover art storage.
func ProvideCoverStorage(i do.Injector) (*CoverStorage, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	storage, err := covers.NewStorage(cfg.Data.BasePath)
	if err != nil {
		return nil, err
	}

	log.Info("Cover storage initialized", "path", storage.Dir())

	return &CoverStorage{Storage: storage}, nil
}
