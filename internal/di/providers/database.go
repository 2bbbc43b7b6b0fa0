package providers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/secondbrain/brain-server/internal/config"
	"github.com/secondbrain/brain-server/internal/logger"
	"github.com/secondbrain/brain-server/internal/store"
	"github.com/secondbrain/brain-server/internal/store/badgerstore"
	"github.com/secondbrain/brain-server/internal/store/sqlite"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore opens the store selected by STORE_DRIVER under the data path.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if err := os.MkdirAll(cfg.Data.BasePath, 0o750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	var (
		db     store.Store
		dbPath string
		err    error
	)
	switch cfg.Data.Driver {
	case config.DriverBadger:
		dbPath = filepath.Join(cfg.Data.BasePath, "badger")
		db, err = badgerstore.New(dbPath, log.Logger)
	default:
		dbPath = filepath.Join(cfg.Data.BasePath, "brain.db")
		db, err = sqlite.Open(dbPath, log.Logger)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Data.Driver, err)
	}

	log.Info("Database initialized", "driver", cfg.Data.Driver, "path", dbPath)

	return &StoreHandle{Store: db}, nil
}
