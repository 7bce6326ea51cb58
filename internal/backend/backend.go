// Package backend selects the keyed-store implementation from the
// configuration.
package backend

import (
	"fmt"

	"shuttersync/internal/config"
	"shuttersync/internal/log"
	"shuttersync/internal/store"
	"shuttersync/internal/store/memory"
	"shuttersync/internal/store/sqlite"
)

// Open returns the configured keyed store and a cleanup function to call
// on shutdown.
func Open(cfg *config.Config, logger *log.Logger) (store.KeyedStore, func() error, error) {
	logger = logger.WithComponent(log.ComponentStore)

	switch cfg.StoreBackend {
	case "sqlite":
		s, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("initialized sqlite store", "path", cfg.SQLiteDBPath)
		return s, s.Close, nil
	case "memory":
		logger.Info("initialized memory store")
		return memory.New(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported store backend %q", cfg.StoreBackend)
	}
}
