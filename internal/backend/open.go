package backend

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kk-code-lab/tagdir/internal/config"
	"github.com/kk-code-lab/tagdir/internal/store"
	"github.com/kk-code-lab/tagdir/internal/store/memory"
	"github.com/kk-code-lab/tagdir/internal/store/postgres"
	"github.com/kk-code-lab/tagdir/internal/store/sqlite"
)

// OpenStore opens the tag store selected by cfg.Store.
func OpenStore(ctx context.Context, cfg *config.Config) (store.TagStore, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return memory.New(), nil
	case config.StoreSQLite:
		if cfg.DBPath != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
		s, err := sqlite.Open(ctx, cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store %s: %w", cfg.DBPath, err)
		}
		return s, nil
	case config.StorePostgres:
		s, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
