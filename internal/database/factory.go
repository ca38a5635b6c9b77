package database

import (
	"fmt"
	"os"

	"peek-go/internal/config"
	"peek-go/internal/peek"
)

// NewMetadataStoreFromConfig opens the reference database named by db_path.
// A missing file reports peek.ErrDatabaseMissing rather than letting SQLite
// fail on open.
func NewMetadataStoreFromConfig(cfg *config.Config) (*SQLiteStore, error) {
	if cfg.DbPath == "" {
		return nil, fmt.Errorf("db_path required for reference database")
	}

	info, err := os.Stat(cfg.DbPath)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: %s", peek.ErrDatabaseMissing, cfg.DbPath)
	}

	return NewSQLiteStore(cfg.DbPath)
}
