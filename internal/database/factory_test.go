package database_test

import (
	"errors"
	"path/filepath"
	"testing"

	"peek-go/internal/config"
	"peek-go/internal/database"
	"peek-go/internal/peek"
	"peek-go/internal/testutil"
)

func TestNewMetadataStoreFromConfig(t *testing.T) {
	t.Run("existing database", func(t *testing.T) {
		ref := testutil.NewReferenceDatabase(t)
		cfg := &config.Config{DbPath: ref.Path}

		got, err := database.NewMetadataStoreFromConfig(cfg)
		if err != nil {
			t.Fatalf("NewMetadataStoreFromConfig() unexpected error: %v", err)
		}
		defer got.Close()

		if got.Path() != ref.Path {
			t.Errorf("Path() = %q, want %q", got.Path(), ref.Path)
		}
	})

	t.Run("missing database", func(t *testing.T) {
		cfg := &config.Config{DbPath: filepath.Join(t.TempDir(), "missing.sqlite")}

		got, err := database.NewMetadataStoreFromConfig(cfg)
		if !errors.Is(err, peek.ErrDatabaseMissing) {
			t.Errorf("NewMetadataStoreFromConfig() error = %v, want ErrDatabaseMissing", err)
		}
		if got != nil {
			t.Error("NewMetadataStoreFromConfig() should return nil on error")
			got.Close()
		}
	})

	t.Run("directory instead of file", func(t *testing.T) {
		cfg := &config.Config{DbPath: t.TempDir()}

		_, err := database.NewMetadataStoreFromConfig(cfg)
		if !errors.Is(err, peek.ErrDatabaseMissing) {
			t.Errorf("NewMetadataStoreFromConfig() error = %v, want ErrDatabaseMissing", err)
		}
	})

	t.Run("empty db_path", func(t *testing.T) {
		_, err := database.NewMetadataStoreFromConfig(&config.Config{})
		if err == nil {
			t.Error("NewMetadataStoreFromConfig() expected error for empty db_path, got nil")
		}
	})
}
