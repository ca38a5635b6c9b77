// Package migrations holds an OpenVGDB compatible schema for building
// reference databases, such as test fixtures. The scanner itself never
// migrates the reference database it reads.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed files/*.sql
var schemaFiles embed.FS

// MigrateUp creates the OpenVGDB tables in db.
// Running it against an up to date database is a no-op.
func MigrateUp(db *sql.DB) error {
	return withSchema(db, func(m *migrate.Migrate) error { return m.Up() })
}

// MigrateDown drops every OpenVGDB table created by MigrateUp.
func MigrateDown(db *sql.DB) error {
	return withSchema(db, func(m *migrate.Migrate) error { return m.Down() })
}

// SchemaVersion returns the applied schema version, or 0 for an empty database.
func SchemaVersion(db *sql.DB) (uint, error) {
	var version uint
	err := withSchema(db, func(m *migrate.Migrate) error {
		v, dirty, err := m.Version()
		if err != nil {
			return err
		}
		if dirty {
			return fmt.Errorf("schema version %d is dirty", v)
		}
		version = v
		return nil
	})
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	return version, err
}

// withSchema runs fn against a migrate instance bound to db. ErrNoChange is
// not an error. The instance is not closed because that would close db,
// which belongs to the caller.
func withSchema(db *sql.DB, fn func(m *migrate.Migrate) error) error {
	source, err := iofs.New(schemaFiles, "files")
	if err != nil {
		return fmt.Errorf("reading schema files: %w", err)
	}

	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		source.Close()
		return fmt.Errorf("binding schema driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		source.Close()
		return fmt.Errorf("creating schema migrator: %w", err)
	}

	if err := fn(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying schema: %w", err)
	}
	return nil
}
