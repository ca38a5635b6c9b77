package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"

	"peek-go/internal/peek"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements peek.MetadataStore over an OpenVGDB SQLite file.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens the reference database at path read-only.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := OpenConnection(path, true)
	if err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// NewSQLiteStoreFromDB wraps an existing database connection.
// The caller is responsible for ensuring the connection is properly configured.
func NewSQLiteStoreFromDB(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// OpenConnection opens a SQLite database connection. With readOnly set the
// file is opened in read-only mode and must already exist.
// This is exported for use in tools and tests that build reference databases.
func OpenConnection(path string, readOnly bool) (*sql.DB, error) {
	dsn := path
	if readOnly {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolving database path: %w", err)
		}
		dsn = "file:" + (&url.URL{Path: filepath.ToSlash(abs)}).EscapedPath() + "?mode=ro"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// sql.Open is lazy; ping so a missing or unreadable file fails here.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if readOnly {
		if _, err := db.Exec("PRAGMA query_only = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable query_only: %w", err)
		}
	}

	return db, nil
}

// LoadRegions reads every region row. A row naming several regions
// ("USA, Europe") fans out into one entry per name.
func (s *SQLiteStore) LoadRegions() (peek.RegionLookup, error) {
	rows, err := s.db.QueryContext(context.Background(), "SELECT regionID, regionName FROM REGIONS")
	if err != nil {
		return nil, fmt.Errorf("loading regions: %w", err)
	}
	defer rows.Close()

	lookup := make(peek.RegionLookup)
	for rows.Next() {
		var (
			id   int64
			name sql.NullString
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scanning region: %w", err)
		}
		if !name.Valid {
			continue
		}
		lookup.Add(id, name.String)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading regions: %w", err)
	}
	return lookup, nil
}

func (s *SQLiteStore) FindRomByHash(hash string) (*peek.RomIdentity, error) {
	var (
		rom      peek.RomIdentity
		regionID sql.NullInt64
	)
	err := s.db.QueryRowContext(context.Background(),
		"SELECT romID, regionID FROM ROMs WHERE romHashSHA1 = ? LIMIT 1", hash,
	).Scan(&rom.RomID, &regionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding rom by hash: %w", err)
	}
	rom.RegionID = regionID.Int64
	return &rom, nil
}

func (s *SQLiteStore) FindReleaseByRomID(romID int64) (*peek.ReleaseMetadata, error) {
	var release peek.ReleaseMetadata
	err := s.db.QueryRowContext(context.Background(),
		"SELECT releaseDeveloper, releaseGenre, releaseDate FROM RELEASES WHERE romID = ? LIMIT 1", romID,
	).Scan(&release.Developer, &release.Genre, &release.ReleaseDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding release by rom id: %w", err)
	}
	return &release, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Compile-time check that SQLiteStore implements peek.MetadataStore interface
var _ peek.MetadataStore = (*SQLiteStore)(nil)
