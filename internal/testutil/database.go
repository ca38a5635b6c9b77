package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"peek-go/internal/database"
	"peek-go/internal/database/migrations"
)

// ReferenceDatabase is a writable OpenVGDB fixture on disk. Tests seed it
// and then open Path read-only the way the scanner does.
type ReferenceDatabase struct {
	Path string
	DB   *sql.DB
	t    *testing.T
}

// Release holds the release columns a fixture row sets.
// Invalid NullStrings are stored as NULL.
type Release struct {
	Developer   sql.NullString
	Genre       sql.NullString
	ReleaseDate sql.NullString
}

// NewReferenceDatabase creates an empty OpenVGDB schema in a temp file.
// The connection is closed when the test completes.
func NewReferenceDatabase(t *testing.T) *ReferenceDatabase {
	t.Helper()

	path := filepath.Join(t.TempDir(), "openvgdb.sqlite")
	db, err := database.OpenConnection(path, false)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		t.Fatalf("failed to apply schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return &ReferenceDatabase{Path: path, DB: db, t: t}
}

// AddRegion inserts a REGIONS row. name may hold several comma separated names.
func (r *ReferenceDatabase) AddRegion(id int64, name string) {
	r.t.Helper()
	r.exec("INSERT INTO REGIONS (regionID, regionName) VALUES (?, ?)", id, name)
}

// AddRom inserts a ROMs row keyed by its SHA-1.
func (r *ReferenceDatabase) AddRom(romID, regionID int64, sha1 string) {
	r.t.Helper()
	r.exec("INSERT INTO ROMs (romID, regionID, romHashSHA1) VALUES (?, ?, ?)", romID, regionID, sha1)
}

// AddRelease inserts a RELEASES row for romID.
func (r *ReferenceDatabase) AddRelease(releaseID, romID int64, rel Release) {
	r.t.Helper()
	r.exec(`INSERT INTO RELEASES (releaseID, romID, releaseDeveloper, releaseGenre, releaseDate)
		VALUES (?, ?, ?, ?, ?)`, releaseID, romID, rel.Developer, rel.Genre, rel.ReleaseDate)
}

func (r *ReferenceDatabase) exec(query string, args ...any) {
	r.t.Helper()
	if _, err := r.DB.Exec(query, args...); err != nil {
		r.t.Fatalf("seeding reference database: %v", err)
	}
}

// NullString returns a valid sql.NullString holding s.
func NullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}
