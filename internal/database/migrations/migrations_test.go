package migrations

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func TestMigrateUp_FreshDatabase(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}

	tables := []string{"SYSTEMS", "REGIONS", "ROMs", "RELEASES", "schema_migrations"}
	for _, table := range tables {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s was not created: %v", table, err)
		}
	}
}

func TestMigrateUp_Idempotent(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateUp(db); err != nil {
		t.Fatalf("First MigrateUp() failed: %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Errorf("Second MigrateUp() failed: %v (should be idempotent)", err)
	}
}

func TestSchemaVersion(t *testing.T) {
	db := openTestDB(t)

	v, err := SchemaVersion(db)
	if err != nil {
		t.Fatalf("SchemaVersion() on empty db error = %v", err)
	}
	if v != 0 {
		t.Errorf("SchemaVersion() on empty db = %d, want 0", v)
	}

	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}
	v, err = SchemaVersion(db)
	if err != nil {
		t.Fatalf("SchemaVersion() error = %v", err)
	}
	if v != 1 {
		t.Errorf("SchemaVersion() = %d, want 1", v)
	}
}

func TestMigrateDown(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}
	if err := MigrateDown(db); err != nil {
		t.Fatalf("MigrateDown() failed: %v", err)
	}

	for _, table := range []string{"SYSTEMS", "REGIONS", "ROMs", "RELEASES"} {
		var n int
		if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&n); err != nil {
			t.Fatalf("checking %s: %v", table, err)
		}
		if n != 0 {
			t.Errorf("table %s still exists after MigrateDown", table)
		}
	}
}

func TestSchema_ScannerColumns(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}

	if _, err := db.Exec("INSERT INTO REGIONS (regionID, regionName) VALUES (7, 'USA, Europe')"); err != nil {
		t.Fatalf("insert region: %v", err)
	}
	if _, err := db.Exec("INSERT INTO ROMs (romID, regionID, romHashSHA1) VALUES (1, 7, 'ABC')"); err != nil {
		t.Fatalf("insert rom: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO RELEASES (releaseID, romID, releaseDeveloper, releaseGenre, releaseDate)
		VALUES (1, 1, 'Nintendo', 'Action', '1985')`); err != nil {
		t.Fatalf("insert release: %v", err)
	}

	var developer string
	err := db.QueryRow(`SELECT releaseDeveloper FROM RELEASES
		JOIN ROMs ON ROMs.romID = RELEASES.romID
		WHERE ROMs.romHashSHA1 = ?`, "ABC").Scan(&developer)
	if err != nil {
		t.Fatalf("join query: %v", err)
	}
	if developer != "Nintendo" {
		t.Errorf("developer = %q, want %q", developer, "Nintendo")
	}
}

// openTestDB opens a file backed SQLite database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "openvgdb.sqlite"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}
