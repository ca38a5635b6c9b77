package report

import (
	"os"
	"path/filepath"
	"testing"
)

func readReport(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	return string(data)
}

func TestWriter_HeaderAndRows(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "NES.txt")

	w, err := Create(path)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := w.WriteHeader(); err != nil {
		t.Fatalf("WriteHeader() error = %v", err)
	}
	if err := w.WriteRow("mario.nes", "USA|Japan", "1985", "Nintendo", "Action|Platform"); err != nil {
		t.Fatalf("WriteRow() error = %v", err)
	}
	if err := w.WriteRow("blank.nes", "", "", "", ""); err != nil {
		t.Fatalf("WriteRow() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	want := "ROM\tRegion\tYear\tDeveloper\tGenre\n" +
		"mario.nes\tUSA|Japan\t1985\tNintendo\tAction|Platform\n" +
		"blank.nes\t\t\t\t\n"
	if got := readReport(t, path); got != want {
		t.Errorf("report = %q, want %q", got, want)
	}
}

func TestWriter_NonASCII(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "SNES.txt")

	w, err := Create(path)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := w.WriteRow("pokémon.sfc", "日本", "1996", "Game Freak", "RPG"); err != nil {
		t.Fatalf("WriteRow() error = %v", err)
	}
	w.Close()

	want := "pok?mon.sfc\t??\t1996\tGame Freak\tRPG\n"
	if got := readReport(t, path); got != want {
		t.Errorf("report = %q, want %q", got, want)
	}
}

func TestCreate_Truncates(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "NES.txt")
	if err := os.WriteFile(path, []byte("stale contents from an earlier run\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := Opener{}.Create(path)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := w.WriteHeader(); err != nil {
		t.Fatal(err)
	}
	w.Close()

	if got := readReport(t, path); got != "ROM\tRegion\tYear\tDeveloper\tGenre\n" {
		t.Errorf("report = %q, want header only", got)
	}
}

func TestCreate_MissingDirectory(t *testing.T) {
	t.Parallel()
	if _, err := Create(filepath.Join(t.TempDir(), "missing", "NES.txt")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
