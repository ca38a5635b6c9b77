package hash

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"peek-go/internal/peek"
	"peek-go/internal/testutil"
)

const emptySHA1 = "DA39A3EE5E6B4B0D3255BFEF95601890AFD80709"

func TestHashReader(t *testing.T) {
	t.Parallel()

	payload := []byte("0123456789ABCDEFrom-body")

	tests := []struct {
		name       string
		data       []byte
		headerSize int
		want       string
	}{
		{"no header", payload, 0, testutil.SHA1Hex(payload)},
		{"nes header skipped", payload, 16, testutil.SHA1Hex(payload[16:])},
		{"header equals length", payload[:16], 16, emptySHA1},
		{"shorter than header", []byte("short"), 16, emptySHA1},
		{"empty input", nil, 0, emptySHA1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := HashReader(bytes.NewReader(tt.data), tt.headerSize)
			if err != nil {
				t.Fatalf("HashReader() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("HashReader() = %s, want %s", got, tt.want)
			}
			if got != strings.ToUpper(got) {
				t.Errorf("HashReader() = %s, want uppercase hex", got)
			}
		})
	}
}

func TestHashFile_Deterministic(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "mario.nes")
	testutil.WriteFile(t, path, []byte("NES\x1a header....payload bytes"))

	first, err := HashFile(path, 16)
	if err != nil {
		t.Fatalf("HashFile() error = %v", err)
	}
	second, err := HashFile(path, 16)
	if err != nil {
		t.Fatalf("HashFile() error = %v", err)
	}
	if first != second {
		t.Errorf("hash changed between runs: %s vs %s", first, second)
	}
}

func TestHashArchive_FirstEntryOnly(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	body := []byte("0123456789ABCDEFzelda")

	zipped := filepath.Join(dir, "zelda.zip")
	testutil.WriteZip(t, zipped,
		testutil.ZipEntry{Name: "zelda.nes", Content: body},
		testutil.ZipEntry{Name: "readme.txt", Content: []byte("ignored")},
	)
	raw := filepath.Join(dir, "zelda.nes")
	testutil.WriteFile(t, raw, body)

	fromZip, err := HashArchive(zipped, 16)
	if err != nil {
		t.Fatalf("HashArchive() error = %v", err)
	}
	fromFile, err := HashFile(raw, 16)
	if err != nil {
		t.Fatalf("HashFile() error = %v", err)
	}
	if fromZip != fromFile {
		t.Errorf("archive hash %s != raw hash %s", fromZip, fromFile)
	}
}

func TestHashArchive_Empty(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "empty.zip")
	testutil.WriteZip(t, path)

	_, err := HashArchive(path, 0)
	if !errors.Is(err, ErrEmptyArchive) {
		t.Errorf("HashArchive() error = %v, want ErrEmptyArchive", err)
	}
}

func TestContentHasher_Hash(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	h := NewContentHasher(peek.NewNopLogger())

	body := []byte("super mario world")
	plain := filepath.Join(dir, "smw.sfc")
	testutil.WriteFile(t, plain, body)

	upper := filepath.Join(dir, "SMW.ZIP")
	testutil.WriteZip(t, upper, testutil.ZipEntry{Name: "smw.sfc", Content: body})

	empty := filepath.Join(dir, "empty.zip")
	testutil.WriteZip(t, empty)

	notZip := filepath.Join(dir, "broken.zip")
	testutil.WriteFile(t, notZip, []byte("not an archive"))

	tests := []struct {
		name   string
		path   string
		want   string
		wantOK bool
	}{
		{"plain file", plain, testutil.SHA1Hex(body), true},
		{"zip extension is case insensitive", upper, testutil.SHA1Hex(body), true},
		{"empty archive unavailable", empty, "", false},
		{"corrupt archive unavailable", notZip, "", false},
		{"missing file unavailable", filepath.Join(dir, "missing.sfc"), "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := h.Hash(peek.NewRomFile(tt.path), 0)
			if ok != tt.wantOK {
				t.Fatalf("Hash() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Hash() = %s, want %s", got, tt.want)
			}
		})
	}
}
