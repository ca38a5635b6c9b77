// Package hash computes the content hashes used to identify ROMs in the
// reference database.
package hash

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zip"

	"peek-go/internal/peek"
)

// ErrEmptyArchive is returned when an archive has no entries to hash.
var ErrEmptyArchive = errors.New("archive has no entries")

// ContentHasher hashes raw ROM files and the first entry of zip archives.
type ContentHasher struct {
	logger peek.Logger
}

// NewContentHasher creates a ContentHasher. Hash failures are logged at
// debug level before being reported as unavailable.
func NewContentHasher(logger peek.Logger) *ContentHasher {
	return &ContentHasher{logger: logger}
}

// Hash implements peek.Hasher.
func (h *ContentHasher) Hash(file peek.RomFile, headerSize int) (string, bool) {
	var (
		sum string
		err error
	)
	if file.Extension() == ".zip" {
		sum, err = HashArchive(file.Path, headerSize)
	} else {
		sum, err = HashFile(file.Path, headerSize)
	}
	if err != nil {
		h.logger.Debug("hash unavailable", "path", file.Path, "error", err)
		return "", false
	}
	return sum, true
}

// HashFile hashes the file at path after skipping headerSize bytes.
func HashFile(path string, headerSize int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return HashReader(f, headerSize)
}

// HashArchive hashes the first entry of the zip archive at path, in central
// directory order, after skipping headerSize bytes of that entry. Other
// entries are ignored whatever their type.
func HashArchive(path string, headerSize int) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("opening archive: %w", err)
	}
	defer zr.Close()

	if len(zr.File) == 0 {
		return "", ErrEmptyArchive
	}

	rc, err := zr.File[0].Open()
	if err != nil {
		return "", fmt.Errorf("opening entry %s: %w", zr.File[0].Name, err)
	}
	defer rc.Close()

	return HashReader(rc, headerSize)
}

// HashReader returns the uppercase hex SHA-1 of r after discarding up to
// headerSize bytes. A stream shorter than the header hashes as empty.
func HashReader(r io.Reader, headerSize int) (string, error) {
	if headerSize > 0 {
		if _, err := io.CopyN(io.Discard, r, int64(headerSize)); err != nil && err != io.EOF {
			return "", fmt.Errorf("skipping header: %w", err)
		}
	}

	h := sha1.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("hashing content: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(h.Sum(nil))), nil
}
