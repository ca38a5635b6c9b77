package fs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"peek-go/internal/peek"
)

// OSFilesystemManager is the real filesystem implementation of peek.FilesystemManager.
type OSFilesystemManager struct {
	ignore *IgnoreMatcher
}

// NewOSFilesystemManager creates a filesystem manager. ignore holds the
// configured file name patterns; the built-in defaults are always added.
func NewOSFilesystemManager(ignore []string) *OSFilesystemManager {
	return &OSFilesystemManager{
		ignore: NewIgnoreMatcher(defaultIgnorePatterns).With(ignore),
	}
}

// Stat returns fresh file info for a path.
func (m *OSFilesystemManager) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// FindCoreDirs returns the visible subdirectories of root in name order.
func (m *OSFilesystemManager) FindCoreDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// FindRomFiles returns the regular files directly under dir in name order,
// minus the ignored ones. Subdirectories are not descended into.
func (m *OSFilesystemManager) FindRomFiles(dir string) ([]peek.RomFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	extra, err := ParseIgnoreFile(filepath.Join(dir, IgnoreFileName))
	if err != nil {
		return nil, err
	}
	matcher := m.ignore.With(extra)
	core := filepath.Base(dir)

	var files []peek.RomFile
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if matcher.Match(core, entry.Name()) {
			continue
		}
		files = append(files, peek.NewRomFile(filepath.Join(dir, entry.Name())))
	}
	return files, nil
}

// Compile-time check that OSFilesystemManager implements peek.FilesystemManager interface
var _ peek.FilesystemManager = (*OSFilesystemManager)(nil)
