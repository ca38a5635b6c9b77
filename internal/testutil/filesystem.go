package testutil

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"peek-go/internal/peek"
)

// MockFile represents a file in the mock filesystem.
type MockFile struct {
	Content     []byte
	Permissions fs.FileMode
	ModTime     time.Time
	IsDirectory bool
}

// MockFilesystemManager is an in-memory filesystem for testing.
type MockFilesystemManager struct {
	files map[string]*MockFile
}

// NewMockFilesystemManager creates a new mock filesystem.
func NewMockFilesystemManager() *MockFilesystemManager {
	return &MockFilesystemManager{
		files: make(map[string]*MockFile),
	}
}

// AddFile adds a file to the mock filesystem, creating parent directories.
func (m *MockFilesystemManager) AddFile(path string, content []byte) {
	m.AddDirectory(filepath.Dir(path))
	m.files[path] = &MockFile{
		Content:     content,
		Permissions: 0644,
		ModTime:     time.Now(),
	}
}

// AddDirectory adds a directory and its parents to the mock filesystem.
func (m *MockFilesystemManager) AddDirectory(path string) {
	for p := path; ; p = filepath.Dir(p) {
		if _, ok := m.files[p]; !ok {
			m.files[p] = &MockFile{
				Permissions: 0755,
				ModTime:     time.Now(),
				IsDirectory: true,
			}
		}
		if parent := filepath.Dir(p); parent == p {
			return
		}
	}
}

func (m *MockFilesystemManager) Stat(path string) (fs.FileInfo, error) {
	file, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}
	return &mockFileInfo{name: filepath.Base(path), file: file}, nil
}

func (m *MockFilesystemManager) FindCoreDirs(root string) ([]string, error) {
	if err := m.requireDir(root); err != nil {
		return nil, err
	}

	var names []string
	for _, p := range m.children(root) {
		name := filepath.Base(p)
		if m.files[p].IsDirectory && !strings.HasPrefix(name, ".") {
			names = append(names, name)
		}
	}
	return names, nil
}

func (m *MockFilesystemManager) FindRomFiles(dir string) ([]peek.RomFile, error) {
	if err := m.requireDir(dir); err != nil {
		return nil, err
	}

	var files []peek.RomFile
	for _, p := range m.children(dir) {
		if !m.files[p].IsDirectory {
			files = append(files, peek.NewRomFile(p))
		}
	}
	return files, nil
}

func (m *MockFilesystemManager) requireDir(path string) error {
	file, ok := m.files[path]
	if !ok || !file.IsDirectory {
		return fmt.Errorf("reading directory: %s: %w", path, fs.ErrNotExist)
	}
	return nil
}

// children returns the immediate children of dir sorted by name.
func (m *MockFilesystemManager) children(dir string) []string {
	var paths []string
	for p := range m.files {
		if p != dir && filepath.Dir(p) == dir {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}

// mockFileInfo implements fs.FileInfo
type mockFileInfo struct {
	name string
	file *MockFile
}

func (i *mockFileInfo) Name() string       { return i.name }
func (i *mockFileInfo) Size() int64        { return int64(len(i.file.Content)) }
func (i *mockFileInfo) ModTime() time.Time { return i.file.ModTime }
func (i *mockFileInfo) IsDir() bool        { return i.file.IsDirectory }
func (i *mockFileInfo) Sys() any           { return i.file }

func (i *mockFileInfo) Mode() fs.FileMode {
	if i.file.IsDirectory {
		return fs.ModeDir | i.file.Permissions
	}
	return i.file.Permissions
}

// MockHasher hashes mock files by content. Paths listed in Unavailable
// report no hash, like an unreadable file or an empty archive.
type MockHasher struct {
	fsmgr       *MockFilesystemManager
	Unavailable map[string]bool
	// Calls records every hashed path in order.
	Calls []string
}

// NewMockHasher creates a hasher over the given mock filesystem.
func NewMockHasher(fsmgr *MockFilesystemManager) *MockHasher {
	return &MockHasher{fsmgr: fsmgr, Unavailable: make(map[string]bool)}
}

func (h *MockHasher) Hash(file peek.RomFile, headerSize int) (string, bool) {
	h.Calls = append(h.Calls, file.Path)
	if h.Unavailable[file.Path] {
		return "", false
	}
	f, ok := h.fsmgr.files[file.Path]
	if !ok {
		return "", false
	}
	content := f.Content
	if headerSize > len(content) {
		headerSize = len(content)
	}
	return SHA1Hex(content[headerSize:]), true
}

// Compile-time checks
var (
	_ peek.FilesystemManager = (*MockFilesystemManager)(nil)
	_ peek.Hasher            = (*MockHasher)(nil)
)
