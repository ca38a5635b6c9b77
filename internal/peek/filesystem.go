package peek

import "io/fs"

// FilesystemManager provides the directory listings the scanner walks.
type FilesystemManager interface {
	// Stat returns file info for a path.
	Stat(path string) (fs.FileInfo, error)

	// FindCoreDirs returns the names of the visible immediate subdirectories
	// of root, in name order. Whitelist filtering is left to the caller.
	FindCoreDirs(root string) ([]string, error)

	// FindRomFiles returns the regular files directly under dir, in name order.
	FindRomFiles(dir string) ([]RomFile, error)
}
