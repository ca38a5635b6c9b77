package peek

import "errors"

var (
	// ErrGamesPathMissing is returned when the scan root is not a directory.
	ErrGamesPathMissing = errors.New("roms directory doesn't exist")

	// ErrDatabaseMissing is returned when the reference database file is absent.
	ErrDatabaseMissing = errors.New("reference database doesn't exist")
)
