package peek

import (
	"path/filepath"
	"strings"
)

// Core identifies a gaming system. The name doubles as the directory name
// under the games root and the report file name under the output root.
type Core struct {
	Name string
	// HeaderSize is the number of leading payload bytes excluded from hashing.
	HeaderSize int
}

// knownCores is the whitelist of cores the scanner processes.
var knownCores = []Core{
	{Name: "NES", HeaderSize: 16},
	{Name: "SNES", HeaderSize: 0},
}

// KnownCores returns a copy of the core whitelist.
func KnownCores() []Core {
	cores := make([]Core, len(knownCores))
	copy(cores, knownCores)
	return cores
}

// LookupCore returns the whitelisted core with the given name.
// Names are matched exactly; "nes" is not "NES".
func LookupCore(name string) (Core, bool) {
	for _, c := range knownCores {
		if c.Name == name {
			return c, true
		}
	}
	return Core{}, false
}

// RomFile is a file found directly under a core directory.
type RomFile struct {
	Path string
	Name string
}

// NewRomFile builds a RomFile for the given path.
func NewRomFile(path string) RomFile {
	return RomFile{Path: path, Name: filepath.Base(path)}
}

// Extension returns the lowercased extension including the leading dot.
func (f RomFile) Extension() string {
	return strings.ToLower(filepath.Ext(f.Name))
}
