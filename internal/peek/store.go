package peek

import (
	"database/sql"
	"strings"
)

// RomIdentity is the result of a hash lookup in the reference database.
type RomIdentity struct {
	RomID    int64
	RegionID int64
}

// ReleaseMetadata holds the release columns the report needs.
// Any of them may be NULL in the reference database.
type ReleaseMetadata struct {
	Developer   sql.NullString
	Genre       sql.NullString
	ReleaseDate sql.NullString
}

// MetadataStore is a read-only lookup surface over the reference database.
type MetadataStore interface {
	// LoadRegions reads every region row and expands comma separated names.
	LoadRegions() (RegionLookup, error)

	// FindRomByHash returns the ROM with the given SHA-1, or nil if none matches.
	FindRomByHash(hash string) (*RomIdentity, error)

	// FindReleaseByRomID returns the release for a ROM, or nil if none exists.
	FindReleaseByRomID(romID int64) (*ReleaseMetadata, error)
}

// RegionLookup maps a region ID to its display names.
// A single database row can name several regions ("USA, Europe").
type RegionLookup map[int64][]string

// Add splits regionName on commas and records each trimmed name under id.
func (l RegionLookup) Add(id int64, regionName string) {
	for _, name := range strings.Split(regionName, ",") {
		l[id] = append(l[id], strings.TrimSpace(name))
	}
}

// Names returns the names recorded for id, in load order.
func (l RegionLookup) Names(id int64) []string {
	return l[id]
}

// Render returns the names for id joined with a pipe.
// Unknown ids render as the empty string.
func (l RegionLookup) Render(id int64) string {
	return strings.Join(l[id], "|")
}
