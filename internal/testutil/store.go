package testutil

import (
	"strings"

	"peek-go/internal/peek"
)

// MemoryStore is an in-memory peek.MetadataStore. Err, when set, is
// returned from every lookup.
type MemoryStore struct {
	regions  map[int64]string
	roms     map[string]peek.RomIdentity
	releases map[int64]peek.ReleaseMetadata
	Err      error

	// RegionLoads counts LoadRegions calls.
	RegionLoads int
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		regions:  make(map[int64]string),
		roms:     make(map[string]peek.RomIdentity),
		releases: make(map[int64]peek.ReleaseMetadata),
	}
}

// AddRegion records a raw region row; name may be comma separated.
func (s *MemoryStore) AddRegion(id int64, name string) {
	s.regions[id] = name
}

// AddRom records a ROM under its content hash. Hashes are matched exactly.
func (s *MemoryStore) AddRom(hash string, rom peek.RomIdentity) {
	s.roms[hash] = rom
}

// AddRelease records the release for romID.
func (s *MemoryStore) AddRelease(romID int64, rel peek.ReleaseMetadata) {
	s.releases[romID] = rel
}

func (s *MemoryStore) LoadRegions() (peek.RegionLookup, error) {
	s.RegionLoads++
	if s.Err != nil {
		return nil, s.Err
	}
	lookup := peek.RegionLookup{}
	for id, name := range s.regions {
		lookup.Add(id, name)
	}
	return lookup, nil
}

func (s *MemoryStore) FindRomByHash(hash string) (*peek.RomIdentity, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	rom, ok := s.roms[hash]
	if !ok {
		return nil, nil
	}
	return &rom, nil
}

func (s *MemoryStore) FindReleaseByRomID(romID int64) (*peek.ReleaseMetadata, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	rel, ok := s.releases[romID]
	if !ok {
		return nil, nil
	}
	return &rel, nil
}

// MemoryReport is a report captured by MemoryReports.
type MemoryReport struct {
	Lines  []string
	Closed bool
	// FailAfter makes the write after this many lines fail when positive.
	FailAfter int
	failErr   error
}

func (r *MemoryReport) WriteHeader() error {
	return r.write(peek.ReportHeader)
}

func (r *MemoryReport) WriteRow(name, regions, year, developer, genre string) error {
	return r.write(strings.Join([]string{name, regions, year, developer, genre}, "\t") + "\n")
}

func (r *MemoryReport) Close() error {
	r.Closed = true
	return nil
}

// String returns the full report content.
func (r *MemoryReport) String() string {
	return strings.Join(r.Lines, "")
}

func (r *MemoryReport) write(line string) error {
	if r.FailAfter > 0 && len(r.Lines) >= r.FailAfter {
		return r.failErr
	}
	r.Lines = append(r.Lines, line)
	return nil
}

// MemoryReports is a peek.ReportOpener keeping reports in memory by path.
// Creating a path again replaces the earlier report.
type MemoryReports struct {
	Reports map[string]*MemoryReport
	// Order lists created paths in creation order.
	Order []string

	failAfter int
	failErr   error
}

// NewMemoryReports creates an empty opener.
func NewMemoryReports() *MemoryReports {
	return &MemoryReports{Reports: make(map[string]*MemoryReport)}
}

// FailWritesAfter makes every report created afterwards fail with err
// once it holds n lines.
func (m *MemoryReports) FailWritesAfter(n int, err error) {
	m.failAfter = n
	m.failErr = err
}

func (m *MemoryReports) Create(path string) (peek.ReportWriter, error) {
	r := &MemoryReport{FailAfter: m.failAfter, failErr: m.failErr}
	m.Reports[path] = r
	m.Order = append(m.Order, path)
	return r, nil
}

// Compile-time checks
var (
	_ peek.MetadataStore = (*MemoryStore)(nil)
	_ peek.ReportWriter  = (*MemoryReport)(nil)
	_ peek.ReportOpener  = (*MemoryReports)(nil)
)
