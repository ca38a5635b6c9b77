package peek

import (
	"fmt"
	"os"
	"path/filepath"
)

// ReportHeader is the first line of every report.
const ReportHeader = "ROM\tRegion\tYear\tDeveloper\tGenre\n"

// ScanService orchestrates the walk, hash, lookup and report sequence for
// every whitelisted core under a games root.
type ScanService struct {
	store    MetadataStore
	hasher   Hasher
	fsmgr    FilesystemManager
	reports  ReportOpener
	importer Importer
	progress *Progress
	logger   Logger
}

// NewScanService creates a ScanService with the provided dependencies.
func NewScanService(store MetadataStore, hasher Hasher, fsmgr FilesystemManager, reports ReportOpener, importer Importer, progress *Progress, logger Logger) *ScanService {
	return &ScanService{
		store:    store,
		hasher:   hasher,
		fsmgr:    fsmgr,
		reports:  reports,
		importer: importer,
		progress: progress,
		logger:   logger,
	}
}

// CheckPaths verifies the scan preconditions: gamesPath must be a directory
// and dbPath must be a regular file. It must run before the database is
// opened or any report is written.
func CheckPaths(fsmgr FilesystemManager, gamesPath, dbPath string) error {
	info, err := fsmgr.Stat(gamesPath)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrGamesPathMissing, gamesPath)
	}
	info, err = fsmgr.Stat(dbPath)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: %s", ErrDatabaseMissing, dbPath)
	}
	return nil
}

// ScanCores discovers the whitelisted core directories under gamesPath.
// Hidden directories and directories outside the whitelist are ignored.
func (s *ScanService) ScanCores(gamesPath string) ([]Core, error) {
	names, err := s.fsmgr.FindCoreDirs(gamesPath)
	if err != nil {
		return nil, fmt.Errorf("finding core directories: %w", err)
	}

	var cores []Core
	for _, name := range names {
		core, ok := LookupCore(name)
		if !ok {
			s.logger.Debug("ignoring directory", "name", name)
			continue
		}
		cores = append(cores, core)
	}
	return cores, nil
}

// Scan writes one report per whitelisted core under gamesPath into
// outputPath and returns a summary per core, in scan order.
//
// Regions are loaded once before any file is processed. Lookup misses are
// skipped silently; database and report I/O errors abort the scan.
func (s *ScanService) Scan(gamesPath, outputPath string) ([]*CoreResult, error) {
	if err := os.MkdirAll(outputPath, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	s.logger.Info("reading regions")
	regions, err := s.store.LoadRegions()
	if err != nil {
		return nil, fmt.Errorf("loading regions: %w", err)
	}

	cores, err := s.ScanCores(gamesPath)
	if err != nil {
		return nil, err
	}
	s.logger.Info("scanning", "games_path", gamesPath, "cores", len(cores))

	results := make([]*CoreResult, 0, len(cores))
	for i, core := range cores {
		result, err := s.scanCore(core, filepath.Join(gamesPath, core.Name), outputPath, i, len(cores), regions)
		if err != nil {
			return results, fmt.Errorf("scanning core %s: %w", core.Name, err)
		}
		results = append(results, result)

		s.progress.Step(core.Name, i, len(cores), "importing")
		if err := s.importer.Import(core.Name, result.ReportPath); err != nil {
			return results, fmt.Errorf("importing core %s: %w", core.Name, err)
		}
	}

	return results, nil
}

// scanCore processes a single core directory and closes its report.
func (s *ScanService) scanCore(core Core, dir, outputPath string, coreIndex, coreCount int, regions RegionLookup) (*CoreResult, error) {
	files, err := s.fsmgr.FindRomFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("finding rom files: %w", err)
	}

	result := &CoreResult{
		Core:       core.Name,
		ReportPath: filepath.Join(outputPath, core.Name+".txt"),
		Files:      len(files),
	}

	s.progress.Step(core.Name, coreIndex, coreCount, "")

	w, err := s.reports.Create(result.ReportPath)
	if err != nil {
		return nil, fmt.Errorf("creating report: %w", err)
	}
	if err := s.writeRows(w, core, files, coreIndex, coreCount, regions, result); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing report: %w", err)
	}

	s.logger.Info("core scanned",
		"core", core.Name,
		"files", result.Files,
		"rows", result.Rows,
		"unmatched", result.Unmatched,
		"unreleased", result.Unreleased,
		"truncated", result.Truncated,
	)
	return result, nil
}

func (s *ScanService) writeRows(w ReportWriter, core Core, files []RomFile, coreIndex, coreCount int, regions RegionLookup, result *CoreResult) error {
	if err := w.WriteHeader(); err != nil {
		return fmt.Errorf("writing report header: %w", err)
	}

	if len(files) == 0 {
		s.progress.Roms(core.Name, coreIndex, coreCount, 0, 0)
	}

	for i, file := range files {
		s.progress.Roms(core.Name, coreIndex, coreCount, i, len(files))

		hash, ok := s.hasher.Hash(file, core.HeaderSize)
		if !ok {
			// An unhashable file ends the core: the remaining files are not
			// processed, rows already written stay in the report.
			result.Truncated = true
			result.StoppedAt = file.Name
			s.logger.Warn("unhashable file, skipping rest of core", "core", core.Name, "file", file.Path)
			return nil
		}
		result.Processed++

		rom, err := s.store.FindRomByHash(hash)
		if err != nil {
			return fmt.Errorf("looking up %s: %w", file.Name, err)
		}
		if rom == nil {
			result.Unmatched++
			s.logger.Debug("no rom for hash", "file", file.Name, "hash", hash)
			continue
		}

		release, err := s.store.FindReleaseByRomID(rom.RomID)
		if err != nil {
			return fmt.Errorf("looking up release for %s: %w", file.Name, err)
		}
		if release == nil {
			result.Unreleased++
			s.logger.Debug("no release for rom", "file", file.Name, "rom_id", rom.RomID)
			continue
		}

		err = w.WriteRow(
			file.Name,
			regions.Render(rom.RegionID),
			CleanField(ExtractYear(release.ReleaseDate)),
			CleanField(release.Developer.String),
			CleanField(NormalizeGenre(release.Genre)),
		)
		if err != nil {
			return fmt.Errorf("writing row for %s: %w", file.Name, err)
		}
		result.Rows++
	}
	return nil
}
