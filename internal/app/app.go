package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"peek-go/internal/config"
	"peek-go/internal/database"
	"peek-go/internal/fs"
	"peek-go/internal/hash"
	"peek-go/internal/importer"
	"peek-go/internal/peek"
	"peek-go/internal/report"
	"peek-go/internal/setup"
)

// lockFileName is created in the output directory for the duration of a scan.
const lockFileName = ".peek.lock"

// ErrScanLocked is returned when another scan owns the output directory.
var ErrScanLocked = errors.New("another scan is writing to the output directory")

// PeekApp is the application layer between the CLI and ScanService.
// It constructs all dependencies from config, owns the log file and
// output lock, and releases them on Close.
type PeekApp struct {
	cfg     *config.Config
	out     io.Writer
	fsmgr   *fs.OSFilesystemManager
	logger  *slog.Logger
	logFile *os.File
	op      *Operation
	clock   peek.Clock

	// Interactive reports whether out is a terminal. It enables the
	// progress line and the setup prompt.
	Interactive bool
}

// NewPeekApp creates a PeekApp from the given config.
// operation identifies the CLI command being run (e.g. "Scan", "Setup").
// The caller must call Close when done.
func NewPeekApp(cfg *config.Config, operation string, out io.Writer) (*PeekApp, error) {
	clock := peek.RealClock{}
	op := NewOperation(operation, peek.UUIDGenerator{}, clock)

	logger, logFile, err := newLogger(cfg.LogDir, op.RunID)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger.Info("operation started", "operation", op.Operation)

	return &PeekApp{
		cfg:         cfg,
		out:         out,
		fsmgr:       fs.NewOSFilesystemManager(cfg.Filesystem.Ignore),
		logger:      logger,
		logFile:     logFile,
		op:          op,
		clock:       clock,
		Interactive: isTerminal(out),
	}, nil
}

// isTerminal reports whether the stream is a terminal, including Cygwin/MSYS ptys.
func isTerminal(stream any) bool {
	f, ok := stream.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return term.IsTerminal(int(fd)) || isatty.IsCygwinTerminal(fd)
}

// Config returns the effective configuration for this run.
func (a *PeekApp) Config() *config.Config {
	return a.cfg
}

// Logger returns the run's logger as a peek.Logger.
func (a *PeekApp) Logger() peek.Logger {
	return &slogAdapter{l: a.logger}
}

// Setup makes sure the reference database exists, downloading it after
// confirmation on in. It returns false when the user declined.
func (a *PeekApp) Setup(ctx context.Context, in io.Reader, assumeYes bool) (bool, error) {
	s := setup.New(a.cfg.DbPath, a.cfg.Setup.ReleaseURL, in, a.out, a.Logger())
	s.AssumeYes = assumeYes
	s.Interactive = a.Interactive && isTerminal(in)

	ok, err := s.Run(ctx)
	a.op.Finish(err)
	return ok, err
}

// Scan checks the configured paths, then writes one report per whitelisted
// core and imports each one. Path checks run before the database is opened
// or the output directory is touched.
func (a *PeekApp) Scan() (results []*peek.CoreResult, err error) {
	defer func() { a.op.Finish(err) }()

	if err := peek.CheckPaths(a.fsmgr, a.cfg.GamesPath, a.cfg.DbPath); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(a.cfg.OutputPath, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	lock := flock.New(filepath.Join(a.cfg.OutputPath, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquiring output lock: %w", err)
	}
	if !locked {
		return nil, ErrScanLocked
	}
	defer lock.Unlock()

	store, err := database.NewMetadataStoreFromConfig(a.cfg)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	logger := a.Logger()
	progress := peek.NewProgress(a.out, a.clock, a.Interactive)
	svc := peek.NewScanService(
		store,
		hash.NewContentHasher(logger),
		a.fsmgr,
		report.Opener{},
		importer.NewImporter(a.cfg.PeekPath, logger),
		progress,
		logger,
	)

	results, err = svc.Scan(a.cfg.GamesPath, a.cfg.OutputPath)
	if err != nil {
		a.logger.Error("scan failed", "error", err)
		return results, err
	}
	progress.Done()
	return results, nil
}

// Close finalizes the operation and closes the log file.
func (a *PeekApp) Close() error {
	if !a.op.Finished() {
		a.op.Finish(nil)
	}
	a.logger.Info("operation finished",
		"operation", a.op.Operation,
		"status", a.op.Status,
		"elapsed", a.clock.Now().Sub(a.op.StartedAt).String(),
	)

	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil {
			return fmt.Errorf("closing log file: %w", err)
		}
	}
	return nil
}
