// Package setup fetches the OpenVGDB reference database on first run.
package setup

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"

	"peek-go/internal/peek"
)

const (
	// DefaultReleaseURL is the GitHub API endpoint for the latest OpenVGDB release.
	DefaultReleaseURL = "https://api.github.com/repos/OpenVGDB/OpenVGDB/releases/latest"

	assetName = "openvgdb.zip"
	entryName = "openvgdb.sqlite"
)

// yesPattern accepts an empty answer, "y" or "yes" in any case.
var yesPattern = regexp.MustCompile(`^(|[yY]|[yY][eE][sS])$`)

type release struct {
	TagName string  `json:"tag_name"`
	Assets  []asset `json:"assets"`
}

type asset struct {
	Name        string `json:"name"`
	DownloadURL string `json:"browser_download_url"`
}

// Setup makes sure the reference database exists at DBPath, offering to
// download it when it does not.
type Setup struct {
	DBPath     string
	ReleaseURL string
	Client     *http.Client

	In  io.Reader
	Out io.Writer

	// AssumeYes skips the prompt and downloads.
	AssumeYes bool
	// Interactive is false when In is not a terminal; the prompt is then
	// answered "no" unless AssumeYes is set.
	Interactive bool

	logger peek.Logger
}

// New creates a Setup. An empty releaseURL uses DefaultReleaseURL.
func New(dbPath, releaseURL string, in io.Reader, out io.Writer, logger peek.Logger) *Setup {
	if releaseURL == "" {
		releaseURL = DefaultReleaseURL
	}
	return &Setup{
		DBPath:      dbPath,
		ReleaseURL:  releaseURL,
		Client:      &http.Client{Timeout: 10 * time.Minute},
		In:          in,
		Out:         out,
		Interactive: true,
		logger:      logger,
	}
}

// Run reports whether the database is available afterwards. A declined
// download prints "ok bye" and returns false with no error.
func (s *Setup) Run(ctx context.Context) (bool, error) {
	fmt.Fprint(s.Out, "Checking for OpenVGDB... ")
	if info, err := os.Stat(s.DBPath); err == nil && !info.IsDir() {
		fmt.Fprintln(s.Out, "found")
		return true, nil
	}
	fmt.Fprintln(s.Out, "not found")

	if !s.confirm() {
		fmt.Fprintln(s.Out, "ok bye")
		return false, nil
	}

	if err := s.Download(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Setup) confirm() bool {
	if s.AssumeYes {
		return true
	}
	if !s.Interactive {
		s.logger.Info("stdin is not a terminal, declining download")
		return false
	}

	fmt.Fprint(s.Out, "Download now? [Y/n] ")
	reader := bufio.NewReader(s.In)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false
	}
	return yesPattern.MatchString(strings.TrimRight(line, "\r\n"))
}

// Download fetches the latest release archive and extracts the database
// to DBPath. DBPath is replaced atomically; a failed download leaves no file.
func (s *Setup) Download(ctx context.Context) error {
	rel, err := s.latestRelease(ctx)
	if err != nil {
		return err
	}

	var url string
	for _, a := range rel.Assets {
		if a.Name == assetName {
			url = a.DownloadURL
			break
		}
	}
	if url == "" {
		return fmt.Errorf("release %s has no %s asset", rel.TagName, assetName)
	}

	dir := filepath.Dir(s.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}

	fmt.Fprintf(s.Out, "Downloading OpenVGDB %s...\n", rel.TagName)
	archive, err := os.CreateTemp(dir, "openvgdb-*.zip")
	if err != nil {
		return fmt.Errorf("creating temp archive: %w", err)
	}
	defer os.Remove(archive.Name())

	if err := s.fetch(ctx, url, archive); err != nil {
		archive.Close()
		return err
	}
	if err := archive.Close(); err != nil {
		return fmt.Errorf("closing temp archive: %w", err)
	}

	fmt.Fprintln(s.Out, "Extracting...")
	if err := extract(archive.Name(), s.DBPath); err != nil {
		return err
	}

	s.logger.Info("reference database installed", "tag", rel.TagName, "path", s.DBPath)
	fmt.Fprintln(s.Out, "Done")
	return nil
}

func (s *Setup) latestRelease(ctx context.Context) (*release, error) {
	req, err := s.newRequest(ctx, s.ReleaseURL)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("latest release returned %d", resp.StatusCode)
	}

	var rel release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("decoding release: %w", err)
	}
	return &rel, nil
}

func (s *Setup) fetch(ctx context.Context, url string, w io.Writer) error {
	req, err := s.newRequest(ctx, url)
	if err != nil {
		return err
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", assetName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download returned %d", resp.StatusCode)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("downloading %s: %w", assetName, err)
	}
	return nil
}

func (s *Setup) newRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	// GitHub rejects API requests without a user agent.
	req.Header.Set("User-Agent", "peek")
	return req, nil
}

// extract copies the database entry of the archive at zipPath to dest.
func extract(zipPath, dest string) error {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer zr.Close()

	var entry *zip.File
	for _, f := range zr.File {
		if f.Name == entryName {
			entry = f
			break
		}
	}
	if entry == nil {
		return fmt.Errorf("archive has no %s entry", entryName)
	}

	rc, err := entry.Open()
	if err != nil {
		return fmt.Errorf("opening %s: %w", entryName, err)
	}
	defer rc.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dest), "openvgdb-*.sqlite")
	if err != nil {
		return fmt.Errorf("creating temp database: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, rc); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("extracting %s: %w", entryName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp database: %w", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("installing database: %w", err)
	}
	return nil
}
