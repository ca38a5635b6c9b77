package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for peek.
type Config struct {
	BaseDir    string           `toml:"base_dir"`
	GamesPath  string           `toml:"games_path"`  // root holding one directory per core
	DbPath     string           `toml:"db_path"`     // OpenVGDB SQLite file
	OutputPath string           `toml:"output_path"` // where <core>.txt reports are written
	PeekPath   string           `toml:"peek_path"`   // import executable; empty disables import
	LogDir     string           `toml:"log_dir"`
	Filesystem FilesystemConfig `toml:"filesystem"`
	Setup      SetupConfig      `toml:"setup"`
}

// FilesystemConfig holds filesystem-related settings.
type FilesystemConfig struct {
	// Ignore lists file name patterns excluded from scanning.
	Ignore []string `toml:"ignore"`
}

// SetupConfig controls the first-run reference database download.
type SetupConfig struct {
	ReleaseURL string `toml:"release_url,omitempty"` // defaults to the OpenVGDB latest release
}

// Overrides are command-line values layered over the config file.
// Empty fields leave the file value in place.
type Overrides struct {
	GamesPath  string
	DbPath     string
	OutputPath string
	PeekPath   string
}

// NewConfig creates a new Config with default paths under baseDir.
func NewConfig(baseDir string) *Config {
	return &Config{
		BaseDir:    baseDir,
		DbPath:     filepath.Join(baseDir, "openvgdb.sqlite"),
		OutputPath: filepath.Join(baseDir, "output"),
		LogDir:     filepath.Join(baseDir, "log"),
	}
}

// Apply layers non-empty overrides onto the config.
func (c *Config) Apply(o Overrides) {
	if o.GamesPath != "" {
		c.GamesPath = o.GamesPath
	}
	if o.DbPath != "" {
		c.DbPath = o.DbPath
	}
	if o.OutputPath != "" {
		c.OutputPath = o.OutputPath
	}
	if o.PeekPath != "" {
		c.PeekPath = o.PeekPath
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// ReadOrDefault reads the config at path. A missing file is not an error:
// the defaults for baseDir are returned instead. Values the file leaves
// empty are filled from the same defaults.
func ReadOrDefault(path, baseDir string) (*Config, error) {
	defaults := NewConfig(baseDir)

	cfg, err := ReadFromFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaults, nil
		}
		return nil, err
	}

	if cfg.BaseDir == "" {
		cfg.BaseDir = defaults.BaseDir
	}
	if cfg.DbPath == "" {
		cfg.DbPath = defaults.DbPath
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = defaults.OutputPath
	}
	if cfg.LogDir == "" {
		cfg.LogDir = defaults.LogDir
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
