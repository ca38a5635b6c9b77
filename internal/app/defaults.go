package app

import (
	"fmt"
	"os"
	"path/filepath"

	"peek-go/internal/config"
)

// Defaults holds the locations peek uses when nothing else is configured.
type Defaults struct {
	ConfigPath string
	BaseDir    string
}

// GetDefaults resolves application default paths, checking environment variables first.
// Environment variables:
//   - PEEK_CONFIG_PATH: config file location (default: ~/.config/peek.toml)
//   - PEEK_HOME: base directory for the database, reports and logs (default: ~/.local/share/peek)
func GetDefaults() (*Defaults, error) {
	configPath, err := fromEnvOrHome("PEEK_CONFIG_PATH", ".config", "peek.toml")
	if err != nil {
		return nil, err
	}

	baseDir, err := fromEnvOrHome("PEEK_HOME", ".local", "share", "peek")
	if err != nil {
		return nil, err
	}

	return &Defaults{ConfigPath: configPath, BaseDir: baseDir}, nil
}

// Config returns a config populated with the default paths.
func (d *Defaults) Config() *config.Config {
	return config.NewConfig(d.BaseDir)
}

// LoadConfig reads the config file, falling back to defaults when it does
// not exist, and layers the command-line overrides on top.
func (d *Defaults) LoadConfig(o config.Overrides) (*config.Config, error) {
	cfg, err := config.ReadOrDefault(d.ConfigPath, d.BaseDir)
	if err != nil {
		return nil, err
	}
	cfg.Apply(o)
	return cfg, nil
}

// fromEnvOrHome returns the env var value when set, otherwise the path
// elements joined under the user's home directory.
func fromEnvOrHome(env string, elem ...string) (string, error) {
	if path := os.Getenv(env); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(append([]string{homeDir}, elem...)...), nil
}
