package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Config encapsulates all configuration values for a sound vault.
//
// Sections by concern:
//   - Vault: library root, database location, connection pool size
//   - Remote: optional remote catalog credentials and caching behavior
//   - Logging: log format and level
type Config struct {
	Vault   Vault   `toml:"vault"`
	Remote  Remote  `toml:"remote"`
	Logging Logging `toml:"logging"`
}

// Vault contains the local storage settings.
type Vault struct {
	// LibraryDir is the directory that holds one subdirectory per asset.
	LibraryDir string `toml:"library_dir"`
	// DatabasePath is the SQLite database location. Defaults to
	// soundvault.db inside LibraryDir.
	DatabasePath string `toml:"database_path"`
	// MaxConnections bounds how many database operations run in parallel.
	MaxConnections int `toml:"max_connections"`
}

// Remote contains settings for the external catalog client.
type Remote struct {
	APIKey         string `toml:"api_key"`
	CacheDownloads bool   `toml:"cache_downloads"`
}

// Logging contains log output settings.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Sample returns the annotated sample configuration file.
func Sample() string {
	return sampleConfig
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/soundvault/config.toml")
}

// Load parses a configuration file on top of the defaults. An empty path
// falls back to DefaultConfigPath. The returned config has all path fields
// expanded and normalized but is not yet validated; callers validate when
// they construct the vault.
func Load(path string) (*Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	expanded, err := expandPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file %s does not exist", expanded)
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize expands user paths and fills derived defaults.
func (c *Config) Normalize() error {
	var err error
	if c.Vault.LibraryDir, err = expandPath(c.Vault.LibraryDir); err != nil {
		return fmt.Errorf("vault.library_dir: %w", err)
	}
	if strings.TrimSpace(c.Vault.DatabasePath) == "" && c.Vault.LibraryDir != "" {
		c.Vault.DatabasePath = filepath.Join(c.Vault.LibraryDir, "soundvault.db")
	}
	if c.Vault.DatabasePath, err = expandPath(c.Vault.DatabasePath); err != nil {
		return fmt.Errorf("vault.database_path: %w", err)
	}
	if c.Vault.MaxConnections <= 0 {
		c.Vault.MaxConnections = defaultMaxConnections
	}
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Format) == "" {
		c.Logging.Format = defaultLogFormat
	}
	return nil
}

// EnsureDirectories creates the directory that will hold the database file.
// The library root itself is the caller's responsibility; validation rejects
// a missing root rather than silently creating one.
func (c *Config) EnsureDirectories() error {
	if dir := filepath.Dir(c.Vault.DatabasePath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
