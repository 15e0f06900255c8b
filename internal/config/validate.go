package config

import (
	"os"
	"strings"

	"soundvault/internal/faults"
)

// Validate ensures the configuration is usable for vault construction.
// The library root must already exist and be a directory.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Vault.LibraryDir) == "" {
		return faults.Wrap(faults.ErrConfig, "config", "validate", "vault.library_dir must be set", nil)
	}
	info, err := os.Stat(c.Vault.LibraryDir)
	if err != nil {
		if os.IsNotExist(err) {
			return faults.Wrap(faults.ErrConfig, "config", "validate", "library directory does not exist: "+c.Vault.LibraryDir, nil)
		}
		return faults.Wrap(faults.ErrConfig, "config", "validate", "stat library directory", err)
	}
	if !info.IsDir() {
		return faults.Wrap(faults.ErrConfig, "config", "validate", "library path is not a directory: "+c.Vault.LibraryDir, nil)
	}
	if strings.TrimSpace(c.Vault.DatabasePath) == "" {
		return faults.Wrap(faults.ErrConfig, "config", "validate", "vault.database_path must be set", nil)
	}
	if c.Vault.MaxConnections <= 0 {
		return faults.Wrap(faults.ErrConfig, "config", "validate", "vault.max_connections must be positive", nil)
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "console", "json":
	default:
		return faults.Wrap(faults.ErrConfig, "config", "validate", "logging.format must be console or json", nil)
	}
	return nil
}
