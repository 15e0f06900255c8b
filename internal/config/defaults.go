package config

const (
	defaultLibraryDir     = "~/.local/share/soundvault/library"
	defaultMaxConnections = 5
	defaultLogLevel       = "info"
	defaultLogFormat      = "console"
)

// Default returns the repository defaults. Paths are left unexpanded until
// Normalize runs.
func Default() Config {
	return Config{
		Vault: Vault{
			LibraryDir:     defaultLibraryDir,
			MaxConnections: defaultMaxConnections,
		},
		Remote: Remote{
			CacheDownloads: true,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
