// Package config loads, normalizes, and validates SoundVault configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and centralizes every knob the vault needs:
// library root, database location, connection pool size, remote catalog
// credentials, and logging options.
//
// Always obtain settings through this package so downstream code receives
// sanitized absolute paths and clear validation errors.
package config
