// Package logging builds the slog loggers used across the vault.
//
// Two output formats are supported: a compact console format that colors
// level tags when writing to a terminal, and line-delimited JSON for log
// collectors. Components receive a *slog.Logger at construction; Nop()
// stands in when a caller has no logging requirements.
package logging
