// Package vault is the entry point to a sound library: validated
// construction, file import and deletion, metadata updates, search, and
// collection management.
//
// Logical operations that touch both the filesystem and the database issue
// the filesystem mutation first (import writes the file before the row,
// delete removes the file before the rows). There is no cross-store
// transaction; the accepted failure mode is an orphaned asset directory
// that a reconciliation sweep can detect, never a metadata row whose
// backing file was silently lost.
package vault
