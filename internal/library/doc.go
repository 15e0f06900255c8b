// Package library persists sound and collection metadata in SQLite and is
// the single source of truth for what the vault contains.
//
// The Store manages the database connection pool, schema migrations, CRUD
// for sounds and collections, the generic custom-metadata side table, and
// text/tag search. Asset files on disk are outside its responsibility; the
// vault facade sequences filesystem mutations around the row mutations here.
//
// Multi-statement mutations (upsert, delete) run inside a single transaction
// so a failure never leaves a partially written record. Tag sequences are
// stored as a JSON-encoded array; a malformed encoding degrades to an empty
// sequence on read rather than failing the lookup.
package library
