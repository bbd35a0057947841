// Package history keeps a SQLite ledger of exported subset artifacts.
//
// Each successful export appends a Record holding the artifact filename,
// format tag, language codes, sizes, and where the sink put it. The ledger is
// informational: nothing reads it back during a build, and schema changes bump
// schemaVersion in schema.go, after which users delete the database.
package history
