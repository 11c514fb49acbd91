// Package storage provides the persistent key-value stores that back the
// ScamEye usage counters.
//
// SQLiteStore keeps the values in a single SQLite file (via
// modernc.org/sqlite, which needs no cgo) so the counters survive across
// runs, the way the browser's local storage survives page loads.
// MemoryStore keeps them in process and is used by tests and by callers
// that do not want persistence.
//
// Both stores hold string values; the counter encoding (decimal strings)
// is owned by the stats package.
package storage
