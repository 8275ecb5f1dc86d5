// Package sqlite provides a SQLite-based implementation of the driven store ports.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements multiple store interfaces
// through a single database connection pool:
//
//   - ArticleStore: Article persistence keyed by title
//   - PreferenceStore: Per-user preference rows
//   - RunStore: Ingestion run history
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.newsagg/data/newsagg.db
//
// # Thread Safety
//
// All operations are safe for concurrent use. Readers proceed while an
// ingestion pass writes, using the WAL journal; they may observe a partially
// applied batch.
package sqlite
