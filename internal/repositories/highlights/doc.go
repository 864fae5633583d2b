// Package highlights provides the local persistence layer for highlight
// records.
//
// # Overview
//
// The package defines a Repository interface for CRUD operations on
// Highlight models (see internal/models). A SQLite-backed implementation
// (SQLiteRepository) persists data using a dbx.DBTX (either *sql.DB or
// *sql.Tx).
//
// # Data Model
//
// Each highlight stores its anchor text (the immutable plain text used for
// re-matching), denormalized html/markdown renderings, color, an optional
// note, timestamps, and a soft-delete flag. Deleted rows are kept as
// tombstones for synchronization; listings exclude them.
//
// # Concurrency
//
// Implementations are safe for concurrent use when backed by a properly
// configured *sql.DB. When using *sql.Tx (DBTX), follow normal transaction
// scoping rules.
//
// Key Types
//
//   - type Repository        — interface used by higher-level services
//   - type SQLiteRepository  — SQLite implementation over dbx.DBTX
//
// Typical Usage
//
//	repo := highlights.NewSQLiteRepository(db)
//	_ = repo.Insert(ctx, h)
//	list, _ := repo.GetAllByArticle(ctx, articleId)
//	_ = repo.UpdateNote(ctx, id, "note", now)
//	_ = repo.SoftDelete(ctx, id, now)
package highlights
