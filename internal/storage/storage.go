// Package storage opens the local SQLite database, runs the embedded
// migrations, and bundles the repositories the rest of the client uses.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/tuyetlangsa/rehi-go/internal/migrations"
	"github.com/tuyetlangsa/rehi-go/internal/repositories/articles"
	"github.com/tuyetlangsa/rehi-go/internal/repositories/highlights"
	"github.com/tuyetlangsa/rehi-go/internal/repositories/metadata"
)

// Repositories bundles the local persistence layer.
type Repositories struct {
	Articles   articles.Repository
	Highlights highlights.Repository
	Metadata   metadata.Repository
	DB         *sql.DB
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the database at dsn, migrates it, and returns the
// repository bundle. The caller owns closing Repositories.DB.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Repositories{
		Articles:   articles.NewSQLiteRepository(db),
		Highlights: highlights.NewSQLiteRepository(db),
		Metadata:   metadata.NewSQLiteRepository(db),
		DB:         db,
	}, nil
}
