// Package articles provides the local persistence layer for saved
// articles, following the same Repository/SQLiteRepository split as the
// highlights package.
package articles

import (
	"context"

	"github.com/tuyetlangsa/rehi-go/internal/models"
)

// Repository describes CRUD operations for Article records.
type Repository interface {
	// CreateOrUpdate upserts an article by id.
	CreateOrUpdate(ctx context.Context, a *models.Article) error

	// GetAll lists non-deleted articles, newest first, without the heavy
	// content columns.
	GetAll(ctx context.Context) ([]models.Article, error)

	// GetByID returns a full non-deleted article.
	GetByID(ctx context.Context, id string) (*models.Article, error)

	// SetPublic toggles the public (shareable read-only view) flag.
	SetPublic(ctx context.Context, id string, public bool, updatedAt int64) error

	// SoftDelete marks an article deleted.
	SoftDelete(ctx context.Context, id string, updatedAt int64) error
}
