package highlights

import (
	"context"

	"github.com/tuyetlangsa/rehi-go/internal/models"
)

// Repository describes CRUD operations for Highlight records.
// Implementations are typically backed by a local SQLite database.
type Repository interface {
	// Insert stores a new highlight.
	Insert(ctx context.Context, h *models.Highlight) error

	// GetAllByArticle returns the article's highlights in creation order,
	// excluding soft-deleted ones. Application order matters: rendering is
	// order-sensitive, so creation order is preserved across reads.
	GetAllByArticle(ctx context.Context, articleId string) ([]models.Highlight, error)

	// GetByID returns a highlight by its identifier, deleted or not.
	GetByID(ctx context.Context, id string) (*models.Highlight, error)

	// UpdateNote replaces the highlight's note and advances updatedAt.
	UpdateNote(ctx context.Context, id string, note string, updatedAt int64) error

	// UpdateColor replaces the highlight's color and advances updatedAt.
	UpdateColor(ctx context.Context, id string, color string, updatedAt int64) error

	// SoftDelete marks a highlight deleted, keeping the row as a tombstone.
	SoftDelete(ctx context.Context, id string, updatedAt int64) error
}
