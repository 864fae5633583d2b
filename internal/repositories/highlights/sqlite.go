package highlights

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tuyetlangsa/rehi-go/internal/common"
	"github.com/tuyetlangsa/rehi-go/internal/dbx"
	"github.com/tuyetlangsa/rehi-go/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, h *models.Highlight) error {
	query := `INSERT INTO highlights
			(id, article_id, location, text, html, markdown, color, note, created_at, updated_at, created_by, deleted)
			values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		h.Id, h.ArticleId, h.Location, h.Text, h.HTML, h.Markdown,
		h.Color, h.Note, h.CreatedAt, h.UpdatedAt, h.CreatedBy, h.IsDeleted)
	if err != nil {
		return fmt.Errorf("failed to insert highlight: %w", err)
	}
	return nil
}

// GetAllByArticle lists non-deleted highlights in creation order.
func (r *SQLiteRepository) GetAllByArticle(ctx context.Context, articleId string) ([]models.Highlight, error) {
	query := `select id, article_id, location, text, html, markdown, color, note, created_at, updated_at, created_by, deleted
			from highlights where article_id=? and deleted=0 order by created_at, id`
	rows, err := r.db.QueryContext(ctx, query, articleId)
	if err != nil {
		return nil, fmt.Errorf("failed to select highlights: %w", err)
	}
	defer rows.Close()

	var result []models.Highlight
	for rows.Next() {
		var item models.Highlight
		if err := scanHighlight(rows.Scan, &item); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Highlight, error) {
	query := `select id, article_id, location, text, html, markdown, color, note, created_at, updated_at, created_by, deleted
			from highlights where id=?`
	row := r.db.QueryRowContext(ctx, query, id)

	h := &models.Highlight{}
	if err := scanHighlight(row.Scan, h); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return h, nil
}

func (r *SQLiteRepository) UpdateNote(ctx context.Context, id string, note string, updatedAt int64) error {
	query := `update highlights set note=?, updated_at=? where id=? and deleted=0`
	res, err := r.db.ExecContext(ctx, query, note, updatedAt, id)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	return requireOneRow(res)
}

func (r *SQLiteRepository) UpdateColor(ctx context.Context, id string, color string, updatedAt int64) error {
	query := `update highlights set color=?, updated_at=? where id=? and deleted=0`
	res, err := r.db.ExecContext(ctx, query, color, updatedAt, id)
	if err != nil {
		return fmt.Errorf("failed to update color: %w", err)
	}
	return requireOneRow(res)
}

// SoftDelete marks a highlight as deleted. It expects exactly one row to be affected.
func (r *SQLiteRepository) SoftDelete(ctx context.Context, id string, updatedAt int64) error {
	query := `update highlights set deleted=1, updated_at=? where id=? and deleted=0`
	res, err := r.db.ExecContext(ctx, query, updatedAt, id)
	if err != nil {
		return fmt.Errorf("failed to delete highlight: %w", err)
	}
	return requireOneRow(res)
}

func scanHighlight(scan func(dest ...any) error, h *models.Highlight) error {
	return scan(&h.Id, &h.ArticleId, &h.Location, &h.Text, &h.HTML, &h.Markdown,
		&h.Color, &h.Note, &h.CreatedAt, &h.UpdatedAt, &h.CreatedBy, &h.IsDeleted)
}

func requireOneRow(res sql.Result) error {
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return fmt.Errorf("wrong rows affected count %d: %w", ra, common.ErrorNotFound)
	}
	return nil
}
