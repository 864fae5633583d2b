package articles

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

// CreateOrUpdate upserts an article by id. On conflict, content and flag
// columns are updated.
func (r *SQLiteRepository) CreateOrUpdate(ctx context.Context, a *models.Article) error {
	query := `INSERT INTO articles
			(id, url, title, author, summary, image_preview_url, text_content, cleaned_html,
			 language, word_count, time_to_read, created_at, updated_at, deleted, public)
			values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET url = excluded.url,
				title = excluded.title,
				author = excluded.author,
				summary = excluded.summary,
				image_preview_url = excluded.image_preview_url,
				text_content = excluded.text_content,
				cleaned_html = excluded.cleaned_html,
				language = excluded.language,
				word_count = excluded.word_count,
				time_to_read = excluded.time_to_read,
				updated_at = excluded.updated_at,
				deleted = excluded.deleted,
				public = excluded.public
	`
	_, err := r.db.ExecContext(ctx, query,
		a.Id, a.Url, a.Title, a.Author, a.Summary, a.ImagePreviewUrl, a.TextContent, a.CleanedHTML,
		a.Language, a.WordCount, a.TimeToRead, a.CreatedAt, a.UpdatedAt, a.IsDeleted, a.IsPublic)
	if err != nil {
		return fmt.Errorf("failed to upsert article: %w", err)
	}
	return nil
}

// GetAll lists all non-deleted articles, returning only listing fields.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Article, error) {
	query := `select id, url, title, author, summary, word_count, created_at, public
			from articles where deleted=0 order by created_at desc`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select articles: %w", err)
	}
	defer rows.Close()

	var result []models.Article
	for rows.Next() {
		var item models.Article
		if err := rows.Scan(&item.Id, &item.Url, &item.Title, &item.Author,
			&item.Summary, &item.WordCount, &item.CreatedAt, &item.IsPublic); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns a full non-deleted article.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	query := `select id, url, title, author, summary, image_preview_url, text_content, cleaned_html,
			language, word_count, time_to_read, created_at, updated_at, deleted, public
			from articles where deleted=0 and id=?`
	row := r.db.QueryRowContext(ctx, query, id)

	a := &models.Article{}
	err := row.Scan(&a.Id, &a.Url, &a.Title, &a.Author, &a.Summary, &a.ImagePreviewUrl,
		&a.TextContent, &a.CleanedHTML, &a.Language, &a.WordCount, &a.TimeToRead,
		&a.CreatedAt, &a.UpdatedAt, &a.IsDeleted, &a.IsPublic)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return a, nil
}

func (r *SQLiteRepository) SetPublic(ctx context.Context, id string, public bool, updatedAt int64) error {
	query := `update articles set public=?, updated_at=? where id=? and deleted=0`
	res, err := r.db.ExecContext(ctx, query, public, updatedAt, id)
	if err != nil {
		return fmt.Errorf("failed to update public flag: %w", err)
	}
	return requireOneRow(res)
}

// SoftDelete marks an article as deleted. It expects exactly one row to be affected.
func (r *SQLiteRepository) SoftDelete(ctx context.Context, id string, updatedAt int64) error {
	query := `update articles set deleted=1, updated_at=? where id=? and deleted=0`
	res, err := r.db.ExecContext(ctx, query, updatedAt, id)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	return requireOneRow(res)
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
