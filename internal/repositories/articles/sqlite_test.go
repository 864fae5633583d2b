package articles

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuyetlangsa/rehi-go/internal/common"
	"github.com/tuyetlangsa/rehi-go/internal/models"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE articles (
  id TEXT PRIMARY KEY,
  url TEXT NOT NULL DEFAULT '',
  title TEXT NOT NULL DEFAULT '',
  author TEXT NOT NULL DEFAULT '',
  summary TEXT NOT NULL DEFAULT '',
  image_preview_url TEXT NOT NULL DEFAULT '',
  text_content TEXT NOT NULL DEFAULT '',
  cleaned_html TEXT NOT NULL DEFAULT '',
  language TEXT NOT NULL DEFAULT '',
  word_count INTEGER NOT NULL DEFAULT 0,
  time_to_read TEXT NOT NULL DEFAULT '',
  created_at INTEGER NOT NULL,
  updated_at INTEGER NOT NULL DEFAULT 0,
  deleted INTEGER NOT NULL DEFAULT 0,
  public INTEGER NOT NULL DEFAULT 0
);
`)
	require.NoError(t, err)

	return db
}

func sample(id string, createdAt int64) *models.Article {
	return &models.Article{
		Id:          id,
		Url:         "https://example.com/post",
		Title:       "A title",
		TextContent: "Hello world",
		CleanedHTML: "<p>Hello world</p>",
		WordCount:   2,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func TestCreateOrUpdate_InsertAndUpdate(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	a := sample("a1", 100)
	require.NoError(t, r.CreateOrUpdate(ctx, a))

	got, err := r.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, a, got)

	a.Title = "Edited"
	a.UpdatedAt = 200
	require.NoError(t, r.CreateOrUpdate(ctx, a))

	got, err = r.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "Edited", got.Title)
	assert.Equal(t, int64(200), got.UpdatedAt)
}

func TestGetAll_OrderAndProjection(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.CreateOrUpdate(ctx, sample("old", 100)))
	require.NoError(t, r.CreateOrUpdate(ctx, sample("new", 200)))

	gone := sample("gone", 150)
	gone.IsDeleted = true
	require.NoError(t, r.CreateOrUpdate(ctx, gone))

	list, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].Id)
	assert.Equal(t, "old", list[1].Id)
	// heavy columns are not part of the listing
	assert.Empty(t, list[0].CleanedHTML)
}

func TestSetPublic(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.CreateOrUpdate(ctx, sample("a1", 100)))
	require.NoError(t, r.SetPublic(ctx, "a1", true, 200))

	got, err := r.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, got.IsPublic)
}

func TestSoftDelete(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.CreateOrUpdate(ctx, sample("a1", 100)))
	require.NoError(t, r.SoftDelete(ctx, "a1", 200))

	_, err := r.GetByID(ctx, "a1")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	err = r.SoftDelete(ctx, "missing", 300)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
