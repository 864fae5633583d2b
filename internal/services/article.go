package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tuyetlangsa/rehi-go/internal/dom"
	"github.com/tuyetlangsa/rehi-go/internal/highlight"
	"github.com/tuyetlangsa/rehi-go/internal/models"
	"github.com/tuyetlangsa/rehi-go/internal/repositories/articles"
)

type ArticleService interface {
	// Add stores a new article. Plain text and word count are derived from
	// the supplied HTML.
	Add(ctx context.Context, url, title, htmlContent string) (*models.Article, error)

	List(ctx context.Context) ([]models.Article, error)
	Get(ctx context.Context, id string) (*models.Article, error)
	SetPublic(ctx context.Context, id string, public bool) error
	Delete(ctx context.Context, id string) error
}

type articleService struct {
	articleRepo articles.Repository
	now         func() int64
}

func NewArticleService(articleRepo articles.Repository) ArticleService {
	return &articleService{
		articleRepo: articleRepo,
		now:         func() int64 { return time.Now().UnixMilli() },
	}
}

func (s *articleService) Add(ctx context.Context, url, title, htmlContent string) (*models.Article, error) {
	text, err := extractText(htmlContent)
	if err != nil {
		return nil, fmt.Errorf("failed to parse article html: %w", err)
	}

	now := s.now()
	a := &models.Article{
		Id:          uuid.NewString(),
		Url:         url,
		Title:       title,
		TextContent: text,
		CleanedHTML: htmlContent,
		WordCount:   len(strings.Fields(text)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.articleRepo.CreateOrUpdate(ctx, a); err != nil {
		return nil, fmt.Errorf("saving error: %w", err)
	}
	return a, nil
}

func (s *articleService) List(ctx context.Context) ([]models.Article, error) {
	rows, err := s.articleRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error: %w", err)
	}
	return rows, nil
}

func (s *articleService) Get(ctx context.Context, id string) (*models.Article, error) {
	a, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error: %w", err)
	}
	return a, nil
}

func (s *articleService) SetPublic(ctx context.Context, id string, public bool) error {
	if err := s.articleRepo.SetPublic(ctx, id, public, s.now()); err != nil {
		return fmt.Errorf("error updating article: %w", err)
	}
	return nil
}

func (s *articleService) Delete(ctx context.Context, id string) error {
	if err := s.articleRepo.SoftDelete(ctx, id, s.now()); err != nil {
		return fmt.Errorf("error deleting article: %w", err)
	}
	return nil
}

// extractText flattens the article HTML to the normalized plain text used
// for word counts and search.
func extractText(htmlContent string) (string, error) {
	root, err := dom.ParseFragment(htmlContent)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, tn := range dom.TextNodes(root) {
		b.WriteString(tn.Data)
		b.WriteByte(' ')
	}
	return highlight.Normalize(b.String()), nil
}
