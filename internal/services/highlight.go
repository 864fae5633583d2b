// Package services ties selection capture, local persistence, and the
// remote sync collaborator together. All mutations are local-first: the
// SQLite write is the source of truth, the remote notify runs in a
// goroutine and its failure is only logged.
package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tuyetlangsa/rehi-go/internal/common"
	"github.com/tuyetlangsa/rehi-go/internal/logging"
	"github.com/tuyetlangsa/rehi-go/internal/models"
	"github.com/tuyetlangsa/rehi-go/internal/remote"
	"github.com/tuyetlangsa/rehi-go/internal/repositories/highlights"
	"github.com/tuyetlangsa/rehi-go/internal/repositories/metadata"
	"github.com/tuyetlangsa/rehi-go/internal/selection"
)

type HighlightService interface {
	// CreateFromSelection persists a captured selection as a highlight and
	// notifies the remote. Empty selections are rejected with
	// common.ErrorEmptySelection.
	CreateFromSelection(ctx context.Context, articleId string, sel *selection.Selection, color string) (*models.Highlight, error)

	// ListForArticle returns the article's live highlights in creation order.
	ListForArticle(ctx context.Context, articleId string) ([]models.Highlight, error)

	// SaveNote replaces a highlight's note.
	SaveNote(ctx context.Context, id string, note string) error

	// Delete soft-deletes a highlight.
	Delete(ctx context.Context, id string) error

	// Close waits for in-flight remote notifications to finish. Short-lived
	// callers must call it before exiting or pending notifies are lost.
	Close() error
}

type highlightService struct {
	client        remote.Client
	highlightRepo highlights.Repository
	metadataRepo  metadata.Repository
	log           logging.Logger

	// pending counts in-flight notify goroutines so Close can drain them.
	pending sync.WaitGroup

	// now returns epoch milliseconds; swapped out in tests.
	now func() int64
}

func NewHighlightService(client remote.Client, highlightRepo highlights.Repository, metadataRepo metadata.Repository, log logging.Logger) HighlightService {
	return &highlightService{
		client:        client,
		highlightRepo: highlightRepo,
		metadataRepo:  metadataRepo,
		log:           log,
		now:           func() int64 { return time.Now().UnixMilli() },
	}
}

func (s *highlightService) CreateFromSelection(ctx context.Context, articleId string, sel *selection.Selection, color string) (*models.Highlight, error) {
	if sel == nil || strings.TrimSpace(sel.Text) == "" {
		return nil, common.ErrorEmptySelection
	}

	now := s.now()
	h := &models.Highlight{
		Id:        uuid.NewString(),
		ArticleId: articleId,
		Location:  sel.Location,
		Text:      sel.Text,
		HTML:      sel.HTML,
		Markdown:  sel.Markdown,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: models.CreatedByGo,
	}

	if err := s.highlightRepo.Insert(ctx, h); err != nil {
		return nil, fmt.Errorf("saving error: %w", err)
	}
	s.advanceLastUpdate(ctx, now)

	s.notify("create highlight", func(ctx context.Context) error {
		return s.client.CreateHighlight(ctx, &remote.CreateHighlightRequest{
			Id:        h.Id,
			ArticleId: h.ArticleId,
			Location:  h.Location,
			HTML:      h.HTML,
			Markdown:  h.Markdown,
			PlainText: h.Text,
			Color:     h.Color,
			CreateAt:  h.CreatedAt,
			CreateBy:  h.CreatedBy,
		})
	})

	return h, nil
}

func (s *highlightService) ListForArticle(ctx context.Context, articleId string) ([]models.Highlight, error) {
	rows, err := s.highlightRepo.GetAllByArticle(ctx, articleId)
	if err != nil {
		return nil, fmt.Errorf("error: %w", err)
	}
	return rows, nil
}

func (s *highlightService) SaveNote(ctx context.Context, id string, note string) error {
	now := s.now()
	if err := s.highlightRepo.UpdateNote(ctx, id, note, now); err != nil {
		return fmt.Errorf("error saving note: %w", err)
	}
	s.advanceLastUpdate(ctx, now)

	s.notify("save note", func(ctx context.Context) error {
		return s.client.SaveHighlightNote(ctx, &remote.SaveHighlightNoteRequest{
			HighlightId: id,
			Note:        note,
			SavedAt:     now,
		})
	})
	return nil
}

func (s *highlightService) Delete(ctx context.Context, id string) error {
	now := s.now()
	if err := s.highlightRepo.SoftDelete(ctx, id, now); err != nil {
		return fmt.Errorf("error deleting highlight: %w", err)
	}
	s.advanceLastUpdate(ctx, now)

	s.notify("delete highlight", func(ctx context.Context) error {
		return s.client.DeleteHighlight(ctx, id, now)
	})
	return nil
}

// advanceLastUpdate moves last_update_time forward, never backward.
func (s *highlightService) advanceLastUpdate(ctx context.Context, ts int64) {
	current, err := s.metadataRepo.Get(ctx, common.LastUpdateTimeKey)
	if err != nil {
		s.log.Warn(ctx, "failed to read last update time", "error", err)
		return
	}
	if current != "" {
		if prev, err := strconv.ParseInt(current, 10, 64); err == nil && prev >= ts {
			return
		}
	}
	if err := s.metadataRepo.Set(ctx, common.LastUpdateTimeKey, strconv.FormatInt(ts, 10)); err != nil {
		s.log.Warn(ctx, "failed to store last update time", "error", err)
	}
}

// notify mirrors a mutation to the remote without blocking the caller.
// The local write already succeeded; a remote failure is logged and the
// user may retry later, there is no rollback.
func (s *highlightService) notify(op string, call func(ctx context.Context) error) {
	if s.client == nil {
		return
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := call(ctx); err != nil {
			s.log.Warn(ctx, "remote notify failed", "op", op, "error", err)
		}
	}()
}

// Close blocks until every notify started so far has completed.
func (s *highlightService) Close() error {
	s.pending.Wait()
	return nil
}
