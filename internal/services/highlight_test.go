package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuyetlangsa/rehi-go/internal/common"
	"github.com/tuyetlangsa/rehi-go/internal/logging"
	"github.com/tuyetlangsa/rehi-go/internal/models"
	"github.com/tuyetlangsa/rehi-go/internal/remote"
	"github.com/tuyetlangsa/rehi-go/internal/selection"
)

type fakeHighlightRepo struct {
	mu       sync.Mutex
	inserted []*models.Highlight
	notes    map[string]string
	deleted  []string
	failWith error
}

func (f *fakeHighlightRepo) Insert(ctx context.Context, h *models.Highlight) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.inserted = append(f.inserted, h)
	return nil
}

func (f *fakeHighlightRepo) GetAllByArticle(ctx context.Context, articleId string) ([]models.Highlight, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []models.Highlight
	for _, h := range f.inserted {
		if h.ArticleId == articleId {
			out = append(out, *h)
		}
	}
	return out, nil
}

func (f *fakeHighlightRepo) GetByID(ctx context.Context, id string) (*models.Highlight, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, h := range f.inserted {
		if h.Id == id {
			return h, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeHighlightRepo) UpdateNote(ctx context.Context, id, note string, updatedAt int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	if f.notes == nil {
		f.notes = map[string]string{}
	}
	f.notes[id] = note
	return nil
}

func (f *fakeHighlightRepo) UpdateColor(ctx context.Context, id, color string, updatedAt int64) error {
	return nil
}

func (f *fakeHighlightRepo) SoftDelete(ctx context.Context, id string, updatedAt int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeMetadataRepo struct {
	mu   sync.Mutex
	data map[string]string
}

func (f *fakeMetadataRepo) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data[key], nil
}

func (f *fakeMetadataRepo) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.data == nil {
		f.data = map[string]string{}
	}
	f.data[key] = value
	return nil
}

func (f *fakeMetadataRepo) Delete(ctx context.Context, key string) error { return nil }
func (f *fakeMetadataRepo) Clear(ctx context.Context) error              { return nil }
func (f *fakeMetadataRepo) List(ctx context.Context) (map[string]string, error) {
	return f.data, nil
}

type fakeRemote struct {
	mu      sync.Mutex
	created []*remote.CreateHighlightRequest
	notes   []*remote.SaveHighlightNoteRequest
	deletes []string
	err     error
	done    chan struct{}
	// block, when set, parks every call until the channel is closed
	block chan struct{}
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{done: make(chan struct{}, 8)}
}

func (f *fakeRemote) Close() error                   { return nil }
func (f *fakeRemote) Ping(ctx context.Context) error { return nil }

func (f *fakeRemote) CreateHighlight(ctx context.Context, req *remote.CreateHighlightRequest) error {
	f.mu.Lock()
	f.created = append(f.created, req)
	f.mu.Unlock()
	f.done <- struct{}{}
	return f.err
}

func (f *fakeRemote) DeleteHighlight(ctx context.Context, highlightId string, updatedAt int64) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	f.deletes = append(f.deletes, highlightId)
	f.mu.Unlock()
	f.done <- struct{}{}
	return f.err
}

func (f *fakeRemote) SaveHighlightNote(ctx context.Context, req *remote.SaveHighlightNoteRequest) error {
	f.mu.Lock()
	f.notes = append(f.notes, req)
	f.mu.Unlock()
	f.done <- struct{}{}
	return f.err
}

func waitRemote(t *testing.T, f *fakeRemote) {
	t.Helper()
	select {
	case <-f.done:
	case <-time.After(time.Second):
		t.Fatal("remote notify never fired")
	}
}

func newService(rem remote.Client, repo *fakeHighlightRepo, meta *fakeMetadataRepo) *highlightService {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	s := NewHighlightService(rem, repo, meta, log).(*highlightService)
	s.now = func() int64 { return 12345 }
	return s
}

func sampleSelection() *selection.Selection {
	return &selection.Selection{
		Text:     "quick brown fox",
		HTML:     "quick <b>brown</b> fox",
		Markdown: "quick **brown** fox",
		Location: "0/0:4,0/2:4",
	}
}

func TestCreateFromSelection(t *testing.T) {
	repo := &fakeHighlightRepo{}
	meta := &fakeMetadataRepo{}
	rem := newFakeRemote()
	s := newService(rem, repo, meta)

	h, err := s.CreateFromSelection(context.Background(), "a1", sampleSelection(), "rgba(255, 235, 59, 0.6)")
	require.NoError(t, err)

	assert.NotEmpty(t, h.Id)
	assert.Equal(t, "a1", h.ArticleId)
	assert.Equal(t, "quick brown fox", h.Text)
	assert.Equal(t, int64(12345), h.CreatedAt)
	assert.Equal(t, models.CreatedByGo, h.CreatedBy)
	require.Len(t, repo.inserted, 1)

	waitRemote(t, rem)
	require.Len(t, rem.created, 1)
	assert.Equal(t, h.Id, rem.created[0].Id)
	assert.Equal(t, "quick brown fox", rem.created[0].PlainText)
	assert.Equal(t, models.CreatedByGo, rem.created[0].CreateBy)

	assert.Equal(t, "12345", meta.data[common.LastUpdateTimeKey])
}

func TestCreateFromSelection_EmptyRejected(t *testing.T) {
	repo := &fakeHighlightRepo{}
	s := newService(newFakeRemote(), repo, &fakeMetadataRepo{})

	_, err := s.CreateFromSelection(context.Background(), "a1", nil, "")
	assert.ErrorIs(t, err, common.ErrorEmptySelection)

	empty := sampleSelection()
	empty.Text = "  \n "
	_, err = s.CreateFromSelection(context.Background(), "a1", empty, "")
	assert.ErrorIs(t, err, common.ErrorEmptySelection)

	assert.Empty(t, repo.inserted)
}

func TestCreateFromSelection_LocalFailureStopsRemote(t *testing.T) {
	repo := &fakeHighlightRepo{failWith: errors.New("disk full")}
	rem := newFakeRemote()
	s := newService(rem, repo, &fakeMetadataRepo{})

	_, err := s.CreateFromSelection(context.Background(), "a1", sampleSelection(), "")
	require.Error(t, err)

	select {
	case <-rem.done:
		t.Fatal("remote must not be notified when local write fails")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCreateFromSelection_RemoteFailureIsSwallowed(t *testing.T) {
	repo := &fakeHighlightRepo{}
	rem := newFakeRemote()
	rem.err = remote.ErrUnavailable
	s := newService(rem, repo, &fakeMetadataRepo{})

	h, err := s.CreateFromSelection(context.Background(), "a1", sampleSelection(), "")
	require.NoError(t, err)
	require.NotNil(t, h)
	waitRemote(t, rem)

	// the local record stays
	list, err := s.ListForArticle(context.Background(), "a1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSaveNote(t *testing.T) {
	repo := &fakeHighlightRepo{}
	rem := newFakeRemote()
	s := newService(rem, repo, &fakeMetadataRepo{})

	require.NoError(t, s.SaveNote(context.Background(), "h1", "remember"))
	assert.Equal(t, "remember", repo.notes["h1"])

	waitRemote(t, rem)
	require.Len(t, rem.notes, 1)
	assert.Equal(t, "h1", rem.notes[0].HighlightId)
	assert.Equal(t, "remember", rem.notes[0].Note)
	assert.Equal(t, int64(12345), rem.notes[0].SavedAt)
}

func TestDelete(t *testing.T) {
	repo := &fakeHighlightRepo{}
	rem := newFakeRemote()
	s := newService(rem, repo, &fakeMetadataRepo{})

	require.NoError(t, s.Delete(context.Background(), "h1"))
	assert.Equal(t, []string{"h1"}, repo.deleted)

	waitRemote(t, rem)
	assert.Equal(t, []string{"h1"}, rem.deletes)
}

func TestAdvanceLastUpdate_Monotonic(t *testing.T) {
	meta := &fakeMetadataRepo{data: map[string]string{common.LastUpdateTimeKey: "99999"}}
	s := newService(newFakeRemote(), &fakeHighlightRepo{}, meta)

	// s.now returns 12345, older than the stored stamp
	require.NoError(t, s.Delete(context.Background(), "h1"))
	assert.Equal(t, "99999", meta.data[common.LastUpdateTimeKey])
}

func TestCreateFromSelection_UniqueIds(t *testing.T) {
	repo := &fakeHighlightRepo{}
	s := newService(newFakeRemote(), repo, &fakeMetadataRepo{})

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		h, err := s.CreateFromSelection(context.Background(), "a1", sampleSelection(), "")
		require.NoError(t, err)
		require.False(t, seen[h.Id])
		require.False(t, strings.Contains(h.Id, " "))
		seen[h.Id] = true
	}
}

func TestClose_DrainsPendingNotifies(t *testing.T) {
	rem := newFakeRemote()
	rem.block = make(chan struct{})
	s := newService(rem, &fakeHighlightRepo{}, &fakeMetadataRepo{})

	// Delete returns as soon as the local write lands; the remote call is
	// still parked on the blocked fake at this point.
	require.NoError(t, s.Delete(context.Background(), "h1"))

	rem.mu.Lock()
	issued := len(rem.deletes)
	rem.mu.Unlock()
	assert.Zero(t, issued)

	close(rem.block)
	require.NoError(t, s.Close())

	rem.mu.Lock()
	defer rem.mu.Unlock()
	assert.Equal(t, []string{"h1"}, rem.deletes)
}

func TestClose_NoPendingNotifies(t *testing.T) {
	s := newService(nil, &fakeHighlightRepo{}, &fakeMetadataRepo{})
	require.NoError(t, s.Delete(context.Background(), "h1"))
	require.NoError(t, s.Close())
}
