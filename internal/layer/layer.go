// Package layer is the mountable highlight surface the page-composition
// code uses: given a parsed document and an article id, it applies the
// article's highlights on every refresh, wires selection capture and the
// interaction controller, and commits selections as new highlights.
package layer

import (
	"context"
	"fmt"

	"golang.org/x/net/html"

	"github.com/tuyetlangsa/rehi-go/internal/common"
	"github.com/tuyetlangsa/rehi-go/internal/dom"
	"github.com/tuyetlangsa/rehi-go/internal/highlight"
	"github.com/tuyetlangsa/rehi-go/internal/interaction"
	"github.com/tuyetlangsa/rehi-go/internal/logging"
	"github.com/tuyetlangsa/rehi-go/internal/models"
	"github.com/tuyetlangsa/rehi-go/internal/selection"
	"github.com/tuyetlangsa/rehi-go/internal/services"
)

// DefaultContainerID is the element id the reader page renders article
// content into.
const DefaultContainerID = "article-content-id"

// Layer binds one article's highlights to one container element.
type Layer struct {
	container  *html.Node
	articleId  string
	svc        services.HighlightService
	capturer   *selection.Capturer
	controller *interaction.Controller
	log        logging.Logger

	highlights []models.Highlight
}

// Mount locates containerID inside doc, wires selection capture and the
// interaction controller, and renders the article's highlights.
func Mount(ctx context.Context, doc *html.Node, containerID, articleId string, svc services.HighlightService, provider selection.Provider, log logging.Logger) (*Layer, error) {
	container := dom.ElementByID(doc, containerID)
	if container == nil {
		return nil, fmt.Errorf("container %q: %w", containerID, common.ErrorNotFound)
	}

	l := &Layer{
		container:  container,
		articleId:  articleId,
		svc:        svc,
		controller: interaction.New(interaction.Options{}),
		log:        log,
	}
	l.capturer = selection.NewCapturer(container, provider, selection.Options{}, nil)

	if err := l.Refresh(ctx); err != nil {
		return nil, err
	}
	return l, nil
}

// Refresh re-reads the highlight list and re-renders from scratch,
// re-attaching the interaction controller over the fresh markers.
func (l *Layer) Refresh(ctx context.Context) error {
	list, err := l.svc.ListForArticle(ctx, l.articleId)
	if err != nil {
		return fmt.Errorf("failed to load highlights: %w", err)
	}
	l.highlights = list

	failed := highlight.Apply(l.container, list)
	for _, id := range failed {
		l.log.Warn(ctx, "highlight could not be anchored", "id", id, "article_id", l.articleId)
	}

	l.controller.Attach(l.container, list, l.onDelete, l.onEditNote)
	return nil
}

func (l *Layer) onDelete(id string) {
	ctx := context.Background()
	if err := l.svc.Delete(ctx, id); err != nil {
		l.log.Error(ctx, "failed to delete highlight", "id", id, "error", err)
		return
	}
	if err := l.Refresh(ctx); err != nil {
		l.log.Error(ctx, "failed to refresh after delete", "error", err)
	}
}

func (l *Layer) onEditNote(id, note string) {
	ctx := context.Background()
	if err := l.svc.SaveNote(ctx, id, note); err != nil {
		l.log.Error(ctx, "failed to save note", "id", id, "error", err)
		return
	}
	if err := l.Refresh(ctx); err != nil {
		l.log.Error(ctx, "failed to refresh after note save", "error", err)
	}
}

// CommitSelection persists the currently captured selection with the given
// color, clears the capture, and re-renders. The new highlight is returned.
func (l *Layer) CommitSelection(ctx context.Context, color string) (*models.Highlight, error) {
	sel := l.capturer.Current()
	h, err := l.svc.CreateFromSelection(ctx, l.articleId, sel, color)
	if err != nil {
		return nil, err
	}
	l.capturer.Clear()
	if err := l.Refresh(ctx); err != nil {
		return nil, err
	}
	return h, nil
}

// Capturer exposes the selection capturer so the page can route gesture
// events into it.
func (l *Layer) Capturer() *selection.Capturer { return l.capturer }

// Controller exposes the interaction controller for click routing.
func (l *Layer) Controller() *interaction.Controller { return l.controller }

// Highlights returns the list rendered by the last refresh.
func (l *Layer) Highlights() []models.Highlight { return l.highlights }

// Segment resolves a highlight id to its first marker element, for
// scroll-to-highlight deep links. Returns nil when the highlight has no
// rendered segment.
func (l *Layer) Segment(id string) *html.Node {
	segs := highlight.SegmentsFor(l.container, id)
	if len(segs) == 0 {
		return nil
	}
	return segs[0]
}

// Unmount detaches the controller and clears any pending capture.
func (l *Layer) Unmount() {
	l.controller.Detach()
	l.capturer.Clear()
}

// ApplyReadOnly renders highlights into doc's container without any
// editing affordances, for public shared views. It returns the ids that
// could not be anchored.
func ApplyReadOnly(doc *html.Node, containerID string, highlights []models.Highlight) ([]string, error) {
	container := dom.ElementByID(doc, containerID)
	if container == nil {
		return nil, fmt.Errorf("container %q: %w", containerID, common.ErrorNotFound)
	}
	return highlight.Apply(container, highlights), nil
}
