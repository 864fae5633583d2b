package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/net/html"

	"github.com/tuyetlangsa/rehi-go/internal/dom"
	"github.com/tuyetlangsa/rehi-go/internal/layer"
	"github.com/tuyetlangsa/rehi-go/internal/models"
	"github.com/tuyetlangsa/rehi-go/internal/selection"
)

const shutdownTimeout = 5 * time.Second

func (s *Server) listArticlesHandler(w http.ResponseWriter, r *http.Request) {
	list, err := s.articles.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// articlePageHandler returns the article's rendered HTML with the owner's
// highlights applied.
func (s *Server) articlePageHandler(w http.ResponseWriter, r *http.Request) {
	s.renderArticle(w, r, chi.URLParam(r, "articleID"), false)
}

// publicArticlePageHandler is the shared read-only view; only articles
// flagged public are served.
func (s *Server) publicArticlePageHandler(w http.ResponseWriter, r *http.Request) {
	s.renderArticle(w, r, chi.URLParam(r, "articleID"), true)
}

func (s *Server) renderArticle(w http.ResponseWriter, r *http.Request, articleID string, publicOnly bool) {
	ctx := r.Context()

	article, err := s.articles.Get(ctx, articleID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if publicOnly && !article.IsPublic {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	hs, err := s.highlights.ListForArticle(ctx, articleID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	page, failed, err := renderArticleHTML(article, hs)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	for _, id := range failed {
		s.log.Warn(ctx, "highlight could not be anchored", "article", articleID, "highlight", id)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}

// renderArticleHTML wraps the article body in the highlightable container
// and applies the highlight markers server-side.
func renderArticleHTML(article *models.Article, hs []models.Highlight) (string, []string, error) {
	doc, err := dom.ParseFragment(fmt.Sprintf(`<article><h1>%s</h1><div id=%q></div></article>`,
		html.EscapeString(article.Title), layer.DefaultContainerID))
	if err != nil {
		return "", nil, err
	}

	container := dom.ElementByID(doc, layer.DefaultContainerID)
	body, err := dom.ParseFragment(article.CleanedHTML)
	if err != nil {
		return "", nil, err
	}
	for child := body.FirstChild; child != nil; child = body.FirstChild {
		body.RemoveChild(child)
		container.AppendChild(child)
	}

	failed, err := layer.ApplyReadOnly(doc, layer.DefaultContainerID, hs)
	if err != nil {
		return "", nil, err
	}
	page, err := dom.RenderChildren(doc)
	return page, failed, err
}

// createHighlightRequest is the reader UI's commit payload: the captured
// selection plus a color.
type createHighlightRequest struct {
	Text     string `json:"text"`
	HTML     string `json:"html"`
	Markdown string `json:"markdown"`
	Location string `json:"location"`
	Color    string `json:"color"`
}

func (s *Server) createHighlightHandler(w http.ResponseWriter, r *http.Request) {
	var req createHighlightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	sel := &selection.Selection{
		Text:     req.Text,
		HTML:     req.HTML,
		Markdown: req.Markdown,
		Location: req.Location,
	}
	h, err := s.highlights.CreateFromSelection(r.Context(), chi.URLParam(r, "articleID"), sel, req.Color)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, h)
}

func (s *Server) listHighlightsHandler(w http.ResponseWriter, r *http.Request) {
	list, err := s.highlights.ListForArticle(r.Context(), chi.URLParam(r, "articleID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if list == nil {
		list = []models.Highlight{}
	}
	writeJSON(w, http.StatusOK, list)
}

type saveNoteRequest struct {
	Note string `json:"note"`
}

func (s *Server) saveNoteHandler(w http.ResponseWriter, r *http.Request) {
	var req saveNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if err := s.highlights.SaveNote(r.Context(), chi.URLParam(r, "highlightID"), req.Note); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) deleteHighlightHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.highlights.Delete(r.Context(), chi.URLParam(r, "highlightID")); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
