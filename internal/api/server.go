// Package api serves the reader over HTTP: rendered article pages with
// highlights applied, a public read-only variant, and a small JSON API for
// highlight CRUD used by the reader UI.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tuyetlangsa/rehi-go/internal/common"
	"github.com/tuyetlangsa/rehi-go/internal/logging"
	"github.com/tuyetlangsa/rehi-go/internal/services"
)

// Server exposes the reader endpoints over one chi router.
type Server struct {
	articles   services.ArticleService
	highlights services.HighlightService
	log        logging.Logger
	httpServer *http.Server
}

func NewServer(addr string, articles services.ArticleService, highlights services.HighlightService, log logging.Logger) *Server {
	s := &Server{
		articles:   articles,
		highlights: highlights,
		log:        log,
	}
	s.httpServer = &http.Server{Addr: addr, Handler: s.Router()}
	return s
}

// Router builds the route table. Exposed separately for httptest.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", healthzHandler)

	// rendered pages
	r.Get("/articles/{articleID}", s.articlePageHandler)
	r.Get("/public/articles/{articleID}", s.publicArticlePageHandler)

	// JSON API
	r.Get("/api/articles", s.listArticlesHandler)
	r.Get("/api/articles/{articleID}/highlights", s.listHighlightsHandler)
	r.Post("/api/articles/{articleID}/highlights", s.createHighlightHandler)
	r.Put("/api/highlights/{highlightID}/note", s.saveNoteHandler)
	r.Delete("/api/highlights/{highlightID}", s.deleteHighlightHandler)

	return r
}

// ListenAndServe blocks serving the router until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	s.log.Info(ctx, "http server started", "addr", s.httpServer.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func healthzHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, common.ErrorEmptySelection):
		http.Error(w, "empty selection", http.StatusBadRequest)
	default:
		s.log.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
