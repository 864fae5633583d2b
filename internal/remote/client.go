// Package remote is the sync collaborator client. Local mutations are
// mirrored to the server fire-and-forget style; nothing in the rendering
// path waits on these calls, and local state stays authoritative.
package remote

import (
	"context"
)

// CreateHighlightRequest is the wire shape for a new highlight. Field
// names follow the server's JSON contract, shared with the web and
// browser-extension clients.
type CreateHighlightRequest struct {
	Id        string `json:"id"`
	ArticleId string `json:"articleId"`
	Location  string `json:"location"`
	HTML      string `json:"html"`
	Markdown  string `json:"markdown"`
	PlainText string `json:"plainText"`
	Color     string `json:"color,omitempty"`
	CreateAt  int64  `json:"createAt"`
	CreateBy  string `json:"createBy"`
}

// SaveHighlightNoteRequest is the wire shape for a note update.
type SaveHighlightNoteRequest struct {
	HighlightId string `json:"highlightId"`
	Note        string `json:"note"`
	SavedAt     int64  `json:"savedAt"`
}

// Client mirrors local highlight mutations to the server.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	CreateHighlight(ctx context.Context, req *CreateHighlightRequest) error
	DeleteHighlight(ctx context.Context, highlightId string, updatedAt int64) error
	SaveHighlightNote(ctx context.Context, req *SaveHighlightNoteRequest) error
}

// TokenProvider supplies the opaque bearer token attached to every
// request. Authentication itself is outside this client.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenProvider that always returns the same token, for
// configurations where the token is supplied up front.
type StaticToken string

func (t StaticToken) Token(ctx context.Context) (string, error) {
	return string(t), nil
}
