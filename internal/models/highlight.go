// Package models defines the persisted record types of the rehi client:
// articles, highlights, and tags.
package models

// CreatedBy values identify the client that produced a record. The wire
// protocol carries all three; this client writes CreatedByGo.
const (
	CreatedByGo        = "rehi-go"
	CreatedByWeb       = "rehi-web"
	CreatedByExtension = "rehi-browser-extension"
)

// Highlight is a text-anchored user annotation over an article.
//
// Text is the anchor key: the exact plain text captured at creation time,
// used for all future re-matching against the live document. It never
// changes after creation, even when the underlying article content does.
//
// Location is a legacy structural-path descriptor
// ("startPath:startOffset,endPath:endOffset") kept only for wire
// compatibility with the browser-extension client. Matching and rendering
// never read it.
type Highlight struct {
	Id        string `json:"id"`
	ArticleId string `json:"articleId"`
	Location  string `json:"location"`
	Text      string `json:"text"`
	HTML      string `json:"html,omitempty"`
	Markdown  string `json:"markdown,omitempty"`
	Color     string `json:"color,omitempty"`
	Note      string `json:"note,omitempty"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt,omitempty"`
	CreatedBy string `json:"createBy"`
	IsDeleted bool   `json:"isDeleted"`
}
