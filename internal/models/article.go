package models

// Article is a saved document. CleanedHTML is the sanitized markup the
// reader renders and the highlight layer anchors into; TextContent is the
// extracted plain text used for search and word counts.
type Article struct {
	Id              string `json:"id"`
	Url             string `json:"url"`
	Title           string `json:"title"`
	Author          string `json:"author,omitempty"`
	Summary         string `json:"summary,omitempty"`
	ImagePreviewUrl string `json:"imagePreviewUrl,omitempty"`
	TextContent     string `json:"textContent"`
	CleanedHTML     string `json:"cleanedHtml"`
	Language        string `json:"language,omitempty"`
	WordCount       int    `json:"wordCount,omitempty"`
	TimeToRead      string `json:"timeToRead,omitempty"`
	CreatedAt       int64  `json:"createAt"`
	UpdatedAt       int64  `json:"updateAt"`
	IsDeleted       bool   `json:"isDeleted"`
	IsPublic        bool   `json:"isPublic"`
}
