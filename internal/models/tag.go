package models

// Tag is a user-defined label attached to articles.
type Tag struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"createAt"`
	UpdatedAt int64  `json:"updateAt,omitempty"`
	IsDeleted bool   `json:"isDeleted"`
}
