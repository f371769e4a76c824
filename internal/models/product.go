package models

// Product is a catalog entry addressed in URLs by its Slug.
type Product struct {
	ID          int64  `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"` // optional image reference
}
