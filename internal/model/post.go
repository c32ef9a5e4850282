package model

// Post is a news item published by the conference staff
type Post struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Body        *string `json:"body"`
	AuthorID    *int64  `json:"author_id"`
	AuthorName  *string `json:"author_name"`
	PublishedAt *string `json:"published_at"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}
