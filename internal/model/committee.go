package model

// Committee is a debating body within a forum
type Committee struct {
	ID           int64   `json:"id"`
	ForumID      int64   `json:"forum_id"`
	ForumAcronym *string `json:"forum_acronym"`
	Name         string  `json:"name"`
	Acronym      *string `json:"acronym"`
	Size         *int    `json:"size"`
	Topic        *string `json:"topic"`
	ImagePath    *string `json:"image_path"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// PageParams selects a window of a listing. Nil fields use the listing defaults.
type PageParams struct {
	Limit  *int
	Offset *int
}
