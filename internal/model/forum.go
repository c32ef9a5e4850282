package model

// Forum is a top-level conference grouping (e.g. a General Assembly or a
// Security Council track) that committees belong to.
type Forum struct {
	ID          int64   `json:"id"`
	Acronym     string  `json:"acronym"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	ImagePath   *string `json:"image_path"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}
