package model

// Session is one yearly edition of the conference
type Session struct {
	ID                int64   `json:"id"`
	Edition           int     `json:"edition"`
	DateStart         *string `json:"date_start"`
	DateEnd           *string `json:"date_end"`
	IsActive          bool    `json:"is_active"`
	SubscriptionOpen  *string `json:"subscription_open"`
	SubscriptionClose *string `json:"subscription_close"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

// ListSessionsParams filters the sessions listing. Active is only sent when set.
type ListSessionsParams struct {
	Active *bool
	Limit  *int
	Offset *int
}
