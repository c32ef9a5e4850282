package model

// Health is the payload of the /health endpoint
type Health struct {
	Status string `json:"status"`
}
