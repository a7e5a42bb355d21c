package domain

import "time"

// Entry is a stored chat exchange: one user message and the assistant
// response rendered for it.
type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}
