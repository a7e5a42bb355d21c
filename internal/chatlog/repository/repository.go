package repository

import (
	"context"

	"github.com/Mrfarooqui038501/SalesChatBot/internal/chatlog/domain"
)

// ChatRepository defines the persistence interface for chat history.
type ChatRepository interface {
	// Create persists a chat entry.
	Create(ctx context.Context, entry *domain.Entry) error

	// ListByUser returns a page of the user's entries, newest first, plus
	// the user's total entry count.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Entry, int, error)
}
