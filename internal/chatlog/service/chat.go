package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Mrfarooqui038501/SalesChatBot/internal/chatlog/domain"
	"github.com/Mrfarooqui038501/SalesChatBot/internal/chatlog/repository"
	apperrors "github.com/Mrfarooqui038501/SalesChatBot/pkg/errors"
)

// DefaultHistoryLimit is the page size for chat history when none is given.
const DefaultHistoryLimit = 50

// ChatService implements the business logic for chat history.
type ChatService struct {
	repo   repository.ChatRepository
	logger *slog.Logger
}

// NewChatService creates a new chat service.
func NewChatService(repo repository.ChatRepository, logger *slog.Logger) *ChatService {
	return &ChatService{repo: repo, logger: logger}
}

// SaveChat persists one exchange for the user.
func (s *ChatService) SaveChat(ctx context.Context, userID, message, response string) (*domain.Entry, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if message == "" || response == "" {
		return nil, apperrors.InvalidInput("Message and response are required")
	}

	entry := &domain.Entry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Message:   message,
		Response:  response,
		Timestamp: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("save chat: %w", err)
	}

	s.logger.DebugContext(ctx, "chat entry saved",
		slog.String("user_id", userID),
		slog.String("chat_id", entry.ID),
	)

	return entry, nil
}

// History returns a page of the user's chat entries, newest first, plus the
// user's total entry count.
func (s *ChatService) History(ctx context.Context, userID string, limit, offset int) ([]domain.Entry, int, error) {
	if userID == "" {
		return nil, 0, apperrors.InvalidInput("user id is required")
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	entries, total, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("chat history: %w", err)
	}
	return entries, total, nil
}
