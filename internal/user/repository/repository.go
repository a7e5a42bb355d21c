package repository

import (
	"context"

	"github.com/Mrfarooqui038501/SalesChatBot/internal/user/domain"
)

// UserRepository defines the persistence interface for user accounts.
type UserRepository interface {
	// Create inserts a user; apperrors.ErrAlreadyExists when the email is taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByEmail returns a user or apperrors.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByID returns a user or apperrors.ErrNotFound.
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
