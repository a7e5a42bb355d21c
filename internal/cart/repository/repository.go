package repository

import (
	"context"

	"github.com/Mrfarooqui038501/SalesChatBot/internal/cart/domain"
)

// CartRepository defines the persistence interface for carts.
type CartRepository interface {
	// Get returns the stored cart for a user or apperrors.ErrNotFound.
	Get(ctx context.Context, userID string) (*domain.Cart, error)

	// Save persists the cart, replacing any previous value.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes the user's cart. Deleting a missing cart is not an error.
	Delete(ctx context.Context, userID string) error
}
