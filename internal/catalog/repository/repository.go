package repository

import (
	"context"

	"github.com/Mrfarooqui038501/SalesChatBot/internal/catalog/domain"
)

// SearchFilter holds the optional filters for a product search.
type SearchFilter struct {
	Query    string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Limit    int
}

// ProductRepository defines the persistence interface for catalog products.
type ProductRepository interface {
	// Search returns products matching the filter, ordered ascending by name.
	Search(ctx context.Context, filter SearchFilter) ([]domain.Product, error)

	// List returns a page of products ordered ascending by name, plus the
	// total product count.
	List(ctx context.Context, limit, offset int) ([]domain.Product, int, error)

	// GetByID returns a single product or apperrors.ErrNotFound.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// Categories returns the distinct non-empty category names.
	Categories(ctx context.Context) ([]string, error)

	// Create inserts a product; used by the seeder.
	Create(ctx context.Context, p *domain.RawProduct) error
}
