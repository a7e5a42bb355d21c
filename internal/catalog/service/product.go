package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Mrfarooqui038501/SalesChatBot/internal/catalog/domain"
	"github.com/Mrfarooqui038501/SalesChatBot/internal/catalog/repository"
	apperrors "github.com/Mrfarooqui038501/SalesChatBot/pkg/errors"
)

const (
	// DefaultSearchLimit is used when a search request does not specify one.
	DefaultSearchLimit = 20

	// MaxSearchLimit caps the result size of a single search.
	MaxSearchLimit = 100
)

// ProductService implements the business logic for catalog reads.
type ProductService struct {
	repo   repository.ProductRepository
	logger *slog.Logger
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepository, logger *slog.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger}
}

// SearchInput holds the parameters for a product search. The query is
// matched verbatim; trimming and minimum-length rules are a client concern.
type SearchInput struct {
	Query    string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Limit    int
}

// SearchProducts returns products matching the input, ordered ascending by
// name. A missing or out-of-range limit falls back to DefaultSearchLimit.
func (s *ProductService) SearchProducts(ctx context.Context, input SearchInput) ([]domain.Product, error) {
	if input.MinPrice != nil && *input.MinPrice < 0 {
		return nil, apperrors.InvalidInput("minPrice must not be negative")
	}
	if input.MaxPrice != nil && *input.MaxPrice < 0 {
		return nil, apperrors.InvalidInput("maxPrice must not be negative")
	}
	if input.MinPrice != nil && input.MaxPrice != nil && *input.MinPrice > *input.MaxPrice {
		return nil, apperrors.InvalidInput("minPrice must not exceed maxPrice")
	}

	limit := input.Limit
	if limit <= 0 || limit > MaxSearchLimit {
		limit = DefaultSearchLimit
	}

	products, err := s.repo.Search(ctx, repository.SearchFilter{
		Query:    input.Query,
		Category: input.Category,
		MinPrice: input.MinPrice,
		MaxPrice: input.MaxPrice,
		Limit:    limit,
	})
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	s.logger.DebugContext(ctx, "product search",
		slog.String("query", input.Query),
		slog.Int("results", len(products)),
	)

	return products, nil
}

// ListProducts returns a page of products ordered by name plus the total
// product count.
func (s *ProductService) ListProducts(ctx context.Context, limit, offset int) ([]domain.Product, int, error) {
	products, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return products, total, nil
}

// GetProduct retrieves a single product by its ID.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return product, nil
}

// GetCategories returns the distinct category names in the catalog.
func (s *ProductService) GetCategories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}
