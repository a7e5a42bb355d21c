package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Mrfarooqui038501/SalesChatBot/internal/catalog/domain"
	"github.com/Mrfarooqui038501/SalesChatBot/internal/catalog/repository"
	apperrors "github.com/Mrfarooqui038501/SalesChatBot/pkg/errors"
)

const productColumns = "id, name, description, price, category, image, in_stock, created_at, updated_at"

// DB is the subset of pgxpool.Pool used by the repository. Both
// *pgxpool.Pool and pgxmock satisfy it.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	pool DB
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool DB) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// Search returns products whose name, description, or category contains the
// query substring, case-insensitively, with optional category and price
// filters. Results are ordered ascending by name and capped by the limit.
func (r *ProductRepository) Search(ctx context.Context, filter repository.SearchFilter) ([]domain.Product, error) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if filter.Query != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE '%%' || $%d || '%%' OR description ILIKE '%%' || $%d || '%%' OR category ILIKE '%%' || $%d || '%%')",
			argIndex, argIndex, argIndex,
		))
		args = append(args, filter.Query)
		argIndex++
	}

	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category ILIKE '%%' || $%d || '%%'", argIndex))
		args = append(args, filter.Category)
		argIndex++
	}

	if filter.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price >= $%d", argIndex))
		args = append(args, *filter.MinPrice)
		argIndex++
	}

	if filter.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price <= $%d", argIndex))
		args = append(args, *filter.MaxPrice)
		argIndex++
	}

	query := "SELECT " + productColumns + " FROM products"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY name ASC LIMIT $%d", argIndex)
	args = append(args, filter.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// List returns a page of products ordered by name plus the total count.
func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]domain.Product, int, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+productColumns+" FROM products ORDER BY name ASC LIMIT $1 OFFSET $2",
		limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	return products, total, nil
}

// GetByID returns a single product by its ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = $1",
		id,
	)

	raw, err := scanRawProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundMsg("Product not found")
		}
		return nil, fmt.Errorf("get product by id: %w", err)
	}

	p := raw.Normalized()
	return &p, nil
}

// Categories returns the distinct non-empty category names in the catalog.
func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT DISTINCT category FROM products WHERE category IS NOT NULL AND btrim(category) <> '' ORDER BY category ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	return categories, nil
}

// Create inserts a product row. Used by the seeder; the API itself is
// read-only over the catalog.
func (r *ProductRepository) Create(ctx context.Context, p *domain.RawProduct) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO products (id, name, description, price, category, image, in_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.Name, p.Description, p.Price, p.Category, p.Image, p.InStock, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// scanRawProduct scans one row into a RawProduct, preserving NULLs so the
// domain normalization is the single place defaults are applied.
func scanRawProduct(row pgx.Row) (domain.RawProduct, error) {
	var raw domain.RawProduct
	err := row.Scan(
		&raw.ID,
		&raw.Name,
		&raw.Description,
		&raw.Price,
		&raw.Category,
		&raw.Image,
		&raw.InStock,
		&raw.CreatedAt,
		&raw.UpdatedAt,
	)
	return raw, err
}

func scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	products := make([]domain.Product, 0)
	for rows.Next() {
		raw, err := scanRawProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, raw.Normalized())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}
