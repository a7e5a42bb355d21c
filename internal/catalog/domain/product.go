package domain

import "time"

// Defaults applied to products with missing optional fields. They are
// applied in exactly one place (RawProduct.Normalized) so that every read
// path serves identically shaped records and rendering code never has to
// branch on field presence.
const (
	DefaultDescription = "No description available"
	DefaultCategory    = "General"
)

// Product is a fully normalized catalog product as served by the API.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Image       string    `json:"image,omitempty"`
	InStock     bool      `json:"inStock"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// RawProduct is a product as stored, before defaults are applied. Optional
// columns are nullable in the database and nil here.
type RawProduct struct {
	ID          string
	Name        string
	Description *string
	Price       *float64
	Category    *string
	Image       *string
	InStock     *bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Normalized converts a stored product into its canonical served form:
// missing inStock becomes true, missing or negative price becomes 0, and
// missing description/category get their documented defaults.
func (r RawProduct) Normalized() Product {
	p := Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: DefaultDescription,
		Category:    DefaultCategory,
		InStock:     true,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}

	if r.Description != nil && *r.Description != "" {
		p.Description = *r.Description
	}
	if r.Category != nil && *r.Category != "" {
		p.Category = *r.Category
	}
	if r.Price != nil && *r.Price > 0 {
		p.Price = *r.Price
	}
	if r.InStock != nil {
		p.InStock = *r.InStock
	}
	if r.Image != nil {
		p.Image = *r.Image
	}

	return p
}
