// Package catalog holds the read-only product snapshot rendered by the
// chat client, together with the normalization applied to every record
// received from the backend.
package catalog

import "encoding/json"

// Defaults for optional product fields. Normalization happens in exactly
// one place (wireProduct.normalized) so that rendering code never has to
// branch on field presence.
const (
	DefaultDescription = "No description available"
	DefaultCategory    = "General"
)

// Product is an immutable catalog snapshot. Records are normalized on
// receipt and never mutated afterwards.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Category    string
	Image       string
	InStock     bool
}

// wireProduct is the shape a product arrives in over the wire. Optional
// fields are pointers so absence is detectable, and both "id" and "_id"
// identity keys are accepted.
type wireProduct struct {
	ID          string   `json:"id"`
	AltID       string   `json:"_id"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Image       *string  `json:"image"`
	InStock     *bool    `json:"inStock"`
}

func (w wireProduct) normalized() Product {
	p := Product{
		ID:          w.ID,
		Name:        w.Name,
		Description: DefaultDescription,
		Category:    DefaultCategory,
		InStock:     true,
	}
	if p.ID == "" {
		p.ID = w.AltID
	}
	if w.Description != nil && *w.Description != "" {
		p.Description = *w.Description
	}
	if w.Category != nil && *w.Category != "" {
		p.Category = *w.Category
	}
	if w.Price != nil && *w.Price > 0 {
		p.Price = *w.Price
	}
	if w.InStock != nil {
		p.InStock = *w.InStock
	}
	if w.Image != nil {
		p.Image = *w.Image
	}
	return p
}

// Decode parses a single wire product and normalizes it.
func Decode(raw json.RawMessage) (Product, error) {
	var w wireProduct
	if err := json.Unmarshal(raw, &w); err != nil {
		return Product{}, err
	}
	return w.normalized(), nil
}

// DecodeList parses a wire product array and normalizes every record.
// Records that fail to parse individually are skipped rather than failing
// the whole list. The result is never nil.
func DecodeList(raw json.RawMessage) ([]Product, error) {
	var ws []json.RawMessage
	if err := json.Unmarshal(raw, &ws); err != nil {
		return nil, err
	}
	out := make([]Product, 0, len(ws))
	for _, r := range ws {
		p, err := Decode(r)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
