// Package cart implements the client-held cart. The client copy is
// authoritative for display; server persistence is a best-effort mirror
// handled elsewhere and never read back during a session.
package cart

import (
	"sync"

	"github.com/Mrfarooqui038501/SalesChatBot/internal/bot/catalog"
)

// Line pairs a product snapshot with a quantity. At most one line exists
// per product ID; re-adding increments the quantity.
type Line struct {
	Product  catalog.Product
	Quantity int
}

// Cart holds the session's lines. Every mutation replaces the snapshot
// slice wholesale, so slices handed out by Lines are never mutated behind
// the caller's back and re-renders stay deterministic.
type Cart struct {
	mu    sync.Mutex
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// Add merges a product into the cart: an existing line's quantity grows by
// one, otherwise a new line is appended with quantity 1. First-add
// insertion order is preserved. The updated line is returned.
func (c *Cart) Add(p catalog.Product) Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]Line, len(c.lines))
	copy(next, c.lines)

	for i := range next {
		if next[i].Product.ID == p.ID {
			next[i].Quantity++
			c.lines = next
			return next[i]
		}
	}

	line := Line{Product: p, Quantity: 1}
	c.lines = append(next, line)
	return line
}

// Count is the sum of quantities across all lines.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Lines returns the current snapshot. Callers must treat it as read-only.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lines
}

// Total is the grand total, Σ price × quantity.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var sum float64
	for _, l := range c.lines {
		sum += l.Product.Price * float64(l.Quantity)
	}
	return sum
}

// Clear discards every line. No persistence call is implied.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}
