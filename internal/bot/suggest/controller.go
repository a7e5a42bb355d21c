// Package suggest implements the debounced autocomplete pipeline: each
// keystroke resets a quiescence timer, and only once the input has been
// stable for the full window does one search fire. Completions are tagged
// so a slow response for old input can never overwrite suggestions for
// fresher input.
package suggest

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Mrfarooqui038501/SalesChatBot/internal/bot/catalog"
)

const (
	// DefaultWindow is the debounce quiescence window.
	DefaultWindow = 300 * time.Millisecond
	// MinQueryLength is the exclusive threshold: suggestions fetch only
	// once the trimmed input is longer than this.
	MinQueryLength = 2
	// MaxSuggestions caps the visible suggestion set.
	MaxSuggestions = 5
)

// Searcher is the slice of the API client the controller needs.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]catalog.Product, error)
}

// Controller owns the suggestion set. Input is fed one change at a time;
// the current set is read back with Suggestions, and an optional OnUpdate
// callback fires on every change so an event loop can repaint.
type Controller struct {
	searcher Searcher
	window   time.Duration
	timeout  time.Duration
	logger   *slog.Logger
	onUpdate func([]catalog.Product)

	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64
	query   string
	current []catalog.Product
}

// Option configures a Controller.
type Option func(*Controller)

// WithWindow overrides the debounce window. Tests use short windows.
func WithWindow(d time.Duration) Option {
	return func(c *Controller) { c.window = d }
}

// WithTimeout bounds each suggestion fetch.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

// WithOnUpdate registers a callback invoked (outside the controller's
// lock) whenever the suggestion set changes.
func WithOnUpdate(fn func([]catalog.Product)) Option {
	return func(c *Controller) { c.onUpdate = fn }
}

func NewController(searcher Searcher, logger *slog.Logger, opts ...Option) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{
		searcher: searcher,
		window:   DefaultWindow,
		timeout:  10 * time.Second,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Input feeds one input change. Short input clears the visible set
// immediately and cancels any pending fetch; longer input resets the
// debounce timer so a burst of keystrokes produces at most one fetch, for
// the final value.
func (c *Controller) Input(text string) {
	trimmed := strings.TrimSpace(text)

	c.mu.Lock()
	c.seq++
	c.query = trimmed
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}

	if len(trimmed) <= MinQueryLength {
		changed := len(c.current) > 0
		c.current = nil
		cb := c.onUpdate
		c.mu.Unlock()
		if changed && cb != nil {
			cb(nil)
		}
		return
	}

	seq := c.seq
	c.timer = time.AfterFunc(c.window, func() {
		c.fetch(seq, trimmed)
	})
	c.mu.Unlock()
}

// fetch runs once the window has elapsed. The sequence and query captured
// at scheduling time gate the application of the result: if either has
// moved on by the time the response lands, the response is discarded.
func (c *Controller) fetch(seq uint64, query string) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	products, err := c.searcher.Search(ctx, query, MaxSuggestions)
	if err != nil {
		c.logger.Debug("suggestion fetch failed", "query", query, "error", err)
		return
	}
	if len(products) > MaxSuggestions {
		products = products[:MaxSuggestions]
	}

	c.mu.Lock()
	if seq != c.seq || query != c.query {
		c.mu.Unlock()
		return
	}
	c.current = products
	cb := c.onUpdate
	c.mu.Unlock()

	if cb != nil {
		cb(products)
	}
}

// Suggestions returns the currently visible set.
func (c *Controller) Suggestions() []catalog.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Clear hides the suggestion set and invalidates any pending or in-flight
// fetch. Used on blur and on selection.
func (c *Controller) Clear() {
	c.mu.Lock()
	c.seq++
	c.query = ""
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	changed := len(c.current) > 0
	c.current = nil
	cb := c.onUpdate
	c.mu.Unlock()
	if changed && cb != nil {
		cb(nil)
	}
}
