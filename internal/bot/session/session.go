// Package session wires user input to the search collaborator, the
// transcript and the local cart. Each submission runs a small state
// machine (idle, querying, then one of resultsFound, noResults or error,
// then idle again) and finishes with best-effort chat-log persistence.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Mrfarooqui038501/SalesChatBot/internal/bot/api"
	"github.com/Mrfarooqui038501/SalesChatBot/internal/bot/cart"
	"github.com/Mrfarooqui038501/SalesChatBot/internal/bot/catalog"
	"github.com/Mrfarooqui038501/SalesChatBot/internal/bot/transcript"
)

// State of the current submission cycle.
type State int

const (
	StateIdle State = iota
	StateQuerying
	StateResultsFound
	StateNoResults
	StateError
)

// SearchClient is the slice of the API client used on the submit path.
type SearchClient interface {
	Search(ctx context.Context, query string, limit int) ([]catalog.Product, error)
}

// CartClient mirrors local cart merges to the server, fire-and-forget.
type CartClient interface {
	AddToCart(ctx context.Context, productID string, quantity int) error
}

// ChatClient persists user/bot exchanges, fire-and-forget.
type ChatClient interface {
	SaveChat(ctx context.Context, message, response string) error
}

// Authenticator reports whether persistence calls should be attempted.
type Authenticator interface {
	Authenticated() bool
}

// Session is the chat orchestrator. All transcript and cart mutation is
// serialized through it; background persistence goroutines never touch
// shared state directly.
type Session struct {
	search  SearchClient
	carts   CartClient
	chats   ChatClient
	auth    Authenticator
	logger  *slog.Logger
	timeout time.Duration

	mu         sync.Mutex
	state      State
	transcript *transcript.Transcript
	cart       *cart.Cart

	// persistWG lets tests wait for fire-and-forget writes to settle.
	persistWG sync.WaitGroup
}

func New(search SearchClient, carts CartClient, chats ChatClient, auth Authenticator, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		search:     search,
		carts:      carts,
		chats:      chats,
		auth:       auth,
		logger:     logger,
		timeout:    api.DefaultTimeout,
		transcript: transcript.New(),
		cart:       cart.New(),
	}
}

func (s *Session) Transcript() *transcript.Transcript { return s.transcript }
func (s *Session) Cart() *cart.Cart                   { return s.cart }

// State reports the phase of the most recent submission cycle.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Submit runs one full query cycle. The user message is appended before
// any network round trip; on return the transcript holds the complete
// exchange in order (user turn, then summary or error, then cards).
// Blocking callers should run Submit off the UI thread and repaint from
// the transcript afterwards.
func (s *Session) Submit(ctx context.Context, query string) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return
	}

	s.mu.Lock()
	s.state = StateQuerying
	s.transcript.AppendUser(trimmed)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	products, err := s.search.Search(callCtx, trimmed, 0)
	cancel()

	var response string
	switch {
	case err != nil:
		s.state = StateError
		response = failureText(err)
		s.transcript.AppendBot(response, transcript.KindError)

	case len(products) == 0:
		s.state = StateNoResults
		response = fmt.Sprintf("Sorry, no products found for %q. Try searching for different keywords.", trimmed)
		s.transcript.AppendBot(response, transcript.KindPlain)

	default:
		s.state = StateResultsFound
		response = resultSummary(len(products), trimmed)
		s.transcript.AppendBot(response, transcript.KindPlain)
		for _, p := range products {
			s.transcript.AppendCard(p)
		}
	}

	s.state = StateIdle
	s.mu.Unlock()

	s.persistChat(trimmed, response)
}

// AddToCart merges the product locally, notes the addition in the
// transcript and mirrors the add to the server when authenticated. The
// local merge never fails and is never rolled back.
func (s *Session) AddToCart(p catalog.Product) {
	s.mu.Lock()
	s.cart.Add(p)
	s.transcript.AppendBot(fmt.Sprintf("✅ %s has been added to your cart!", p.Name), transcript.KindSuccess)
	s.mu.Unlock()

	if !s.auth.Authenticated() {
		return
	}
	s.persistWG.Add(1)
	go func() {
		defer s.persistWG.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if err := s.carts.AddToCart(ctx, p.ID, 1); err != nil {
			s.logger.Warn("cart persistence failed", "product_id", p.ID, "error", err)
		}
	}()
}

// ClearChat drops the transcript wholesale.
func (s *Session) ClearChat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript.Clear()
}

// ClearCart discards the local cart. No server call is made.
func (s *Session) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
}

// Wait blocks until outstanding persistence goroutines finish. Tests use
// it to observe fire-and-forget writes deterministically.
func (s *Session) Wait() {
	s.persistWG.Wait()
}

func (s *Session) persistChat(message, response string) {
	if !s.auth.Authenticated() {
		return
	}
	s.persistWG.Add(1)
	go func() {
		defer s.persistWG.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if err := s.chats.SaveChat(ctx, message, response); err != nil {
			s.logger.Warn("chat persistence failed", "error", err)
		}
	}()
}

func resultSummary(n int, query string) string {
	if n == 1 {
		return fmt.Sprintf("Found 1 product matching %q:", query)
	}
	return fmt.Sprintf("Found %d products matching %q:", n, query)
}

// failureText picks the transcript error text. API client errors already
// carry classified display text; anything else gets the generic fallback.
func failureText(err error) string {
	var callErr *api.CallError
	if errors.As(err, &callErr) && callErr.Message != "" {
		return callErr.Message
	}
	return api.MsgUnknown
}
