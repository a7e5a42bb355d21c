// Package transcript holds the ordered conversation log driving the chat
// view. The log is append-only; the only wholesale mutation is an explicit
// clear.
package transcript

import (
	"sync"
	"time"

	"github.com/Mrfarooqui038501/SalesChatBot/internal/bot/catalog"
)

type Sender int

const (
	SenderUser Sender = iota
	SenderBot
)

// Kind tags a message for presentation only. It never affects ordering or
// persistence.
type Kind int

const (
	KindPlain Kind = iota
	KindSuccess
	KindError
)

// Message is one conversational turn: a text turn, or a product card when
// Product is non-nil.
type Message struct {
	Sender  Sender
	Kind    Kind
	Text    string
	Product *catalog.Product
	Time    time.Time
}

// Transcript is the append-only message sequence. All mutation goes
// through the owning transcript's methods, which serialize access, so
// background completions can append safely.
type Transcript struct {
	mu   sync.Mutex
	msgs []Message
}

func New() *Transcript {
	return &Transcript{}
}

func (t *Transcript) append(m Message) {
	if m.Time.IsZero() {
		m.Time = time.Now()
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.msgs = append(t.msgs, m)
}

// AppendUser appends a plain user turn.
func (t *Transcript) AppendUser(text string) {
	t.append(Message{Sender: SenderUser, Kind: KindPlain, Text: text})
}

// AppendBot appends a bot text turn with the given presentation kind.
func (t *Transcript) AppendBot(text string, kind Kind) {
	t.append(Message{Sender: SenderBot, Kind: kind, Text: text})
}

// AppendCard appends one product card.
func (t *Transcript) AppendCard(p catalog.Product) {
	t.append(Message{Sender: SenderBot, Kind: KindPlain, Product: &p})
}

// Messages returns a copy of the log in append order.
func (t *Transcript) Messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Message, len(t.msgs))
	copy(out, t.msgs)
	return out
}

// Len reports the number of messages.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.msgs)
}

// Clear drops the whole log.
func (t *Transcript) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.msgs = nil
}
