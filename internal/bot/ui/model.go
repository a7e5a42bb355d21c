// Package ui implements the terminal chat interface. The update loop is
// the single thread of control: searches run in commands and background
// suggestion completions re-enter through messages, so transcript and
// cart reads always observe a consistent snapshot.
package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Mrfarooqui038501/SalesChatBot/internal/bot/catalog"
	"github.com/Mrfarooqui038501/SalesChatBot/internal/bot/session"
	"github.com/Mrfarooqui038501/SalesChatBot/internal/bot/suggest"
	"github.com/Mrfarooqui038501/SalesChatBot/internal/bot/transcript"
)

// SuggestionsMsg carries a refreshed suggestion set into the update loop.
// The suggestion controller already discards stale completions, so
// whatever arrives here is current.
type SuggestionsMsg []catalog.Product

type submitDoneMsg struct{}

// Model is the bubbletea model for the chat client.
type Model struct {
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	styles   Styles

	session *session.Session
	suggest *suggest.Controller

	suggestions []catalog.Product
	selected    int
	showCart    bool
	loading     bool
	notice      string

	width  int
	height int
	ready  bool
}

func New(sess *session.Session, ctrl *suggest.Controller) Model {
	ti := textinput.New()
	ti.Placeholder = "Search for products... (Enter to send, /help for commands)"
	ti.Focus()
	ti.Prompt = "> "
	ti.CharLimit = 256
	ti.Width = 70

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	vp := viewport.New(80, 20)

	return Model{
		input:    ti,
		viewport: vp,
		spinner:  sp,
		styles:   DefaultStyles(),
		session:  sess,
		suggest:  ctrl,
		selected: -1,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit

		case tea.KeyEsc:
			if m.showCart {
				m.showCart = false
				m.refresh()
				return m, nil
			}
			m.dismissSuggestions()
			return m, nil

		case tea.KeyUp:
			if len(m.suggestions) > 0 {
				if m.selected > 0 {
					m.selected--
				} else {
					m.selected = len(m.suggestions) - 1
				}
				return m, nil
			}

		case tea.KeyDown:
			if len(m.suggestions) > 0 {
				m.selected = (m.selected + 1) % len(m.suggestions)
				return m, nil
			}

		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}
			if m.selected >= 0 && m.selected < len(m.suggestions) {
				// Selecting a suggestion submits that exact product
				// name through the main search path.
				name := m.suggestions[m.selected].Name
				m.input.SetValue("")
				m.dismissSuggestions()
				return m.submit(name)
			}
			value := strings.TrimSpace(m.input.Value())
			if value == "" {
				return m, nil
			}
			if strings.HasPrefix(value, "/") {
				m.input.SetValue("")
				m.dismissSuggestions()
				return m.handleCommand(value)
			}
			m.input.SetValue("")
			m.dismissSuggestions()
			return m.submit(value)
		}

		if !m.loading {
			before := m.input.Value()
			m.input, tiCmd = m.input.Update(msg)
			if after := m.input.Value(); after != before && !strings.HasPrefix(strings.TrimSpace(after), "/") {
				m.selected = -1
				m.suggest.Input(after)
			}
		}

	case SuggestionsMsg:
		m.suggestions = msg
		m.selected = -1
		return m, nil

	case submitDoneMsg:
		m.loading = false
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			m.spinner, spCmd = m.spinner.Update(msg)
			return m, spCmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := 2
		footerHeight := 4
		vpHeight := msg.Height - headerHeight - footerHeight
		if vpHeight < 5 {
			vpHeight = 5
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = vpHeight
		}
		m.input.Width = msg.Width - 4
		m.refresh()
	}

	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd, spCmd)
}

// submit kicks off one search cycle in a command so the update loop never
// blocks on the network.
func (m Model) submit(query string) (tea.Model, tea.Cmd) {
	m.loading = true
	m.notice = ""
	m.refresh()
	sess := m.session
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		sess.Submit(context.Background(), query)
		return submitDoneMsg{}
	})
}

func (m Model) handleCommand(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)

	switch parts[0] {
	case "/quit", "/exit", "/q":
		return m, tea.Quit

	case "/cart":
		m.showCart = true
		m.refresh()
		return m, nil

	case "/add":
		if len(parts) < 2 {
			m.notice = "Usage: /add <result number>"
			return m, nil
		}
		n, err := strconv.Atoi(parts[1])
		cards := m.latestCards()
		if err != nil || n < 1 || n > len(cards) {
			m.notice = fmt.Sprintf("No result #%s to add", parts[1])
			return m, nil
		}
		m.session.AddToCart(cards[n-1])
		m.showCart = false
		m.refresh()
		return m, nil

	case "/clear":
		m.session.ClearChat()
		m.notice = ""
		m.refresh()
		return m, nil

	case "/clearcart":
		m.session.ClearCart()
		m.refresh()
		return m, nil

	case "/help":
		m.notice = "Commands: /add N, /cart, /clearcart, /clear, /quit"
		return m, nil

	default:
		m.notice = fmt.Sprintf("Unknown command %s (try /help)", parts[0])
		return m, nil
	}
}

func (m *Model) dismissSuggestions() {
	m.suggest.Clear()
	m.suggestions = nil
	m.selected = -1
}

// latestCards returns the product cards of the most recent bot response,
// in display order. /add numbering refers to this block.
func (m Model) latestCards() []catalog.Product {
	msgs := m.session.Transcript().Messages()
	var cards []catalog.Product
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Product == nil {
			if len(cards) > 0 {
				break
			}
			continue
		}
		cards = append([]catalog.Product{*msgs[i].Product}, cards...)
	}
	return cards
}

func (m *Model) refresh() {
	if m.showCart {
		m.viewport.SetContent(m.renderCart())
	} else {
		m.viewport.SetContent(m.renderTranscript())
	}
	m.viewport.GotoBottom()
}

func (m Model) renderTranscript() string {
	msgs := m.session.Transcript().Messages()
	if len(msgs) == 0 {
		return m.styles.BotMsg.Render("Hi! Ask me about products, e.g. \"laptop\" or \"headphones\".")
	}

	var b strings.Builder
	cardNo := 0
	for _, msg := range msgs {
		if msg.Product != nil {
			cardNo++
			b.WriteString(m.renderCard(*msg.Product, cardNo))
			b.WriteString("\n")
			continue
		}
		cardNo = 0
		switch {
		case msg.Sender == transcript.SenderUser:
			b.WriteString(m.styles.UserMsg.Render("You: " + msg.Text))
		case msg.Kind == transcript.KindSuccess:
			b.WriteString(m.styles.SuccessMsg.Render(msg.Text))
		case msg.Kind == transcript.KindError:
			b.WriteString(m.styles.ErrorMsg.Render(msg.Text))
		default:
			b.WriteString(m.styles.BotMsg.Render(msg.Text))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderCard(p catalog.Product, n int) string {
	stock := m.styles.SuccessMsg.Render("In stock")
	if !p.InStock {
		stock = m.styles.OutOfStock.Render("Out of stock")
	}
	body := fmt.Sprintf("%s %s\n%s\n%s",
		m.styles.CardName.Render(fmt.Sprintf("%d. %s", n, p.Name)),
		m.styles.CardMeta.Render(fmt.Sprintf("$%.2f · %s", p.Price, p.Category)),
		p.Description,
		stock,
	)
	return m.styles.Card.Render(body)
}

func (m Model) renderCart() string {
	lines := m.session.Cart().Lines()
	var b strings.Builder
	b.WriteString(m.styles.CartTitle.Render("🛒 Your Cart"))
	b.WriteString("\n\n")
	if len(lines) == 0 {
		b.WriteString(m.styles.BotMsg.Render("Your cart is empty."))
		return b.String()
	}
	for _, l := range lines {
		b.WriteString(fmt.Sprintf("%s  x%d  $%.2f\n",
			m.styles.CardName.Render(l.Product.Name), l.Quantity,
			l.Product.Price*float64(l.Quantity)))
	}
	b.WriteString(fmt.Sprintf("\nTotal: $%.2f", m.session.Cart().Total()))
	return b.String()
}

func (m Model) renderSuggestions() string {
	if len(m.suggestions) == 0 {
		return ""
	}
	var rows []string
	for i, p := range m.suggestions {
		label := fmt.Sprintf("%s  $%.2f", p.Name, p.Price)
		if i == m.selected {
			rows = append(rows, m.styles.Selected.Render("▸ "+label))
		} else {
			rows = append(rows, m.styles.Suggestion.Render("  "+label))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.styles.Header.Render("SalesChat") +
		m.styles.Help.Render(fmt.Sprintf("  ·  cart: %d item(s)", m.session.Cart().Count()))

	inputLine := m.input.View()
	if m.loading {
		inputLine = m.spinner.View() + " searching..."
	}

	footer := m.styles.Help.Render("↑/↓ pick suggestion · Enter send · Esc dismiss · /help")
	if m.notice != "" {
		footer = m.styles.Help.Render(m.notice)
	}

	parts := []string{header, m.viewport.View()}
	if sugg := m.renderSuggestions(); sugg != "" {
		parts = append(parts, sugg)
	}
	parts = append(parts, inputLine, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
