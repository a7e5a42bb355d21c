// Command chatbot is the terminal chat client: free-text product search
// with debounced autocomplete, a local cart, and optional server-side
// cart/chat persistence when credentials are configured.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Mrfarooqui038501/SalesChatBot/internal/bot/api"
	"github.com/Mrfarooqui038501/SalesChatBot/internal/bot/catalog"
	"github.com/Mrfarooqui038501/SalesChatBot/internal/bot/session"
	"github.com/Mrfarooqui038501/SalesChatBot/internal/bot/suggest"
	"github.com/Mrfarooqui038501/SalesChatBot/internal/bot/ui"
)

type config struct {
	APIBaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:5000"`
	Email      string `env:"SALESCHAT_EMAIL"`
	Password   string `env:"SALESCHAT_PASSWORD"`
	LogFile    string `env:"CHATBOT_LOG_FILE"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	// The terminal owns stdout, so diagnostics go to a file or nowhere.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger = slog.New(slog.NewJSONHandler(f, nil))
	}

	sess := api.NewSession()
	client := api.NewClient(cfg.APIBaseURL, sess, logger)

	// Login is optional. Search works unauthenticated; cart and chat
	// persistence silently skip without a token.
	if cfg.Email != "" && cfg.Password != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := client.Login(ctx, cfg.Email, cfg.Password); err != nil {
			logger.Warn("login failed, continuing unauthenticated", "error", err)
		}
		cancel()
	}

	chat := session.New(client, client, client, sess, logger)

	var program *tea.Program
	ctrl := suggest.NewController(client, logger,
		suggest.WithOnUpdate(func(products []catalog.Product) {
			if program != nil {
				program.Send(ui.SuggestionsMsg(products))
			}
		}),
	)

	program = tea.NewProgram(ui.New(chat, ctrl), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}

	chat.Wait()
	return nil
}
