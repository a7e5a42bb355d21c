package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Mrfarooqui038501/SalesChatBot/internal/chatlog/domain"
)

const chatColumns = "id, user_id, message, response, created_at"

// DB is the subset of pgxpool.Pool used by the repository. Both
// *pgxpool.Pool and pgxmock satisfy it.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ChatRepository implements repository.ChatRepository using PostgreSQL.
type ChatRepository struct {
	pool DB
}

// NewChatRepository creates a new PostgreSQL-backed chat repository.
func NewChatRepository(pool DB) *ChatRepository {
	return &ChatRepository{pool: pool}
}

// Create persists a chat entry.
func (r *ChatRepository) Create(ctx context.Context, entry *domain.Entry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO chats (id, user_id, message, response, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		entry.ID, entry.UserID, entry.Message, entry.Response, entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert chat entry: %w", err)
	}
	return nil
}

// ListByUser returns a page of the user's entries, newest first, plus the
// user's total entry count.
func (r *ChatRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Entry, int, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+chatColumns+" FROM chats WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		userID, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list chat entries: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.Entry, 0)
	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Message, &e.Response, &e.Timestamp); err != nil {
			return nil, 0, fmt.Errorf("scan chat entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate chat entries: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM chats WHERE user_id = $1", userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count chat entries: %w", err)
	}

	return entries, total, nil
}
