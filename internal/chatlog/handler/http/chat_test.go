package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Mrfarooqui038501/SalesChatBot/internal/chatlog/domain"
	"github.com/Mrfarooqui038501/SalesChatBot/internal/chatlog/service"
	apperrors "github.com/Mrfarooqui038501/SalesChatBot/pkg/errors"
	"github.com/Mrfarooqui038501/SalesChatBot/pkg/middleware"
)

type mockChatRepository struct {
	mock.Mock
}

func (m *mockChatRepository) Create(ctx context.Context, entry *domain.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockChatRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Entry, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Entry), args.Int(1), args.Error(2)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func setupChatRouter(repo *mockChatRepository) *chi.Mux {
	handler := NewChatHandler(service.NewChatService(repo, testLogger()), testLogger())

	validate := func(token string) (*middleware.Claims, error) {
		if token == "good-token" {
			return &middleware.Claims{UserID: "u-1"}, nil
		}
		return nil, apperrors.Unauthorized("Invalid token")
	}

	r := chi.NewRouter()
	r.Route("/api/chat", func(r chi.Router) {
		r.Use(middleware.Auth(validate))
		handler.Routes(r)
	})
	return r
}

func authedRequest(method, target string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer good-token")
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestSaveChat_Success(t *testing.T) {
	repo := new(mockChatRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.Entry) bool {
		return e.UserID == "u-1" && e.Message == "laptop" && e.ID != ""
	})).Return(nil)

	router := setupChatRouter(repo)
	body, _ := json.Marshal(map[string]string{
		"message":  "laptop",
		"response": `Found 2 products matching "laptop":`,
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/chat", body))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Chat saved successfully")
	repo.AssertExpectations(t)
}

func TestSaveChat_MissingFields(t *testing.T) {
	repo := new(mockChatRepository)
	router := setupChatRouter(repo)

	body, _ := json.Marshal(map[string]string{"message": "laptop"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/chat", body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Message and response are required")
	repo.AssertNotCalled(t, "Create")
}

func TestSaveChat_RequiresAuth(t *testing.T) {
	router := setupChatRouter(new(mockChatRepository))

	body, _ := json.Marshal(map[string]string{"message": "m", "response": "r"})
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHistory_PaginationBlock(t *testing.T) {
	repo := new(mockChatRepository)
	now := time.Now().UTC()
	entries := []domain.Entry{
		{ID: "c-2", UserID: "u-1", Message: "mouse", Response: "Found 1", Timestamp: now},
		{ID: "c-1", UserID: "u-1", Message: "laptop", Response: "Found 2", Timestamp: now.Add(-time.Minute)},
	}
	repo.On("ListByUser", mock.Anything, "u-1", 2, 0).Return(entries, 5, nil)

	router := setupChatRouter(repo)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/chat/history?limit=2&page=1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp historyResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, 1, resp.Pagination.CurrentPage)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	assert.Equal(t, 5, resp.Pagination.TotalChats)
	assert.True(t, resp.Pagination.HasMore)
	repo.AssertExpectations(t)
}

func TestHistory_LastPageHasNoMore(t *testing.T) {
	repo := new(mockChatRepository)
	repo.On("ListByUser", mock.Anything, "u-1", 2, 4).
		Return([]domain.Entry{{ID: "c-5", UserID: "u-1"}}, 5, nil)

	router := setupChatRouter(repo)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/chat/history?limit=2&page=3", nil))

	var resp historyResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Pagination.HasMore)
}
