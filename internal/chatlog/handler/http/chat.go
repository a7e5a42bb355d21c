package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Mrfarooqui038501/SalesChatBot/internal/chatlog/domain"
	"github.com/Mrfarooqui038501/SalesChatBot/internal/chatlog/service"
	apperrors "github.com/Mrfarooqui038501/SalesChatBot/pkg/errors"
	"github.com/Mrfarooqui038501/SalesChatBot/pkg/httputil"
	"github.com/Mrfarooqui038501/SalesChatBot/pkg/middleware"
	"github.com/Mrfarooqui038501/SalesChatBot/pkg/pagination"
	"github.com/Mrfarooqui038501/SalesChatBot/pkg/validator"
)

// ChatHandler handles HTTP requests for chat history endpoints. All routes
// require an authenticated user.
type ChatHandler struct {
	service *service.ChatService
	logger  *slog.Logger
}

// NewChatHandler creates a new chat HTTP handler.
func NewChatHandler(svc *service.ChatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{service: svc, logger: logger}
}

// Routes mounts the chat endpoints on the given router.
func (h *ChatHandler) Routes(r chi.Router) {
	r.Post("/", h.SaveChat)
	r.Get("/history", h.History)
}

// SaveChatRequest is the JSON request body for persisting one exchange.
type SaveChatRequest struct {
	Message  string `json:"message" validate:"required"`
	Response string `json:"response" validate:"required"`
}

// historyPagination mirrors the history endpoint's pagination block.
type historyPagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalChats  int  `json:"totalChats"`
	HasMore     bool `json:"hasMore"`
}

type historyResponse struct {
	Success    bool              `json:"success"`
	Data       []domain.Entry    `json:"data"`
	Pagination historyPagination `json:"pagination"`
}

// SaveChat handles POST /api/chat.
func (h *ChatHandler) SaveChat(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	var req SaveChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body"), h.logger)
		return
	}
	if req.Message == "" || req.Response == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("Message and response are required"), h.logger)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	entry, err := h.service.SaveChat(r.Context(), userID, req.Message, req.Response)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Envelope{
		Success: true,
		Message: "Chat saved successfully",
		Data:    entry,
	})
}

// History handles GET /api/chat/history.
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	params := pagination.FromRequest(r, service.DefaultHistoryLimit)

	entries, total, err := h.service.History(r.Context(), userID, params.Limit, params.Offset)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, historyResponse{
		Success: true,
		Data:    entries,
		Pagination: historyPagination{
			CurrentPage: params.Page,
			TotalPages:  pagination.TotalPages(total, params.Limit),
			TotalChats:  total,
			HasMore:     params.Offset+len(entries) < total,
		},
	})
}
