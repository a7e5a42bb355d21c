package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Mrfarooqui038501/SalesChatBot/internal/cart/domain"
	"github.com/Mrfarooqui038501/SalesChatBot/internal/cart/service"
	apperrors "github.com/Mrfarooqui038501/SalesChatBot/pkg/errors"
	"github.com/Mrfarooqui038501/SalesChatBot/pkg/httputil"
	"github.com/Mrfarooqui038501/SalesChatBot/pkg/middleware"
	"github.com/Mrfarooqui038501/SalesChatBot/pkg/validator"
)

// CartHandler handles HTTP requests for cart endpoints. All routes require
// an authenticated user.
type CartHandler struct {
	service *service.CartService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(svc *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{service: svc, logger: logger}
}

// Routes mounts the cart endpoints on the given router.
func (h *CartHandler) Routes(r chi.Router) {
	r.Get("/", h.GetCart)
	r.Post("/add", h.AddItem)
	r.Put("/update", h.UpdateItem)
	r.Delete("/remove/{productId}", h.RemoveItem)
	r.Delete("/clear", h.ClearCart)
}

// --- Request / response DTOs ---

// AddItemRequest is the JSON request body for adding a cart item. Quantity
// defaults to 1 when omitted.
type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,gte=1"`
}

// UpdateItemRequest is the JSON request body for updating a line quantity.
type UpdateItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// cartResponse is the mutation response shape: a human-readable message
// plus the full updated cart.
type cartResponse struct {
	Message string       `json:"message"`
	Cart    *domain.Cart `json:"cart"`
}

// getCartResponse wraps the cart for the read endpoint.
type getCartResponse struct {
	Cart *domain.Cart `json:"cart"`
}

// --- Handlers ---

// GetCart handles GET /api/cart.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	cart, err := h.service.GetCart(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, getCartResponse{Cart: cart})
}

// AddItem handles POST /api/cart/add.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body"), h.logger)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cart, err := h.service.AddItem(r.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, cartResponse{
		Message: "Item added to cart successfully",
		Cart:    cart,
	})
}

// UpdateItem handles PUT /api/cart/update.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body"), h.logger)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cart, err := h.service.UpdateItemQuantity(r.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, cartResponse{
		Message: "Cart item updated successfully",
		Cart:    cart,
	})
}

// RemoveItem handles DELETE /api/cart/remove/{productId}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	productID := chi.URLParam(r, "productId")

	cart, err := h.service.RemoveItem(r.Context(), userID, productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, cartResponse{
		Message: "Item removed from cart successfully",
		Cart:    cart,
	})
}

// ClearCart handles DELETE /api/cart/clear.
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	cart, err := h.service.ClearCart(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, cartResponse{
		Message: "Cart cleared successfully",
		Cart:    cart,
	})
}
