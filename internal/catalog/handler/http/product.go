package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Mrfarooqui038501/SalesChatBot/internal/catalog/service"
	apperrors "github.com/Mrfarooqui038501/SalesChatBot/pkg/errors"
	"github.com/Mrfarooqui038501/SalesChatBot/pkg/httputil"
	"github.com/Mrfarooqui038501/SalesChatBot/pkg/pagination"
)

// defaultPageSize is the page size for the unfiltered product listing.
const defaultPageSize = 50

// ProductHandler handles HTTP requests for catalog endpoints.
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new catalog HTTP handler.
func NewProductHandler(svc *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{service: svc, logger: logger}
}

// Routes mounts the catalog endpoints on the given router. The fixed paths
// are registered before the {id} wildcard so "search" and "categories" are
// never captured as product IDs.
func (h *ProductHandler) Routes(r chi.Router) {
	r.Get("/search", h.SearchProducts)
	r.Get("/categories", h.GetCategories)
	r.Get("/", h.ListProducts)
	r.Get("/{id}", h.GetProduct)
}

// SearchProducts handles GET /api/products/search.
func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := service.SearchInput{
		Query:    q.Get("query"),
		Category: q.Get("category"),
	}

	if v := q.Get("minPrice"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			httputil.WriteError(w, r, apperrors.InvalidInput("minPrice must be a valid number"), h.logger)
			return
		}
		input.MinPrice = &price
	}
	if v := q.Get("maxPrice"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			httputil.WriteError(w, r, apperrors.InvalidInput("maxPrice must be a valid number"), h.logger)
			return
		}
		input.MaxPrice = &price
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			httputil.WriteError(w, r, apperrors.InvalidInput("limit must be a valid positive integer"), h.logger)
			return
		}
		input.Limit = limit
	}

	products, err := h.service.SearchProducts(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteList(w, len(products), products)
}

// ListProducts handles GET /api/products.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r, defaultPageSize)

	products, total, err := h.service.ListProducts(r.Context(), params.Limit, params.Offset)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WritePage(w, len(products), total, params.Page, pagination.TotalPages(total, params.Limit), products)
}

// GetProduct handles GET /api/products/{id}.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, product)
}

// GetCategories handles GET /api/products/categories.
func (h *ProductHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.GetCategories(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, categories)
}
