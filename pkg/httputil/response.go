package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/Mrfarooqui038501/SalesChatBot/pkg/errors"
	"github.com/Mrfarooqui038501/SalesChatBot/pkg/logger"
	"github.com/Mrfarooqui038501/SalesChatBot/pkg/validator"
)

// Envelope is the standard JSON response shape used across the API:
// {"success": true, "count": 2, "data": [...]} for collections and
// {"success": false, "message": "..."} for failures. Clients are expected
// to tolerate both this envelope and bare payloads, so the field set stays
// deliberately flat.
type Envelope struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	Count      *int   `json:"count,omitempty"`
	Total      *int   `json:"total,omitempty"`
	Page       *int   `json:"page,omitempty"`
	TotalPages *int   `json:"totalPages,omitempty"`
	Data       any    `json:"data,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
// If encoding fails, nothing can be done since headers are already sent.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteData writes a 200 response with {"success": true, "data": ...}.
func WriteData(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

// WriteList writes a 200 response with a success envelope carrying the
// result count alongside the data, matching the search endpoint contract.
func WriteList(w http.ResponseWriter, count int, data any) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Count: &count, Data: data})
}

// WritePage writes a paginated collection envelope with count, total,
// page, and totalPages.
func WritePage(w http.ResponseWriter, count, total, page, totalPages int, data any) {
	WriteJSON(w, http.StatusOK, Envelope{
		Success:    true,
		Count:      &count,
		Total:      &total,
		Page:       &page,
		TotalPages: &totalPages,
		Data:       data,
	})
}

// WriteError writes a {"success": false, "message": ...} response with the
// status derived from the error. Internal errors are logged with the
// request-scoped logger when one is present, and their details are not
// leaked to the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() {
		l = fallback
	}

	status := apperrors.HTTPStatus(err)
	message := err.Error()

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	if status == http.StatusInternalServerError {
		l.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
		message = "Server error. Please try again later."
	}

	WriteJSON(w, status, Envelope{Success: false, Message: message})
}

// WriteValidationError writes a 400 response carrying the first
// field-level validation failure as the message.
func WriteValidationError(w http.ResponseWriter, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		WriteJSON(w, http.StatusBadRequest, Envelope{Success: false, Message: valErr.Error()})
		return
	}
	WriteJSON(w, http.StatusBadRequest, Envelope{Success: false, Message: err.Error()})
}
