package pagination

import (
	"net/http"
	"strconv"
)

// Params holds pagination parameters extracted from query strings.
// The API uses ?page=&limit= with a 1-based page index.
type Params struct {
	Page   int `json:"page"`
	Limit  int `json:"limit"`
	Offset int `json:"-"`
}

// FromRequest extracts pagination parameters from an HTTP request,
// falling back to page 1 and the given default limit. Limits are
// capped at 100 to bound result sizes.
func FromRequest(r *http.Request, defaultLimit int) Params {
	p := Params{Page: 1, Limit: defaultLimit}

	if page := r.URL.Query().Get("page"); page != "" {
		if v, err := strconv.Atoi(page); err == nil && v > 0 {
			p.Page = v
		}
	}

	if limit := r.URL.Query().Get("limit"); limit != "" {
		if v, err := strconv.Atoi(limit); err == nil && v > 0 && v <= 100 {
			p.Limit = v
		}
	}

	p.Offset = (p.Page - 1) * p.Limit
	return p
}

// TotalPages returns the number of pages needed for total items at the
// given page size.
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := total / limit
	if total%limit > 0 {
		pages++
	}
	return pages
}
