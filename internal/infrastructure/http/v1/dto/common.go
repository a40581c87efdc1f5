// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"strings"
	"time"

	"adminsuite/internal/core/apperror"
	"adminsuite/internal/domain/table"
)

// --- Table listing ---

// ListRequest carries the search, sort and page parameters shared by every
// table endpoint.
type ListRequest struct {
	Search    string `form:"search"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Expr      string `form:"expr"`
}

// ToQuery builds the engine query. Predicates with empty values are ignored
// by the engine, so optional query parameters can be passed straight through.
func (r ListRequest) ToQuery(match ...table.Predicate) table.Query {
	page := r.Page
	if page == 0 {
		page = 1
	}
	return table.Query{
		Filter: table.FilterSpec{Search: r.Search, Match: match, Expr: r.Expr},
		Sort:   r.Sort(),
		Page:   table.PageSpec{Page: page, Size: r.Limit},
	}
}

// Sort returns the requested sort; sortOrder defaults to ascending.
func (r ListRequest) Sort() table.SortSpec {
	return table.SortSpec{Field: r.SortBy, Desc: r.SortOrder == "desc"}
}

// PaginationResponse contains pagination metadata.
type PaginationResponse struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// ListResponse wraps one page of results.
type ListResponse[T any] struct {
	Data       []T                `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

// FromPage converts an engine page, mapping every item through conv.
func FromPage[T, R any](p table.Page[T], conv func(T) R) ListResponse[R] {
	data := make([]R, len(p.Items))
	for i, it := range p.Items {
		data[i] = conv(it)
	}
	return ListResponse[R]{
		Data: data,
		Pagination: PaginationResponse{
			Page:       p.Page,
			Limit:      p.Size,
			Total:      p.TotalItems,
			TotalPages: p.TotalPages,
			HasNext:    p.HasNext,
			HasPrev:    p.HasPrev,
		},
	}
}

// --- Dates ---

// ParseDate accepts YYYY-MM-DD or RFC3339. With endOfDay set, a date-only
// value is moved to the last instant of that UTC day.
func ParseDate(param, s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, apperror.NewInvalidInput(param, s).
			WithDetail("expected", "YYYY-MM-DD or RFC3339")
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return &t, nil
}

// SplitList splits a comma separated parameter, dropping blanks.
func SplitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseMatch reads "field:value" pairs.
func ParseMatch(pairs []string) ([]table.Predicate, error) {
	preds := make([]table.Predicate, 0, len(pairs))
	for _, p := range pairs {
		field, value, ok := strings.Cut(p, ":")
		if !ok || field == "" {
			return nil, apperror.NewInvalidInput("match", p).
				WithDetail("expected", "field:value")
		}
		preds = append(preds, table.Predicate{Field: field, Value: value})
	}
	return preds, nil
}

// --- Error Response ---

// ErrorResponse mirrors the body written by middleware.ErrorHandler.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
