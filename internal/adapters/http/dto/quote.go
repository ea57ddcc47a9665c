package dto

import (
	"time"

	"github.com/jsamuelsen/quote-sync-service/internal/domain"
)

// QuoteResponse is a quote on the wire.
type QuoteResponse struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// NewQuoteResponse converts a domain quote.
func NewQuoteResponse(q domain.Quote) QuoteResponse {
	return QuoteResponse{Text: q.Text, Category: q.Category}
}

// NewQuoteResponses converts quotes, preserving order.
func NewQuoteResponses(quotes []domain.Quote) []QuoteResponse {
	out := make([]QuoteResponse, len(quotes))
	for i, q := range quotes {
		out[i] = NewQuoteResponse(q)
	}

	return out
}

// ListQuotesRequest carries the query string of GET /quotes.
type ListQuotesRequest struct {
	PaginationRequest

	// Category filters the list. Empty uses the selected category.
	Category string `form:"category" json:"category" validate:"omitempty,max=100"`
}

// AddQuoteRequest is the body of POST /quotes. Blank values are rejected
// by the domain so the error names the offending field.
type AddQuoteRequest struct {
	Text     string `json:"text"     validate:"max=2000"`
	Category string `json:"category" validate:"max=100"`
}

// SelectCategoryRequest is the body of PUT /categories/selected.
type SelectCategoryRequest struct {
	Category string `json:"category" validate:"max=100"`
}

// CategoriesResponse lists the filter options and the active one.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
	Selected   string   `json:"selected"`
}

// SelectedCategoryResponse is the active filter.
type SelectedCategoryResponse struct {
	Category string `json:"category"`
}

// ImportResponse reports an accepted import.
type ImportResponse struct {
	Message  string `json:"message"`
	Received int    `json:"received"`
	Imported int    `json:"imported"`
	Dropped  int    `json:"dropped"`
	Total    int    `json:"total"`
}

// SyncStatusResponse reports a sync attempt.
type SyncStatusResponse struct {
	State      string    `json:"state"`
	Message    string    `json:"message"`
	Conflicts  int       `json:"conflicts"`
	Fetched    int       `json:"fetched"`
	Total      int       `json:"total"`
	Pushed     bool      `json:"pushed"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"startedAt,omitzero"`
	FinishedAt time.Time `json:"finishedAt,omitzero"`
}

// NoticeResponse is one user-facing notice raised by sync.
type NoticeResponse struct {
	Kind    string    `json:"kind"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}
