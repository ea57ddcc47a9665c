package dto

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

// Page size bounds.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

var (
	// ErrInvalidCursor is returned when a cursor cannot be decoded.
	ErrInvalidCursor = errors.New("invalid cursor")

	// ErrNoCursor signals a first-page request.
	ErrNoCursor = errors.New("no cursor provided")
)

// PaginationRequest is the cursor and page size from the query string.
type PaginationRequest struct {
	// Cursor is an opaque NextCursor from a previous page.
	Cursor string `form:"cursor" json:"cursor"`
	Limit  int    `form:"limit"  json:"limit"  validate:"omitempty,gte=1,lte=100"`
}

// GetLimit returns Limit clamped to [1, MaxLimit], DefaultLimit when unset.
func (p *PaginationRequest) GetLimit() int {
	switch {
	case p.Limit <= 0:
		return DefaultLimit
	case p.Limit > MaxLimit:
		return MaxLimit
	default:
		return p.Limit
	}
}

// PaginatedResponse is one page of items.
type PaginatedResponse[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"nextCursor,omitempty"`
	HasMore    bool   `json:"hasMore"`
	Total      int    `json:"total"`
}

// CursorData locates the end of the previous page: the position after it and
// the key of its last item. The key lets a page boundary survive inserts and
// removals that happen between requests.
type CursorData struct {
	Offset int    `json:"o"`
	Key    string `json:"k,omitempty"`
}

// EncodeCursor returns the opaque form of data, "" for nil.
func EncodeCursor(data *CursorData) string {
	if data == nil {
		return ""
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return ""
	}

	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor parses an opaque cursor.
func DecodeCursor(encoded string) (*CursorData, error) {
	if encoded == "" {
		return nil, ErrNoCursor
	}

	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidCursor
	}

	var data CursorData
	if err := json.Unmarshal(raw, &data); err != nil || data.Offset < 0 {
		return nil, ErrInvalidCursor
	}

	return &data, nil
}

// Paginate slices items into the page addressed by req. key identifies an
// item. A page resumes at the recorded offset while the item before it still
// has the cursor's key, otherwise right after the first item with that key,
// otherwise at the offset.
func Paginate[T any](items []T, req *PaginationRequest, key func(T) string) (*PaginatedResponse[T], error) {
	start := 0

	cursor, err := DecodeCursor(req.Cursor)

	switch {
	case errors.Is(err, ErrNoCursor):
	case err != nil:
		return nil, err
	default:
		start = resumeIndex(items, cursor, key)
	}

	limit := req.GetLimit()
	end := min(start+limit, len(items))
	page := make([]T, 0, end-start)
	page = append(page, items[start:end]...)

	resp := &PaginatedResponse[T]{
		Items:   page,
		HasMore: end < len(items),
		Total:   len(items),
	}

	if resp.HasMore && len(page) > 0 {
		resp.NextCursor = EncodeCursor(&CursorData{Offset: end, Key: key(page[len(page)-1])})
	}

	return resp, nil
}

func resumeIndex[T any](items []T, cursor *CursorData, key func(T) string) int {
	if cursor.Offset > 0 && cursor.Offset <= len(items) && key(items[cursor.Offset-1]) == cursor.Key {
		return cursor.Offset
	}

	if cursor.Key != "" {
		for i, item := range items {
			if key(item) == cursor.Key {
				return i + 1
			}
		}
	}

	return min(cursor.Offset, len(items))
}
