package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-sync-service/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(t *testing.T, req *http.Request) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	if req == nil {
		req = httptest.NewRequest(http.MethodGet, "/", nil)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	return c, w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	return resp
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse(ErrorCodeNotFound, "quote not found").WithTraceID("abc")

	assert.Equal(t, &ErrorResponse{
		Error:   ErrorDetail{Code: ErrorCodeNotFound, Message: "quote not found"},
		TraceID: "abc",
	}, resp)

	withDetails := NewErrorResponseWithDetails(ErrorCodeValidation, "bad", map[string]string{"text": "required"})
	assert.Equal(t, "required", withDetails.Error.Details["text"])
}

func TestHTTPStatusFromCode(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeInvalidImport, http.StatusBadRequest},
		{ErrorCodeBadRequest, http.StatusBadRequest},
		{ErrorCodeForbidden, http.StatusForbidden},
		{ErrorCodeUnauthorized, http.StatusUnauthorized},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeTimeout, http.StatusGatewayTimeout},
		{ErrorCodeRateLimited, http.StatusTooManyRequests},
		{ErrorCodePayloadTooBig, http.StatusRequestEntityTooLarge},
		{ErrorCodeInternal, http.StatusInternalServerError},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusFromCode(tt.code))
		})
	}
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "not found",
			err:        domain.NewNotFoundError("quote", ""),
			wantStatus: http.StatusNotFound,
			wantCode:   ErrorCodeNotFound,
			wantMsg:    "quote not found",
		},
		{
			name:       "invalid import",
			err:        domain.NewInvalidImportError(errors.New("unexpected EOF")),
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrorCodeInvalidImport,
			wantMsg:    "invalid JSON format, expected an array of quotes",
		},
		{
			name:       "no valid records",
			err:        fmt.Errorf("importing: %w", domain.ErrNoValidRecords),
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrorCodeInvalidImport,
			wantMsg:    "no valid quotes found in the file",
		},
		{
			name:       "bare validation sentinel",
			err:        domain.ErrValidation,
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrorCodeValidation,
			wantMsg:    "validation failed",
		},
		{
			name:       "conflict",
			err:        domain.NewConflictError("quote", "duplicate"),
			wantStatus: http.StatusConflict,
			wantCode:   ErrorCodeConflict,
		},
		{
			name:       "forbidden",
			err:        domain.NewForbiddenError("import", "read only"),
			wantStatus: http.StatusForbidden,
			wantCode:   ErrorCodeForbidden,
		},
		{
			name:       "unavailable",
			err:        domain.NewUnavailableError("remote-quotes", "timeout"),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   ErrorCodeUnavailable,
		},
		{
			name:       "unknown error hides detail",
			err:        errors.New("disk on fire"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   ErrorCodeInternal,
			wantMsg:    internalErrorMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := MapDomainError(tt.err)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, resp.Error.Code)

			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, resp.Error.Message)
			}
		})
	}
}

func TestMapDomainError_ValidationDetails(t *testing.T) {
	status, resp := MapDomainError(domain.NewValidationError("text", "must not be blank"))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, ErrorCodeValidation, resp.Error.Code)
	assert.Equal(t, map[string]string{"text": "must not be blank"}, resp.Error.Details)
}

func TestMapDomainError_Nil(t *testing.T) {
	status, resp := MapDomainError(nil)

	assert.Equal(t, http.StatusOK, status)
	assert.Nil(t, resp)
}

func TestGetTraceID(t *testing.T) {
	t.Run("context value", func(t *testing.T) {
		c, _ := newTestContext(t, nil)
		c.Set("trace_id", "trace-from-context")

		assert.Equal(t, "trace-from-context", GetTraceID(c))
	})

	t.Run("request id header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "req-123")
		c, _ := newTestContext(t, req)

		assert.Equal(t, "req-123", GetTraceID(c))
	})

	t.Run("none", func(t *testing.T) {
		c, _ := newTestContext(t, nil)

		assert.Empty(t, GetTraceID(c))
	})
}

func TestHandleError(t *testing.T) {
	c, w := newTestContext(t, nil)
	c.Set("trace_id", "t-1")

	HandleError(c, domain.ErrInvalidImport)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeError(t, w)
	assert.Equal(t, ErrorCodeInvalidImport, resp.Error.Code)
	assert.Equal(t, "t-1", resp.TraceID)
}

func TestAbortWithCode(t *testing.T) {
	c, w := newTestContext(t, nil)

	AbortWithCode(c, ErrorCodeRateLimited, "slow down")

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "slow down", decodeError(t, w).Error.Message)
}

func TestAbortWithError(t *testing.T) {
	c, w := newTestContext(t, nil)

	AbortWithError(c, domain.NewForbiddenError("sync", "missing role"))

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestNewQuoteResponses(t *testing.T) {
	got := NewQuoteResponses([]domain.Quote{
		{Text: "A", Category: "x"},
		{Text: "B", Category: "y"},
	})

	assert.Equal(t, []QuoteResponse{{Text: "A", Category: "x"}, {Text: "B", Category: "y"}}, got)
	assert.NotNil(t, NewQuoteResponses(nil))
}

func TestSyncStatusResponse_OmitsZeroTimes(t *testing.T) {
	raw, err := json.Marshal(SyncStatusResponse{State: "idle"})
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "startedAt")
	assert.NotContains(t, string(raw), "finishedAt")
}

func TestPaginationRequest_GetLimit(t *testing.T) {
	tests := []struct {
		limit int
		want  int
	}{
		{0, DefaultLimit},
		{-4, DefaultLimit},
		{5, 5},
		{MaxLimit + 1, MaxLimit},
	}

	for _, tt := range tests {
		req := PaginationRequest{Limit: tt.limit}
		assert.Equal(t, tt.want, req.GetLimit(), "limit %d", tt.limit)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	encoded := EncodeCursor(&CursorData{Offset: 20, Key: "stay hungry"})

	decoded, err := DecodeCursor(encoded)
	require.NoError(t, err)
	assert.Equal(t, &CursorData{Offset: 20, Key: "stay hungry"}, decoded)

	assert.Empty(t, EncodeCursor(nil))
}

func TestDecodeCursor_Errors(t *testing.T) {
	_, err := DecodeCursor("")
	require.ErrorIs(t, err, ErrNoCursor)

	_, err = DecodeCursor("!!!not-base64!!!")
	require.ErrorIs(t, err, ErrInvalidCursor)

	_, err = DecodeCursor(EncodeCursor(&CursorData{Offset: -1}))
	require.ErrorIs(t, err, ErrInvalidCursor)
}

func letters(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = string(rune('a' + i))
	}

	return out
}

func identity(s string) string { return s }

func TestPaginate_WalksAllPages(t *testing.T) {
	items := letters(5)
	req := &PaginationRequest{Limit: 2}

	var seen []string

	for range 5 {
		page, err := Paginate(items, req, identity)
		require.NoError(t, err)

		seen = append(seen, page.Items...)
		assert.Equal(t, 5, page.Total)

		if !page.HasMore {
			assert.Empty(t, page.NextCursor)
			break
		}

		req.Cursor = page.NextCursor
	}

	assert.Equal(t, items, seen)
}

func TestPaginate_ResumesAfterKeyWhenItemsShift(t *testing.T) {
	items := letters(6)

	first, err := Paginate(items, &PaginationRequest{Limit: 3}, identity)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, first.Items)

	shifted := append([]string{"z"}, items...)

	second, err := Paginate(shifted, &PaginationRequest{Limit: 3, Cursor: first.NextCursor}, identity)
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "e", "f"}, second.Items)
}

func TestPaginate_FallsBackToOffset(t *testing.T) {
	cursor := EncodeCursor(&CursorData{Offset: 2, Key: "gone"})

	page, err := Paginate(letters(4), &PaginationRequest{Limit: 10, Cursor: cursor}, identity)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "d"}, page.Items)

	past := EncodeCursor(&CursorData{Offset: 99})

	page, err = Paginate(letters(4), &PaginationRequest{Cursor: past}, identity)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasMore)
}

func TestPaginate_InvalidCursor(t *testing.T) {
	_, err := Paginate(letters(3), &PaginationRequest{Cursor: "%%%"}, identity)

	assert.ErrorIs(t, err, ErrInvalidCursor)
}

func TestValidate_AddQuoteRequest(t *testing.T) {
	err := Validate(&AddQuoteRequest{Text: strings.Repeat("x", 2001), Category: "life"})

	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, map[string]string{"text": "must be at most 2000 characters"}, ValidationErrors(err))

	assert.NoError(t, Validate(&AddQuoteRequest{Text: "fine", Category: "life"}))
}

func TestValidate_PaginationLimit(t *testing.T) {
	err := Validate(&ListQuotesRequest{PaginationRequest: PaginationRequest{Limit: 500}})

	require.Error(t, err)
	assert.Equal(t, "must be less than or equal to 100", ValidationErrors(err)["limit"])
}

func TestValidationErrors_NonValidatorError(t *testing.T) {
	assert.Empty(t, ValidationErrors(errors.New("boom")))
}

func TestBindAndValidate(t *testing.T) {
	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		c, w := newTestContext(t, req)

		var body AddQuoteRequest
		err := BindAndValidate(c, &body)
		require.ErrorIs(t, err, ErrBinding)

		RespondWithBindError(c, err)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, ErrorCodeBadRequest, decodeError(t, w).Error.Code)
	})

	t.Run("field errors", func(t *testing.T) {
		body := `{"text":"ok","category":"` + strings.Repeat("c", 101) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c, w := newTestContext(t, req)

		var dst AddQuoteRequest
		err := BindAndValidate(c, &dst)
		require.ErrorIs(t, err, ErrValidation)

		RespondWithBindError(c, err)
		resp := decodeError(t, w)
		assert.Equal(t, ErrorCodeValidation, resp.Error.Code)
		assert.Contains(t, resp.Error.Details, "category")
	})
}

func TestBindQueryAndValidate(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?category=life&limit=5", nil)
	c, _ := newTestContext(t, req)

	var q ListQuotesRequest
	require.NoError(t, BindQueryAndValidate(c, &q))

	assert.Equal(t, "life", q.Category)
	assert.Equal(t, 5, q.Limit)
}

func TestMapDomainError_PayloadTooLarge(t *testing.T) {
	err := domain.NewInvalidImportError(&http.MaxBytesError{Limit: 1024})

	status, resp := MapDomainError(err)

	assert.Equal(t, http.StatusRequestEntityTooLarge, status)
	assert.Equal(t, ErrorCodePayloadTooBig, resp.Error.Code)
	assert.Equal(t, "request body exceeds 1024 bytes", resp.Error.Message)
}
