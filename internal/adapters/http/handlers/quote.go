package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-sync-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-sync-service/internal/app"
	"github.com/jsamuelsen/quote-sync-service/internal/domain"
)

const (
	// ExportFilename is the attachment name of GET /quotes/export.
	ExportFilename = "quotes.json"

	// importFormField is the multipart field POST /quotes/import reads.
	importFormField = "file"

	importSucceeded = "Quotes imported successfully!"
)

// QuoteHandler handles quote-related HTTP endpoints.
type QuoteHandler struct {
	service *app.QuoteService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service *app.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		service: service,
	}
}

// ListQuotes handles GET /api/v1/quotes.
// Lists quotes in insertion order, filtered by the category query parameter
// or, when absent, by the selected category.
//
// @Summary List quotes
// @Tags quotes
// @Produce json
// @Param category query string false "Category filter"
// @Param cursor query string false "Page cursor"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.PaginatedResponse[dto.QuoteResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	var req dto.ListQuotesRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	quotes := dto.NewQuoteResponses(h.service.FilteredQuotes(c.Request.Context(), req.Category))

	page, err := dto.Paginate(quotes, &req.PaginationRequest, func(q dto.QuoteResponse) string {
		return domain.MergeKey(q.Text)
	})
	if err != nil {
		dto.RespondWithCode(c, dto.ErrorCodeBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, page)
}

// AddQuote handles POST /api/v1/quotes.
//
// @Summary Add a quote
// @Tags quotes
// @Accept json
// @Produce json
// @Param body body dto.AddQuoteRequest true "Quote"
// @Success 201 {object} dto.QuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/quotes [post]
func (h *QuoteHandler) AddQuote(c *gin.Context) {
	var req dto.AddQuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	quote, err := h.service.AddQuote(c.Request.Context(), req.Text, req.Category)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuoteResponse(quote))
}

// RandomQuote handles GET /api/v1/quotes/random.
// Picks a quote from the selected category and remembers it for the session.
//
// @Summary Show a random quote
// @Tags quotes
// @Produce json
// @Success 200 {object} dto.QuoteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/quotes/random [get]
func (h *QuoteHandler) RandomQuote(c *gin.Context) {
	quote, err := h.service.RandomQuote(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote))
}

// LastQuote handles GET /api/v1/quotes/last.
// Returns the quote last shown in this session, or a random one.
//
// @Summary Show the last displayed quote
// @Tags quotes
// @Produce json
// @Success 200 {object} dto.QuoteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/quotes/last [get]
func (h *QuoteHandler) LastQuote(c *gin.Context) {
	quote, err := h.service.LastQuote(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote))
}

// ExportQuotes handles GET /api/v1/quotes/export as a JSON file download.
//
// @Summary Export the collection
// @Tags quotes
// @Produce json
// @Success 200 {array} dto.QuoteResponse
// @Router /api/v1/quotes/export [get]
func (h *QuoteHandler) ExportQuotes(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.service.Export(c.Request.Context(), &buf); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+ExportFilename+`"`)
	c.Data(http.StatusOK, "application/json", buf.Bytes())
}

// ImportQuotes handles POST /api/v1/quotes/import.
// Accepts the JSON array either as the raw body or as a multipart "file".
//
// @Summary Import quotes
// @Tags quotes
// @Accept json,mpfd
// @Produce json
// @Success 200 {object} dto.ImportResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/quotes/import [post]
func (h *QuoteHandler) ImportQuotes(c *gin.Context) {
	body, err := importBody(c)
	if err != nil {
		dto.RespondWithCode(c, dto.ErrorCodeBadRequest, err.Error())
		return
	}
	defer body.Close()

	result, err := h.service.Import(c.Request.Context(), body)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ImportResponse{
		Message:  importSucceeded,
		Received: result.Received,
		Imported: result.Imported,
		Dropped:  result.Dropped,
		Total:    len(h.service.Quotes(c.Request.Context())),
	})
}

func importBody(c *gin.Context) (io.ReadCloser, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return c.Request.Body, nil
	}

	header, err := c.FormFile(importFormField)
	if err != nil {
		return nil, errors.New(`multipart import requires a "file" field`)
	}

	return header.Open()
}

// ListCategories handles GET /api/v1/categories.
//
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {object} dto.CategoriesResponse
// @Router /api/v1/categories [get]
func (h *QuoteHandler) ListCategories(c *gin.Context) {
	ctx := c.Request.Context()

	c.JSON(http.StatusOK, dto.CategoriesResponse{
		Categories: h.service.Categories(ctx),
		Selected:   h.service.SelectedCategory(ctx),
	})
}

// SelectedCategory handles GET /api/v1/categories/selected.
func (h *QuoteHandler) SelectedCategory(c *gin.Context) {
	c.JSON(http.StatusOK, dto.SelectedCategoryResponse{
		Category: h.service.SelectedCategory(c.Request.Context()),
	})
}

// SelectCategory handles PUT /api/v1/categories/selected.
// An unknown category selects "all"; the response holds the selection in effect.
//
// @Summary Select the category filter
// @Tags categories
// @Accept json
// @Produce json
// @Param body body dto.SelectCategoryRequest true "Category"
// @Success 200 {object} dto.SelectedCategoryResponse
// @Router /api/v1/categories/selected [put]
func (h *QuoteHandler) SelectCategory(c *gin.Context) {
	var req dto.SelectCategoryRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SelectedCategoryResponse{
		Category: h.service.SelectCategory(c.Request.Context(), req.Category),
	})
}

// RegisterQuoteRoutes registers read routes on rg and mutating routes on
// write, which may carry extra middleware such as authorization.
func (h *QuoteHandler) RegisterQuoteRoutes(rg, write *gin.RouterGroup) {
	rg.GET("/quotes", h.ListQuotes)
	rg.GET("/quotes/random", h.RandomQuote)
	rg.GET("/quotes/last", h.LastQuote)
	rg.GET("/quotes/export", h.ExportQuotes)
	rg.GET("/categories", h.ListCategories)
	rg.GET("/categories/selected", h.SelectedCategory)

	write.POST("/quotes", h.AddQuote)
	write.POST("/quotes/import", h.ImportQuotes)
	write.PUT("/categories/selected", h.SelectCategory)
}
