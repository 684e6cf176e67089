package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quotewell/quotewell/internal/adapters/http/dto"
	"github.com/quotewell/quotewell/internal/app"
	"github.com/quotewell/quotewell/internal/domain"
	"github.com/quotewell/quotewell/internal/ports"
)

// cursorFieldCreatedAt is the sort field encoded in quote list cursors.
const cursorFieldCreatedAt = "created_at"

// QuoteHandler handles quote catalog HTTP endpoints.
type QuoteHandler struct {
	quotes *app.QuoteService
	daily  *app.DailyQuoteService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(quotes *app.QuoteService, daily *app.DailyQuoteService) *QuoteHandler {
	return &QuoteHandler{
		quotes: quotes,
		daily:  daily,
	}
}

// ListQuotes handles GET /api/v1/quotes
// Returns catalog quotes newest first, cursor-paginated. The category
// query parameter narrows the listing to one category.
//
// @Summary List quotes
// @Description Lists catalog quotes newest first with cursor pagination
// @Tags quotes
// @Produce json
// @Param cursor query string false "Pagination cursor"
// @Param limit query int false "Page size (1-100)"
// @Param category query string false "Restrict to one category"
// @Success 200 {object} dto.PaginatedResponse[dto.QuoteResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	var page dto.PaginationRequest
	if err := dto.BindQueryAndValidate(c, &page); err != nil {
		respondBindError(c, err)
		return
	}

	limit := page.GetLimit()

	if category := c.Query("category"); category != "" {
		quotes, err := h.quotes.ListByCategory(c.Request.Context(), category, limit)
		if err != nil {
			dto.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, dto.PaginatedResponse[dto.QuoteResponse]{
			Items: dto.NewQuoteResponses(quotes),
		})

		return
	}

	after, err := decodeQuoteCursor(&page)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.ErrorCodeBadRequest,
			"invalid cursor",
		).WithTraceID(dto.GetTraceID(c)))

		return
	}

	quotes, err := h.quotes.ListRecent(c.Request.Context(), after, limit+1)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	resp := dto.NewPaginatedResponse(dto.NewQuoteResponses(quotes), limit, func(q dto.QuoteResponse) *dto.CursorData {
		return dto.NewCursor(cursorFieldCreatedAt, q.CreatedAt.Format(time.RFC3339Nano), q.ID)
	})

	c.JSON(http.StatusOK, resp)
}

// decodeQuoteCursor translates an opaque request cursor into the
// repository position marker.
func decodeQuoteCursor(page *dto.PaginationRequest) (*ports.QuoteCursor, error) {
	data, err := page.DecodeCursor()
	if err != nil {
		if errors.Is(err, dto.ErrNoCursor) {
			return nil, nil
		}

		return nil, err
	}

	if data.Field != cursorFieldCreatedAt {
		return nil, dto.ErrInvalidCursor
	}

	createdAt, err := time.Parse(time.RFC3339Nano, data.Value)
	if err != nil {
		return nil, dto.ErrInvalidCursor
	}

	id, err := uuid.Parse(data.ID)
	if err != nil {
		return nil, dto.ErrInvalidCursor
	}

	return &ports.QuoteCursor{CreatedAt: createdAt, ID: id}, nil
}

// CreateQuote handles POST /api/v1/quotes
// Adds a quote to the catalog.
//
// @Summary Create a quote
// @Description Adds a quote to the shared catalog
// @Tags quotes
// @Accept json
// @Produce json
// @Param request body dto.CreateQuoteRequest true "Quote to create"
// @Success 201 {object} dto.QuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req dto.CreateQuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	quote := req.ToDomain()

	if err := h.quotes.Create(c.Request.Context(), quote); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuoteResponse(quote))
}

// GetDailyQuote handles GET /api/v1/quotes/daily
// Returns the caller's quote of the day. The optional date parameter
// (YYYY-MM-DD) resolves the quote for another day.
//
// @Summary Get the quote of the day
// @Description Returns the deterministic quote of the day for the caller
// @Tags quotes
// @Produce json
// @Param date query string false "Day to resolve (YYYY-MM-DD)"
// @Success 200 {object} dto.DailyQuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/quotes/daily [get]
func (h *QuoteHandler) GetDailyQuote(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	day := domain.Today()

	if raw := c.Query("date"); raw != "" {
		parsed, err := domain.ParseDay(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.ErrorCodeBadRequest,
				"date must be formatted YYYY-MM-DD",
			).WithTraceID(dto.GetTraceID(c)))

			return
		}

		day = parsed
	}

	result, err := h.daily.QuoteOfTheDay(c.Request.Context(), userID, day)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDailyQuoteResponse(result))
}

// ListCategories handles GET /api/v1/quotes/categories
// Returns the catalog categories with their quote counts.
//
// @Summary List categories
// @Description Lists catalog categories with quote counts
// @Tags quotes
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Router /api/v1/quotes/categories [get]
func (h *QuoteHandler) ListCategories(c *gin.Context) {
	categories, err := h.quotes.Categories(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCategoryResponses(categories))
}

// GetQuoteByID handles GET /api/v1/quotes/:id
// Returns a specific quote by its identifier.
//
// @Summary Get a quote by ID
// @Description Fetches a specific quote by its identifier
// @Tags quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} dto.QuoteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/quotes/{id} [get]
func (h *QuoteHandler) GetQuoteByID(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	quote, err := h.quotes.GetByID(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote))
}

// RegisterQuoteRoutes registers quote routes on the given router group.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	quotes.GET("", h.ListQuotes)
	quotes.POST("", h.CreateQuote)
	quotes.GET("/daily", h.GetDailyQuote)
	quotes.GET("/categories", h.ListCategories)
	quotes.GET("/:id", h.GetQuoteByID)
}
