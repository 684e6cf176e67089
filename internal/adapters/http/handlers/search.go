package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quotewell/quotewell/internal/adapters/http/dto"
	"github.com/quotewell/quotewell/internal/app"
)

// SearchHandler handles quote search and search-history endpoints.
type SearchHandler struct {
	service *app.SearchService
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(service *app.SearchService) *SearchHandler {
	return &SearchHandler{
		service: service,
	}
}

// searchRequest carries the search query parameters.
type searchRequest struct {
	Query string `form:"q"     validate:"required,notempty,max=200"`
	Limit int    `form:"limit" validate:"omitempty,gte=1,lte=100"`
}

// SearchQuotes handles GET /api/v1/search
// Matches catalog quotes against the query and records it in the
// caller's search history.
//
// @Summary Search quotes
// @Description Searches quote text, author and category
// @Tags search
// @Produce json
// @Param q query string true "Search query"
// @Param limit query int false "Maximum results (1-100)"
// @Success 200 {array} dto.QuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/search [get]
func (h *SearchHandler) SearchQuotes(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req searchRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	quotes, err := h.service.Search(c.Request.Context(), userID, req.Query, req.Limit)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponses(quotes))
}

// ListRecentSearches handles GET /api/v1/search/recent
// Returns the caller's search history, most recent first.
//
// @Summary List recent searches
// @Description Lists the caller's most recent search queries
// @Tags search
// @Produce json
// @Success 200 {array} dto.RecentSearchResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/v1/search/recent [get]
func (h *SearchHandler) ListRecentSearches(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	searches, err := h.service.Recent(c.Request.Context(), userID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewRecentSearchResponses(searches))
}

// RemoveRecentSearch handles DELETE /api/v1/search/recent/:id
// Removes one entry from the caller's search history.
//
// @Summary Remove a recent search
// @Description Removes one entry from the caller's search history
// @Tags search
// @Produce json
// @Param id path string true "Search entry ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/search/recent/{id} [delete]
func (h *SearchHandler) RemoveRecentSearch(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	searchID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Forget(c.Request.Context(), userID, searchID); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ClearRecentSearches handles DELETE /api/v1/search/recent
// Clears the caller's search history.
//
// @Summary Clear recent searches
// @Description Removes the caller's entire search history
// @Tags search
// @Produce json
// @Success 204
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/v1/search/recent [delete]
func (h *SearchHandler) ClearRecentSearches(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.service.Clear(c.Request.Context(), userID); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterSearchRoutes registers search routes on the given router group.
func (h *SearchHandler) RegisterSearchRoutes(rg *gin.RouterGroup) {
	search := rg.Group("/search")
	search.GET("", h.SearchQuotes)
	search.GET("/recent", h.ListRecentSearches)
	search.DELETE("/recent", h.ClearRecentSearches)
	search.DELETE("/recent/:id", h.RemoveRecentSearch)
}
