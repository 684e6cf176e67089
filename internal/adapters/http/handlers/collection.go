package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quotewell/quotewell/internal/adapters/http/dto"
	"github.com/quotewell/quotewell/internal/app"
)

// CollectionHandler handles the caller's collection endpoints.
type CollectionHandler struct {
	service *app.CollectionService
}

// NewCollectionHandler creates a new collection handler.
func NewCollectionHandler(service *app.CollectionService) *CollectionHandler {
	return &CollectionHandler{
		service: service,
	}
}

// ListCollections handles GET /api/v1/collections
// Returns the caller's collections with quote counts, newest first.
//
// @Summary List collections
// @Description Lists the caller's collections with quote counts
// @Tags collections
// @Produce json
// @Success 200 {array} dto.CollectionResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/v1/collections [get]
func (h *CollectionHandler) ListCollections(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	collections, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCollectionResponses(collections))
}

// CreateCollection handles POST /api/v1/collections
// Creates a collection for the caller.
//
// @Summary Create a collection
// @Description Creates a named collection for the caller
// @Tags collections
// @Accept json
// @Produce json
// @Param request body dto.CreateCollectionRequest true "Collection to create"
// @Success 201 {object} dto.CollectionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/collections [post]
func (h *CollectionHandler) CreateCollection(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.CreateCollectionRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	collection := req.ToDomain()
	collection.UserID = userID

	if err := h.service.Create(c.Request.Context(), collection); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewCollectionResponse(collection))
}

// GetCollection handles GET /api/v1/collections/:id
// Returns one of the caller's collections together with its quotes.
//
// @Summary Get a collection
// @Description Fetches a collection and its saved quotes
// @Tags collections
// @Produce json
// @Param id path string true "Collection ID"
// @Success 200 {object} dto.CollectionDetailResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/collections/{id} [get]
func (h *CollectionHandler) GetCollection(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	collectionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	collection, quotes, err := h.service.GetWithQuotes(c.Request.Context(), userID, collectionID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CollectionDetailResponse{
		Collection: *dto.NewCollectionResponse(collection),
		Quotes:     dto.NewCollectionQuoteResponses(quotes),
	})
}

// DeleteCollection handles DELETE /api/v1/collections/:id
// Deletes one of the caller's collections and its contents.
//
// @Summary Delete a collection
// @Description Deletes a collection and the quotes saved in it
// @Tags collections
// @Produce json
// @Param id path string true "Collection ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/collections/{id} [delete]
func (h *CollectionHandler) DeleteCollection(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	collectionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, collectionID); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddCollectionQuote handles POST /api/v1/collections/:id/quotes
// Saves a catalog quote into one of the caller's collections.
//
// @Summary Add a quote to a collection
// @Description Saves a catalog quote into a collection
// @Tags collections
// @Accept json
// @Produce json
// @Param id path string true "Collection ID"
// @Param request body dto.AddCollectionQuoteRequest true "Quote to save"
// @Success 201 {object} dto.CollectionQuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/v1/collections/{id}/quotes [post]
func (h *CollectionHandler) AddCollectionQuote(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	collectionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req dto.AddCollectionQuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	quoteID, err := uuid.Parse(req.QuoteID)
	if err != nil {
		respondBindError(c, err)
		return
	}

	item, err := h.service.AddQuote(c.Request.Context(), userID, collectionID, quoteID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewCollectionQuoteResponse(item))
}

// RemoveCollectionQuote handles DELETE /api/v1/collections/:id/quotes/:itemId
// Removes a saved quote from one of the caller's collections.
//
// @Summary Remove a quote from a collection
// @Description Removes a saved quote from a collection
// @Tags collections
// @Produce json
// @Param id path string true "Collection ID"
// @Param itemId path string true "Saved quote ID"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/collections/{id}/quotes/{itemId} [delete]
func (h *CollectionHandler) RemoveCollectionQuote(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	collectionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	itemID, ok := pathUUID(c, "itemId")
	if !ok {
		return
	}

	if err := h.service.RemoveQuote(c.Request.Context(), userID, collectionID, itemID); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterCollectionRoutes registers collection routes on the given router group.
func (h *CollectionHandler) RegisterCollectionRoutes(rg *gin.RouterGroup) {
	collections := rg.Group("/collections")
	collections.GET("", h.ListCollections)
	collections.POST("", h.CreateCollection)
	collections.GET("/:id", h.GetCollection)
	collections.DELETE("/:id", h.DeleteCollection)
	collections.POST("/:id/quotes", h.AddCollectionQuote)
	collections.DELETE("/:id/quotes/:itemId", h.RemoveCollectionQuote)
}
