package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quotewell/quotewell/internal/adapters/http/dto"
	"github.com/quotewell/quotewell/internal/app"
)

// FavoriteHandler handles the caller's saved-quotes endpoints.
type FavoriteHandler struct {
	service *app.FavoriteService
}

// NewFavoriteHandler creates a new favorite handler.
func NewFavoriteHandler(service *app.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		service: service,
	}
}

// ListFavorites handles GET /api/v1/favorites
// Returns the caller's favorites, newest first.
//
// @Summary List favorites
// @Description Lists the caller's favorited quotes newest first
// @Tags favorites
// @Produce json
// @Success 200 {array} dto.FavoriteResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/v1/favorites [get]
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	favorites, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewFavoriteResponses(favorites))
}

// AddFavorite handles POST /api/v1/favorites
// Saves a catalog quote to the caller's favorites.
//
// @Summary Add a favorite
// @Description Saves a catalog quote to the caller's favorites
// @Tags favorites
// @Accept json
// @Produce json
// @Param request body dto.AddFavoriteRequest true "Quote to favorite"
// @Success 201 {object} dto.FavoriteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/v1/favorites [post]
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.AddFavoriteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	quoteID, err := uuid.Parse(req.QuoteID)
	if err != nil {
		respondBindError(c, err)
		return
	}

	favorite, err := h.service.Add(c.Request.Context(), userID, quoteID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewFavoriteResponse(favorite))
}

// RemoveFavorite handles DELETE /api/v1/favorites/:id
// Removes one of the caller's favorites.
//
// @Summary Remove a favorite
// @Description Removes one of the caller's favorites
// @Tags favorites
// @Produce json
// @Param id path string true "Favorite ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/favorites/{id} [delete]
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	favoriteID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Remove(c.Request.Context(), userID, favoriteID); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterFavoriteRoutes registers favorite routes on the given router group.
func (h *FavoriteHandler) RegisterFavoriteRoutes(rg *gin.RouterGroup) {
	favorites := rg.Group("/favorites")
	favorites.GET("", h.ListFavorites)
	favorites.POST("", h.AddFavorite)
	favorites.DELETE("/:id", h.RemoveFavorite)
}
