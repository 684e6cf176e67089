package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quotewell/quotewell/internal/adapters/http/dto"
	"github.com/quotewell/quotewell/internal/app"
	"github.com/quotewell/quotewell/internal/domain"
)

// ProfileHandler handles profile and appearance endpoints.
type ProfileHandler struct {
	service *app.ProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(service *app.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		service: service,
	}
}

// GetProfile handles GET /api/v1/profile
// Returns the caller's profile. A user who has never saved one gets an
// empty profile rather than a 404.
//
// @Summary Get the caller's profile
// @Description Fetches the caller's profile, empty when never saved
// @Tags profile
// @Produce json
// @Success 200 {object} dto.ProfileResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/v1/profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewProfileResponse(profile))
}

// UpdateProfile handles PUT /api/v1/profile
// Saves the caller's profile fields.
//
// @Summary Update the caller's profile
// @Description Saves the caller's username and profile fields
// @Tags profile
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/v1/profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	profile := &domain.Profile{ID: userID}
	req.ToDomain(profile)

	if err := h.service.Update(c.Request.Context(), profile); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewProfileResponse(profile))
}

// GetAppearance handles GET /api/v1/profile/appearance
// Returns the caller's display settings, falling back to the defaults.
//
// @Summary Get display settings
// @Description Fetches the caller's display settings or the defaults
// @Tags profile
// @Produce json
// @Success 200 {object} dto.AppearanceResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/v1/profile/appearance [get]
func (h *ProfileHandler) GetAppearance(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	appearance, err := h.service.GetAppearance(c.Request.Context(), userID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAppearanceResponse(appearance))
}

// SaveAppearance handles PUT /api/v1/profile/appearance
// Saves the caller's display settings.
//
// @Summary Save display settings
// @Description Saves the caller's theme, accent palette and font size
// @Tags profile
// @Accept json
// @Produce json
// @Param request body dto.AppearanceRequest true "Display settings"
// @Success 200 {object} dto.AppearanceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/profile/appearance [put]
func (h *ProfileHandler) SaveAppearance(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.AppearanceRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	appearance := req.ToDomain()

	if err := h.service.SaveAppearance(c.Request.Context(), userID, appearance); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAppearanceResponse(appearance))
}

// RegisterProfileRoutes registers profile routes on the given router group.
func (h *ProfileHandler) RegisterProfileRoutes(rg *gin.RouterGroup) {
	profile := rg.Group("/profile")
	profile.GET("", h.GetProfile)
	profile.PUT("", h.UpdateProfile)
	profile.GET("/appearance", h.GetAppearance)
	profile.PUT("/appearance", h.SaveAppearance)
}
