package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quotewell/quotewell/internal/adapters/http/dto"
	"github.com/quotewell/quotewell/internal/app"
)

// ReminderHandler handles daily reminder settings endpoints.
type ReminderHandler struct {
	service *app.ReminderSettingsService
}

// NewReminderHandler creates a new reminder handler.
func NewReminderHandler(service *app.ReminderSettingsService) *ReminderHandler {
	return &ReminderHandler{
		service: service,
	}
}

// GetSettings handles GET /api/v1/reminders/settings
// Returns the caller's reminder configuration, falling back to the
// defaults when never saved.
//
// @Summary Get reminder settings
// @Description Fetches the caller's daily reminder configuration
// @Tags reminders
// @Produce json
// @Success 200 {object} dto.ReminderSettingsResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/v1/reminders/settings [get]
func (h *ReminderHandler) GetSettings(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	settings, err := h.service.GetSettings(c.Request.Context(), userID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewReminderSettingsResponse(settings))
}

// UpdateSettings handles PUT /api/v1/reminders/settings
// Changes the caller's reminder configuration. Enabling schedules the
// daily delivery; the settings persist only after scheduling succeeds.
//
// @Summary Update reminder settings
// @Description Enables, disables or reschedules the caller's daily reminder
// @Tags reminders
// @Accept json
// @Produce json
// @Param request body dto.UpdateReminderSettingsRequest true "Reminder settings"
// @Success 200 {object} dto.ReminderSettingsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/v1/reminders/settings [put]
func (h *ReminderHandler) UpdateSettings(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateReminderSettingsRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	current, err := h.service.GetSettings(c.Request.Context(), userID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	updated, err := h.service.UpdateSettings(c.Request.Context(), req.ToDomain(*current))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewReminderSettingsResponse(updated))
}

// RegisterReminderRoutes registers reminder routes on the given router group.
func (h *ReminderHandler) RegisterReminderRoutes(rg *gin.RouterGroup) {
	reminders := rg.Group("/reminders")
	reminders.GET("/settings", h.GetSettings)
	reminders.PUT("/settings", h.UpdateSettings)
}
