package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quotewell/quotewell/internal/adapters/http/dto"
	"github.com/quotewell/quotewell/internal/adapters/http/middleware"
)

// currentUser returns the authenticated user's ID. When no parseable
// subject is present it writes a 401 response and returns false; the
// handler must return immediately in that case.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.ErrorCodeUnauthorized,
			"authentication required",
		).WithTraceID(dto.GetTraceID(c)))

		return uuid.Nil, false
	}

	return userID, true
}

// respondBindError writes a 400 response for a binding or request
// validation failure, with field-level details when available.
func respondBindError(c *gin.Context, err error) {
	resp := dto.NewErrorResponseWithDetails(
		dto.ErrorCodeValidation,
		"invalid request",
		dto.ValidationErrors(err),
	).WithTraceID(dto.GetTraceID(c))

	c.JSON(http.StatusBadRequest, resp)
}

// pathUUID parses a UUID path parameter. On failure it writes a 400
// response and returns false.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.ErrorCodeBadRequest,
			name+" must be a valid UUID",
		).WithTraceID(dto.GetTraceID(c)))

		return uuid.Nil, false
	}

	return id, true
}
