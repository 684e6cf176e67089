package dto

import (
	"github.com/gin-gonic/gin"

	"github.com/quotewell/quotewell/internal/domain"
)

// contextKeyTraceID is the gin context key the request middleware uses
// for the trace identifier.
const contextKeyTraceID = "trace_id"

// GetTraceID returns the trace ID for the current request: the value
// stored in the gin context, falling back to the inbound X-Request-ID
// header.
func GetTraceID(c *gin.Context) string {
	if v, ok := c.Get(contextKeyTraceID); ok {
		if id, ok := v.(string); ok {
			return id
		}

		return ""
	}

	return c.GetHeader("X-Request-ID")
}

// HandleError writes the error response for a domain error. Unavailable
// and unknown errors get generic messages so infrastructure details
// never leak to clients.
func HandleError(c *gin.Context, err error) {
	var resp *ErrorResponse

	switch {
	case domain.IsNotFound(err):
		resp = NewErrorResponse(ErrorCodeNotFound, err.Error())

	case domain.IsConflict(err):
		resp = NewErrorResponse(ErrorCodeConflict, err.Error())

	case domain.IsValidation(err):
		resp = NewErrorResponse(ErrorCodeValidation, err.Error())

	case domain.IsForbidden(err):
		resp = NewErrorResponse(ErrorCodeForbidden, err.Error())

	case domain.IsUnavailable(err):
		resp = NewErrorResponse(ErrorCodeUnavailable, "service temporarily unavailable")

	default:
		resp = NewErrorResponse(ErrorCodeInternal, "an internal error occurred")
	}

	resp.TraceID = GetTraceID(c)

	c.JSON(HTTPStatusFromCode(resp.Error.Code), resp)
}
