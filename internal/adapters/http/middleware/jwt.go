package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/quotewell/quotewell/internal/adapters/http/dto"
	"github.com/quotewell/quotewell/internal/platform/config"
)

const bearerPrefix = "Bearer "

// Authenticate returns the authentication middleware for the configured
// mode: trusted gateway headers, or local HS256 bearer validation.
func Authenticate(cfg *config.AuthConfig) gin.HandlerFunc {
	if cfg != nil && cfg.Mode == config.AuthModeJWT {
		return RequireJWT(cfg)
	}

	return RequireAuth(cfg)
}

// RequireJWT returns middleware that validates an HS256 bearer token
// and stores its claims in the gin context.
func RequireJWT(cfg *config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			abortWithUnauthorized(c, "bearer token required")
			return
		}

		raw := strings.TrimPrefix(header, bearerPrefix)

		opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
		if cfg.Issuer != "" {
			opts = append(opts, jwt.WithIssuer(cfg.Issuer))
		}

		if cfg.Audience != "" {
			opts = append(opts, jwt.WithAudience(cfg.Audience))
		}

		mapClaims := jwt.MapClaims{}

		token, err := jwt.ParseWithClaims(raw, mapClaims, func(_ *jwt.Token) (any, error) {
			return []byte(cfg.JWTSecret), nil
		}, opts...)
		if err != nil || !token.Valid {
			abortWithUnauthorized(c, "invalid token")
			return
		}

		subject, err := mapClaims.GetSubject()
		if err != nil || subject == "" {
			abortWithUnauthorized(c, "token missing subject")
			return
		}

		c.Set(ContextKeyClaims, &Claims{
			Subject: subject,
			Roles:   stringSliceClaim(mapClaims, "roles"),
			Scopes:  scopeClaim(mapClaims),
		})
		c.Next()
	}
}

// UserID returns the authenticated user's ID from the request claims.
// The boolean is false when no authenticated subject is present or the
// subject is not a UUID.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	claims := GetClaims(c)
	if claims == nil || claims.Subject == "" {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, false
	}

	return id, true
}

// stringSliceClaim reads a claim that may be a JSON array of strings.
func stringSliceClaim(claims jwt.MapClaims, key string) []string {
	raw, ok := claims[key]
	if !ok {
		return nil
	}

	values, ok := raw.([]any)
	if !ok {
		return nil
	}

	result := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			result = append(result, s)
		}
	}

	return result
}

// scopeClaim reads the OAuth2 "scope" claim (space-separated string).
func scopeClaim(claims jwt.MapClaims) []string {
	raw, ok := claims["scope"].(string)
	if !ok || raw == "" {
		return nil
	}

	return parseSpaceSeparated(raw)
}

// abortWithUnauthorized aborts with a 401 Unauthorized response.
func abortWithUnauthorized(c *gin.Context, message string) {
	errResp := dto.NewErrorResponse(dto.ErrorCodeUnauthorized, message)

	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		errResp.TraceID = span.SpanContext().TraceID().String()
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, errResp)
}
