// Package push adapts the external push-notification service to the
// domain. It translates between the provider's wire format and domain
// types so the rest of the application never sees provider DTOs.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/quotewell/quotewell/internal/adapters/clients"
	"github.com/quotewell/quotewell/internal/domain"
	"github.com/quotewell/quotewell/internal/platform/logging"
	"github.com/quotewell/quotewell/internal/ports"
)

const serviceName = "push-gateway"

// GatewayConfig contains configuration for the push gateway adapter.
type GatewayConfig struct {
	// Client is the HTTP client to use for requests.
	// The client's BaseURL should be set to the push service endpoint.
	Client *clients.Client

	// Logger is the structured logger.
	Logger *slog.Logger
}

// Gateway implements ports.PushGateway against the notification
// delivery service.
type Gateway struct {
	client *clients.Client
	logger *slog.Logger
}

// NewGateway creates a new push gateway adapter.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func NewGateway(cfg GatewayConfig) *Gateway {
	if cfg.Client == nil {
		panic("Gateway: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Gateway{
		client: cfg.Client,
		logger: logger,
	}
}

var _ ports.PushGateway = (*Gateway)(nil)

// permissionResponse is the external DTO for permission requests.
// Internal to the adapter, never exposed outside it.
type permissionResponse struct {
	Granted bool `json:"granted"`
}

// notificationRequest is the external DTO for deliveries.
type notificationRequest struct {
	UserID string `json:"user_id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// Authorize asks the delivery service whether notifications may be
// sent. Implements ports.PushGateway.
func (g *Gateway) Authorize(ctx context.Context) (bool, error) {
	const path = "/v1/permissions"
	g.logger.Log(ctx, logging.LevelTrace, "starting request", slog.String("path", path))

	resp, err := g.client.Post(ctx, path, http.NoBody)
	if err != nil {
		return false, domain.NewUnavailableError(serviceName, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	g.logger.Log(ctx, logging.LevelTrace, "request complete",
		slog.String("path", path),
		slog.Int("status", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		return false, g.handleErrorResponse(resp)
	}

	var external permissionResponse

	err = json.NewDecoder(resp.Body).Decode(&external)
	if err != nil {
		return false, fmt.Errorf("decoding permission response: %w", err)
	}

	return external.Granted, nil
}

// Send delivers one notification. Implements ports.PushGateway.
func (g *Gateway) Send(ctx context.Context, notification ports.Notification) error {
	const path = "/v1/notifications"
	g.logger.DebugContext(ctx, "sending notification",
		slog.String("user_id", notification.UserID.String()))

	payload, err := json.Marshal(notificationRequest{
		UserID: notification.UserID.String(),
		Title:  notification.Title,
		Body:   notification.Body,
	})
	if err != nil {
		return fmt.Errorf("encoding notification: %w", err)
	}

	resp, err := g.client.Post(ctx, path, bytes.NewReader(payload))
	if err != nil {
		return domain.NewUnavailableError(serviceName, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	g.logger.Log(ctx, logging.LevelTrace, "request complete",
		slog.String("path", path),
		slog.Int("status", resp.StatusCode))

	if resp.StatusCode >= http.StatusBadRequest {
		return g.handleErrorResponse(resp)
	}

	return nil
}

// handleErrorResponse converts HTTP error responses to domain errors.
func (g *Gateway) handleErrorResponse(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	g.logger.Warn("push service error",
		slog.Int("status_code", resp.StatusCode),
		slog.String("body", string(body)),
	)

	switch resp.StatusCode {
	case http.StatusForbidden:
		return domain.NewForbiddenError("send notification", "delivery not permitted")
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return domain.NewUnavailableError(serviceName, fmt.Sprintf("HTTP %d", resp.StatusCode))
	default:
		return domain.NewUnavailableError(serviceName, fmt.Sprintf("unexpected HTTP %d", resp.StatusCode))
	}
}

// Name returns the health check name for this gateway.
// Implements ports.HealthChecker.
func (g *Gateway) Name() string {
	return serviceName
}

// Check verifies connectivity to the delivery service.
// Implements ports.HealthChecker.
func (g *Gateway) Check(ctx context.Context) error {
	resp, err := g.client.Get(ctx, "/healthz")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("push service returned status %d", resp.StatusCode)
	}

	return nil
}
