package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Notification is a push message ready for delivery.
type Notification struct {
	// UserID is the recipient.
	UserID uuid.UUID

	// Title is the short headline shown by the device.
	Title string

	// Body is the message text, captured when the notification was
	// scheduled.
	Body string
}

// PushGateway is the outbound port to the push/notification provider.
//
// Key considerations:
//   - Handle timeouts via context deadline
//   - Map external errors to domain errors
type PushGateway interface {
	// Authorize asks the provider whether this service may deliver
	// notifications. Returns domain.ErrUnavailable if the provider is
	// unreachable.
	Authorize(ctx context.Context) (bool, error)

	// Send delivers one notification.
	// Returns domain.ErrUnavailable if the provider is unreachable.
	Send(ctx context.Context, notification Notification) error
}

// ReminderScheduler manages recurring daily reminder triggers.
// At most one active schedule exists per owner.
type ReminderScheduler interface {
	// RequestPermission asks for delivery authorization. The decision is
	// cached for the process lifetime; only the first call reaches the
	// provider.
	RequestPermission(ctx context.Context) (bool, error)

	// ScheduleDaily registers a trigger firing every day at the given
	// wall-clock time in loc, replacing any existing schedule for the
	// owner. A nil loc uses the scheduler's default location.
	// Returns domain.ErrValidation if hour or minute is out of range;
	// nothing is scheduled in that case.
	ScheduleDaily(owner uuid.UUID, hour, minute int, loc *time.Location, body string) (string, error)

	// CancelAll removes every pending schedule for the owner. Idempotent.
	CancelAll(owner uuid.UUID)
}
