// Package reminder implements the daily reminder scheduler. Each owner
// gets at most one recurring trigger, backed by an in-process timer
// goroutine that delivers through the push gateway.
package reminder

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quotewell/quotewell/internal/domain"
	"github.com/quotewell/quotewell/internal/ports"
)

// deliveryTimeout bounds a single notification delivery attempt.
const deliveryTimeout = 30 * time.Second

// Config configures a Scheduler.
type Config struct {
	// Gateway delivers the notifications.
	Gateway ports.PushGateway

	// Title is the headline used for every reminder.
	Title string

	// Location is the default wall-clock timezone for schedules that
	// carry no zone of their own. Defaults to time.Local.
	Location *time.Location

	// Clock returns the current time. Defaults to time.Now.
	// Overridable for tests.
	Clock func() time.Time

	// Logger is the structured logger.
	Logger *slog.Logger
}

// schedule is one owner's recurring trigger.
type schedule struct {
	id     string
	owner  uuid.UUID
	hour   int
	minute int
	loc    *time.Location
	body   string
	stop   chan struct{}
}

// Scheduler implements ports.ReminderScheduler with in-process timers.
type Scheduler struct {
	gateway ports.PushGateway
	title   string
	loc     *time.Location
	clock   func() time.Time
	logger  *slog.Logger

	mu        sync.Mutex
	schedules map[uuid.UUID]*schedule

	permMu      sync.Mutex
	permChecked bool
	permGranted bool
}

// NewScheduler creates a scheduler. Panics if Gateway is nil.
func NewScheduler(cfg Config) *Scheduler {
	if cfg.Gateway == nil {
		panic("Scheduler: Gateway is required")
	}

	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Scheduler{
		gateway:   cfg.Gateway,
		title:     cfg.Title,
		loc:       loc,
		clock:     clock,
		logger:    logger.With(slog.String("component", "reminder_scheduler")),
		schedules: make(map[uuid.UUID]*schedule),
	}
}

var _ ports.ReminderScheduler = (*Scheduler)(nil)

// RequestPermission asks the gateway for delivery authorization. The
// answer is cached for the process lifetime; failures are not cached so
// a later call can retry.
func (s *Scheduler) RequestPermission(ctx context.Context) (bool, error) {
	s.permMu.Lock()
	defer s.permMu.Unlock()

	if s.permChecked {
		return s.permGranted, nil
	}

	granted, err := s.gateway.Authorize(ctx)
	if err != nil {
		return false, err
	}

	s.permChecked = true
	s.permGranted = granted

	return granted, nil
}

// ScheduleDaily registers a recurring trigger for the owner, replacing
// any existing one. The trigger fires at hh:mm in loc; a nil loc falls
// back to the scheduler's default location. The body is captured now
// and reused on every fire.
func (s *Scheduler) ScheduleDaily(owner uuid.UUID, hour, minute int, loc *time.Location, body string) (string, error) {
	if hour < 0 || hour > 23 {
		return "", domain.NewValidationErrorWithValue("hour", "must be between 0 and 23", hour)
	}

	if minute < 0 || minute > 59 {
		return "", domain.NewValidationErrorWithValue("minute", "must be between 0 and 59", minute)
	}

	if loc == nil {
		loc = s.loc
	}

	sc := &schedule{
		id:     uuid.NewString(),
		owner:  owner,
		hour:   hour,
		minute: minute,
		loc:    loc,
		body:   body,
		stop:   make(chan struct{}),
	}

	s.mu.Lock()
	if existing, ok := s.schedules[owner]; ok {
		close(existing.stop)
	}
	s.schedules[owner] = sc
	s.mu.Unlock()

	go s.run(sc)

	s.logger.Info("daily reminder scheduled",
		slog.String("owner", owner.String()),
		slog.String("schedule_id", sc.id),
		slog.Int("hour", hour),
		slog.Int("minute", minute),
		slog.String("timezone", loc.String()),
	)

	return sc.id, nil
}

// CancelAll removes the owner's pending trigger, if any.
func (s *Scheduler) CancelAll(owner uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.schedules[owner]
	if !ok {
		return
	}

	close(sc.stop)
	delete(s.schedules, owner)

	s.logger.Info("daily reminders cancelled", slog.String("owner", owner.String()))
}

// Close stops every trigger. Used on shutdown.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for owner, sc := range s.schedules {
		close(sc.stop)
		delete(s.schedules, owner)
	}
}

// run waits for the next occurrence, delivers, and re-arms until stopped.
func (s *Scheduler) run(sc *schedule) {
	for {
		wait := s.untilNext(sc.hour, sc.minute, sc.loc)
		timer := time.NewTimer(wait)

		select {
		case <-sc.stop:
			timer.Stop()
			return
		case <-timer.C:
			s.deliver(sc)
		}
	}
}

// untilNext returns the duration until the next wall-clock occurrence
// of hh:mm in the given location.
func (s *Scheduler) untilNext(hour, minute int, loc *time.Location) time.Duration {
	now := s.clock().In(loc)

	return nextOccurrence(now, hour, minute).Sub(now)
}

// nextOccurrence returns the first instant strictly after now whose
// wall clock reads hh:mm in now's location.
func nextOccurrence(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}

	return next
}

// deliver sends one notification. Failures are logged and swallowed so
// the trigger keeps firing on subsequent days.
func (s *Scheduler) deliver(sc *schedule) {
	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()

	err := s.gateway.Send(ctx, ports.Notification{
		UserID: sc.owner,
		Title:  s.title,
		Body:   sc.body,
	})
	if err != nil {
		s.logger.Error("reminder delivery failed",
			slog.String("owner", sc.owner.String()),
			slog.String("schedule_id", sc.id),
			slog.Any("error", err),
		)

		return
	}

	s.logger.Debug("reminder delivered",
		slog.String("owner", sc.owner.String()),
		slog.String("schedule_id", sc.id),
	)
}
