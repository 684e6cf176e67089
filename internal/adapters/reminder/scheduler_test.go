package reminder

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotewell/quotewell/internal/domain"
	"github.com/quotewell/quotewell/internal/ports"
)

// fakeGateway records interactions for assertions.
type fakeGateway struct {
	mu             sync.Mutex
	authorizeCalls int
	authorizeOK    bool
	authorizeErr   error
	sent           []ports.Notification
}

func (g *fakeGateway) Authorize(_ context.Context) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.authorizeCalls = g.authorizeCalls + 1

	return g.authorizeOK, g.authorizeErr
}

func (g *fakeGateway) Send(_ context.Context, notification ports.Notification) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.sent = append(g.sent, notification)

	return nil
}

func (g *fakeGateway) sentCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.sent)
}

func newTestScheduler(t *testing.T, gateway ports.PushGateway) *Scheduler {
	t.Helper()

	s := NewScheduler(Config{
		Gateway:  gateway,
		Title:    "Daily Quote",
		Location: time.UTC,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	t.Cleanup(s.Close)

	return s
}

// TestNewScheduler_PanicsWithoutGateway verifies the nil-gateway guard.
func TestNewScheduler_PanicsWithoutGateway(t *testing.T) {
	assert.Panics(t, func() {
		NewScheduler(Config{Gateway: nil})
	})
}

// TestScheduleDaily_RejectsOutOfRangeTime verifies that invalid times
// are rejected and nothing is scheduled.
func TestScheduleDaily_RejectsOutOfRangeTime(t *testing.T) {
	tests := []struct {
		name   string
		hour   int
		minute int
	}{
		{name: "hour 24", hour: 24, minute: 0},
		{name: "hour -1", hour: -1, minute: 0},
		{name: "minute 60", hour: 12, minute: 60},
		{name: "minute -1", hour: 12, minute: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scheduler := newTestScheduler(t, &fakeGateway{})
			owner := uuid.New()

			id, err := scheduler.ScheduleDaily(owner, tt.hour, tt.minute, time.UTC, "body")

			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
			assert.Empty(t, id)

			scheduler.mu.Lock()
			_, scheduled := scheduler.schedules[owner]
			scheduler.mu.Unlock()
			assert.False(t, scheduled)
		})
	}
}

// TestScheduleDaily_ReplacesExistingSchedule verifies that an owner
// holds at most one active trigger.
func TestScheduleDaily_ReplacesExistingSchedule(t *testing.T) {
	scheduler := newTestScheduler(t, &fakeGateway{})
	owner := uuid.New()

	first, err := scheduler.ScheduleDaily(owner, 9, 0, time.UTC, "first")
	require.NoError(t, err)

	second, err := scheduler.ScheduleDaily(owner, 21, 30, time.UTC, "second")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	scheduler.mu.Lock()
	sc := scheduler.schedules[owner]
	count := len(scheduler.schedules)
	scheduler.mu.Unlock()

	require.NotNil(t, sc)
	assert.Equal(t, second, sc.id)
	assert.Equal(t, 21, sc.hour)
	assert.Equal(t, 30, sc.minute)
	assert.Equal(t, "second", sc.body)
	assert.Equal(t, 1, count)
}

// TestScheduleDaily_IndependentOwners verifies schedules do not clobber
// each other across owners.
func TestScheduleDaily_IndependentOwners(t *testing.T) {
	scheduler := newTestScheduler(t, &fakeGateway{})

	_, err := scheduler.ScheduleDaily(uuid.New(), 8, 0, time.UTC, "a")
	require.NoError(t, err)

	_, err = scheduler.ScheduleDaily(uuid.New(), 8, 0, time.UTC, "b")
	require.NoError(t, err)

	scheduler.mu.Lock()
	count := len(scheduler.schedules)
	scheduler.mu.Unlock()

	assert.Equal(t, 2, count)
}

// TestCancelAll_Idempotent verifies cancelling is safe with and without
// an active schedule.
func TestCancelAll_Idempotent(t *testing.T) {
	scheduler := newTestScheduler(t, &fakeGateway{})
	owner := uuid.New()

	// No schedule yet.
	scheduler.CancelAll(owner)

	_, err := scheduler.ScheduleDaily(owner, 9, 0, time.UTC, "body")
	require.NoError(t, err)

	scheduler.CancelAll(owner)
	scheduler.CancelAll(owner)

	scheduler.mu.Lock()
	_, scheduled := scheduler.schedules[owner]
	scheduler.mu.Unlock()
	assert.False(t, scheduled)
}

// TestRequestPermission_CachesDecision verifies only the first call
// reaches the gateway.
func TestRequestPermission_CachesDecision(t *testing.T) {
	gateway := &fakeGateway{authorizeOK: true}
	scheduler := newTestScheduler(t, gateway)
	ctx := context.Background()

	for range 3 {
		granted, err := scheduler.RequestPermission(ctx)
		require.NoError(t, err)
		assert.True(t, granted)
	}

	assert.Equal(t, 1, gateway.authorizeCalls)
}

// TestRequestPermission_DoesNotCacheFailure verifies a gateway error
// leaves the cache empty so a later call retries.
func TestRequestPermission_DoesNotCacheFailure(t *testing.T) {
	gateway := &fakeGateway{authorizeErr: errors.New("boom")}
	scheduler := newTestScheduler(t, gateway)
	ctx := context.Background()

	granted, err := scheduler.RequestPermission(ctx)
	require.Error(t, err)
	assert.False(t, granted)

	gateway.mu.Lock()
	gateway.authorizeErr = nil
	gateway.authorizeOK = true
	gateway.mu.Unlock()

	granted, err = scheduler.RequestPermission(ctx)
	require.NoError(t, err)
	assert.True(t, granted)
	assert.Equal(t, 2, gateway.authorizeCalls)
}

// TestUntilNext_UsesScheduleLocation verifies each trigger waits for
// hh:mm in its own timezone, not the scheduler default.
func TestUntilNext_UsesScheduleLocation(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	scheduler := NewScheduler(Config{
		Gateway:  &fakeGateway{},
		Location: time.UTC,
		Clock:    func() time.Time { return fixed },
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	t.Cleanup(scheduler.Close)

	// 09:00 in UTC-5 is 14:00 UTC, two hours from the fixed clock.
	eastern := time.FixedZone("UTC-5", -5*3600)
	assert.Equal(t, 2*time.Hour, scheduler.untilNext(9, 0, eastern))

	// 09:00 UTC has already passed, so the next occurrence is tomorrow.
	assert.Equal(t, 21*time.Hour, scheduler.untilNext(9, 0, time.UTC))
}

// TestScheduleDaily_NilLocationFallsBack verifies the scheduler default
// applies when no zone is given.
func TestScheduleDaily_NilLocationFallsBack(t *testing.T) {
	scheduler := newTestScheduler(t, &fakeGateway{})
	owner := uuid.New()

	_, err := scheduler.ScheduleDaily(owner, 9, 0, nil, "body")
	require.NoError(t, err)

	scheduler.mu.Lock()
	sc := scheduler.schedules[owner]
	scheduler.mu.Unlock()

	require.NotNil(t, sc)
	assert.Equal(t, time.UTC, sc.loc)
}

// TestNextOccurrence verifies the wall-clock arithmetic around midnight.
func TestNextOccurrence(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("later today", func(t *testing.T) {
		next := nextOccurrence(now, 21, 30)
		assert.Equal(t, time.Date(2024, 3, 1, 21, 30, 0, 0, time.UTC), next)
	})

	t.Run("already passed rolls to tomorrow", func(t *testing.T) {
		next := nextOccurrence(now, 9, 0)
		assert.Equal(t, time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC), next)
	})

	t.Run("exact instant rolls to tomorrow", func(t *testing.T) {
		next := nextOccurrence(now, 10, 0)
		assert.Equal(t, time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC), next)
	})
}

// TestDeliver_SendsCapturedBody verifies the notification carries the
// body captured at schedule time.
func TestDeliver_SendsCapturedBody(t *testing.T) {
	gateway := &fakeGateway{}
	scheduler := newTestScheduler(t, gateway)
	owner := uuid.New()

	scheduler.deliver(&schedule{
		id:    uuid.NewString(),
		owner: owner,
		body:  "The obstacle is the way.",
	})

	require.Equal(t, 1, gateway.sentCount())

	gateway.mu.Lock()
	sent := gateway.sent[0]
	gateway.mu.Unlock()

	assert.Equal(t, owner, sent.UserID)
	assert.Equal(t, "Daily Quote", sent.Title)
	assert.Equal(t, "The obstacle is the way.", sent.Body)
}
