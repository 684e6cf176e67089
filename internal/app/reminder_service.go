package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/quotewell/quotewell/internal/domain"
	"github.com/quotewell/quotewell/internal/ports"
)

// Default reminder time offered before a user has saved preferences.
const (
	defaultReminderHour   = 9
	defaultReminderMinute = 0
)

// fallbackReminderBody is used when no quote is available to preview at
// schedule time.
const fallbackReminderBody = "Your quote of the day is ready."

// ReminderSettingsService manages daily reminder preferences. Updates
// run through the transactional pattern: the schedule is placed (or
// removed) and verified before the preferences are persisted, so a
// scheduler failure never leaves stored preferences claiming a reminder
// that does not exist.
type ReminderSettingsService struct {
	prefs     ports.ReminderPrefsRepository
	scheduler ports.ReminderScheduler
	daily     *DailyQuoteService
	executor  *Executor
	logger    *slog.Logger
}

// ReminderSettingsServiceConfig contains configuration for the service.
type ReminderSettingsServiceConfig struct {
	Prefs     ports.ReminderPrefsRepository
	Scheduler ports.ReminderScheduler

	// Daily supplies the notification body preview at schedule time.
	Daily *DailyQuoteService

	Executor *Executor
	Logger   *slog.Logger
}

// NewReminderSettingsService creates a reminder settings service.
func NewReminderSettingsService(cfg ReminderSettingsServiceConfig) *ReminderSettingsService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	executor := cfg.Executor
	if executor == nil {
		executor = NewExecutor(logger)
	}

	return &ReminderSettingsService{
		prefs:     cfg.Prefs,
		scheduler: cfg.Scheduler,
		daily:     cfg.Daily,
		executor:  executor,
		logger:    logger,
	}
}

// GetSettings returns the user's reminder preferences, or the disabled
// defaults when none have been saved.
func (s *ReminderSettingsService) GetSettings(ctx context.Context, userID uuid.UUID) (*domain.ReminderPreferences, error) {
	prefs, err := s.prefs.Get(ctx, userID)
	if err != nil {
		if domain.IsNotFound(err) {
			return &domain.ReminderPreferences{
				UserID: userID,
				Hour:   defaultReminderHour,
				Minute: defaultReminderMinute,
			}, nil
		}

		return nil, err
	}

	return prefs, nil
}

// UpdateSettings applies new reminder preferences.
//
// Enabling requests delivery permission (cached per process), schedules
// the daily trigger with the notification body captured now, and only
// then persists. Disabling cancels any pending trigger first.
func (s *ReminderSettingsService) UpdateSettings(ctx context.Context, prefs domain.ReminderPreferences) (*domain.ReminderPreferences, error) {
	op := Operation[domain.ReminderPreferences, string, string, *domain.ReminderPreferences]{
		Name: "update_reminder_settings",

		Validate: func(_ context.Context, input domain.ReminderPreferences) error {
			return input.Validate()
		},

		Perform: func(ctx context.Context, input domain.ReminderPreferences) (string, error) {
			if !input.Enabled {
				s.scheduler.CancelAll(input.UserID)
				return "", nil
			}

			granted, err := s.scheduler.RequestPermission(ctx)
			if err != nil {
				return "", err
			}

			if !granted {
				return "", domain.NewForbiddenError("schedule reminder", "notification permission denied")
			}

			return s.scheduler.ScheduleDaily(input.UserID, input.Hour, input.Minute, input.Location(), s.reminderBody(ctx, input.UserID))
		},

		Verify: func(_ context.Context, input domain.ReminderPreferences, scheduleID string) (string, error) {
			if input.Enabled && scheduleID == "" {
				return "", fmt.Errorf("no schedule registered for enabled reminder")
			}

			return scheduleID, nil
		},

		Archive: func(ctx context.Context, input domain.ReminderPreferences, _ string) error {
			input.UpdatedAt = time.Now().UTC()

			return s.prefs.Upsert(ctx, &input)
		},

		Respond: func(_ context.Context, input domain.ReminderPreferences, _ string) (*domain.ReminderPreferences, error) {
			return &input, nil
		},
	}

	return Execute(ctx, s.executor, op, prefs)
}

// restoreWorkers bounds concurrent schedule re-arming at startup.
const restoreWorkers = 4

// RestoreSchedules re-arms the daily trigger for every user whose stored
// preferences have reminders enabled. Called once at startup so durable
// preferences and in-process schedules agree after a restart.
func (s *ReminderSettingsService) RestoreSchedules(ctx context.Context) error {
	enabled, err := s.prefs.ListEnabled(ctx)
	if err != nil {
		return fmt.Errorf("listing enabled reminders: %w", err)
	}

	if len(enabled) == 0 {
		return nil
	}

	granted, err := s.scheduler.RequestPermission(ctx)
	if err != nil {
		return fmt.Errorf("requesting notification permission: %w", err)
	}

	if !granted {
		s.logger.Warn("notification permission denied, stored reminders not re-armed",
			slog.Int("count", len(enabled)),
		)

		return nil
	}

	err = FanOut(ctx, restoreWorkers, enabled, func(ctx context.Context, prefs domain.ReminderPreferences) error {
		_, scheduleErr := s.scheduler.ScheduleDaily(prefs.UserID, prefs.Hour, prefs.Minute, prefs.Location(), s.reminderBody(ctx, prefs.UserID))
		if scheduleErr != nil {
			// One bad row must not block the rest.
			s.logger.Error("re-arming reminder failed",
				slog.String("user_id", prefs.UserID.String()),
				slog.Any("error", scheduleErr),
			)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("re-arming reminders: %w", err)
	}

	s.logger.Info("reminder schedules restored", slog.Int("count", len(enabled)))

	return nil
}

// reminderBody previews today's quote for the notification text.
func (s *ReminderSettingsService) reminderBody(ctx context.Context, userID uuid.UUID) string {
	if s.daily == nil {
		return fallbackReminderBody
	}

	result, err := s.daily.QuoteOfTheDay(ctx, userID, domain.Today())
	if err != nil || result.Quote == nil {
		return fallbackReminderBody
	}

	return fmt.Sprintf("%q (%s)", result.Quote.Text, result.Quote.Author)
}
