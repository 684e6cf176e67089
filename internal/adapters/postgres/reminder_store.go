package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/quotewell/quotewell/internal/domain"
	"github.com/quotewell/quotewell/internal/ports"
)

// ReminderPrefsStore implements ports.ReminderPrefsRepository on
// PostgreSQL. The wall-clock time is stored as a TIME column and split
// into hour and minute at the query boundary.
type ReminderPrefsStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewReminderPrefsStore creates a reminder preferences store. Panics if
// db is nil.
func NewReminderPrefsStore(db *sql.DB, logger *slog.Logger) *ReminderPrefsStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &ReminderPrefsStore{
		db:     db,
		logger: logger.With(slog.String("component", "reminder_prefs_store")),
	}
}

var _ ports.ReminderPrefsRepository = (*ReminderPrefsStore)(nil)

// Get retrieves the user's preferences.
func (s *ReminderPrefsStore) Get(ctx context.Context, userID uuid.UUID) (*domain.ReminderPreferences, error) {
	var prefs domain.ReminderPreferences

	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, daily_quote_enabled,
		       EXTRACT(HOUR FROM notification_time)::int,
		       EXTRACT(MINUTE FROM notification_time)::int,
		       timezone, updated_at
		FROM notification_preferences
		WHERE user_id = $1`,
		userID,
	).Scan(
		&prefs.UserID,
		&prefs.Enabled,
		&prefs.Hour,
		&prefs.Minute,
		&prefs.Timezone,
		&prefs.UpdatedAt,
	)
	if err != nil {
		return nil, mapQueryError(err, "reminder preferences", userID.String())
	}

	return &prefs, nil
}

// ListEnabled returns every user's preferences with reminders enabled.
func (s *ReminderPrefsStore) ListEnabled(ctx context.Context) ([]domain.ReminderPreferences, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, daily_quote_enabled,
		       EXTRACT(HOUR FROM notification_time)::int,
		       EXTRACT(MINUTE FROM notification_time)::int,
		       timezone, updated_at
		FROM notification_preferences
		WHERE daily_quote_enabled`)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer rows.Close()

	var result []domain.ReminderPreferences

	for rows.Next() {
		var prefs domain.ReminderPreferences

		if err := rows.Scan(
			&prefs.UserID,
			&prefs.Enabled,
			&prefs.Hour,
			&prefs.Minute,
			&prefs.Timezone,
			&prefs.UpdatedAt,
		); err != nil {
			return nil, mapStoreError(err)
		}

		result = append(result, prefs)
	}

	if err := rows.Err(); err != nil {
		return nil, mapStoreError(err)
	}

	return result, nil
}

// Upsert creates or replaces the user's preferences.
func (s *ReminderPrefsStore) Upsert(ctx context.Context, prefs *domain.ReminderPreferences) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notification_preferences (user_id, daily_quote_enabled, notification_time, timezone, updated_at)
		VALUES ($1, $2, make_time($3, $4, 0), $5, now())
		ON CONFLICT (user_id) DO UPDATE SET
			daily_quote_enabled = EXCLUDED.daily_quote_enabled,
			notification_time   = EXCLUDED.notification_time,
			timezone            = EXCLUDED.timezone,
			updated_at          = now()`,
		prefs.UserID, prefs.Enabled, prefs.Hour, prefs.Minute, prefs.Timezone,
	)
	if err != nil {
		return mapStoreError(err)
	}

	return nil
}
