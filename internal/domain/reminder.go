package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ReminderPreferences is a user's stored daily-reminder configuration.
// One row per user.
type ReminderPreferences struct {
	UserID    uuid.UUID
	Enabled   bool
	Hour      int
	Minute    int
	Timezone  string
	UpdatedAt time.Time
}

// Validate checks the wall-clock fields. Out-of-range values are
// rejected, never clamped.
func (p ReminderPreferences) Validate() error {
	if p.Hour < 0 || p.Hour > 23 {
		return NewValidationErrorWithValue("hour", "must be between 0 and 23", p.Hour)
	}

	if p.Minute < 0 || p.Minute > 59 {
		return NewValidationErrorWithValue("minute", "must be between 0 and 59", p.Minute)
	}

	if p.Timezone != "" {
		if _, err := time.LoadLocation(p.Timezone); err != nil {
			return NewValidationErrorWithValue("timezone", "unknown IANA zone", p.Timezone)
		}
	}

	return nil
}

// Location resolves the preference timezone, defaulting to UTC.
func (p ReminderPreferences) Location() *time.Location {
	if p.Timezone == "" {
		return time.UTC
	}

	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return time.UTC
	}

	return loc
}

// TimeOfDay formats the preference as HH:MM.
func (p ReminderPreferences) TimeOfDay() string {
	return fmt.Sprintf("%02d:%02d", p.Hour, p.Minute)
}
