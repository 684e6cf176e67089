package dto

import "github.com/quotewell/quotewell/internal/domain"

// ReminderSettingsResponse is the HTTP representation of a user's daily
// reminder configuration.
type ReminderSettingsResponse struct {
	Enabled  bool   `json:"enabled"`
	Hour     int    `json:"hour"`
	Minute   int    `json:"minute"`
	Timezone string `json:"timezone,omitempty"`
}

// NewReminderSettingsResponse converts domain reminder preferences.
func NewReminderSettingsResponse(p *domain.ReminderPreferences) *ReminderSettingsResponse {
	return &ReminderSettingsResponse{
		Enabled:  p.Enabled,
		Hour:     p.Hour,
		Minute:   p.Minute,
		Timezone: p.Timezone,
	}
}

// UpdateReminderSettingsRequest is the payload for changing reminder
// settings. Hour and minute use pointers so zero values survive binding.
type UpdateReminderSettingsRequest struct {
	Enabled  bool   `json:"enabled"`
	Hour     *int   `json:"hour"     validate:"omitempty,gte=0,lte=23"`
	Minute   *int   `json:"minute"   validate:"omitempty,gte=0,lte=59"`
	Timezone string `json:"timezone" validate:"omitempty,max=64"`
}

// ToDomain converts the request to domain preferences, keeping the
// current stored values for fields the client omitted.
func (r *UpdateReminderSettingsRequest) ToDomain(current domain.ReminderPreferences) domain.ReminderPreferences {
	prefs := current
	prefs.Enabled = r.Enabled

	if r.Hour != nil {
		prefs.Hour = *r.Hour
	}

	if r.Minute != nil {
		prefs.Minute = *r.Minute
	}

	if r.Timezone != "" {
		prefs.Timezone = r.Timezone
	}

	return prefs
}
