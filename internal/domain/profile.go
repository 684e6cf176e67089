package domain

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the user-editable identity record. The ID is the user's
// identity-provider subject, not a generated key.
type Profile struct {
	ID        uuid.UUID
	Username  string
	FullName  string
	Website   string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Theme selects the app color scheme.
type Theme string

// Supported themes. ThemeSystem follows the device setting.
const (
	ThemeSystem Theme = "system"
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
)

// AccentColor is a named accent palette.
type AccentColor string

// Supported accent palettes.
const (
	AccentGold   AccentColor = "gold"
	AccentOcean  AccentColor = "ocean"
	AccentForest AccentColor = "forest"
	AccentTeal   AccentColor = "teal"
)

// Font size bounds for quote rendering.
const (
	MinFontSize = 12
	MaxFontSize = 24
)

// Appearance is a user's explicit display settings. It is loaded and
// saved as a whole; there is no ambient process-wide default beyond
// DefaultAppearance.
type Appearance struct {
	Theme       Theme
	AccentColor AccentColor
	FontSize    int
}

// DefaultAppearance returns the settings applied before a user has
// saved any.
func DefaultAppearance() Appearance {
	return Appearance{
		Theme:       ThemeSystem,
		AccentColor: AccentTeal,
		FontSize:    16,
	}
}

// Validate checks the settings against the supported values.
func (a Appearance) Validate() error {
	switch a.Theme {
	case ThemeSystem, ThemeLight, ThemeDark:
	default:
		return NewValidationErrorWithValue("theme", "must be system, light or dark", string(a.Theme))
	}

	switch a.AccentColor {
	case AccentGold, AccentOcean, AccentForest, AccentTeal:
	default:
		return NewValidationErrorWithValue("accent_color", "unknown accent palette", string(a.AccentColor))
	}

	if a.FontSize < MinFontSize || a.FontSize > MaxFontSize {
		return NewValidationErrorWithValue("font_size", "out of range", a.FontSize)
	}

	return nil
}
