package dto

import (
	"time"

	"github.com/quotewell/quotewell/internal/domain"
)

// ProfileResponse is the HTTP representation of a user profile.
type ProfileResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username,omitempty"`
	FullName  string    `json:"fullName,omitempty"`
	Website   string    `json:"website,omitempty"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// NewProfileResponse converts a domain profile.
func NewProfileResponse(p *domain.Profile) *ProfileResponse {
	return &ProfileResponse{
		ID:        p.ID.String(),
		Username:  p.Username,
		FullName:  p.FullName,
		Website:   p.Website,
		AvatarURL: p.AvatarURL,
		UpdatedAt: p.UpdatedAt,
	}
}

// UpdateProfileRequest is the payload for editing a profile.
type UpdateProfileRequest struct {
	Username  string `json:"username"  validate:"omitempty,min=3,max=50"`
	FullName  string `json:"fullName"  validate:"omitempty,max=100"`
	Website   string `json:"website"   validate:"omitempty,url,max=200"`
	AvatarURL string `json:"avatarUrl" validate:"omitempty,url,max=500"`
}

// ToDomain converts the request to a domain profile for the given user.
func (r *UpdateProfileRequest) ToDomain(p *domain.Profile) {
	p.Username = r.Username
	p.FullName = r.FullName
	p.Website = r.Website
	p.AvatarURL = r.AvatarURL
}

// AppearanceResponse is the HTTP representation of display settings.
type AppearanceResponse struct {
	Theme       string `json:"theme"`
	AccentColor string `json:"accentColor"`
	FontSize    int    `json:"fontSize"`
}

// NewAppearanceResponse converts domain display settings.
func NewAppearanceResponse(a domain.Appearance) *AppearanceResponse {
	return &AppearanceResponse{
		Theme:       string(a.Theme),
		AccentColor: string(a.AccentColor),
		FontSize:    a.FontSize,
	}
}

// AppearanceRequest is the payload for saving display settings.
type AppearanceRequest struct {
	Theme       string `json:"theme"       validate:"required,oneof=system light dark"`
	AccentColor string `json:"accentColor" validate:"required,oneof=gold ocean forest teal"`
	FontSize    int    `json:"fontSize"    validate:"required,gte=12,lte=24"`
}

// ToDomain converts the request to domain display settings.
func (r *AppearanceRequest) ToDomain() domain.Appearance {
	return domain.Appearance{
		Theme:       domain.Theme(r.Theme),
		AccentColor: domain.AccentColor(r.AccentColor),
		FontSize:    r.FontSize,
	}
}
