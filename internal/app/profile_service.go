package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/quotewell/quotewell/internal/domain"
	"github.com/quotewell/quotewell/internal/ports"
)

// ProfileService orchestrates profile and appearance use cases.
type ProfileService struct {
	profiles ports.ProfileRepository
	logger   *slog.Logger
}

// ProfileServiceConfig contains configuration for the profile service.
type ProfileServiceConfig struct {
	Profiles ports.ProfileRepository
	Logger   *slog.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(cfg ProfileServiceConfig) *ProfileService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ProfileService{
		profiles: cfg.Profiles,
		logger:   logger,
	}
}

// Get retrieves the user's profile. A user who has never saved one gets
// an empty profile rather than an error; the row is created lazily on
// first write.
func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if domain.IsNotFound(err) {
			return &domain.Profile{ID: userID}, nil
		}

		s.logger.ErrorContext(ctx, "failed to fetch profile", slog.Any("error", err))

		return nil, err
	}

	return profile, nil
}

// Update saves the user-editable profile fields.
// Returns domain.ErrConflict when the username is taken.
func (s *ProfileService) Update(ctx context.Context, profile *domain.Profile) error {
	profile.Username = strings.TrimSpace(profile.Username)

	err := s.profiles.Upsert(ctx, profile)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to update profile",
			slog.String("user_id", profile.ID.String()),
			slog.Any("error", err),
		)
		return err
	}

	s.logger.InfoContext(ctx, "profile updated", slog.String("user_id", profile.ID.String()))

	return nil
}

// GetAppearance returns the user's display settings, falling back to
// the defaults when none have been saved.
func (s *ProfileService) GetAppearance(ctx context.Context, userID uuid.UUID) (domain.Appearance, error) {
	appearance, err := s.profiles.GetAppearance(ctx, userID)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.DefaultAppearance(), nil
		}

		return domain.Appearance{}, err
	}

	return *appearance, nil
}

// SaveAppearance validates and persists the user's display settings.
func (s *ProfileService) SaveAppearance(ctx context.Context, userID uuid.UUID, appearance domain.Appearance) error {
	if err := appearance.Validate(); err != nil {
		return err
	}

	err := s.profiles.SaveAppearance(ctx, userID, appearance)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to save appearance", slog.Any("error", err))
		return err
	}

	return nil
}
