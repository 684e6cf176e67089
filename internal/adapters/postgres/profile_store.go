package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/quotewell/quotewell/internal/domain"
	"github.com/quotewell/quotewell/internal/ports"
)

// ProfileStore implements ports.ProfileRepository on PostgreSQL.
// Profiles and appearance settings share the profiles table; the row is
// created lazily by whichever write arrives first.
type ProfileStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewProfileStore creates a profile store. Panics if db is nil.
func NewProfileStore(db *sql.DB, logger *slog.Logger) *ProfileStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &ProfileStore{
		db:     db,
		logger: logger.With(slog.String("component", "profile_store")),
	}
}

var _ ports.ProfileRepository = (*ProfileStore)(nil)

// Get retrieves a profile.
func (s *ProfileStore) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	var (
		profile  domain.Profile
		username sql.NullString
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, full_name, website, avatar_url, created_at, updated_at
		FROM profiles
		WHERE id = $1`,
		userID,
	).Scan(
		&profile.ID,
		&username,
		&profile.FullName,
		&profile.Website,
		&profile.AvatarURL,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, mapQueryError(err, "profile", userID.String())
	}

	profile.Username = username.String

	return &profile, nil
}

// Upsert creates or updates the profile fields. A username held by
// another user maps to a conflict error.
func (s *ProfileStore) Upsert(ctx context.Context, profile *domain.Profile) error {
	var username any
	if profile.Username != "" {
		username = profile.Username
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (id, username, full_name, website, avatar_url)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			username   = EXCLUDED.username,
			full_name  = EXCLUDED.full_name,
			website    = EXCLUDED.website,
			avatar_url = EXCLUDED.avatar_url,
			updated_at = now()`,
		profile.ID, username, profile.FullName, profile.Website, profile.AvatarURL,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError("profile", "username already taken")
		}

		return mapStoreError(err)
	}

	return nil
}

// GetAppearance retrieves the user's saved appearance settings.
func (s *ProfileStore) GetAppearance(ctx context.Context, userID uuid.UUID) (*domain.Appearance, error) {
	var appearance domain.Appearance

	err := s.db.QueryRowContext(ctx, `
		SELECT theme, accent_color, font_size
		FROM profiles
		WHERE id = $1`,
		userID,
	).Scan(
		&appearance.Theme,
		&appearance.AccentColor,
		&appearance.FontSize,
	)
	if err != nil {
		return nil, mapQueryError(err, "appearance", userID.String())
	}

	return &appearance, nil
}

// SaveAppearance persists the settings, creating the profile row if
// needed.
func (s *ProfileStore) SaveAppearance(ctx context.Context, userID uuid.UUID, appearance domain.Appearance) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (id, theme, accent_color, font_size)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			theme        = EXCLUDED.theme,
			accent_color = EXCLUDED.accent_color,
			font_size    = EXCLUDED.font_size,
			updated_at   = now()`,
		userID, appearance.Theme, appearance.AccentColor, appearance.FontSize,
	)
	if err != nil {
		return mapStoreError(err)
	}

	return nil
}
