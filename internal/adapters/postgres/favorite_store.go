package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/quotewell/quotewell/internal/domain"
	"github.com/quotewell/quotewell/internal/ports"
)

// FavoriteStore implements ports.FavoriteRepository on PostgreSQL.
type FavoriteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewFavoriteStore creates a favorite store. Panics if db is nil.
func NewFavoriteStore(db *sql.DB, logger *slog.Logger) *FavoriteStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &FavoriteStore{
		db:     db,
		logger: logger.With(slog.String("component", "favorite_store")),
	}
}

var _ ports.FavoriteRepository = (*FavoriteStore)(nil)

// List returns the user's favorites, newest first.
func (s *FavoriteStore) List(ctx context.Context, userID uuid.UUID) ([]domain.Favorite, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, quote_id, quote_text, quote_author, created_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer func() { _ = rows.Close() }()

	var favorites []domain.Favorite

	for rows.Next() {
		var (
			favorite domain.Favorite
			quoteID  uuid.NullUUID
		)

		err := rows.Scan(
			&favorite.ID,
			&favorite.UserID,
			&quoteID,
			&favorite.QuoteText,
			&favorite.QuoteAuthor,
			&favorite.CreatedAt,
		)
		if err != nil {
			return nil, mapStoreError(err)
		}

		if quoteID.Valid {
			favorite.QuoteID = &quoteID.UUID
		}

		favorites = append(favorites, favorite)
	}

	if err := rows.Err(); err != nil {
		return nil, mapStoreError(err)
	}

	return favorites, nil
}

// Add saves a favorite. A duplicate (user, quote) pair maps to a
// conflict error.
func (s *FavoriteStore) Add(ctx context.Context, favorite *domain.Favorite) error {
	if favorite.ID == uuid.Nil {
		favorite.ID = uuid.New()
	}

	if favorite.CreatedAt.IsZero() {
		favorite.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO favorites (id, user_id, quote_id, quote_text, quote_author, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		favorite.ID, favorite.UserID, favorite.QuoteID, favorite.QuoteText, favorite.QuoteAuthor, favorite.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError("favorite", "quote already favorited")
		}

		return mapStoreError(err)
	}

	return nil
}

// Remove deletes the user's favorite.
func (s *FavoriteStore) Remove(ctx context.Context, userID, favoriteID uuid.UUID) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM favorites WHERE id = $1 AND user_id = $2",
		favoriteID, userID,
	)
	if err != nil {
		return mapStoreError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return mapStoreError(err)
	}

	if affected == 0 {
		return domain.NewNotFoundError("favorite", favoriteID.String())
	}

	return nil
}
