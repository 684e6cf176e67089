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

// RecentSearchStore implements ports.RecentSearchRepository on PostgreSQL.
type RecentSearchStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewRecentSearchStore creates a recent-search store. Panics if db is nil.
func NewRecentSearchStore(db *sql.DB, logger *slog.Logger) *RecentSearchStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &RecentSearchStore{
		db:     db,
		logger: logger.With(slog.String("component", "recent_search_store")),
	}
}

var _ ports.RecentSearchRepository = (*RecentSearchStore)(nil)

// List returns the newest entries first, capped at domain.RecentSearchLimit.
func (s *RecentSearchStore) List(ctx context.Context, userID uuid.UUID) ([]domain.RecentSearch, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, query, created_at
		FROM recent_searches
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`,
		userID, domain.RecentSearchLimit,
	)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer func() { _ = rows.Close() }()

	var searches []domain.RecentSearch

	for rows.Next() {
		var search domain.RecentSearch

		err := rows.Scan(&search.ID, &search.UserID, &search.Query, &search.CreatedAt)
		if err != nil {
			return nil, mapStoreError(err)
		}

		searches = append(searches, search)
	}

	if err := rows.Err(); err != nil {
		return nil, mapStoreError(err)
	}

	return searches, nil
}

// Record saves a search. Repeating a query moves it to the top instead
// of duplicating it, and history beyond the retained window is trimmed.
func (s *RecentSearchStore) Record(ctx context.Context, search *domain.RecentSearch) error {
	if search.ID == uuid.Nil {
		search.ID = uuid.New()
	}

	if search.CreatedAt.IsZero() {
		search.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return mapStoreError(err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		"DELETE FROM recent_searches WHERE user_id = $1 AND query = $2",
		search.UserID, search.Query,
	)
	if err != nil {
		return mapStoreError(err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO recent_searches (id, user_id, query, created_at)
		VALUES ($1, $2, $3, $4)`,
		search.ID, search.UserID, search.Query, search.CreatedAt,
	)
	if err != nil {
		return mapStoreError(err)
	}

	// Keep only the newest entries per user.
	_, err = tx.ExecContext(ctx, `
		DELETE FROM recent_searches
		WHERE user_id = $1 AND id NOT IN (
			SELECT id FROM recent_searches
			WHERE user_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2
		)`,
		search.UserID, domain.RecentSearchLimit,
	)
	if err != nil {
		return mapStoreError(err)
	}

	if err := tx.Commit(); err != nil {
		return mapStoreError(err)
	}

	return nil
}

// Remove deletes one entry.
func (s *RecentSearchStore) Remove(ctx context.Context, userID, searchID uuid.UUID) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM recent_searches WHERE id = $1 AND user_id = $2",
		searchID, userID,
	)
	if err != nil {
		return mapStoreError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return mapStoreError(err)
	}

	if affected == 0 {
		return domain.NewNotFoundError("recent search", searchID.String())
	}

	return nil
}

// Clear deletes the user's whole history.
func (s *RecentSearchStore) Clear(ctx context.Context, userID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM recent_searches WHERE user_id = $1",
		userID,
	)
	if err != nil {
		return mapStoreError(err)
	}

	return nil
}
