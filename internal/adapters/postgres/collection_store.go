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

// CollectionStore implements ports.CollectionRepository on PostgreSQL.
type CollectionStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewCollectionStore creates a collection store. Panics if db is nil.
func NewCollectionStore(db *sql.DB, logger *slog.Logger) *CollectionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &CollectionStore{
		db:     db,
		logger: logger.With(slog.String("component", "collection_store")),
	}
}

var _ ports.CollectionRepository = (*CollectionStore)(nil)

// List returns the user's collections with derived quote counts.
func (s *CollectionStore) List(ctx context.Context, userID uuid.UUID) ([]domain.Collection, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.user_id, c.name, c.icon, c.color, c.created_at, COUNT(cq.id)
		FROM collections c
		LEFT JOIN collection_quotes cq ON cq.collection_id = c.id
		WHERE c.user_id = $1
		GROUP BY c.id
		ORDER BY c.created_at DESC, c.id DESC`,
		userID,
	)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer func() { _ = rows.Close() }()

	var collections []domain.Collection

	for rows.Next() {
		var collection domain.Collection

		err := rows.Scan(
			&collection.ID,
			&collection.UserID,
			&collection.Name,
			&collection.Icon,
			&collection.Color,
			&collection.CreatedAt,
			&collection.QuoteCount,
		)
		if err != nil {
			return nil, mapStoreError(err)
		}

		collections = append(collections, collection)
	}

	if err := rows.Err(); err != nil {
		return nil, mapStoreError(err)
	}

	return collections, nil
}

// GetByID retrieves a collection without its quote count.
func (s *CollectionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Collection, error) {
	var collection domain.Collection

	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, icon, color, created_at
		FROM collections
		WHERE id = $1`,
		id,
	).Scan(
		&collection.ID,
		&collection.UserID,
		&collection.Name,
		&collection.Icon,
		&collection.Color,
		&collection.CreatedAt,
	)
	if err != nil {
		return nil, mapQueryError(err, "collection", id.String())
	}

	return &collection, nil
}

// Create persists a new collection.
func (s *CollectionStore) Create(ctx context.Context, collection *domain.Collection) error {
	if collection.ID == uuid.Nil {
		collection.ID = uuid.New()
	}

	if collection.CreatedAt.IsZero() {
		collection.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO collections (id, user_id, name, icon, color, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		collection.ID, collection.UserID, collection.Name, collection.Icon, collection.Color, collection.CreatedAt,
	)
	if err != nil {
		return mapStoreError(err)
	}

	return nil
}

// Delete removes the user's collection; items cascade at the schema level.
func (s *CollectionStore) Delete(ctx context.Context, userID, collectionID uuid.UUID) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM collections WHERE id = $1 AND user_id = $2",
		collectionID, userID,
	)
	if err != nil {
		return mapStoreError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return mapStoreError(err)
	}

	if affected == 0 {
		return domain.NewNotFoundError("collection", collectionID.String())
	}

	return nil
}

// ListQuotes returns the items of a collection, newest first.
func (s *CollectionStore) ListQuotes(ctx context.Context, collectionID uuid.UUID) ([]domain.CollectionQuote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, collection_id, quote_id, quote_text, quote_author, created_at
		FROM collection_quotes
		WHERE collection_id = $1
		ORDER BY created_at DESC, id DESC`,
		collectionID,
	)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer func() { _ = rows.Close() }()

	var items []domain.CollectionQuote

	for rows.Next() {
		var (
			item    domain.CollectionQuote
			quoteID uuid.NullUUID
		)

		err := rows.Scan(
			&item.ID,
			&item.CollectionID,
			&quoteID,
			&item.QuoteText,
			&item.QuoteAuthor,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, mapStoreError(err)
		}

		if quoteID.Valid {
			item.QuoteID = &quoteID.UUID
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, mapStoreError(err)
	}

	return items, nil
}

// AddQuote saves a quote into a collection. A duplicate pair maps to a
// conflict error; a vanished collection maps to not found.
func (s *CollectionStore) AddQuote(ctx context.Context, item *domain.CollectionQuote) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}

	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO collection_quotes (id, collection_id, quote_id, quote_text, quote_author, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		item.ID, item.CollectionID, item.QuoteID, item.QuoteText, item.QuoteAuthor, item.CreatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.NewConflictError("collection quote", "quote already in collection")
		case isForeignKeyViolation(err):
			return domain.NewNotFoundError("collection", item.CollectionID.String())
		default:
			return mapStoreError(err)
		}
	}

	return nil
}

// RemoveQuote deletes an item from a collection.
func (s *CollectionStore) RemoveQuote(ctx context.Context, collectionID, itemID uuid.UUID) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM collection_quotes WHERE id = $1 AND collection_id = $2",
		itemID, collectionID,
	)
	if err != nil {
		return mapStoreError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return mapStoreError(err)
	}

	if affected == 0 {
		return domain.NewNotFoundError("collection quote", itemID.String())
	}

	return nil
}
