package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/quotewell/quotewell/internal/domain"
	"github.com/quotewell/quotewell/internal/ports"
)

// quoteColumns is the SELECT list shared by all quote queries.
const quoteColumns = "id, text, author, category, tags, created_by, created_at"

// QuoteStore implements ports.QuoteRepository on PostgreSQL.
type QuoteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewQuoteStore creates a quote store. Panics if db is nil.
func NewQuoteStore(db *sql.DB, logger *slog.Logger) *QuoteStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteStore{
		db:     db,
		logger: logger.With(slog.String("component", "quote_store")),
	}
}

var _ ports.QuoteRepository = (*QuoteStore)(nil)

// Create persists a new quote.
func (s *QuoteStore) Create(ctx context.Context, quote *domain.Quote) error {
	if quote.ID == uuid.Nil {
		quote.ID = uuid.New()
	}

	if quote.CreatedAt.IsZero() {
		quote.CreatedAt = time.Now().UTC()
	}

	tags := quote.Tags
	if tags == nil {
		tags = []string{}
	}

	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return mapStoreError(err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO quotes (id, text, author, category, tags, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		quote.ID, quote.Text, quote.Author, quote.Category, tagsJSON, quote.CreatedBy, quote.CreatedAt,
	)
	if err != nil {
		return mapStoreError(err)
	}

	return nil
}

// GetByID retrieves a quote.
func (s *QuoteStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quote, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+quoteColumns+" FROM quotes WHERE id = $1", id)

	quote, err := scanQuote(row)
	if err != nil {
		return nil, mapQueryError(err, "quote", id.String())
	}

	return quote, nil
}

// ListRecent returns quotes newest first, optionally after a cursor.
func (s *QuoteStore) ListRecent(ctx context.Context, after *ports.QuoteCursor, limit int) ([]domain.Quote, error) {
	var (
		rows *sql.Rows
		err  error
	)

	if after != nil {
		rows, err = s.db.QueryContext(ctx, `
			SELECT `+quoteColumns+` FROM quotes
			WHERE (created_at, id) < ($1, $2)
			ORDER BY created_at DESC, id DESC
			LIMIT $3`,
			after.CreatedAt, after.ID, limit,
		)
	} else {
		rows, err = s.db.QueryContext(ctx, `
			SELECT `+quoteColumns+` FROM quotes
			ORDER BY created_at DESC, id DESC
			LIMIT $1`,
			limit,
		)
	}

	if err != nil {
		return nil, mapStoreError(err)
	}

	return collectQuotes(rows)
}

// Search matches text, author or category case-insensitively.
func (s *QuoteStore) Search(ctx context.Context, query string, limit int) ([]domain.Quote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+quoteColumns+` FROM quotes
		WHERE text ILIKE '%' || $1 || '%'
		   OR author ILIKE '%' || $1 || '%'
		   OR category ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC, id DESC
		LIMIT $2`,
		query, limit,
	)
	if err != nil {
		return nil, mapStoreError(err)
	}

	return collectQuotes(rows)
}

// ListByCategory returns quotes in a category, newest first.
func (s *QuoteStore) ListByCategory(ctx context.Context, category string, limit int) ([]domain.Quote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+quoteColumns+` FROM quotes
		WHERE category = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`,
		category, limit,
	)
	if err != nil {
		return nil, mapStoreError(err)
	}

	return collectQuotes(rows)
}

// Categories returns distinct categories with counts, alphabetically.
func (s *QuoteStore) Categories(ctx context.Context) ([]domain.CategoryCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, COUNT(*) FROM quotes
		WHERE category <> ''
		GROUP BY category
		ORDER BY category`,
	)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer func() { _ = rows.Close() }()

	var categories []domain.CategoryCount

	for rows.Next() {
		var cc domain.CategoryCount
		if err := rows.Scan(&cc.Name, &cc.Count); err != nil {
			return nil, mapStoreError(err)
		}

		categories = append(categories, cc)
	}

	if err := rows.Err(); err != nil {
		return nil, mapStoreError(err)
	}

	return categories, nil
}

// ListPool returns the daily-selection candidate pool in stable
// oldest-first creation order.
func (s *QuoteStore) ListPool(ctx context.Context, limit int) ([]domain.Quote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+quoteColumns+` FROM quotes
		ORDER BY created_at ASC, id ASC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, mapStoreError(err)
	}

	return collectQuotes(rows)
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuote(row rowScanner) (*domain.Quote, error) {
	var (
		quote     domain.Quote
		tagsJSON  []byte
		createdBy uuid.NullUUID
	)

	err := row.Scan(
		&quote.ID,
		&quote.Text,
		&quote.Author,
		&quote.Category,
		&tagsJSON,
		&createdBy,
		&quote.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(tagsJSON, &quote.Tags); err != nil {
		return nil, err
	}

	if createdBy.Valid {
		quote.CreatedBy = &createdBy.UUID
	}

	return &quote, nil
}

func collectQuotes(rows *sql.Rows) ([]domain.Quote, error) {
	defer func() { _ = rows.Close() }()

	var quotes []domain.Quote

	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, mapStoreError(err)
		}

		quotes = append(quotes, *quote)
	}

	if err := rows.Err(); err != nil {
		return nil, mapStoreError(err)
	}

	return quotes, nil
}
