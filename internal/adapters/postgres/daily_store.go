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

// DailyQuoteStore implements ports.DailyQuoteRepository on PostgreSQL.
type DailyQuoteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewDailyQuoteStore creates a daily-quote store. Panics if db is nil.
func NewDailyQuoteStore(db *sql.DB, logger *slog.Logger) *DailyQuoteStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &DailyQuoteStore{
		db:     db,
		logger: logger.With(slog.String("component", "daily_quote_store")),
	}
}

var _ ports.DailyQuoteRepository = (*DailyQuoteStore)(nil)

// Get returns the assignment for (userID, day).
func (s *DailyQuoteStore) Get(ctx context.Context, userID uuid.UUID, day domain.Day) (*domain.DailyAssignment, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, date, quote_id, created_at
		FROM daily_quotes
		WHERE user_id = $1 AND date = $2`,
		userID, day.Time(),
	)

	assignment, err := scanDailyAssignment(row)
	if err != nil {
		return nil, mapQueryError(err, "daily assignment", day.String())
	}

	return assignment, nil
}

// Assign records the assignment atomically. ON CONFLICT DO NOTHING keyed
// on (user_id, date) means concurrent callers race safely: exactly one
// insert wins and everyone reads back the winning row.
func (s *DailyQuoteStore) Assign(ctx context.Context, assignment *domain.DailyAssignment) (*domain.DailyAssignment, error) {
	if assignment.ID == uuid.Nil {
		assignment.ID = uuid.New()
	}

	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO daily_quotes (id, user_id, date, quote_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, date) DO NOTHING`,
		assignment.ID, assignment.UserID, assignment.Date.Time(), assignment.QuoteID, assignment.CreatedAt,
	)
	if err != nil {
		return nil, mapStoreError(err)
	}

	winner, err := s.Get(ctx, assignment.UserID, assignment.Date)
	if err != nil {
		return nil, err
	}

	return winner, nil
}

func scanDailyAssignment(row rowScanner) (*domain.DailyAssignment, error) {
	var (
		assignment domain.DailyAssignment
		date       time.Time
	)

	err := row.Scan(
		&assignment.ID,
		&assignment.UserID,
		&date,
		&assignment.QuoteID,
		&assignment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	assignment.Date = domain.DayOf(date)

	return &assignment, nil
}
