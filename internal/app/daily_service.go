package app

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/quotewell/quotewell/internal/domain"
	"github.com/quotewell/quotewell/internal/ports"
)

// DailyQuoteService resolves each user's quote of the day.
//
// Selection is deterministic: the candidate pool is the catalog in
// stable creation order (capped at PoolLimit) and the index is derived
// from the date alone, so every user sees the same quote on the same
// day. The winning assignment is recorded so the answer stays stable
// even if the catalog changes later that day.
type DailyQuoteService struct {
	quotes    ports.QuoteRepository
	daily     ports.DailyQuoteRepository
	poolLimit int
	logger    *slog.Logger

	// group collapses concurrent resolutions for the same (user, day)
	// so only one hits the repositories.
	group singleflight.Group
}

// DailyQuoteServiceConfig contains configuration for the daily quote service.
type DailyQuoteServiceConfig struct {
	Quotes ports.QuoteRepository
	Daily  ports.DailyQuoteRepository

	// PoolLimit caps the candidate pool size. Must be positive.
	PoolLimit int

	Logger *slog.Logger
}

// NewDailyQuoteService creates a daily quote service.
// Panics if PoolLimit is not positive.
func NewDailyQuoteService(cfg DailyQuoteServiceConfig) *DailyQuoteService {
	if cfg.PoolLimit <= 0 {
		panic("DailyQuoteService: PoolLimit must be positive")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &DailyQuoteService{
		quotes:    cfg.Quotes,
		daily:     cfg.Daily,
		poolLimit: cfg.PoolLimit,
		logger:    logger,
	}
}

// QuoteOfTheDay resolves the quote for (userID, day).
//
// The result may carry a warning instead of an error for the two
// non-fatal outcomes: an empty catalog, and a selection whose
// persistence failed.
func (s *DailyQuoteService) QuoteOfTheDay(ctx context.Context, userID uuid.UUID, day domain.Day) (*domain.DailyQuoteResult, error) {
	key := userID.String() + "|" + day.String()

	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.resolve(ctx, userID, day)
	})
	if err != nil {
		return nil, err
	}

	result, ok := v.(*domain.DailyQuoteResult)
	if !ok {
		// Unreachable: resolve only ever returns *domain.DailyQuoteResult.
		return nil, domain.NewUnavailableError("daily-quote", "unexpected resolution result")
	}

	return result, nil
}

// resolve performs the actual lookup-or-select outside the singleflight
// wrapper.
func (s *DailyQuoteService) resolve(ctx context.Context, userID uuid.UUID, day domain.Day) (*domain.DailyQuoteResult, error) {
	assignment, err := s.daily.Get(ctx, userID, day)

	switch {
	case err == nil:
		quote, getErr := s.quotes.GetByID(ctx, assignment.QuoteID)
		if getErr == nil {
			return &domain.DailyQuoteResult{Quote: quote, Day: day}, nil
		}

		if !domain.IsNotFound(getErr) {
			return nil, getErr
		}

		// The assigned quote vanished from the catalog; fall through and
		// select again.
		s.logger.WarnContext(ctx, "assigned daily quote no longer exists",
			slog.String("user_id", userID.String()),
			slog.String("date", day.String()),
			slog.String("quote_id", assignment.QuoteID.String()),
		)

	case !domain.IsNotFound(err):
		return nil, err
	}

	return s.selectAndRecord(ctx, userID, day)
}

// selectAndRecord picks the date's quote from the pool and records the
// assignment, yielding to a concurrent winner if one got there first.
func (s *DailyQuoteService) selectAndRecord(ctx context.Context, userID uuid.UUID, day domain.Day) (*domain.DailyQuoteResult, error) {
	pool, err := s.quotes.ListPool(ctx, s.poolLimit)
	if err != nil {
		return nil, err
	}

	if len(pool) == 0 {
		return &domain.DailyQuoteResult{
			Day:     day,
			Warning: domain.DailyWarningNoQuotes,
		}, nil
	}

	selected := pool[domain.DailyIndex(day, len(pool))]

	stored, err := s.daily.Assign(ctx, &domain.DailyAssignment{
		UserID:  userID,
		Date:    day,
		QuoteID: selected.ID,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "daily assignment not persisted",
			slog.String("user_id", userID.String()),
			slog.String("date", day.String()),
			slog.Any("error", err),
		)

		return &domain.DailyQuoteResult{
			Quote:   &selected,
			Day:     day,
			Warning: domain.DailyWarningPersistenceSkipped,
		}, nil
	}

	// A concurrent request may have recorded a different quote first;
	// the stored assignment always wins.
	if stored.QuoteID != selected.ID {
		winner, getErr := s.quotes.GetByID(ctx, stored.QuoteID)
		if getErr != nil {
			return nil, getErr
		}

		return &domain.DailyQuoteResult{Quote: winner, Day: day}, nil
	}

	return &domain.DailyQuoteResult{Quote: &selected, Day: day}, nil
}
