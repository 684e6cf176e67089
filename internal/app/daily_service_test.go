package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotewell/quotewell/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newDailyService(quotes *fakeQuoteRepo, daily *fakeDailyRepo, poolLimit int) *DailyQuoteService {
	return NewDailyQuoteService(DailyQuoteServiceConfig{
		Quotes:    quotes,
		Daily:     daily,
		PoolLimit: poolLimit,
		Logger:    discardLogger(),
	})
}

func mustDay(t *testing.T, s string) domain.Day {
	t.Helper()

	day, err := domain.ParseDay(s)
	require.NoError(t, err)

	return day
}

// TestQuoteOfTheDay_DeterministicAcrossCallsAndUsers verifies that the
// same date resolves to the same quote for every caller.
func TestQuoteOfTheDay_DeterministicAcrossCallsAndUsers(t *testing.T) {
	quotes := &fakeQuoteRepo{}
	for _, text := range []string{"one", "two", "three", "four", "five"} {
		quotes.add(text, "Author", "wisdom")
	}

	service := newDailyService(quotes, newFakeDailyRepo(), 100)
	day := mustDay(t, "2024-03-01")
	ctx := context.Background()

	first, err := service.QuoteOfTheDay(ctx, uuid.New(), day)
	require.NoError(t, err)
	require.NotNil(t, first.Quote)
	assert.Equal(t, domain.DailyWarningNone, first.Warning)

	for range 5 {
		result, err := service.QuoteOfTheDay(ctx, uuid.New(), day)
		require.NoError(t, err)
		require.NotNil(t, result.Quote)
		assert.Equal(t, first.Quote.ID, result.Quote.ID)
	}
}

// TestQuoteOfTheDay_IndexMatchesDateArithmetic verifies the selection
// uses the date's epoch milliseconds modulo the pool size.
func TestQuoteOfTheDay_IndexMatchesDateArithmetic(t *testing.T) {
	quotes := &fakeQuoteRepo{}

	var pool []domain.Quote
	for _, text := range []string{"a", "b", "c"} {
		pool = append(pool, quotes.add(text, "Author", ""))
	}

	service := newDailyService(quotes, newFakeDailyRepo(), 100)
	day := mustDay(t, "2024-03-01")

	result, err := service.QuoteOfTheDay(context.Background(), uuid.New(), day)
	require.NoError(t, err)
	require.NotNil(t, result.Quote)

	want := pool[domain.DailyIndex(day, len(pool))]
	assert.Equal(t, want.ID, result.Quote.ID)
}

// TestQuoteOfTheDay_StableAfterCatalogGrows verifies that a recorded
// assignment pins the answer even when new quotes change the pool.
func TestQuoteOfTheDay_StableAfterCatalogGrows(t *testing.T) {
	quotes := &fakeQuoteRepo{}
	quotes.add("original", "Author", "")

	daily := newFakeDailyRepo()
	service := newDailyService(quotes, daily, 100)
	userID := uuid.New()
	day := mustDay(t, "2024-03-01")
	ctx := context.Background()

	first, err := service.QuoteOfTheDay(ctx, userID, day)
	require.NoError(t, err)
	require.NotNil(t, first.Quote)

	for range 10 {
		quotes.add("later", "Someone Else", "")
	}

	second, err := service.QuoteOfTheDay(ctx, userID, day)
	require.NoError(t, err)
	require.NotNil(t, second.Quote)
	assert.Equal(t, first.Quote.ID, second.Quote.ID)
}

// TestQuoteOfTheDay_EmptyCatalog verifies the no-quotes warning carries
// no quote and no error.
func TestQuoteOfTheDay_EmptyCatalog(t *testing.T) {
	service := newDailyService(&fakeQuoteRepo{}, newFakeDailyRepo(), 100)

	result, err := service.QuoteOfTheDay(context.Background(), uuid.New(), mustDay(t, "2024-03-01"))

	require.NoError(t, err)
	assert.Nil(t, result.Quote)
	assert.Equal(t, domain.DailyWarningNoQuotes, result.Warning)
}

// TestQuoteOfTheDay_PersistenceFailure verifies a failed assignment
// write downgrades to a warning, not an error.
func TestQuoteOfTheDay_PersistenceFailure(t *testing.T) {
	quotes := &fakeQuoteRepo{}
	quotes.add("only", "Author", "")

	daily := newFakeDailyRepo()
	daily.assignErr = errors.New("connection refused")

	service := newDailyService(quotes, daily, 100)

	result, err := service.QuoteOfTheDay(context.Background(), uuid.New(), mustDay(t, "2024-03-01"))

	require.NoError(t, err)
	require.NotNil(t, result.Quote)
	assert.Equal(t, domain.DailyWarningPersistenceSkipped, result.Warning)
}

// TestQuoteOfTheDay_ConcurrentCallsAgree verifies concurrent resolution
// for the same user and day converges on one quote.
func TestQuoteOfTheDay_ConcurrentCallsAgree(t *testing.T) {
	quotes := &fakeQuoteRepo{}
	for _, text := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		quotes.add(text, "Author", "")
	}

	service := newDailyService(quotes, newFakeDailyRepo(), 100)
	userID := uuid.New()
	day := mustDay(t, "2024-03-02")
	ctx := context.Background()

	const callers = 16

	results := make([]uuid.UUID, callers)

	var wg sync.WaitGroup
	for i := range callers {
		wg.Go(func() {
			result, err := service.QuoteOfTheDay(ctx, userID, day)
			if assert.NoError(t, err) && assert.NotNil(t, result.Quote) {
				results[i] = result.Quote.ID
			}
		})
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		assert.Equal(t, results[0], results[i])
	}
}

// TestQuoteOfTheDay_PoolLimitCapsCandidates verifies quotes beyond the
// pool limit never win.
func TestQuoteOfTheDay_PoolLimitCapsCandidates(t *testing.T) {
	quotes := &fakeQuoteRepo{}

	inPool := make(map[uuid.UUID]bool)
	for i := range 5 {
		quote := quotes.add("pool", "Author", "")
		if i < 3 {
			inPool[quote.ID] = true
		}
	}

	service := newDailyService(quotes, newFakeDailyRepo(), 3)

	for _, date := range []string{"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04"} {
		result, err := service.QuoteOfTheDay(context.Background(), uuid.New(), mustDay(t, date))
		require.NoError(t, err)
		require.NotNil(t, result.Quote)
		assert.True(t, inPool[result.Quote.ID])
	}
}

// TestNewDailyQuoteService_PanicsOnBadPoolLimit verifies the pool limit guard.
func TestNewDailyQuoteService_PanicsOnBadPoolLimit(t *testing.T) {
	assert.Panics(t, func() {
		NewDailyQuoteService(DailyQuoteServiceConfig{
			Quotes:    &fakeQuoteRepo{},
			Daily:     newFakeDailyRepo(),
			PoolLimit: 0,
		})
	})
}
