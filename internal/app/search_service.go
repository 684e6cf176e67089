package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/quotewell/quotewell/internal/domain"
	"github.com/quotewell/quotewell/internal/ports"
)

// SearchService orchestrates catalog search and per-user search history.
type SearchService struct {
	quotes   ports.QuoteRepository
	searches ports.RecentSearchRepository
	logger   *slog.Logger
}

// SearchServiceConfig contains configuration for the search service.
type SearchServiceConfig struct {
	Quotes   ports.QuoteRepository
	Searches ports.RecentSearchRepository
	Logger   *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(cfg SearchServiceConfig) *SearchService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &SearchService{
		quotes:   cfg.Quotes,
		searches: cfg.Searches,
		logger:   logger,
	}
}

// Search finds quotes matching the query and records it in the user's
// history. History recording is best effort: a failure there never
// fails the search.
func (s *SearchService) Search(ctx context.Context, userID uuid.UUID, query string, limit int) ([]domain.Quote, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.NewValidationError("query", "must not be empty")
	}

	results, err := s.quotes.Search(ctx, query, clampLimit(limit))
	if err != nil {
		s.logger.ErrorContext(ctx, "search failed",
			slog.String("query", query),
			slog.Any("error", err),
		)
		return nil, err
	}

	if userID != uuid.Nil {
		recordErr := s.searches.Record(ctx, &domain.RecentSearch{
			UserID: userID,
			Query:  query,
		})
		if recordErr != nil {
			s.logger.WarnContext(ctx, "failed to record search history",
				slog.String("query", query),
				slog.Any("error", recordErr),
			)
		}
	}

	return results, nil
}

// Recent returns the user's search history, newest first.
func (s *SearchService) Recent(ctx context.Context, userID uuid.UUID) ([]domain.RecentSearch, error) {
	searches, err := s.searches.List(ctx, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list search history", slog.Any("error", err))
		return nil, err
	}

	return searches, nil
}

// Forget deletes one history entry.
func (s *SearchService) Forget(ctx context.Context, userID, searchID uuid.UUID) error {
	return s.searches.Remove(ctx, userID, searchID)
}

// Clear deletes the user's whole search history.
func (s *SearchService) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.searches.Clear(ctx, userID)
}
