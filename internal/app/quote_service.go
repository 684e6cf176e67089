// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/quotewell/quotewell/internal/domain"
	"github.com/quotewell/quotewell/internal/ports"
)

// Listing limits shared by the browse and search use cases.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// clampLimit normalizes a caller-supplied page size.
func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}

	if limit > MaxListLimit {
		return MaxListLimit
	}

	return limit
}

// QuoteService orchestrates catalog use cases: browsing, categories and
// quote creation. It depends on port interfaces, not concrete
// implementations.
type QuoteService struct {
	quotes ports.QuoteRepository
	logger *slog.Logger
}

// QuoteServiceConfig contains configuration for the quote service.
type QuoteServiceConfig struct {
	Quotes ports.QuoteRepository
	Logger *slog.Logger
}

// NewQuoteService creates a new quote service with the provided dependencies.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteService{
		quotes: cfg.Quotes,
		logger: logger,
	}
}

// Create validates and persists a new quote.
func (s *QuoteService) Create(ctx context.Context, quote *domain.Quote) error {
	if err := quote.Validate(); err != nil {
		return err
	}

	err := s.quotes.Create(ctx, quote)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create quote", slog.Any("error", err))
		return err
	}

	s.logger.InfoContext(ctx, "quote created",
		slog.String("quote_id", quote.ID.String()),
		slog.String("author", quote.Author),
	)

	return nil
}

// GetByID retrieves a specific quote by its identifier.
func (s *QuoteService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quote, error) {
	quote, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to fetch quote",
			slog.String("quote_id", id.String()),
			slog.Any("error", err),
		)
		return nil, err
	}

	return quote, nil
}

// ListRecent returns a page of quotes, newest first, resuming after the
// cursor when one is given.
func (s *QuoteService) ListRecent(ctx context.Context, after *ports.QuoteCursor, limit int) ([]domain.Quote, error) {
	quotes, err := s.quotes.ListRecent(ctx, after, clampLimit(limit))
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list quotes", slog.Any("error", err))
		return nil, err
	}

	return quotes, nil
}

// ListByCategory returns quotes in a category, newest first.
func (s *QuoteService) ListByCategory(ctx context.Context, category string, limit int) ([]domain.Quote, error) {
	quotes, err := s.quotes.ListByCategory(ctx, category, clampLimit(limit))
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list quotes by category",
			slog.String("category", category),
			slog.Any("error", err),
		)
		return nil, err
	}

	return quotes, nil
}

// Categories returns the distinct categories with quote counts.
func (s *QuoteService) Categories(ctx context.Context) ([]domain.CategoryCount, error) {
	categories, err := s.quotes.Categories(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list categories", slog.Any("error", err))
		return nil, err
	}

	return categories, nil
}
