package app

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/quotewell/quotewell/internal/domain"
	"github.com/quotewell/quotewell/internal/ports"
)

// CollectionService orchestrates user collection use cases.
type CollectionService struct {
	collections ports.CollectionRepository
	quotes      ports.QuoteRepository
	logger      *slog.Logger
}

// CollectionServiceConfig contains configuration for the collection service.
type CollectionServiceConfig struct {
	Collections ports.CollectionRepository
	Quotes      ports.QuoteRepository
	Logger      *slog.Logger
}

// NewCollectionService creates a new collection service.
func NewCollectionService(cfg CollectionServiceConfig) *CollectionService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &CollectionService{
		collections: cfg.Collections,
		quotes:      cfg.Quotes,
		logger:      logger,
	}
}

// List returns the user's collections with quote counts.
func (s *CollectionService) List(ctx context.Context, userID uuid.UUID) ([]domain.Collection, error) {
	collections, err := s.collections.List(ctx, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list collections", slog.Any("error", err))
		return nil, err
	}

	return collections, nil
}

// Create validates and persists a new collection for the user.
func (s *CollectionService) Create(ctx context.Context, collection *domain.Collection) error {
	if err := collection.Validate(); err != nil {
		return err
	}

	err := s.collections.Create(ctx, collection)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create collection", slog.Any("error", err))
		return err
	}

	s.logger.InfoContext(ctx, "collection created",
		slog.String("collection_id", collection.ID.String()),
		slog.String("name", collection.Name),
	)

	return nil
}

// Delete removes the user's collection and everything in it.
func (s *CollectionService) Delete(ctx context.Context, userID, collectionID uuid.UUID) error {
	err := s.collections.Delete(ctx, userID, collectionID)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to delete collection",
			slog.String("collection_id", collectionID.String()),
			slog.Any("error", err),
		)
		return err
	}

	return nil
}

// GetWithQuotes returns a collection and its items. The two lookups run
// concurrently; ownership is enforced once the collection is loaded.
func (s *CollectionService) GetWithQuotes(ctx context.Context, userID, collectionID uuid.UUID) (*domain.Collection, []domain.CollectionQuote, error) {
	collection, items, err := Parallel2(ctx,
		func(ctx context.Context) (*domain.Collection, error) {
			return s.collections.GetByID(ctx, collectionID)
		},
		func(ctx context.Context) ([]domain.CollectionQuote, error) {
			return s.collections.ListQuotes(ctx, collectionID)
		},
	)
	if err != nil {
		return nil, nil, err
	}

	if collection.UserID != userID {
		return nil, nil, domain.NewForbiddenError("view collection", "collection belongs to another user")
	}

	collection.QuoteCount = len(items)

	return collection, items, nil
}

// AddQuote saves a catalog quote into the user's collection, capturing
// the text and author at save time.
func (s *CollectionService) AddQuote(ctx context.Context, userID, collectionID, quoteID uuid.UUID) (*domain.CollectionQuote, error) {
	collection, err := s.collections.GetByID(ctx, collectionID)
	if err != nil {
		return nil, err
	}

	if collection.UserID != userID {
		return nil, domain.NewForbiddenError("modify collection", "collection belongs to another user")
	}

	quote, err := s.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	item := &domain.CollectionQuote{
		CollectionID: collectionID,
		QuoteID:      &quote.ID,
		QuoteText:    quote.Text,
		QuoteAuthor:  quote.Author,
	}

	err = s.collections.AddQuote(ctx, item)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to add quote to collection",
			slog.String("collection_id", collectionID.String()),
			slog.String("quote_id", quoteID.String()),
			slog.Any("error", err),
		)
		return nil, err
	}

	return item, nil
}

// RemoveQuote deletes an item from the user's collection.
func (s *CollectionService) RemoveQuote(ctx context.Context, userID, collectionID, itemID uuid.UUID) error {
	collection, err := s.collections.GetByID(ctx, collectionID)
	if err != nil {
		return err
	}

	if collection.UserID != userID {
		return domain.NewForbiddenError("modify collection", "collection belongs to another user")
	}

	return s.collections.RemoveQuote(ctx, collectionID, itemID)
}
