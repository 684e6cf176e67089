package app

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/quotewell/quotewell/internal/domain"
	"github.com/quotewell/quotewell/internal/ports"
)

// FavoriteService orchestrates the per-user saved-quote use cases.
type FavoriteService struct {
	favorites ports.FavoriteRepository
	quotes    ports.QuoteRepository
	logger    *slog.Logger
}

// FavoriteServiceConfig contains configuration for the favorite service.
type FavoriteServiceConfig struct {
	Favorites ports.FavoriteRepository
	Quotes    ports.QuoteRepository
	Logger    *slog.Logger
}

// NewFavoriteService creates a new favorite service.
func NewFavoriteService(cfg FavoriteServiceConfig) *FavoriteService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &FavoriteService{
		favorites: cfg.Favorites,
		quotes:    cfg.Quotes,
		logger:    logger,
	}
}

// List returns the user's favorites, newest first.
func (s *FavoriteService) List(ctx context.Context, userID uuid.UUID) ([]domain.Favorite, error) {
	favorites, err := s.favorites.List(ctx, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list favorites", slog.Any("error", err))
		return nil, err
	}

	return favorites, nil
}

// Add favorites a catalog quote for the user. The quote text and author
// are captured now so the favorite survives later catalog edits.
// Returns domain.ErrNotFound for an unknown quote and domain.ErrConflict
// when it is already favorited.
func (s *FavoriteService) Add(ctx context.Context, userID, quoteID uuid.UUID) (*domain.Favorite, error) {
	quote, err := s.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	favorite := &domain.Favorite{
		UserID:      userID,
		QuoteID:     &quote.ID,
		QuoteText:   quote.Text,
		QuoteAuthor: quote.Author,
	}

	err = s.favorites.Add(ctx, favorite)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to add favorite",
			slog.String("quote_id", quoteID.String()),
			slog.Any("error", err),
		)
		return nil, err
	}

	s.logger.InfoContext(ctx, "favorite added",
		slog.String("favorite_id", favorite.ID.String()),
		slog.String("quote_id", quoteID.String()),
	)

	return favorite, nil
}

// Remove deletes the user's favorite.
func (s *FavoriteService) Remove(ctx context.Context, userID, favoriteID uuid.UUID) error {
	err := s.favorites.Remove(ctx, userID, favoriteID)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to remove favorite",
			slog.String("favorite_id", favoriteID.String()),
			slog.Any("error", err),
		)
		return err
	}

	return nil
}
