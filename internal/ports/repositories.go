// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrConflict, etc.)
//   - Keep interfaces small and focused (Interface Segregation Principle)
package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/quotewell/quotewell/internal/domain"
)

// QuoteCursor marks a position in the created-time quote ordering.
// Ties on CreatedAt are broken by ID.
type QuoteCursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// QuoteRepository provides access to the quote catalog.
type QuoteRepository interface {
	// Create persists a new quote.
	Create(ctx context.Context, quote *domain.Quote) error

	// GetByID retrieves a quote.
	// Returns domain.ErrNotFound if no such quote exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Quote, error)

	// ListRecent returns up to limit quotes newest first, starting after
	// the cursor position when one is given.
	ListRecent(ctx context.Context, after *QuoteCursor, limit int) ([]domain.Quote, error)

	// Search returns quotes whose text, author or category matches the
	// query case-insensitively, newest first.
	Search(ctx context.Context, query string, limit int) ([]domain.Quote, error)

	// ListByCategory returns quotes in a category, newest first.
	ListByCategory(ctx context.Context, category string, limit int) ([]domain.Quote, error)

	// Categories returns distinct categories with quote counts,
	// alphabetically.
	Categories(ctx context.Context) ([]domain.CategoryCount, error)

	// ListPool returns up to limit quotes in stable oldest-first creation
	// order. This is the candidate pool for daily selection; the ordering
	// must be identical across calls for a given catalog state.
	ListPool(ctx context.Context, limit int) ([]domain.Quote, error)
}

// DailyQuoteRepository records which quote each user saw on each date.
type DailyQuoteRepository interface {
	// Get returns the assignment for (userID, day).
	// Returns domain.ErrNotFound if none exists.
	Get(ctx context.Context, userID uuid.UUID, day domain.Day) (*domain.DailyAssignment, error)

	// Assign atomically records the assignment for (userID, day) and
	// returns the winning row. When another caller already recorded an
	// assignment for the same key, the stored one wins and is returned.
	Assign(ctx context.Context, assignment *domain.DailyAssignment) (*domain.DailyAssignment, error)
}

// FavoriteRepository stores per-user saved quotes.
type FavoriteRepository interface {
	// List returns the user's favorites, newest first.
	List(ctx context.Context, userID uuid.UUID) ([]domain.Favorite, error)

	// Add saves a favorite.
	// Returns domain.ErrConflict if the quote is already favorited.
	Add(ctx context.Context, favorite *domain.Favorite) error

	// Remove deletes the user's favorite.
	// Returns domain.ErrNotFound if it does not exist or belongs to
	// another user.
	Remove(ctx context.Context, userID, favoriteID uuid.UUID) error
}

// CollectionRepository stores user collections and their quotes.
type CollectionRepository interface {
	// List returns the user's collections with quote counts, newest first.
	List(ctx context.Context, userID uuid.UUID) ([]domain.Collection, error)

	// GetByID retrieves a collection.
	// Returns domain.ErrNotFound if no such collection exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Collection, error)

	// Create persists a new collection.
	Create(ctx context.Context, collection *domain.Collection) error

	// Delete removes the user's collection and its items.
	// Returns domain.ErrNotFound if it does not exist or belongs to
	// another user.
	Delete(ctx context.Context, userID, collectionID uuid.UUID) error

	// ListQuotes returns the items of a collection, newest first.
	ListQuotes(ctx context.Context, collectionID uuid.UUID) ([]domain.CollectionQuote, error)

	// AddQuote saves a quote into a collection.
	// Returns domain.ErrConflict if the quote is already in it.
	AddQuote(ctx context.Context, item *domain.CollectionQuote) error

	// RemoveQuote deletes an item from a collection.
	// Returns domain.ErrNotFound if it does not exist.
	RemoveQuote(ctx context.Context, collectionID, itemID uuid.UUID) error
}

// ProfileRepository stores user profiles and appearance settings.
type ProfileRepository interface {
	// Get retrieves a profile.
	// Returns domain.ErrNotFound if the user has no profile row yet.
	Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)

	// Upsert creates or updates the profile fields.
	// Returns domain.ErrConflict if the username is taken by another user.
	Upsert(ctx context.Context, profile *domain.Profile) error

	// GetAppearance retrieves the user's saved appearance settings.
	// Returns domain.ErrNotFound if none have been saved.
	GetAppearance(ctx context.Context, userID uuid.UUID) (*domain.Appearance, error)

	// SaveAppearance persists the settings, creating the profile row if
	// needed.
	SaveAppearance(ctx context.Context, userID uuid.UUID, appearance domain.Appearance) error
}

// ReminderPrefsRepository stores per-user reminder preferences.
type ReminderPrefsRepository interface {
	// Get retrieves the user's preferences.
	// Returns domain.ErrNotFound if none have been saved.
	Get(ctx context.Context, userID uuid.UUID) (*domain.ReminderPreferences, error)

	// Upsert creates or replaces the user's preferences.
	Upsert(ctx context.Context, prefs *domain.ReminderPreferences) error

	// ListEnabled returns the preferences of every user with reminders
	// enabled. Used to re-arm schedules after a restart.
	ListEnabled(ctx context.Context) ([]domain.ReminderPreferences, error)
}

// RecentSearchRepository stores per-user search history.
type RecentSearchRepository interface {
	// List returns the newest entries first, capped at
	// domain.RecentSearchLimit.
	List(ctx context.Context, userID uuid.UUID) ([]domain.RecentSearch, error)

	// Record saves a search. Recording the same query again moves it to
	// the top rather than duplicating it.
	Record(ctx context.Context, search *domain.RecentSearch) error

	// Remove deletes one entry.
	// Returns domain.ErrNotFound if it does not exist or belongs to
	// another user.
	Remove(ctx context.Context, userID, searchID uuid.UUID) error

	// Clear deletes the user's whole history. Idempotent.
	Clear(ctx context.Context, userID uuid.UUID) error
}
