package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Defaults applied when a collection is created without an icon or color.
const (
	DefaultCollectionIcon  = "📚"
	DefaultCollectionColor = "#0F766E"
)

// Collection is a user-named grouping of quotes.
type Collection struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Icon      string
	Color     string
	CreatedAt time.Time

	// QuoteCount is derived, not stored.
	QuoteCount int
}

// Validate checks business rules and fills in display defaults.
func (c *Collection) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return NewValidationError("name", "must not be empty")
	}

	if c.Icon == "" {
		c.Icon = DefaultCollectionIcon
	}

	if c.Color == "" {
		c.Color = DefaultCollectionColor
	}

	return nil
}

// CollectionQuote is a quote saved into a collection. Text and author are
// denormalized the same way favorites are.
type CollectionQuote struct {
	ID           uuid.UUID
	CollectionID uuid.UUID
	QuoteID      *uuid.UUID
	QuoteText    string
	QuoteAuthor  string
	CreatedAt    time.Time
}
