package domain

import (
	"time"

	"github.com/google/uuid"
)

// Favorite is a user's saved quote. The quote text and author are
// denormalized at save time so a favorite survives catalog edits;
// QuoteID is nil when the favorited text no longer maps to a catalog row.
type Favorite struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	QuoteID     *uuid.UUID
	QuoteText   string
	QuoteAuthor string
	CreatedAt   time.Time
}
