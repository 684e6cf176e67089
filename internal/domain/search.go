package domain

import (
	"time"

	"github.com/google/uuid"
)

// RecentSearchLimit caps how many entries the history returns.
const RecentSearchLimit = 10

// RecentSearch is one entry in a user's search history.
type RecentSearch struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Query     string
	CreatedAt time.Time
}
