// Package domain contains core business entities and rules.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Quote represents a quotation with its author.
// This is a domain entity - it has no knowledge of external systems.
type Quote struct {
	// ID is the unique identifier for this quote.
	ID uuid.UUID

	// Text is the body of the quote.
	Text string

	// Author is who said or wrote the quote.
	Author string

	// Category is the single browse category the quote belongs to.
	Category string

	// Tags are free-form themes associated with the quote.
	Tags []string

	// CreatedBy is the submitting user, nil for curated quotes.
	CreatedBy *uuid.UUID

	// CreatedAt is when the quote entered the catalog.
	CreatedAt time.Time
}

// MaxQuoteTextLen bounds user-submitted quote text.
const MaxQuoteTextLen = 1000

// Validate checks business rules for a user-submitted quote.
func (q *Quote) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return NewValidationError("text", "must not be empty")
	}

	if len(q.Text) > MaxQuoteTextLen {
		return NewValidationErrorWithValue("text", "exceeds maximum length", len(q.Text))
	}

	if strings.TrimSpace(q.Author) == "" {
		return NewValidationError("author", "must not be empty")
	}

	return nil
}

// CategoryCount pairs a category name with the number of quotes in it.
type CategoryCount struct {
	Name  string
	Count int
}
