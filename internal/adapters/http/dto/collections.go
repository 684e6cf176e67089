package dto

import (
	"time"

	"github.com/quotewell/quotewell/internal/domain"
)

// CollectionResponse is the HTTP representation of a collection.
type CollectionResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Icon       string    `json:"icon"`
	Color      string    `json:"color"`
	QuoteCount int       `json:"quoteCount"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewCollectionResponse converts a domain collection.
func NewCollectionResponse(c *domain.Collection) *CollectionResponse {
	return &CollectionResponse{
		ID:         c.ID.String(),
		Name:       c.Name,
		Icon:       c.Icon,
		Color:      c.Color,
		QuoteCount: c.QuoteCount,
		CreatedAt:  c.CreatedAt,
	}
}

// NewCollectionResponses converts a slice of domain collections.
func NewCollectionResponses(collections []domain.Collection) []CollectionResponse {
	result := make([]CollectionResponse, 0, len(collections))
	for i := range collections {
		result = append(result, *NewCollectionResponse(&collections[i]))
	}

	return result
}

// CreateCollectionRequest is the payload for creating a collection.
// Icon and color fall back to the domain defaults when omitted.
type CreateCollectionRequest struct {
	Name  string `json:"name"  validate:"required,notempty,max=100"`
	Icon  string `json:"icon"  validate:"omitempty,max=10"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

// ToDomain converts the request to a domain collection.
func (r *CreateCollectionRequest) ToDomain() *domain.Collection {
	return &domain.Collection{
		Name:  r.Name,
		Icon:  r.Icon,
		Color: r.Color,
	}
}

// CollectionQuoteResponse is one quote saved inside a collection.
type CollectionQuoteResponse struct {
	ID        string    `json:"id"`
	QuoteID   string    `json:"quoteId,omitempty"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewCollectionQuoteResponse converts a domain collection item.
func NewCollectionQuoteResponse(item *domain.CollectionQuote) *CollectionQuoteResponse {
	resp := &CollectionQuoteResponse{
		ID:        item.ID.String(),
		Text:      item.QuoteText,
		Author:    item.QuoteAuthor,
		CreatedAt: item.CreatedAt,
	}

	if item.QuoteID != nil {
		resp.QuoteID = item.QuoteID.String()
	}

	return resp
}

// NewCollectionQuoteResponses converts a slice of collection items.
func NewCollectionQuoteResponses(items []domain.CollectionQuote) []CollectionQuoteResponse {
	result := make([]CollectionQuoteResponse, 0, len(items))
	for i := range items {
		result = append(result, *NewCollectionQuoteResponse(&items[i]))
	}

	return result
}

// CollectionDetailResponse is a collection together with its quotes.
type CollectionDetailResponse struct {
	Collection CollectionResponse        `json:"collection"`
	Quotes     []CollectionQuoteResponse `json:"quotes"`
}

// AddCollectionQuoteRequest is the payload for saving a quote into a
// collection.
type AddCollectionQuoteRequest struct {
	QuoteID string `json:"quoteId" validate:"required,uuid"`
}
