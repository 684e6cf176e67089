package dto

import (
	"time"

	"github.com/quotewell/quotewell/internal/domain"
)

// QuoteResponse is the HTTP representation of a catalog quote.
type QuoteResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	Category  string    `json:"category,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewQuoteResponse converts a domain quote to its HTTP representation.
func NewQuoteResponse(q *domain.Quote) *QuoteResponse {
	return &QuoteResponse{
		ID:        q.ID.String(),
		Text:      q.Text,
		Author:    q.Author,
		Category:  q.Category,
		Tags:      q.Tags,
		CreatedAt: q.CreatedAt,
	}
}

// NewQuoteResponses converts a slice of domain quotes.
func NewQuoteResponses(quotes []domain.Quote) []QuoteResponse {
	result := make([]QuoteResponse, 0, len(quotes))
	for i := range quotes {
		result = append(result, *NewQuoteResponse(&quotes[i]))
	}

	return result
}

// CreateQuoteRequest is the payload for adding a quote to the catalog.
type CreateQuoteRequest struct {
	Text     string   `json:"text"     validate:"required,notempty,max=1000"`
	Author   string   `json:"author"   validate:"required,notempty,max=200"`
	Category string   `json:"category" validate:"omitempty,max=100"`
	Tags     []string `json:"tags"     validate:"omitempty,max=20,dive,max=50"`
}

// ToDomain converts the request to a domain quote.
func (r *CreateQuoteRequest) ToDomain() *domain.Quote {
	return &domain.Quote{
		Text:     r.Text,
		Author:   r.Author,
		Category: r.Category,
		Tags:     r.Tags,
	}
}

// DailyQuoteResponse is the quote-of-the-day payload. Quote is null and
// the warning set when the catalog is empty.
type DailyQuoteResponse struct {
	Quote   *QuoteResponse `json:"quote"`
	Date    string         `json:"date"`
	Warning string         `json:"warning,omitempty"`
}

// NewDailyQuoteResponse converts a daily resolution result.
func NewDailyQuoteResponse(result *domain.DailyQuoteResult) *DailyQuoteResponse {
	resp := &DailyQuoteResponse{
		Date:    result.Day.String(),
		Warning: string(result.Warning),
	}

	if result.Quote != nil {
		resp.Quote = NewQuoteResponse(result.Quote)
	}

	return resp
}

// CategoryResponse is one catalog category with its quote count.
type CategoryResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// NewCategoryResponses converts domain category counts.
func NewCategoryResponses(categories []domain.CategoryCount) []CategoryResponse {
	result := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		result = append(result, CategoryResponse{Name: c.Name, Count: c.Count})
	}

	return result
}

// FavoriteResponse is the HTTP representation of a saved quote.
type FavoriteResponse struct {
	ID        string    `json:"id"`
	QuoteID   string    `json:"quoteId,omitempty"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewFavoriteResponse converts a domain favorite.
func NewFavoriteResponse(f *domain.Favorite) *FavoriteResponse {
	resp := &FavoriteResponse{
		ID:        f.ID.String(),
		Text:      f.QuoteText,
		Author:    f.QuoteAuthor,
		CreatedAt: f.CreatedAt,
	}

	if f.QuoteID != nil {
		resp.QuoteID = f.QuoteID.String()
	}

	return resp
}

// NewFavoriteResponses converts a slice of domain favorites.
func NewFavoriteResponses(favorites []domain.Favorite) []FavoriteResponse {
	result := make([]FavoriteResponse, 0, len(favorites))
	for i := range favorites {
		result = append(result, *NewFavoriteResponse(&favorites[i]))
	}

	return result
}

// AddFavoriteRequest is the payload for favoriting a catalog quote.
type AddFavoriteRequest struct {
	QuoteID string `json:"quoteId" validate:"required,uuid"`
}

// RecentSearchResponse is one entry of the user's search history.
type RecentSearchResponse struct {
	ID        string    `json:"id"`
	Query     string    `json:"query"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewRecentSearchResponses converts domain search history entries.
func NewRecentSearchResponses(searches []domain.RecentSearch) []RecentSearchResponse {
	result := make([]RecentSearchResponse, 0, len(searches))
	for _, s := range searches {
		result = append(result, RecentSearchResponse{
			ID:        s.ID.String(),
			Query:     s.Query,
			CreatedAt: s.CreatedAt,
		})
	}

	return result
}
