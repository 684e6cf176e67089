package app

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quotewell/quotewell/internal/domain"
	"github.com/quotewell/quotewell/internal/ports"
)

// In-memory port fakes shared by the service tests.

type fakeQuoteRepo struct {
	mu      sync.Mutex
	quotes  []domain.Quote
	poolErr error
}

var _ ports.QuoteRepository = (*fakeQuoteRepo)(nil)

func (r *fakeQuoteRepo) add(text, author, category string) domain.Quote {
	r.mu.Lock()
	defer r.mu.Unlock()

	quote := domain.Quote{
		ID:        uuid.New(),
		Text:      text,
		Author:    author,
		Category:  category,
		CreatedAt: time.Now().UTC().Add(time.Duration(len(r.quotes)) * time.Second),
	}
	r.quotes = append(r.quotes, quote)

	return quote
}

func (r *fakeQuoteRepo) Create(_ context.Context, quote *domain.Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if quote.ID == uuid.Nil {
		quote.ID = uuid.New()
	}

	if quote.CreatedAt.IsZero() {
		quote.CreatedAt = time.Now().UTC()
	}

	r.quotes = append(r.quotes, *quote)

	return nil
}

func (r *fakeQuoteRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.quotes {
		if r.quotes[i].ID == id {
			quote := r.quotes[i]
			return &quote, nil
		}
	}

	return nil, domain.NewNotFoundError("quote", id.String())
}

func (r *fakeQuoteRepo) ListRecent(_ context.Context, _ *ports.QuoteCursor, limit int) ([]domain.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []domain.Quote
	for i := len(r.quotes) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, r.quotes[i])
	}

	return result, nil
}

func (r *fakeQuoteRepo) Search(_ context.Context, query string, limit int) ([]domain.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q := strings.ToLower(query)

	var result []domain.Quote
	for i := len(r.quotes) - 1; i >= 0 && len(result) < limit; i-- {
		quote := r.quotes[i]
		if strings.Contains(strings.ToLower(quote.Text), q) ||
			strings.Contains(strings.ToLower(quote.Author), q) ||
			strings.Contains(strings.ToLower(quote.Category), q) {
			result = append(result, quote)
		}
	}

	return result, nil
}

func (r *fakeQuoteRepo) ListByCategory(_ context.Context, category string, limit int) ([]domain.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []domain.Quote
	for i := len(r.quotes) - 1; i >= 0 && len(result) < limit; i-- {
		if r.quotes[i].Category == category {
			result = append(result, r.quotes[i])
		}
	}

	return result, nil
}

func (r *fakeQuoteRepo) Categories(_ context.Context) ([]domain.CategoryCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[string]int)
	for i := range r.quotes {
		if r.quotes[i].Category != "" {
			counts[r.quotes[i].Category] = counts[r.quotes[i].Category] + 1
		}
	}

	var result []domain.CategoryCount
	for name, count := range counts {
		result = append(result, domain.CategoryCount{Name: name, Count: count})
	}

	return result, nil
}

func (r *fakeQuoteRepo) ListPool(_ context.Context, limit int) ([]domain.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.poolErr != nil {
		return nil, r.poolErr
	}

	n := min(limit, len(r.quotes))
	pool := make([]domain.Quote, n)
	copy(pool, r.quotes[:n])

	return pool, nil
}

type fakeDailyRepo struct {
	mu          sync.Mutex
	assignments map[string]domain.DailyAssignment
	assignErr   error
	getCalls    int
}

var _ ports.DailyQuoteRepository = (*fakeDailyRepo)(nil)

func newFakeDailyRepo() *fakeDailyRepo {
	return &fakeDailyRepo{assignments: make(map[string]domain.DailyAssignment)}
}

func dailyKey(userID uuid.UUID, day domain.Day) string {
	return userID.String() + "|" + day.String()
}

func (r *fakeDailyRepo) Get(_ context.Context, userID uuid.UUID, day domain.Day) (*domain.DailyAssignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.getCalls = r.getCalls + 1

	assignment, ok := r.assignments[dailyKey(userID, day)]
	if !ok {
		return nil, domain.NewNotFoundError("daily assignment", day.String())
	}

	return &assignment, nil
}

func (r *fakeDailyRepo) Assign(_ context.Context, assignment *domain.DailyAssignment) (*domain.DailyAssignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.assignErr != nil {
		return nil, r.assignErr
	}

	key := dailyKey(assignment.UserID, assignment.Date)
	if existing, ok := r.assignments[key]; ok {
		return &existing, nil
	}

	stored := *assignment
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now().UTC()
	r.assignments[key] = stored

	return &stored, nil
}

type fakeFavoriteRepo struct {
	mu        sync.Mutex
	favorites []domain.Favorite
}

var _ ports.FavoriteRepository = (*fakeFavoriteRepo)(nil)

func (r *fakeFavoriteRepo) List(_ context.Context, userID uuid.UUID) ([]domain.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []domain.Favorite
	for i := len(r.favorites) - 1; i >= 0; i-- {
		if r.favorites[i].UserID == userID {
			result = append(result, r.favorites[i])
		}
	}

	return result, nil
}

func (r *fakeFavoriteRepo) Add(_ context.Context, favorite *domain.Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.favorites {
		if r.favorites[i].UserID == favorite.UserID &&
			r.favorites[i].QuoteID != nil && favorite.QuoteID != nil &&
			*r.favorites[i].QuoteID == *favorite.QuoteID {
			return domain.NewConflictError("favorite", "quote already favorited")
		}
	}

	favorite.ID = uuid.New()
	favorite.CreatedAt = time.Now().UTC()
	r.favorites = append(r.favorites, *favorite)

	return nil
}

func (r *fakeFavoriteRepo) Remove(_ context.Context, userID, favoriteID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.favorites {
		if r.favorites[i].ID == favoriteID && r.favorites[i].UserID == userID {
			r.favorites = append(r.favorites[:i], r.favorites[i+1:]...)
			return nil
		}
	}

	return domain.NewNotFoundError("favorite", favoriteID.String())
}

type fakeCollectionRepo struct {
	mu          sync.Mutex
	collections []domain.Collection
	items       []domain.CollectionQuote
}

var _ ports.CollectionRepository = (*fakeCollectionRepo)(nil)

func (r *fakeCollectionRepo) List(_ context.Context, userID uuid.UUID) ([]domain.Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []domain.Collection
	for i := len(r.collections) - 1; i >= 0; i-- {
		if r.collections[i].UserID == userID {
			collection := r.collections[i]
			for j := range r.items {
				if r.items[j].CollectionID == collection.ID {
					collection.QuoteCount = collection.QuoteCount + 1
				}
			}
			result = append(result, collection)
		}
	}

	return result, nil
}

func (r *fakeCollectionRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.collections {
		if r.collections[i].ID == id {
			collection := r.collections[i]
			return &collection, nil
		}
	}

	return nil, domain.NewNotFoundError("collection", id.String())
}

func (r *fakeCollectionRepo) Create(_ context.Context, collection *domain.Collection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	collection.ID = uuid.New()
	collection.CreatedAt = time.Now().UTC()
	r.collections = append(r.collections, *collection)

	return nil
}

func (r *fakeCollectionRepo) Delete(_ context.Context, userID, collectionID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.collections {
		if r.collections[i].ID == collectionID && r.collections[i].UserID == userID {
			r.collections = append(r.collections[:i], r.collections[i+1:]...)
			return nil
		}
	}

	return domain.NewNotFoundError("collection", collectionID.String())
}

func (r *fakeCollectionRepo) ListQuotes(_ context.Context, collectionID uuid.UUID) ([]domain.CollectionQuote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []domain.CollectionQuote
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].CollectionID == collectionID {
			result = append(result, r.items[i])
		}
	}

	return result, nil
}

func (r *fakeCollectionRepo) AddQuote(_ context.Context, item *domain.CollectionQuote) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].CollectionID == item.CollectionID &&
			r.items[i].QuoteID != nil && item.QuoteID != nil &&
			*r.items[i].QuoteID == *item.QuoteID {
			return domain.NewConflictError("collection quote", "quote already in collection")
		}
	}

	item.ID = uuid.New()
	item.CreatedAt = time.Now().UTC()
	r.items = append(r.items, *item)

	return nil
}

func (r *fakeCollectionRepo) RemoveQuote(_ context.Context, collectionID, itemID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == itemID && r.items[i].CollectionID == collectionID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}

	return domain.NewNotFoundError("collection quote", itemID.String())
}

type fakeProfileRepo struct {
	mu          sync.Mutex
	profiles    map[uuid.UUID]domain.Profile
	appearances map[uuid.UUID]domain.Appearance
	takenName   string
}

var _ ports.ProfileRepository = (*fakeProfileRepo)(nil)

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		profiles:    make(map[uuid.UUID]domain.Profile),
		appearances: make(map[uuid.UUID]domain.Appearance),
	}
}

func (r *fakeProfileRepo) Get(_ context.Context, userID uuid.UUID) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[userID]
	if !ok {
		return nil, domain.NewNotFoundError("profile", userID.String())
	}

	return &profile, nil
}

func (r *fakeProfileRepo) Upsert(_ context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.takenName != "" && profile.Username == r.takenName {
		return domain.NewConflictError("profile", "username already taken")
	}

	r.profiles[profile.ID] = *profile

	return nil
}

func (r *fakeProfileRepo) GetAppearance(_ context.Context, userID uuid.UUID) (*domain.Appearance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appearance, ok := r.appearances[userID]
	if !ok {
		return nil, domain.NewNotFoundError("appearance", userID.String())
	}

	return &appearance, nil
}

func (r *fakeProfileRepo) SaveAppearance(_ context.Context, userID uuid.UUID, appearance domain.Appearance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.appearances[userID] = appearance

	return nil
}

type fakeReminderPrefsRepo struct {
	mu        sync.Mutex
	prefs     map[uuid.UUID]domain.ReminderPreferences
	upsertErr error
	listErr   error
}

var _ ports.ReminderPrefsRepository = (*fakeReminderPrefsRepo)(nil)

func newFakeReminderPrefsRepo() *fakeReminderPrefsRepo {
	return &fakeReminderPrefsRepo{prefs: make(map[uuid.UUID]domain.ReminderPreferences)}
}

func (r *fakeReminderPrefsRepo) Get(_ context.Context, userID uuid.UUID) (*domain.ReminderPreferences, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prefs, ok := r.prefs[userID]
	if !ok {
		return nil, domain.NewNotFoundError("reminder preferences", userID.String())
	}

	return &prefs, nil
}

func (r *fakeReminderPrefsRepo) Upsert(_ context.Context, prefs *domain.ReminderPreferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.upsertErr != nil {
		return r.upsertErr
	}

	r.prefs[prefs.UserID] = *prefs

	return nil
}

func (r *fakeReminderPrefsRepo) ListEnabled(_ context.Context) ([]domain.ReminderPreferences, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.listErr != nil {
		return nil, r.listErr
	}

	var result []domain.ReminderPreferences
	for _, prefs := range r.prefs {
		if prefs.Enabled {
			result = append(result, prefs)
		}
	}

	return result, nil
}

type fakeSearchRepo struct {
	mu       sync.Mutex
	searches []domain.RecentSearch
}

var _ ports.RecentSearchRepository = (*fakeSearchRepo)(nil)

func (r *fakeSearchRepo) List(_ context.Context, userID uuid.UUID) ([]domain.RecentSearch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []domain.RecentSearch
	for i := len(r.searches) - 1; i >= 0 && len(result) < domain.RecentSearchLimit; i-- {
		if r.searches[i].UserID == userID {
			result = append(result, r.searches[i])
		}
	}

	return result, nil
}

func (r *fakeSearchRepo) Record(_ context.Context, search *domain.RecentSearch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.searches {
		if r.searches[i].UserID == search.UserID && r.searches[i].Query == search.Query {
			r.searches = append(r.searches[:i], r.searches[i+1:]...)
			break
		}
	}

	search.ID = uuid.New()
	search.CreatedAt = time.Now().UTC()
	r.searches = append(r.searches, *search)

	return nil
}

func (r *fakeSearchRepo) Remove(_ context.Context, userID, searchID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.searches {
		if r.searches[i].ID == searchID && r.searches[i].UserID == userID {
			r.searches = append(r.searches[:i], r.searches[i+1:]...)
			return nil
		}
	}

	return domain.NewNotFoundError("recent search", searchID.String())
}

func (r *fakeSearchRepo) Clear(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.searches[:0]
	for _, search := range r.searches {
		if search.UserID != userID {
			kept = append(kept, search)
		}
	}
	r.searches = kept

	return nil
}

type fakeScheduler struct {
	mu             sync.Mutex
	permission     bool
	permissionErr  error
	permissionHits int
	scheduled      map[uuid.UUID]string
	scheduleErr    error
	lastBody       string
	lastLoc        *time.Location
	cancelled      []uuid.UUID
}

var _ ports.ReminderScheduler = (*fakeScheduler)(nil)

func newFakeScheduler(permission bool) *fakeScheduler {
	return &fakeScheduler{
		permission: permission,
		scheduled:  make(map[uuid.UUID]string),
	}
}

func (s *fakeScheduler) RequestPermission(_ context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.permissionHits = s.permissionHits + 1

	return s.permission, s.permissionErr
}

func (s *fakeScheduler) ScheduleDaily(owner uuid.UUID, hour, minute int, loc *time.Location, body string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scheduleErr != nil {
		return "", s.scheduleErr
	}

	if hour < 0 || hour > 23 {
		return "", domain.NewValidationErrorWithValue("hour", "must be between 0 and 23", hour)
	}

	if minute < 0 || minute > 59 {
		return "", domain.NewValidationErrorWithValue("minute", "must be between 0 and 59", minute)
	}

	id := uuid.NewString()
	s.scheduled[owner] = id
	s.lastBody = body
	s.lastLoc = loc

	return id, nil
}

func (s *fakeScheduler) CancelAll(owner uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.scheduled, owner)
	s.cancelled = append(s.cancelled, owner)
}
