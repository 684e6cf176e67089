package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotewell/quotewell/internal/adapters/http/dto"
	"github.com/quotewell/quotewell/internal/app"
	"github.com/quotewell/quotewell/internal/domain"
)

func newCollectionRouter(user uuid.UUID, collections *fakeCollectionRepo, quotes *fakeQuoteRepo) *gin.Engine {
	service := app.NewCollectionService(app.CollectionServiceConfig{
		Collections: collections,
		Quotes:      quotes,
		Logger:      discardLogger(),
	})

	handler := NewCollectionHandler(service)

	return newRouter(user, handler.RegisterCollectionRoutes)
}

func TestCollectionHandler_CreateCollection_AppliesDefaults(t *testing.T) {
	router := newCollectionRouter(uuid.New(), &fakeCollectionRepo{}, &fakeQuoteRepo{})

	w := doRequest(t, router, http.MethodPost, "/api/v1/collections", dto.CreateCollectionRequest{
		Name: "Stoic wisdom",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	created := decodeBody[dto.CollectionResponse](t, w)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Stoic wisdom", created.Name)
	assert.Equal(t, domain.DefaultCollectionIcon, created.Icon)
	assert.Equal(t, domain.DefaultCollectionColor, created.Color)
	assert.Zero(t, created.QuoteCount)
}

func TestCollectionHandler_CreateCollection_ValidatesBody(t *testing.T) {
	router := newCollectionRouter(uuid.New(), &fakeCollectionRepo{}, &fakeQuoteRepo{})

	w := doRequest(t, router, http.MethodPost, "/api/v1/collections", map[string]string{
		"name":  "Valid name",
		"color": "not-a-color",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeBody[dto.ErrorResponse](t, w)
	assert.Equal(t, dto.ErrorCodeValidation, resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "color")
}

func TestCollectionHandler_AddAndGetQuotes(t *testing.T) {
	quotes := &fakeQuoteRepo{}
	quote := quotes.add("quote one", "Author A", "wisdom")

	router := newCollectionRouter(uuid.New(), &fakeCollectionRepo{}, quotes)

	w := doRequest(t, router, http.MethodPost, "/api/v1/collections", dto.CreateCollectionRequest{
		Name: "Favorites of favorites",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	collection := decodeBody[dto.CollectionResponse](t, w)

	w = doRequest(t, router, http.MethodPost, "/api/v1/collections/"+collection.ID+"/quotes", dto.AddCollectionQuoteRequest{
		QuoteID: quote.ID.String(),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	item := decodeBody[dto.CollectionQuoteResponse](t, w)
	assert.Equal(t, quote.ID.String(), item.QuoteID)
	assert.Equal(t, quote.Text, item.Text)

	w = doRequest(t, router, http.MethodGet, "/api/v1/collections/"+collection.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	detail := decodeBody[dto.CollectionDetailResponse](t, w)
	assert.Equal(t, collection.ID, detail.Collection.ID)
	assert.Equal(t, 1, detail.Collection.QuoteCount)
	require.Len(t, detail.Quotes, 1)
	assert.Equal(t, item.ID, detail.Quotes[0].ID)
}

func TestCollectionHandler_GetCollection_ForbiddenForOtherUser(t *testing.T) {
	collections := &fakeCollectionRepo{}
	quotes := &fakeQuoteRepo{}

	owner := uuid.New()
	ownerRouter := newCollectionRouter(owner, collections, quotes)

	w := doRequest(t, ownerRouter, http.MethodPost, "/api/v1/collections", dto.CreateCollectionRequest{
		Name: "Private",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	collection := decodeBody[dto.CollectionResponse](t, w)

	otherRouter := newCollectionRouter(uuid.New(), collections, quotes)

	w = doRequest(t, otherRouter, http.MethodGet, "/api/v1/collections/"+collection.ID, nil)

	require.Equal(t, http.StatusForbidden, w.Code)

	resp := decodeBody[dto.ErrorResponse](t, w)
	assert.Equal(t, dto.ErrorCodeForbidden, resp.Error.Code)
}

func TestCollectionHandler_RemoveCollectionQuote(t *testing.T) {
	quotes := &fakeQuoteRepo{}
	quote := quotes.add("quote one", "Author A", "wisdom")

	router := newCollectionRouter(uuid.New(), &fakeCollectionRepo{}, quotes)

	w := doRequest(t, router, http.MethodPost, "/api/v1/collections", dto.CreateCollectionRequest{
		Name: "Cleanup target",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	collection := decodeBody[dto.CollectionResponse](t, w)

	w = doRequest(t, router, http.MethodPost, "/api/v1/collections/"+collection.ID+"/quotes", dto.AddCollectionQuoteRequest{
		QuoteID: quote.ID.String(),
	})
	require.Equal(t, http.StatusCreated, w.Code)
	item := decodeBody[dto.CollectionQuoteResponse](t, w)

	w = doRequest(t, router, http.MethodDelete, "/api/v1/collections/"+collection.ID+"/quotes/"+item.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, router, http.MethodDelete, "/api/v1/collections/"+collection.ID+"/quotes/"+item.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCollectionHandler_DeleteCollection(t *testing.T) {
	router := newCollectionRouter(uuid.New(), &fakeCollectionRepo{}, &fakeQuoteRepo{})

	w := doRequest(t, router, http.MethodPost, "/api/v1/collections", dto.CreateCollectionRequest{
		Name: "Short lived",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	collection := decodeBody[dto.CollectionResponse](t, w)

	w = doRequest(t, router, http.MethodDelete, "/api/v1/collections/"+collection.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/v1/collections", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody[[]dto.CollectionResponse](t, w))
}
