package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savora-ai/savora/backend/internal/types"
)

type fakeCollections struct {
	entries map[string][]types.Entry

	lastUser       uuid.UUID
	lastCollection string
}

func (f *fakeCollections) Load(_ context.Context, userID uuid.UUID, collection string) []types.Entry {
	f.lastUser = userID
	f.lastCollection = collection
	return f.entries[collection]
}

type fakeFavorites struct {
	id        uuid.UUID
	addErr    error
	removeErr error

	added   int
	removed []uuid.UUID
}

func (f *fakeFavorites) Add(_ context.Context, _ uuid.UUID, _ types.Recipe, _ types.CustomizationRequest) (uuid.UUID, error) {
	if f.addErr != nil {
		return uuid.Nil, f.addErr
	}
	f.added++
	return f.id, nil
}

func (f *fakeFavorites) Remove(_ context.Context, _ uuid.UUID, id uuid.UUID) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, id)
	return nil
}

func collectionRouter(collections *fakeCollections, favorites *fakeFavorites, auth gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	group := router.Group("/api/v1")
	if auth != nil {
		group.Use(auth)
	}
	NewCollectionHandler(collections, favorites).RegisterRoutes(group)
	return router
}

func TestCollectionsRequireAuth(t *testing.T) {
	router := collectionRouter(&fakeCollections{}, &fakeFavorites{}, nil)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/history"},
		{http.MethodGet, "/api/v1/favorites"},
		{http.MethodDelete, "/api/v1/favorites/" + uuid.NewString()},
	} {
		w := performRequest(router, tc.method, tc.path, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}

	w := performRequest(router, http.MethodPost, "/api/v1/favorites",
		map[string]any{"recipe": "toast"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListHistory(t *testing.T) {
	userID := uuid.New()
	collections := &fakeCollections{entries: map[string][]types.Entry{
		"history": {
			{ID: uuid.New(), Recipe: types.Recipe{Format: types.FormatJSON, Title: "Newest"}, CreatedAt: "2025-06-02T10:00:00Z"},
			{ID: uuid.New(), Recipe: types.FreeformRecipe("older, freeform"), CreatedAt: "2025-06-01T10:00:00Z"},
		},
	}}
	router := collectionRouter(collections, &fakeFavorites{}, asUser(userID))

	w := performRequest(router, http.MethodGet, "/api/v1/history", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(2), body["count"])
	assert.Equal(t, userID, collections.lastUser)
	assert.Equal(t, "history", collections.lastCollection)

	entries := body["entries"].([]any)
	first := entries[0].(map[string]any)
	assert.NotEmpty(t, first["displayDate"])
	recipe := first["recipe"].(map[string]any)
	assert.Equal(t, "Newest", recipe["title"])

	// Freeform recipes serialize as a bare string.
	second := entries[1].(map[string]any)
	assert.Equal(t, "older, freeform", second["recipe"])
}

func TestListFavoritesEmpty(t *testing.T) {
	router := collectionRouter(&fakeCollections{}, &fakeFavorites{}, asUser(uuid.New()))

	w := performRequest(router, http.MethodGet, "/api/v1/favorites", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(0), body["count"])
	assert.Equal(t, []any{}, body["entries"], "an empty collection is a list, not null")
}

func TestAddFavorite(t *testing.T) {
	favID := uuid.New()
	favorites := &fakeFavorites{id: favID}
	router := collectionRouter(&fakeCollections{}, favorites, asUser(uuid.New()))

	w := performRequest(router, http.MethodPost, "/api/v1/favorites", map[string]any{
		"recipe":  map[string]any{"title": "Laksa"},
		"filters": map[string]any{"ingredients": "noodles"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, favID.String(), decodeBody(t, w)["id"])
	assert.Equal(t, 1, favorites.added)
}

func TestRemoveFavorite(t *testing.T) {
	favorites := &fakeFavorites{}
	router := collectionRouter(&fakeCollections{}, favorites, asUser(uuid.New()))

	id := uuid.New()
	w := performRequest(router, http.MethodDelete, "/api/v1/favorites/"+id.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []uuid.UUID{id}, favorites.removed)

	w = performRequest(router, http.MethodDelete, "/api/v1/favorites/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
