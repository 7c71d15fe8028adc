package recipes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/recipebook-go/apperror"
)

// ---- fake store ----

type fakeStore struct {
	recipes []Recipe
	err     error
}

func (f *fakeStore) ListAll(_ context.Context) ([]Recipe, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.recipes, nil
}

func newTestRouter(store Store) http.Handler {
	r := chi.NewRouter()
	r.Route("/recipes", func(r chi.Router) {
		NewHandler(NewService(store)).RegisterRoutes(r)
	})
	return r
}

func sampleRecipes() []Recipe {
	// Already in newest-first order, as the store contract guarantees.
	return []Recipe{
		{ID: 2, Title: "Pasta Bake", Description: "Baked rigatoni", Category: "Main",
			CookingTime: "55 min", Servings: 6, Difficulty: "Medium", CreatedAt: time.Now()},
		{ID: 1, Title: "Tomato Soup", Description: "Roasted tomatoes", Category: "Soup",
			CookingTime: "35 min", Servings: 4, Difficulty: "Easy", CreatedAt: time.Now().Add(-time.Hour)},
	}
}

// ---- GET /recipes ----

func TestListRecipes_ReturnsCatalogInStoreOrder(t *testing.T) {
	router := newTestRouter(&fakeStore{recipes: sampleRecipes()})

	req := httptest.NewRequest(http.MethodGet, "/recipes", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []Recipe
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Pasta Bake", got[0].Title)
	assert.Equal(t, "Tomato Soup", got[1].Title)
}

func TestListRecipes_EmptyCatalogIsEmptyArray(t *testing.T) {
	router := newTestRouter(&fakeStore{recipes: []Recipe{}})

	req := httptest.NewRequest(http.MethodGet, "/recipes", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListRecipes_StoreFailureIsExplicitError(t *testing.T) {
	// A broken store must not masquerade as an empty catalog.
	router := newTestRouter(&fakeStore{err: errors.New("connection refused")})

	req := httptest.NewRequest(http.MethodGet, "/recipes", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"failed to load recipes"}`, rec.Body.String())
}

func TestServiceListAll_WrapsStoreError(t *testing.T) {
	svc := NewService(&fakeStore{err: errors.New("boom")})

	_, err := svc.ListAll(context.Background())
	require.Error(t, err)
	assert.True(t, apperror.IsDatabaseError(err))
}
