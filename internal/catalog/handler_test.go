package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"smart-canteen/internal/domain"
)

func newTestHandler(t *testing.T) (*Handler, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	return NewHandler(NewService(repo)), repo
}

func TestCreateRejectsUnknownField(t *testing.T) {
	h, repo := newTestHandler(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/menu-items",
		strings.NewReader(`{"name":"Tea","pric":"1.00","category":"drinks"}`))
	h.Create(w, r)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Contains(t, w.Body.String(), `"pric"`)
	require.Empty(t, repo.items)
}

func TestUpdateRejectsUnknownField(t *testing.T) {
	h, repo := newTestHandler(t)
	require.NoError(t, repo.CreateMenuItem(context.Background(), &domain.MenuItem{Name: "Tea"}))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPut, "/api/menu-items/1",
		strings.NewReader(`{"stok_quantity":5}`))
	r = withURLParam(r, "id", "1")
	h.Update(w, r)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Contains(t, w.Body.String(), `"stok_quantity"`)
}

func TestUpdateAcceptsPartialBody(t *testing.T) {
	h, repo := newTestHandler(t)
	require.NoError(t, repo.CreateMenuItem(context.Background(), &domain.MenuItem{
		Name:     "Tea",
		Category: domain.CategoryDrinks,
		InStock:  true,
	}))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPut, "/api/menu-items/1",
		strings.NewReader(`{"in_stock":false}`))
	r = withURLParam(r, "id", "1")
	h.Update(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	item, err := repo.MenuItemByID(context.Background(), 1)
	require.NoError(t, err)
	require.False(t, item.InStock)
	require.Equal(t, "Tea", item.Name)
}

func TestShowUnknownItem(t *testing.T) {
	h, _ := newTestHandler(t)

	w := httptest.NewRecorder()
	r := withURLParam(httptest.NewRequest(http.MethodGet, "/api/menu-items/9", nil), "id", "9")
	h.Show(w, r)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
