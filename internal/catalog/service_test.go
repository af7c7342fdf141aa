package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"smart-canteen/internal/domain"
)

type fakeRepo struct {
	items  map[int64]*domain.MenuItem
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[int64]*domain.MenuItem{}, nextID: 1}
}

func (f *fakeRepo) CreateMenuItem(_ context.Context, item *domain.MenuItem) error {
	item.ID = f.nextID
	f.nextID++
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakeRepo) MenuItemByID(_ context.Context, id int64) (*domain.MenuItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, domain.NotFoundf("menu item %d not found", id)
	}
	cp := *item
	return &cp, nil
}

func (f *fakeRepo) ListMenuItems(_ context.Context) ([]domain.MenuItem, error) {
	out := []domain.MenuItem{}
	for _, item := range f.items {
		out = append(out, *item)
	}
	return out, nil
}

func (f *fakeRepo) UpdateMenuItem(_ context.Context, id int64, upd UpdateMenuItemRequest) (*domain.MenuItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, domain.NotFoundf("menu item %d not found", id)
	}
	if upd.Name != nil {
		item.Name = *upd.Name
	}
	if upd.Price != nil {
		item.Price = *upd.Price
	}
	if upd.Category != nil {
		item.Category = *upd.Category
	}
	if upd.InStock != nil {
		item.InStock = *upd.InStock
	}
	if upd.StockQuantity != nil {
		item.StockQuantity = *upd.StockQuantity
	}
	cp := *item
	return &cp, nil
}

func (f *fakeRepo) DeleteMenuItem(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return domain.NotFoundf("menu item %d not found", id)
	}
	delete(f.items, id)
	return nil
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCreateMenuItem(t *testing.T) {
	svc := NewService(newFakeRepo())

	item, err := svc.Create(context.Background(), CreateMenuItemRequest{
		Name:     "Burger",
		Price:    dec("12.99"),
		Category: domain.CategoryMeals,
	})

	require.NoError(t, err)
	require.NotZero(t, item.ID)
	require.True(t, item.InStock, "items default to in stock")
	require.Zero(t, item.StockQuantity)
}

func TestCreateMenuItemValidation(t *testing.T) {
	svc := NewService(newFakeRepo())

	cases := []struct {
		name  string
		req   CreateMenuItemRequest
		field string
	}{
		{"missing name", CreateMenuItemRequest{Price: dec("1.00"), Category: domain.CategoryDrinks}, "name"},
		{"missing price", CreateMenuItemRequest{Name: "Tea", Category: domain.CategoryDrinks}, "price"},
		{"negative price", CreateMenuItemRequest{Name: "Tea", Price: dec("-1.00"), Category: domain.CategoryDrinks}, "price"},
		{"bad category", CreateMenuItemRequest{Name: "Tea", Price: dec("1.00"), Category: "beverage"}, "category"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.req)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			require.Contains(t, ve.Fields, tc.field)
		})
	}
}

func TestUpdateMenuItemPartial(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	item, err := svc.Create(context.Background(), CreateMenuItemRequest{
		Name:     "Burger",
		Price:    dec("12.99"),
		Category: domain.CategoryMeals,
	})
	require.NoError(t, err)

	// Only the price travels; everything else keeps its stored value.
	updated, err := svc.Update(context.Background(), item.ID, UpdateMenuItemRequest{Price: dec("13.49")})
	require.NoError(t, err)
	require.Equal(t, "Burger", updated.Name)
	require.Equal(t, domain.CategoryMeals, updated.Category)
	require.True(t, decimal.RequireFromString("13.49").Equal(updated.Price))
}

func TestUpdateMenuItemValidation(t *testing.T) {
	svc := NewService(newFakeRepo())

	empty := ""
	_, err := svc.Update(context.Background(), 1, UpdateMenuItemRequest{Name: &empty})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Contains(t, ve.Fields, "name")

	_, err = svc.Update(context.Background(), 1, UpdateMenuItemRequest{Price: dec("-0.01")})
	require.ErrorAs(t, err, &ve)
	require.Contains(t, ve.Fields, "price")
}

func TestUpdateMenuItemNotFound(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Update(context.Background(), 42, UpdateMenuItemRequest{Price: dec("9.99")})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteMenuItem(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	item, err := svc.Create(context.Background(), CreateMenuItemRequest{
		Name:     "Cola",
		Price:    dec("2.99"),
		Category: domain.CategoryDrinks,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), item.ID))
	require.ErrorIs(t, svc.Delete(context.Background(), item.ID), domain.ErrNotFound)
}
