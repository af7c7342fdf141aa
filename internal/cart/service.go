package cart

import (
	"context"
	"fmt"

	"smart-canteen/internal/domain"
)

type ReplaceCartRequest struct {
	Items []domain.CartItem `json:"items"`
}

type AdjustItemRequest struct {
	MenuItemID int64 `json:"menu_item_id"`
	Delta      int   `json:"delta"`
}

// CatalogReader is the slice of the catalog the cart needs: existence checks
// on the items being added.
type CatalogReader interface {
	MenuItemByID(ctx context.Context, id int64) (*domain.MenuItem, error)
}

type ServiceInterface interface {
	Get(ctx context.Context, userID int64) (*domain.Cart, error)
	Replace(ctx context.Context, userID int64, req ReplaceCartRequest) (*domain.Cart, error)
	Adjust(ctx context.Context, userID int64, req AdjustItemRequest) (*domain.Cart, error)
	Clear(ctx context.Context, userID int64) error
}

type Service struct {
	store   StoreInterface
	catalog CatalogReader
}

func NewService(store StoreInterface, catalog CatalogReader) *Service {
	return &Service{store: store, catalog: catalog}
}

func (s *Service) Get(ctx context.Context, userID int64) (*domain.Cart, error) {
	return s.store.Load(ctx, userID)
}

func (s *Service) Replace(ctx context.Context, userID int64, req ReplaceCartRequest) (*domain.Cart, error) {
	ve := domain.NewValidationError()
	for i, item := range req.Items {
		if item.MenuItemID <= 0 {
			ve.Add(fmt.Sprintf("items.%d.menu_item_id", i), "a valid menu item id is required")
			continue
		}
		if item.Quantity < 1 {
			ve.Add(fmt.Sprintf("items.%d.quantity", i), "quantity must be at least 1")
		}
	}
	if ve.HasErrors() {
		return nil, ve
	}
	for i, item := range req.Items {
		if _, err := s.catalog.MenuItemByID(ctx, item.MenuItemID); err != nil {
			ve.Add(fmt.Sprintf("items.%d.menu_item_id", i), fmt.Sprintf("menu item %d does not exist", item.MenuItemID))
		}
	}
	if ve.HasErrors() {
		return nil, ve
	}

	if err := s.store.Replace(ctx, userID, req.Items); err != nil {
		return nil, err
	}
	return s.store.Load(ctx, userID)
}

// Adjust bumps one line by delta. A negative delta below the current quantity
// just removes the line; the cart never holds negative quantities.
func (s *Service) Adjust(ctx context.Context, userID int64, req AdjustItemRequest) (*domain.Cart, error) {
	ve := domain.NewValidationError()
	if req.MenuItemID <= 0 {
		ve.Add("menu_item_id", "a valid menu item id is required")
	}
	if req.Delta == 0 {
		ve.Add("delta", "delta must not be zero")
	}
	if ve.HasErrors() {
		return nil, ve
	}

	if req.Delta > 0 {
		if _, err := s.catalog.MenuItemByID(ctx, req.MenuItemID); err != nil {
			return nil, err
		}
	}

	if _, err := s.store.AdjustItem(ctx, userID, req.MenuItemID, req.Delta); err != nil {
		return nil, err
	}
	return s.store.Load(ctx, userID)
}

func (s *Service) Clear(ctx context.Context, userID int64) error {
	return s.store.Clear(ctx, userID)
}
