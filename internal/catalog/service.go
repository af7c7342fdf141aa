package catalog

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"smart-canteen/internal/domain"
)

type CreateMenuItemRequest struct {
	Name          string           `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	Category      domain.Category  `json:"category"`
	Image         *string          `json:"image"`
	InStock       *bool            `json:"in_stock"`
	StockQuantity *int             `json:"stock_quantity"`
}

// UpdateMenuItemRequest distinguishes "field absent" (nil, keep stored value)
// from "field present". Every field is optional; an empty update is a no-op
// that still bumps updated_at.
type UpdateMenuItemRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	Category      *domain.Category `json:"category"`
	Image         *string          `json:"image"`
	InStock       *bool            `json:"in_stock"`
	StockQuantity *int             `json:"stock_quantity"`
}

type ServiceInterface interface {
	Create(ctx context.Context, req CreateMenuItemRequest) (*domain.MenuItem, error)
	Get(ctx context.Context, id int64) (*domain.MenuItem, error)
	List(ctx context.Context) ([]domain.MenuItem, error)
	Update(ctx context.Context, id int64, req UpdateMenuItemRequest) (*domain.MenuItem, error)
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo RepositoryInterface
}

func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req CreateMenuItemRequest) (*domain.MenuItem, error) {
	ve := domain.NewValidationError()
	if strings.TrimSpace(req.Name) == "" {
		ve.Add("name", "name is required")
	}
	if req.Price == nil {
		ve.Add("price", "price is required")
	} else if req.Price.IsNegative() {
		ve.Add("price", "price must not be negative")
	}
	if !req.Category.IsValid() {
		ve.Add("category", "category must be one of snacks, meals, drinks")
	}
	if req.StockQuantity != nil && *req.StockQuantity < 0 {
		ve.Add("stock_quantity", "stock quantity must not be negative")
	}
	if ve.HasErrors() {
		return nil, ve
	}

	item := &domain.MenuItem{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
		Image:       req.Image,
		InStock:     true,
	}
	if req.InStock != nil {
		item.InStock = *req.InStock
	}
	if req.StockQuantity != nil {
		item.StockQuantity = *req.StockQuantity
	}
	if err := s.repo.CreateMenuItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.MenuItem, error) {
	return s.repo.MenuItemByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.MenuItem, error) {
	return s.repo.ListMenuItems(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateMenuItemRequest) (*domain.MenuItem, error) {
	ve := domain.NewValidationError()
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		ve.Add("name", "name must not be empty")
	}
	if req.Price != nil && req.Price.IsNegative() {
		ve.Add("price", "price must not be negative")
	}
	if req.Category != nil && !req.Category.IsValid() {
		ve.Add("category", "category must be one of snacks, meals, drinks")
	}
	if req.StockQuantity != nil && *req.StockQuantity < 0 {
		ve.Add("stock_quantity", "stock quantity must not be negative")
	}
	if ve.HasErrors() {
		return nil, ve
	}
	return s.repo.UpdateMenuItem(ctx, id, req)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteMenuItem(ctx, id)
}
