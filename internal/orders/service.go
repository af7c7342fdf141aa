package orders

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"smart-canteen/internal/domain"
)

type CreateOrderRequest struct {
	Items         []LineInput          `json:"items"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	SpecialNotes  *string              `json:"special_notes"`
	TableNumber   *int                 `json:"table_number"`
}

type UpdateStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

type ServiceInterface interface {
	Create(ctx context.Context, user domain.AuthUser, req CreateOrderRequest) (*domain.Order, error)
	Get(ctx context.Context, user domain.AuthUser, id int64) (*domain.Order, error)
	List(ctx context.Context, user domain.AuthUser) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, req UpdateStatusRequest) (*domain.Order, error)
}

type Service struct {
	repo   RepositoryInterface
	events EventPublisher
	log    zerolog.Logger
}

func NewService(repo RepositoryInterface, events EventPublisher, log zerolog.Logger) *Service {
	return &Service{repo: repo, events: events, log: log}
}

// Create validates the request, prices it against the current catalog and
// persists order plus lines atomically. The caller is always the customer;
// their identity comes from the session, never the payload.
func (s *Service) Create(ctx context.Context, user domain.AuthUser, req CreateOrderRequest) (*domain.Order, error) {
	ve := domain.NewValidationError()
	if len(req.Items) == 0 {
		ve.Add("items", "at least one item is required")
	}
	for i, item := range req.Items {
		if item.MenuItemID <= 0 {
			ve.Add(fmt.Sprintf("items.%d.menu_item_id", i), "a valid menu item id is required")
		}
		if item.Quantity < 1 {
			ve.Add(fmt.Sprintf("items.%d.quantity", i), "quantity must be at least 1")
		}
	}
	if !req.PaymentMethod.IsValid() {
		ve.Add("payment_method", "payment method must be one of cash, card, online")
	}
	if ve.HasErrors() {
		return nil, ve
	}

	draft := &domain.Order{
		CustomerID:    user.ID,
		CustomerName:  user.Name,
		Status:        domain.StatusPending,
		PaymentMethod: req.PaymentMethod,
		SpecialNotes:  req.SpecialNotes,
		TableNumber:   req.TableNumber,
		EstimatedTime: domain.DefaultEstimatedTime,
	}
	order, err := s.repo.CreateOrder(ctx, draft, req.Items)
	if err != nil {
		return nil, err
	}

	if err := s.events.OrderCreated(ctx, order); err != nil {
		s.log.Error().Err(err).Int64("order_id", order.ID).Msg("failed to publish order created event")
	}
	return order, nil
}

// Get returns a single order. Customers may only read their own; staff and
// admin see everything.
func (s *Service) Get(ctx context.Context, user domain.AuthUser, id int64) (*domain.Order, error) {
	order, err := s.repo.OrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role == domain.RoleCustomer && order.CustomerID != user.ID {
		return nil, fmt.Errorf("order %d belongs to another customer: %w", id, domain.ErrForbidden)
	}
	return order, nil
}

func (s *Service) List(ctx context.Context, user domain.AuthUser) ([]domain.Order, error) {
	if user.Role == domain.RoleCustomer {
		return s.repo.ListOrders(ctx, &user.ID)
	}
	return s.repo.ListOrders(ctx, nil)
}

// UpdateStatus applies any valid status, in any direction. Transitions are
// deliberately unrestricted so staff can correct mistakes (completed back to
// preparing, reviving a cancelled order); concurrent writers race and the
// last write stands.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req UpdateStatusRequest) (*domain.Order, error) {
	if !req.Status.IsValid() {
		ve := domain.NewValidationError()
		ve.Add("status", "status must be one of pending, preparing, completed, cancelled")
		return nil, ve
	}

	order, old, err := s.repo.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return nil, err
	}

	if err := s.events.OrderStatusChanged(ctx, order, old); err != nil {
		s.log.Error().Err(err).Int64("order_id", order.ID).Msg("failed to publish status change event")
	}
	return order, nil
}
