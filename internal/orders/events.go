package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"smart-canteen/internal/connections/rabbitmq"
	"smart-canteen/internal/domain"
)

// EventPublisher fans out order lifecycle events for downstream consumers
// (currently the notifier process). Publishing is best-effort from the
// service's point of view; a broker outage must never fail the order.
type EventPublisher interface {
	OrderCreated(ctx context.Context, order *domain.Order) error
	OrderStatusChanged(ctx context.Context, order *domain.Order, old domain.OrderStatus) error
}

type orderEvent struct {
	Event       string             `json:"event"`
	OrderID     int64              `json:"order_id"`
	CustomerID  int64              `json:"customer_id"`
	OldStatus   domain.OrderStatus `json:"old_status,omitempty"`
	NewStatus   domain.OrderStatus `json:"new_status"`
	TotalAmount string             `json:"total_amount"`
	OccurredAt  time.Time          `json:"occurred_at"`
}

type Publisher struct {
	mq *rabbitmq.Client
}

func NewPublisher(mq *rabbitmq.Client) *Publisher {
	return &Publisher{mq: mq}
}

func (p *Publisher) OrderCreated(ctx context.Context, order *domain.Order) error {
	return p.publish(ctx, orderEvent{
		Event:       "order.created",
		OrderID:     order.ID,
		CustomerID:  order.CustomerID,
		NewStatus:   order.Status,
		TotalAmount: order.TotalAmount.StringFixed(2),
		OccurredAt:  time.Now().UTC(),
	})
}

func (p *Publisher) OrderStatusChanged(ctx context.Context, order *domain.Order, old domain.OrderStatus) error {
	return p.publish(ctx, orderEvent{
		Event:       "order.status_changed",
		OrderID:     order.ID,
		CustomerID:  order.CustomerID,
		OldStatus:   old,
		NewStatus:   order.Status,
		TotalAmount: order.TotalAmount.StringFixed(2),
		OccurredAt:  time.Now().UTC(),
	})
}

func (p *Publisher) publish(ctx context.Context, ev orderEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", ev.Event, err)
	}
	return p.mq.Publish(ctx, rabbitmq.OrderUpdatesExchange, "",
		uuid.NewString(), strconv.FormatInt(ev.OrderID, 10), body)
}
