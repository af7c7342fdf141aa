package notifier

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"smart-canteen/internal/connections/rabbitmq"
	"smart-canteen/internal/domain"
)

type orderEvent struct {
	Event       string             `json:"event"`
	OrderID     int64              `json:"order_id"`
	CustomerID  int64              `json:"customer_id"`
	OldStatus   domain.OrderStatus `json:"old_status"`
	NewStatus   domain.OrderStatus `json:"new_status"`
	TotalAmount string             `json:"total_amount"`
}

// Notifier drains the order updates queue and surfaces each event. Today the
// notification channel is the structured log; the consume loop is where a
// push channel (email, websocket hub) would plug in.
type Notifier struct {
	mq  *rabbitmq.Client
	log zerolog.Logger
}

func New(mq *rabbitmq.Client, log zerolog.Logger) *Notifier {
	return &Notifier{mq: mq, log: log}
}

// Run consumes until ctx is cancelled. Malformed payloads are rejected
// without requeue so one bad message cannot wedge the queue.
func (n *Notifier) Run(ctx context.Context) error {
	deliveries, err := n.mq.Consume(rabbitmq.OrderUpdatesQueue, "notifier", 10)
	if err != nil {
		return err
	}
	n.log.Info().Str("queue", rabbitmq.OrderUpdatesQueue).Msg("notifier consuming")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			var ev orderEvent
			if err := json.Unmarshal(d.Body, &ev); err != nil {
				n.log.Error().Err(err).Str("message_id", d.MessageId).Msg("dropping malformed event")
				_ = d.Nack(false, false)
				continue
			}

			entry := n.log.Info().
				Str("event", ev.Event).
				Int64("order_id", ev.OrderID).
				Int64("customer_id", ev.CustomerID).
				Str("new_status", string(ev.NewStatus)).
				Str("total_amount", ev.TotalAmount)
			if ev.OldStatus != "" {
				entry = entry.Str("old_status", string(ev.OldStatus))
			}
			entry.Msg("order update")

			_ = d.Ack(false)
		}
	}
}
