package orders

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/codclick-aut6/clickprato6-sub000/pkg/config"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/db/models"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/pubsub"
)

// PubSubNotifier publishes order lifecycle events to the configured topics.
type PubSubNotifier struct {
	client *pubsub.Client
	cfg    config.PubSubConfig
}

// NewPubSubNotifier builds the notifier.
func NewPubSubNotifier(client *pubsub.Client, cfg config.PubSubConfig) (*PubSubNotifier, error) {
	if client == nil {
		return nil, fmt.Errorf("pubsub client required")
	}
	return &PubSubNotifier{client: client, cfg: cfg}, nil
}

type orderCreatedEvent struct {
	OrderID     string `json:"order_id"`
	OrderNumber int64  `json:"order_number"`
	Status      string `json:"status"`
	Customer    string `json:"customer"`
	Total       string `json:"total"`
	CreatedAt   string `json:"created_at"`
}

type loyaltyEvent struct {
	OrderID string            `json:"order_id"`
	Total   string            `json:"total"`
	Items   []loyaltyLineItem `json:"items"`
}

type loyaltyLineItem struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
	Subtotal string `json:"subtotal"`
}

// OrderCreated publishes the new-order event.
func (n *PubSubNotifier) OrderCreated(ctx context.Context, order *models.Order) error {
	payload, err := json.Marshal(orderCreatedEvent{
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		Status:      string(order.Status),
		Customer:    order.CustomerName,
		Total:       order.TotalAmount.StringFixed(2),
		CreatedAt:   order.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	})
	if err != nil {
		return fmt.Errorf("encode order event: %w", err)
	}
	return n.client.Publish(ctx, n.cfg.OrdersTopic, payload, map[string]string{
		"event": "order.created",
	})
}

// LoyaltyAccrual publishes the order's lines for external loyalty
// evaluation.
func (n *PubSubNotifier) LoyaltyAccrual(ctx context.Context, order *models.Order) error {
	event := loyaltyEvent{
		OrderID: order.ID.String(),
		Total:   order.TotalAmount.StringFixed(2),
	}
	for _, item := range order.Items {
		event.Items = append(event.Items, loyaltyLineItem{
			ItemID:   item.ItemID.String(),
			Quantity: item.Quantity,
			Subtotal: item.SubtotalAmount.StringFixed(2),
		})
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode loyalty event: %w", err)
	}
	return n.client.Publish(ctx, n.cfg.LoyaltyTopic, payload, map[string]string{
		"event": "order.loyalty",
	})
}
