package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TopicProducts = "product_events"
	TopicOrders   = "order_events"
)

const (
	ProductCreated     = "product_created"
	ProductUpdated     = "product_updated"
	ProductDeleted     = "product_deleted"
	OrderCreated       = "order_created"
	OrderStatusChanged = "order_status_changed"
)

type Envelope struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	Version    int       `json:"version"`
	OccurredAt time.Time `json:"occurred_at"`
	Producer   string    `json:"producer"`
	Payload    any       `json:"payload"`
}

func NewEnvelope(producer, eventType string, payload any) Envelope {
	return Envelope{
		EventID:    uuid.NewString(),
		Type:       eventType,
		Version:    1,
		OccurredAt: time.Now().UTC(),
		Producer:   producer,
		Payload:    payload,
	}
}

type ProductPayload struct {
	ProductID uuid.UUID        `json:"product_id"`
	Title     string           `json:"title,omitempty"`
	SKU       string           `json:"sku,omitempty"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	Stock     *int             `json:"stock,omitempty"`
}

type OrderItemPayload struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type OrderPayload struct {
	OrderID     uuid.UUID          `json:"order_id"`
	UserID      uuid.UUID          `json:"user_id"`
	Status      string             `json:"status"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	Items       []OrderItemPayload `json:"items,omitempty"`
}
