package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/idempotency"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type OrderService struct {
	Repo        *repo.GormRepo
	Events      events.Publisher
	Idempotency idempotency.Store
	Producer    string
}

// FormatAddress renders a saved address as a single shipping line.
func FormatAddress(a *models.Address) string {
	parts := []string{a.Line1, a.Line2, a.City, a.State, a.PostalCode, a.Country}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}

func (s *OrderService) shippingAddress(ctx context.Context, userID uuid.UUID, req transport.CheckoutRequest) (string, error) {
	if req.AddressID != nil {
		a, err := s.Repo.GetAddress(ctx, userID, *req.AddressID)
		if err != nil {
			if errors.Is(translate(err, "address"), ErrNotFound) {
				return "", fieldError("address_id", "unknown address")
			}
			return "", err
		}
		return FormatAddress(a), nil
	}
	addr := strings.TrimSpace(req.ShippingAddress)
	if addr == "" {
		return "", fieldError("shipping_address", "is required")
	}
	return addr, nil
}

// Checkout turns the user's cart into an order. A repeated idempotency key
// returns the order created by the first request.
func (s *OrderService) Checkout(ctx context.Context, userID uuid.UUID, req transport.CheckoutRequest, idemKey string) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.checkout", "user_id", userID)

	addr, err := s.shippingAddress(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	var key string
	if idemKey != "" && s.Idempotency != nil {
		key = idempotency.CheckoutKey(userID.String(), idemKey)
		prev, reserved, err := s.Idempotency.Reserve(ctx, key)
		if err != nil {
			if errors.Is(err, idempotency.ErrInProgress) {
				return nil, fmt.Errorf("checkout: %w", ErrConflict)
			}
			return nil, err
		}
		if !reserved {
			orderID, err := uuid.Parse(prev)
			if err != nil {
				return nil, fmt.Errorf("stored checkout result %q: %w", prev, err)
			}
			l.Info("checkout_replayed", "order_id", orderID)
			return s.GetOrder(ctx, userID, orderID)
		}
	}

	order, err := s.Repo.Checkout(ctx, userID, addr)
	if err != nil {
		if key != "" {
			if rerr := s.Idempotency.Release(ctx, key); rerr != nil {
				l.Error("idempotency_release_error", "error", rerr)
			}
		}
		return nil, err
	}

	if key != "" {
		if err := s.Idempotency.Complete(ctx, key, order.ID.String()); err != nil {
			l.Error("idempotency_complete_error", "order_id", order.ID, "error", err)
		}
	}

	publish(ctx, s.Events, events.TopicOrders, order.ID.String(),
		events.NewEnvelope(s.Producer, events.OrderCreated, orderPayload(order)))
	l.Info("order_created", "order_id", order.ID, "total", order.TotalAmount.StringFixed(2), "items", len(order.Items))
	return order, nil
}

func orderPayload(o *models.Order) events.OrderPayload {
	items := make([]events.OrderItemPayload, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, events.OrderItemPayload{ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price})
	}
	return events.OrderPayload{
		OrderID:     o.ID,
		UserID:      o.UserID,
		Status:      o.Status,
		TotalAmount: o.TotalAmount,
		Items:       items,
	}
}

func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID, offset, limit int) (int64, []models.Order, error) {
	return s.Repo.ListOrders(ctx, userID, offset, limit)
}

func (s *OrderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	o, err := s.Repo.GetOrder(ctx, userID, orderID)
	if err != nil {
		return nil, translate(err, "order")
	}
	return o, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*models.Order, error) {
	st := domain.OrderStatus(strings.ToLower(strings.TrimSpace(status)))
	if !st.Valid() {
		return nil, fieldError("status", "must be one of pending, processing, shipped, delivered, cancelled")
	}
	o, err := s.Repo.UpdateOrderStatus(ctx, orderID, st)
	if err != nil {
		return nil, translate(err, "order")
	}
	publish(ctx, s.Events, events.TopicOrders, o.ID.String(),
		events.NewEnvelope(s.Producer, events.OrderStatusChanged, events.OrderPayload{
			OrderID:     o.ID,
			UserID:      o.UserID,
			Status:      o.Status,
			TotalAmount: o.TotalAmount,
		}))
	return o, nil
}
