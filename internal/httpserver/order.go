package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/util"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

const HeaderIdempotencyKey = "Idempotency-Key"

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.checkout")

	userID, err := currentUser(c)
	if err != nil {
		return unauthorized(c, l, "checkout_error", err)
	}
	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, l, "checkout_error", "invalid body", err)
	}

	order, err := h.Svc.Checkout(ctx, userID, req, c.Request().Header.Get(HeaderIdempotencyKey))
	if err != nil {
		return fail(c, l, "checkout_error", err)
	}
	return c.JSON(http.StatusCreated, transport.NewOrderView(order))
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	userID, err := currentUser(c)
	if err != nil {
		return unauthorized(c, l, "list_orders_error", err)
	}

	page, offset, limit := pageParams(c)
	total, orders, err := h.Svc.ListOrders(ctx, userID, offset, limit)
	if err != nil {
		return fail(c, l, "list_orders_error", err)
	}
	views := make([]transport.OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, transport.NewOrderView(&orders[i]))
	}
	return c.JSON(http.StatusOK, transport.ListResponse[transport.OrderView]{
		Data: views,
		Meta: util.NewMeta(page, offset, limit, total),
	})
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get")

	userID, err := currentUser(c)
	if err != nil {
		return unauthorized(c, l, "get_order_error", err)
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return badRequest(c, l, "get_order_error", "invalid order id", err)
	}
	order, err := h.Svc.GetOrder(ctx, userID, orderID)
	if err != nil {
		return fail(c, l, "get_order_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewOrderView(order))
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	orderID, err := pathUUID(c, "id")
	if err != nil {
		return badRequest(c, l, "update_order_status_error", "invalid order id", err)
	}
	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, l, "update_order_status_error", "invalid body", err)
	}
	order, err := h.Svc.UpdateStatus(ctx, orderID, req.Status)
	if err != nil {
		return fail(c, l, "update_order_status_error", err)
	}

	l.Info("order_status_updated", "order_id", order.ID, "order_status", order.Status)
	return c.JSON(http.StatusOK, transport.NewOrderView(order))
}
