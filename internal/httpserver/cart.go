package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	userID, err := currentUser(c)
	if err != nil {
		return unauthorized(c, l, "get_cart_error", err)
	}
	cart, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		return fail(c, l, "get_cart_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewCartView(cart))
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_item")

	userID, err := currentUser(c)
	if err != nil {
		return unauthorized(c, l, "add_to_cart_error", err)
	}
	var req transport.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, l, "add_to_cart_error", "invalid body", err)
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	item, err := h.Svc.AddItem(ctx, userID, req.ProductID, qty)
	if err != nil {
		return fail(c, l, "add_to_cart_error", err)
	}

	l.Info("item_added_to_cart", "product_id", req.ProductID, "quantity", item.Quantity)
	return c.JSON(http.StatusCreated, transport.NewCartItemView(item))
}

func (h *CartHTTP) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update_item")

	userID, err := currentUser(c)
	if err != nil {
		return unauthorized(c, l, "update_cart_item_error", err)
	}
	itemID, err := pathUUID(c, "itemID")
	if err != nil {
		return badRequest(c, l, "update_cart_item_error", "invalid item id", err)
	}
	var req transport.UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, l, "update_cart_item_error", "invalid body", err)
	}

	item, err := h.Svc.UpdateItem(ctx, userID, itemID, req.Quantity)
	if err != nil {
		return fail(c, l, "update_cart_item_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewCartItemView(item))
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_item")

	userID, err := currentUser(c)
	if err != nil {
		return unauthorized(c, l, "remove_cart_item_error", err)
	}
	itemID, err := pathUUID(c, "itemID")
	if err != nil {
		return badRequest(c, l, "remove_cart_item_error", "invalid item id", err)
	}
	if err := h.Svc.RemoveItem(ctx, userID, itemID); err != nil {
		return fail(c, l, "remove_cart_item_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) Clear(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	userID, err := currentUser(c)
	if err != nil {
		return unauthorized(c, l, "clear_cart_error", err)
	}
	if err := h.Svc.Clear(ctx, userID); err != nil {
		return fail(c, l, "clear_cart_error", err)
	}

	l.Info("cart_cleared")
	return c.NoContent(http.StatusNoContent)
}
