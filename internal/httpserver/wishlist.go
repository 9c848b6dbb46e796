package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type WishlistHTTP struct {
	Svc *service.WishlistService
}

func (h *WishlistHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.get")

	userID, err := currentUser(c)
	if err != nil {
		return unauthorized(c, l, "get_wishlist_error", err)
	}
	wl, err := h.Svc.Get(ctx, userID)
	if err != nil {
		return fail(c, l, "get_wishlist_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewWishlistView(wl))
}

func (h *WishlistHTTP) Add(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.add")

	userID, err := currentUser(c)
	if err != nil {
		return unauthorized(c, l, "add_to_wishlist_error", err)
	}
	var req transport.WishlistProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, l, "add_to_wishlist_error", "invalid body", err)
	}
	wl, err := h.Svc.Add(ctx, userID, req.ProductID)
	if err != nil {
		return fail(c, l, "add_to_wishlist_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewWishlistView(wl))
}

func (h *WishlistHTTP) Remove(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.remove")

	userID, err := currentUser(c)
	if err != nil {
		return unauthorized(c, l, "remove_from_wishlist_error", err)
	}
	productID, err := pathUUID(c, "productID")
	if err != nil {
		return badRequest(c, l, "remove_from_wishlist_error", "invalid product id", err)
	}
	wl, err := h.Svc.Remove(ctx, userID, productID)
	if err != nil {
		return fail(c, l, "remove_from_wishlist_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewWishlistView(wl))
}

func (h *WishlistHTTP) Replace(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.replace")

	userID, err := currentUser(c)
	if err != nil {
		return unauthorized(c, l, "replace_wishlist_error", err)
	}
	var req transport.ReplaceWishlistRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, l, "replace_wishlist_error", "invalid body", err)
	}
	wl, err := h.Svc.Replace(ctx, userID, req.ProductIDs)
	if err != nil {
		return fail(c, l, "replace_wishlist_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewWishlistView(wl))
}
