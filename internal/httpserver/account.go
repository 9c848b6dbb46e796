package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/util"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type AccountHTTP struct {
	Svc *service.AccountService
}

func optionalID(c echo.Context, name string) (*uuid.UUID, error) {
	if c.Param(name) == "" {
		return nil, nil
	}
	id, err := pathUUID(c, name)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (h *AccountHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.me")

	userID, err := currentUser(c)
	if err != nil {
		return unauthorized(c, l, "me_error", err)
	}
	me, err := h.Svc.Me(ctx, userID)
	if err != nil {
		return fail(c, l, "me_error", err)
	}
	return c.JSON(http.StatusOK, transport.MeView{
		UserView:       transport.NewUserView(me.User),
		Addresses:      me.Addresses,
		Cards:          me.Cards,
		RecentlyViewed: transport.NewRecentlyViewedViews(me.RecentlyViewed),
	})
}

func (h *AccountHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.update_profile")

	userID, err := currentUser(c)
	if err != nil {
		return unauthorized(c, l, "update_profile_error", err)
	}
	var req transport.ProfileRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, l, "update_profile_error", "invalid body", err)
	}
	u, err := h.Svc.UpdateProfile(ctx, userID, req)
	if err != nil {
		return fail(c, l, "update_profile_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewUserView(u))
}

func (h *AccountHTTP) ListAddresses(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.list_addresses")

	userID, err := currentUser(c)
	if err != nil {
		return unauthorized(c, l, "list_addresses_error", err)
	}
	items, err := h.Svc.ListAddresses(ctx, userID)
	if err != nil {
		return fail(c, l, "list_addresses_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *AccountHTTP) GetAddress(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.get_address")

	userID, err := currentUser(c)
	if err != nil {
		return unauthorized(c, l, "get_address_error", err)
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return badRequest(c, l, "get_address_error", "invalid address id", err)
	}
	a, err := h.Svc.GetAddress(ctx, userID, id)
	if err != nil {
		return fail(c, l, "get_address_error", err)
	}
	return c.JSON(http.StatusOK, a)
}

// SaveAddress serves POST /me/addresses and PATCH /me/addresses/:id.
func (h *AccountHTTP) SaveAddress(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.save_address")

	userID, err := currentUser(c)
	if err != nil {
		return unauthorized(c, l, "save_address_error", err)
	}
	id, err := optionalID(c, "id")
	if err != nil {
		return badRequest(c, l, "save_address_error", "invalid address id", err)
	}
	var req transport.AddressRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, l, "save_address_error", "invalid body", err)
	}
	a, err := h.Svc.SaveAddress(ctx, userID, id, req)
	if err != nil {
		return fail(c, l, "save_address_error", err)
	}
	return created(c, id == nil, a)
}

func (h *AccountHTTP) DeleteAddress(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.delete_address")

	userID, err := currentUser(c)
	if err != nil {
		return unauthorized(c, l, "delete_address_error", err)
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return badRequest(c, l, "delete_address_error", "invalid address id", err)
	}
	if err := h.Svc.DeleteAddress(ctx, userID, id); err != nil {
		return fail(c, l, "delete_address_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AccountHTTP) ListCards(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.list_cards")

	userID, err := currentUser(c)
	if err != nil {
		return unauthorized(c, l, "list_cards_error", err)
	}
	items, err := h.Svc.ListCards(ctx, userID)
	if err != nil {
		return fail(c, l, "list_cards_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *AccountHTTP) SaveCard(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.save_card")

	userID, err := currentUser(c)
	if err != nil {
		return unauthorized(c, l, "save_card_error", err)
	}
	id, err := optionalID(c, "id")
	if err != nil {
		return badRequest(c, l, "save_card_error", "invalid card id", err)
	}
	var req transport.CardRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, l, "save_card_error", "invalid body", err)
	}
	card, err := h.Svc.SaveCard(ctx, userID, id, req)
	if err != nil {
		return fail(c, l, "save_card_error", err)
	}
	return created(c, id == nil, card)
}

func (h *AccountHTTP) DeleteCard(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.delete_card")

	userID, err := currentUser(c)
	if err != nil {
		return unauthorized(c, l, "delete_card_error", err)
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return badRequest(c, l, "delete_card_error", "invalid card id", err)
	}
	if err := h.Svc.DeleteCard(ctx, userID, id); err != nil {
		return fail(c, l, "delete_card_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AccountHTTP) RecordView(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.record_view")

	userID, err := currentUser(c)
	if err != nil {
		return unauthorized(c, l, "record_view_error", err)
	}
	var req transport.RecordViewRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, l, "record_view_error", "invalid body", err)
	}
	if err := h.Svc.RecordView(ctx, userID, req.ProductID); err != nil {
		return fail(c, l, "record_view_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AccountHTTP) RecentlyViewed(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.recently_viewed")

	userID, err := currentUser(c)
	if err != nil {
		return unauthorized(c, l, "recently_viewed_error", err)
	}
	limit := util.ParseIntDefault(c.QueryParam("limit"), service.MeRecentlyViewed)
	if limit > util.MaxPageSize {
		limit = util.MaxPageSize
	}
	items, err := h.Svc.RecentlyViewed(ctx, userID, limit)
	if err != nil {
		return fail(c, l, "recently_viewed_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewRecentlyViewedViews(items))
}
