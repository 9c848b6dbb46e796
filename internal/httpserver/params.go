package httpserver

import (
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/util"
	middleware "github.com/Skotchmaster/storefront/pkg/middleware/auth"
	"github.com/Skotchmaster/storefront/pkg/tokens"
)

var errUnauthorized = errors.New("unauthorized")

func currentUser(c echo.Context) (uuid.UUID, error) {
	s, ok := c.Get(middleware.ContextUserID).(string)
	if !ok || s == "" {
		return uuid.Nil, errUnauthorized
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errUnauthorized
	}
	return id, nil
}

func isAdmin(c echo.Context) bool {
	role, _ := c.Get(middleware.ContextRole).(string)
	return role == tokens.RoleAdmin
}

func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}

func pageParams(c echo.Context) (page, offset, limit int) {
	page = util.ParseIntDefault(c.QueryParam("page"), 1)
	if page < 1 {
		page = 1
	}
	offset, limit = util.Calculate(page, util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize))
	return page, offset, limit
}

func queryBool(c echo.Context, name string) (*bool, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func queryUUID(c echo.Context, name string) (*uuid.UUID, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
