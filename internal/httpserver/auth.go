package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

const (
	accessCookieName  = "accessToken"
	refreshCookieName = "refreshToken"
)

type AuthHTTP struct {
	Svc          *service.AuthService
	SecureCookie bool
}

func (h *AuthHTTP) cookie(name, value string, exp time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHTTP) clearCookies(c echo.Context) {
	for _, name := range []string{accessCookieName, refreshCookieName} {
		ck := h.cookie(name, "", time.Unix(0, 0))
		ck.MaxAge = -1
		c.SetCookie(ck)
	}
}

func (h *AuthHTTP) writeTokens(c echo.Context, res *service.LoginResult) error {
	c.SetCookie(h.cookie(accessCookieName, res.AccessToken, res.AccessExp))
	c.SetCookie(h.cookie(refreshCookieName, res.RefreshToken, res.RefreshExp))
	return c.JSON(http.StatusOK, transport.TokenResponse{
		Access:           res.AccessToken,
		Refresh:          res.RefreshToken,
		AccessExpiresAt:  res.AccessExp,
		RefreshExpiresAt: res.RefreshExp,
		IsAdmin:          res.IsAdmin,
	})
}

// refreshToken reads the token from the body and falls back to the cookie.
func refreshToken(c echo.Context) (string, error) {
	var req transport.RefreshRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return "", err
		}
	}
	if req.Refresh != "" {
		return req.Refresh, nil
	}
	if ck, err := c.Cookie(refreshCookieName); err == nil {
		return ck.Value, nil
	}
	return "", nil
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, l, "register_error", "invalid body", err)
	}

	u, err := h.Svc.Register(ctx, req)
	if err != nil {
		return fail(c, l, "register_error", err)
	}

	l.Info("register_successful", "user_id", u.ID)
	return c.JSON(http.StatusCreated, transport.NewUserView(u))
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, l, "login_error", "invalid body", err)
	}

	res, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		return fail(c, l, "login_failed", err)
	}

	l.Info("login_successful")
	return h.writeTokens(c, res)
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.refresh")

	raw, err := refreshToken(c)
	if err != nil {
		return badRequest(c, l, "refresh_error", "invalid body", err)
	}

	res, err := h.Svc.Refresh(ctx, raw)
	if err != nil {
		return fail(c, l, "refresh_failed", err)
	}
	return h.writeTokens(c, res)
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	raw, err := refreshToken(c)
	if err != nil {
		return badRequest(c, l, "logout_error", "invalid body", err)
	}

	if err := h.Svc.Logout(ctx, raw); err != nil {
		return fail(c, l, "logout_failed", err)
	}

	h.clearCookies(c)
	l.Info("logout_successful")
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}
