package middleware

import (
	"net/http"
	"strings"

	"github.com/Skotchmaster/storefront/pkg/tokens"
	"github.com/labstack/echo/v4"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"

	accessCookie = "accessToken"
)

type JWTAuth struct {
	JWTSecret []byte
}

func NewJWTAuth(secret []byte) *JWTAuth {
	return &JWTAuth{JWTSecret: secret}
}

type ValidatorFunc func(claims *tokens.AccessClaims) error

func (m *JWTAuth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, nil)
}

func (m *JWTAuth) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, func(claims *tokens.AccessClaims) error {
		if claims.Role != tokens.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return nil
	})
}

// OptionalAuth sets the caller identity when a valid token is present and
// lets anonymous requests through otherwise.
func (m *JWTAuth) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if raw := accessToken(c); raw != "" {
			if claims, err := tokens.AccessClaimsFromToken(raw, m.JWTSecret); err == nil && claims != nil {
				c.Set(ContextUserID, claims.Subject)
				c.Set(ContextRole, claims.Role)
			}
		}
		return next(c)
	}
}

func (m *JWTAuth) requireAuthWithValidator(next echo.HandlerFunc, validator ValidatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := accessToken(c)
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		claims, err := tokens.AccessClaimsFromToken(raw, m.JWTSecret)
		if err != nil || claims == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		if validator != nil {
			if err := validator(claims); err != nil {
				return err
			}
		}

		c.Set(ContextUserID, claims.Subject)
		c.Set(ContextRole, claims.Role)
		return next(c)
	}
}

func accessToken(c echo.Context) string {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if scheme, token, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}

	if ck, err := c.Cookie(accessCookie); err == nil {
		return ck.Value
	}
	return ""
}
