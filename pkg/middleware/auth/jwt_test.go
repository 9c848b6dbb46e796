package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Skotchmaster/storefront/pkg/tokens"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-jwt-secret")

func sign(t *testing.T, role string, exp time.Time) string {
	t.Helper()
	s, err := tokens.Sign(tokens.AccessClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "b3f1c1f4-8d0e-4bb4-9d0c-0a4c0e0d5a11",
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}, secret)
	require.NoError(t, err)
	return s
}

func run(t *testing.T, h echo.MiddlewareFunc, setup func(*http.Request)) (*httptest.ResponseRecorder, echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	setup(req)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := h(func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })(c)
	return rec, c, err
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %T", err)
	return he.Code
}

func TestRequireAuth(t *testing.T) {
	m := NewJWTAuth(secret)

	tests := []struct {
		name   string
		setup  func(*http.Request)
		status int
	}{
		{
			name:   "missing token",
			setup:  func(*http.Request) {},
			status: http.StatusUnauthorized,
		},
		{
			name: "expired token",
			setup: func(r *http.Request) {
				r.Header.Set(echo.HeaderAuthorization, "Bearer "+sign(t, tokens.RoleUser, time.Now().Add(-time.Minute)))
			},
			status: http.StatusUnauthorized,
		},
		{
			name: "bearer header",
			setup: func(r *http.Request) {
				r.Header.Set(echo.HeaderAuthorization, "Bearer "+sign(t, tokens.RoleUser, time.Now().Add(time.Minute)))
			},
			status: http.StatusNoContent,
		},
		{
			name: "cookie fallback",
			setup: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: "accessToken", Value: sign(t, tokens.RoleUser, time.Now().Add(time.Minute))})
			},
			status: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, c, err := run(t, m.RequireAuth, tt.setup)
			if tt.status == http.StatusNoContent {
				require.NoError(t, err)
				assert.Equal(t, tt.status, rec.Code)
				assert.Equal(t, "b3f1c1f4-8d0e-4bb4-9d0c-0a4c0e0d5a11", c.Get(ContextUserID))
				return
			}
			assert.Equal(t, tt.status, statusOf(t, err))
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	m := NewJWTAuth(secret)

	_, _, err := run(t, m.RequireAdmin, func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer "+sign(t, tokens.RoleUser, time.Now().Add(time.Minute)))
	})
	assert.Equal(t, http.StatusForbidden, statusOf(t, err))

	rec, c, err := run(t, m.RequireAdmin, func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer "+sign(t, tokens.RoleAdmin, time.Now().Add(time.Minute)))
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, tokens.RoleAdmin, c.Get(ContextRole))
}

func TestOptionalAuth(t *testing.T) {
	m := NewJWTAuth(secret)

	rec, c, err := run(t, m.OptionalAuth, func(*http.Request) {})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Nil(t, c.Get(ContextUserID))

	_, c, err = run(t, m.OptionalAuth, func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer garbage")
	})
	require.NoError(t, err)
	assert.Nil(t, c.Get(ContextRole))

	_, c, err = run(t, m.OptionalAuth, func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer "+sign(t, tokens.RoleAdmin, time.Now().Add(time.Minute)))
	})
	require.NoError(t, err)
	assert.Equal(t, tokens.RoleAdmin, c.Get(ContextRole))
}
