package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/service"
)

// fail maps a service error onto a status code and logs it once.
func fail(c echo.Context, l *slog.Logger, event string, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		l.Warn(event, "status", http.StatusBadRequest, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": verr.Fields})
	case errors.Is(err, service.ErrValidation):
		l.Warn(event, "status", http.StatusBadRequest, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		l.Warn(event, "status", http.StatusNotFound, "error", err)
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		l.Warn(event, "status", http.StatusConflict, "error", err)
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		l.Warn(event, "status", http.StatusUnauthorized, "error", err)
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": service.ErrUnauthorized.Error()})
	case errors.Is(err, service.ErrInvalidRefreshToken):
		l.Warn(event, "status", http.StatusBadRequest, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": service.ErrInvalidRefreshToken.Error()})
	default:
		l.Error(event, "status", http.StatusInternalServerError, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}

func badRequest(c echo.Context, l *slog.Logger, event, reason string, err error) error {
	l.Warn(event, "status", http.StatusBadRequest, "reason", reason, "error", err)
	return c.JSON(http.StatusBadRequest, echo.Map{"error": reason})
}

func unauthorized(c echo.Context, l *slog.Logger, event string, err error) error {
	l.Warn(event, "status", http.StatusUnauthorized, "error", err)
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
}
