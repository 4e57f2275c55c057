package middleware

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/auth-service/internal/api/metrics"
	"github.com/99minutos/auth-service/internal/core/domain"
	"github.com/99minutos/auth-service/internal/core/service"
)

// Checker authenticates a request's Authorization header and authorizes the
// caller for an operation.
type Checker interface {
	Check(ctx context.Context, header string, op service.Operation) (domain.Identity, error)
}

// AuthenticatedHandler receives the verified caller as an explicit argument.
type AuthenticatedHandler func(c echo.Context, caller domain.Identity) error

// Protect wraps next so it only runs once checker accepted the request for op.
// Guard failures are returned unchanged for the API error handler to render.
func Protect(checker Checker, op service.Operation, next AuthenticatedHandler) echo.HandlerFunc {
	return func(c echo.Context) error {
		caller, err := checker.Check(c.Request().Context(), c.Request().Header.Get(echo.HeaderAuthorization), op)
		if err != nil {
			metrics.GuardDecisionsTotal.WithLabelValues(string(op), decision(err)).Inc()
			return err
		}

		metrics.GuardDecisionsTotal.WithLabelValues(string(op), "allowed").Inc()
		return next(c, caller)
	}
}

func decision(err error) string {
	switch {
	case !service.IsRejection(err):
		return "error"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	default:
		return "unauthorized"
	}
}
