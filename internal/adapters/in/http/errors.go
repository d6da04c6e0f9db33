package http

import (
	"context"
	"errors"
	"net/http"

	"routehub/internal/core/application/usecases/commands"
	"routehub/internal/core/domain/model/route"
	"routehub/internal/core/domain/model/user"
	"routehub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusOf maps use case errors to HTTP status codes. Anything unknown is a
// server error.
func statusOf(err error) int {
	switch {
	case errors.Is(err, commands.ErrRouteNotFound),
		errors.Is(err, commands.ErrActorNotFound),
		errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, route.ErrInvalidTransition),
		errors.Is(err, route.ErrAlreadyClaimed),
		errors.Is(err, user.ErrAlreadyVerified):
		return http.StatusConflict
	case errors.Is(err, route.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, commands.ErrTooManyAttempts):
		return http.StatusTooManyRequests
	case errors.Is(err, user.ErrInvalidOrExpired),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c echo.Context, err error) error {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "Request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
		return c.JSON(status, Error{Code: status, Message: http.StatusText(status)})
	}
	return c.JSON(status, Error{Code: status, Message: err.Error()})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}
