package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "task-assignment.com/task-assignment/internal/errors"
	"task-assignment.com/task-assignment/internal/logging"
)

type errorBody struct {
	Kind    apperrors.Kind `json:"kind"`
	Message string         `json:"message"`
	Field   string         `json:"field,omitempty"`
}

// ErrorHandler renders every error as {"error": {kind, message, field}}.
// Errors outside the taxonomy are logged and reported as a generic 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := errorResponse(err)
	if status == http.StatusInternalServerError {
		logging.Logger.WithError(err).
			WithField("path", c.Path()).
			Error("request failed")
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, echo.Map{"error": body})
	}
	if writeErr != nil {
		logging.Logger.WithError(writeErr).Warn("failed to write error response")
	}
}

func errorResponse(err error) (int, errorBody) {
	var appErr *apperrors.Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode, errorBody{
			Kind:    appErr.Kind,
			Message: appErr.Message,
			Field:   appErr.Field,
		}
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, errorBody{
			Kind:    kindForStatus(httpErr.Code),
			Message: http.StatusText(httpErr.Code),
		}
	}

	return http.StatusInternalServerError, errorBody{
		Kind:    apperrors.KindInternal,
		Message: "internal server error",
	}
}

func kindForStatus(status int) apperrors.Kind {
	switch status {
	case http.StatusNotFound:
		return apperrors.KindNotFound
	case http.StatusBadRequest:
		return apperrors.KindValidation
	case http.StatusUnauthorized:
		return apperrors.KindUnauthorized
	case http.StatusForbidden:
		return apperrors.KindForbidden
	case http.StatusTooManyRequests:
		return apperrors.KindRateLimited
	default:
		return apperrors.KindInternal
	}
}
