package devserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alexanderramin/planner/internal/domain"
)

// ErrorBody is the JSON returned for every failed request.
type ErrorBody struct {
	Error APIError `json:"error"`
}

type APIError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status, apiErr := mapError(err)
		if status >= http.StatusInternalServerError {
			logger.Error("unhandled error", "error", err, "path", c.Request().URL.Path)
		}
		if jsonErr := c.JSON(status, ErrorBody{Error: apiErr}); jsonErr != nil {
			logger.Error("failed to send error response", "error", jsonErr)
		}
	}
}

func mapError(err error) (int, APIError) {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		msg, _ := echoErr.Message.(string)
		if msg == "" {
			msg = http.StatusText(echoErr.Code)
		}
		return echoErr.Code, APIError{Code: http.StatusText(echoErr.Code), Message: msg}
	}

	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, APIError{
			Code:    "validation_error",
			Message: "Validation failed",
			Details: []FieldError{{Field: validationErr.Field, Message: validationErr.Message}},
		}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, APIError{Code: "not_found", Message: "The requested resource was not found"}
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, APIError{Code: "invalid_input", Message: "The request body is invalid"}
	default:
		return http.StatusInternalServerError, APIError{Code: "internal_error", Message: "An unexpected error occurred"}
	}
}
