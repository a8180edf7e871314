package backend

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/kabbandre/pit-assignment/internal/backend/database"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}

// HTTPErrorHandler translates handler errors into a status code and a JSON body.
func HTTPErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	status, message := errorStatus(err)
	attrs := []any{"status", status, "method", ctx.Request().Method, "uri", ctx.Request().RequestURI, "error", err}
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", attrs...)
	} else {
		slog.Warn("request rejected", attrs...)
	}

	var writeErr error
	if ctx.Request().Method == http.MethodHead {
		writeErr = ctx.NoContent(status)
	} else {
		writeErr = ctx.JSON(status, ErrorResponse{Message: message})
	}
	if writeErr != nil {
		slog.Error("failed to write error response", "error", writeErr)
	}
}

func errorStatus(err error) (int, string) {
	var httpErr *echo.HTTPError
	switch {
	case errors.Is(err, database.ErrMalformedIdentifier), errors.Is(err, database.ErrInvalidField):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, database.ErrStorageFailure):
		// engine details stay in the log
		return http.StatusInternalServerError, database.ErrStorageFailure.Error()
	case errors.As(err, &httpErr):
		return httpErr.Code, fmt.Sprint(httpErr.Message)
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}
