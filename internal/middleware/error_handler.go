package middleware

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/locavor/account-service/internal/apperr"
	"github.com/locavor/account-service/internal/dto"
)

// ErrorHandler translates domain errors into the structured error body once
// at the boundary. Anything unrecognized becomes a 500 carrying only the
// error's own message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := err.Error()

	var appErr *apperr.Error
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &appErr):
		status = appErr.Status
		message = appErr.Message
	case errors.As(err, &fiberErr):
		status = fiberErr.Code
		message = fiberErr.Message
	}

	if status >= 500 {
		slog.Error("unhandled server error",
			"method", c.Method(), "path", c.Path(), "error", err.Error())
	}

	return c.Status(status).JSON(dto.ErrorResponse{
		Timestamp: time.Now().UTC(),
		Message:   message,
		Status:    status,
	})
}
