// handlers/response.go
package handlers

import (
	"errors"
	"log/slog"

	"esports-registration/services"

	"github.com/gofiber/fiber/v2"
)

// Response is the envelope of every API response.
type Response struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message,omitempty"`
	Data       any                  `json:"data,omitempty"`
	Errors     []string             `json:"errors,omitempty"`
	Pagination *services.Pagination `json:"pagination,omitempty"`
}

func ok(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{Success: true, Message: message, Data: data})
}

func fail(c *fiber.Ctx, status int, message string, errs ...string) error {
	return c.Status(status).JSON(Response{Success: false, Message: message, Errors: errs})
}

// ErrorHandler renders every error that reaches fiber as an envelope.
// Unclassified errors are logged and answered with a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var (
		verr *services.ValidationError
		ferr *fiber.Error
	)
	switch {
	case errors.As(err, &verr):
		return fail(c, fiber.StatusBadRequest, "validation failed", verr.Messages...)
	case errors.Is(err, services.ErrUnauthorized):
		return fail(c, fiber.StatusUnauthorized, publicMessage(err, "unauthorized"))
	case errors.Is(err, services.ErrNotFound):
		return fail(c, fiber.StatusNotFound, publicMessage(err, "not found"))
	case errors.Is(err, services.ErrConflict):
		return fail(c, fiber.StatusConflict, publicMessage(err, "conflict"))
	case errors.As(err, &ferr):
		if ferr.Code >= fiber.StatusInternalServerError {
			slog.Error("request failed", "path", c.Path(), "err", err)
			return fail(c, ferr.Code, "internal server error")
		}
		return fail(c, ferr.Code, ferr.Message)
	}

	slog.Error("request failed", "method", c.Method(), "path", c.Path(), "err", err)
	return fail(c, fiber.StatusInternalServerError, "internal server error")
}

func publicMessage(err error, fallback string) string {
	if msg, ok := services.PublicMessage(err); ok {
		return msg
	}
	return fallback
}

// NotFound answers requests that matched no route.
func NotFound(c *fiber.Ctx) error {
	return fail(c, fiber.StatusNotFound, "route not found")
}

// parseBody decodes the JSON request body into dst.
func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	return nil
}
