package handler

import (
	"errors"

	"go-shop-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Session identity helpers, values set by the auth middleware.

func getUsername(c *fiber.Ctx) string {
	username := c.Locals("username")
	if username == nil {
		return "system" // Shouldn't happen on protected routes
	}
	return username.(string)
}

func getRole(c *fiber.Ctx) string {
	role := c.Locals("role")
	if role == nil {
		return ""
	}
	return role.(string)
}

// statusFor maps service errors to HTTP statuses so no handler invents its
// own mapping.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrWrongPassword),
		errors.Is(err, service.ErrUnknownTable),
		errors.Is(err, service.ErrUnknownFormat):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUserInactive):
		return fiber.StatusUnauthorized
	case errors.Is(err, service.ErrPermissionDenied):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrProductExists):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func errorJSON(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
}
