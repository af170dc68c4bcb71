package handlers

import (
	"errors"

	"equiptrack/internal/ingest"
	"equiptrack/internal/service"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrRecommendationNotFound), errors.Is(err, service.ErrDeviceNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrAlreadyImported):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrUnsupportedRecommendation):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ingest.ErrUnrecognizedHeader):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func errorResponse(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}
