package middleware

import (
	"errors"
	"strconv"
	"time"

	"equiptrack/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Observe logs every request and records it in registry. The route pattern,
// not the raw path, is used as the metric label.
func Observe(registry *metrics.Registry, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		started := time.Now()
		registry.IncInFlight()
		defer registry.DecInFlight()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		elapsed := time.Since(started)

		path := c.Route().Path
		if path == "" {
			path = "unmatched"
		}
		registry.RecordHTTPRequest(c.Method(), path, strconv.Itoa(status), elapsed)

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("duration", elapsed),
		}
		if id, ok := c.Locals("requestid").(string); ok {
			fields = append(fields, zap.String("request_id", id))
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Error("Request failed", append(fields, zap.Error(err))...)
		case status >= fiber.StatusBadRequest:
			logger.Warn("Request rejected", fields...)
		default:
			logger.Debug("Request served", fields...)
		}
		return err
	}
}
