package http

import (
	"strings"
	"time"

	"metadata-backoffice/internal/shared/logger"
	"metadata-backoffice/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestContext tags every request with an id, stores it in the user context
// and logs the outcome once the handler chain returns.
func RequestContext(log logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		} else {
			requestID = strings.Clone(requestID)
		}
		c.Set(RequestIDHeader, requestID)

		ctx := utils.WithRequestID(c.UserContext(), requestID)
		ctx = utils.WithComponent(ctx, "http")
		c.SetUserContext(ctx)

		start := time.Now()
		err := c.Next()

		entry := log.WithContext(ctx).WithFields(map[string]interface{}{
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     c.Response().StatusCode(),
			"latency_ms": time.Since(start).Milliseconds(),
		})
		if err != nil {
			entry.Warnf("Request failed: %v", err)
		} else {
			entry.Debug("Request handled")
		}
		return err
	}
}

// ErrorHandler is the app-wide fallback for errors that escape handlers.
func ErrorHandler(log logger.Logger, showDetails bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		if code >= fiber.StatusInternalServerError {
			log.WithContext(c.UserContext()).Errorf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
			body := fiber.Map{"error": "Error interno del servidor"}
			if showDetails {
				body["details"] = err.Error()
			}
			return c.Status(code).JSON(body)
		}
		return c.Status(code).JSON(fiber.Map{"error": err.Error()})
	}
}
