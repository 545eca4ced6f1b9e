package middleware

import (
	"errors"
	"time"

	"go-parts-inventory/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// StructuredLogging attaches a request scoped zerolog logger to the user context
// and logs every completed request. It must run after requestid.
func StructuredLogging() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
		reqLogger := logger.Logger.With().
			Str("request_id", requestID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Logger()
		c.SetUserContext(reqLogger.WithContext(c.UserContext()))

		err := c.Next()

		duration := time.Since(start)
		statusCode := responseStatus(c, err)

		logEvent := reqLogger.Info()
		if statusCode >= 500 {
			logEvent = reqLogger.Error()
		} else if statusCode >= 400 {
			logEvent = reqLogger.Warn()
		}

		logEvent.
			Int("status", statusCode).
			Dur("duration", duration).
			Int("response_size", len(c.Response().Body())).
			Str("ip", c.IP()).
			Msg("Request completed")

		return err
	}
}

// responseStatus is the status the client will see once the error handler ran
func responseStatus(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
