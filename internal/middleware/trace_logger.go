package middleware

import (
	"github.com/furluv/furluv/internal/observability"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TraceLoggerMiddleware stores a logger carrying the request's trace_id and
// span_id so handler logs can be joined with traces. It must run after the
// otelfiber middleware has started the span.
func TraceLoggerMiddleware(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("logger", observability.WithContext(c.UserContext(), logger))

		return c.Next()
	}
}
