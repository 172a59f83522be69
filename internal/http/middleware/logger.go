package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// Logger writes one JSON line per request with request_id, method, path,
// status and latency (milliseconds). It also attaches a request-scoped
// child logger to the user context so services log with the request ID.
//
// Errors returned by later handlers are resolved through the app's error
// handler here, so the logged status is the one the client receives.
// Register it after RequestID.
func Logger(base zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		rid, _ := c.Locals(RequestIDLocalKey).(string)

		lc := base.With().Str("request_id", rid)
		// otelfiber runs first, so the span is already on the user context.
		if sc := trace.SpanContextFromContext(c.UserContext()); sc.IsValid() {
			lc = lc.Str("trace_id", sc.TraceID().String())
		}
		reqLog := lc.Logger()
		c.SetUserContext(reqLog.WithContext(c.UserContext()))

		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := reqLog.Info()
		if status >= fiber.StatusInternalServerError {
			ev = reqLog.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Float64("latency", float64(time.Since(start).Microseconds())/1000).
			Msg("request")
		return nil
	}
}
