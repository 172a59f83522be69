package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"sitecms/internal/http/middleware"
	"sitecms/internal/logger"
	"sitecms/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string            `json:"request_id"`
	Error     string            `json:"error"`
	Code      string            `json:"code"`
	Details   map[string]string `json:"details,omitempty"`
}

// successPayload is the envelope of public submission responses.
type successPayload struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response. message must be
// safe to show to clients.
func writeError(c *fiber.Ctx, status int, code, message string, details map[string]string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: requestIDFromCtx(c),
		Error:     message,
		Code:      code,
		Details:   details,
	})
}

// ErrorHandler returns the global error handler. Service errors map to
// 400, 404 or 500; internal causes are logged, never returned.
func ErrorHandler(fallback zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var (
			verr  *service.ValidationError
			serr  *service.SecurityValidationError
			cerr  *service.ConfigurationError
			sterr *service.StorageError
			perr  *service.PersistenceError
			ferr  *fiber.Error
		)

		switch {
		case errors.As(err, &verr):
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", verr.Message, verr.Fields)
		case errors.As(err, &serr):
			return writeError(c, fiber.StatusBadRequest, "SECURITY_VALIDATION_FAILED", serr.Reason, nil)
		case errors.Is(err, service.ErrIDRequired):
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id is required", nil)
		case errors.Is(err, service.ErrNotFound):
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", err.Error(), nil)
		case errors.As(err, &ferr):
			return writeFiberError(c, ferr)
		}

		log := logger.FromContext(c.UserContext(), fallback)
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")

		switch {
		case errors.As(err, &cerr):
			return writeError(c, fiber.StatusInternalServerError, "CONFIGURATION_ERROR", "service is not configured to handle this request", nil)
		case errors.As(err, &sterr):
			return writeError(c, fiber.StatusInternalServerError, "STORAGE_ERROR", "file storage failed", nil)
		case errors.As(err, &perr):
			return writeError(c, fiber.StatusInternalServerError, "PERSISTENCE_ERROR", "could not save or load data", nil)
		default:
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", nil)
		}
	}
}

func writeFiberError(c *fiber.Ctx, e *fiber.Error) error {
	switch e.Code {
	case fiber.StatusBadRequest:
		return writeError(c, e.Code, "BAD_REQUEST", e.Message, nil)
	case fiber.StatusUnauthorized:
		return writeError(c, e.Code, "UNAUTHORIZED", e.Message, nil)
	case fiber.StatusNotFound:
		return writeError(c, e.Code, "NOT_FOUND", "resource not found", nil)
	case fiber.StatusMethodNotAllowed:
		return writeError(c, e.Code, "METHOD_NOT_ALLOWED", "method not allowed", nil)
	case fiber.StatusRequestEntityTooLarge:
		return writeError(c, e.Code, "PAYLOAD_TOO_LARGE", "request body too large", nil)
	case fiber.StatusTooManyRequests:
		return writeError(c, e.Code, "RATE_LIMITED", "too many requests", nil)
	case fiber.StatusServiceUnavailable:
		return writeError(c, e.Code, "SERVICE_UNAVAILABLE", "dependency unavailable", nil)
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", nil)
	}
}
