package middleware

import (
	"cardtrade-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the app-level error handler for errors that escape the
// handlers (bad routes, body-limit rejections, recovered panics). It keeps
// the standard error envelope and attaches the trace id so a storefront bug
// report can be matched against the route logs.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	details := map[string]interface{}{}
	if traceID := GetTraceID(c); traceID != "" {
		details["trace_id"] = traceID
	}
	return response.Error(c, message, code, details)
}
