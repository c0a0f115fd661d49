// FILE: internal/pkg/serverutils/response.go
package serverutils

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ErrorResponse is the uniform error body for every endpoint. Upstream
// bodies are relayed verbatim elsewhere; this shape is only for errors the
// proxy itself produces.
func ErrorResponse(message string) fiber.Map {
	return fiber.Map{"error": message}
}

func OkResponse() fiber.Map {
	return fiber.Map{"ok": true}
}

// ValidateStruct runs the shared validator against a dto.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ErrorHandlerMiddleware converts panics into a generic 500 JSON error so a
// single bad request cannot take the worker down with a raw stack trace.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				_ = ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("Internal server error."))
			}
		}()
		return ctx.Next()
	}
}
