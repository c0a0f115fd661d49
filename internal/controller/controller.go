package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/transformerAnt/orange-fitness-backend/internal/pkg/serverutils"
	"github.com/transformerAnt/orange-fitness-backend/internal/service"
)

// respondError maps service errors onto the wire: HTTPError carries its own
// status and message (config errors, validation, upstream relays); anything
// else becomes a generic 500 with the endpoint's fallback message.
func respondError(ctx *fiber.Ctx, err error, fallback string) error {
	var httpErr *service.HTTPError
	if errors.As(err, &httpErr) {
		return ctx.Status(httpErr.Code).JSON(serverutils.ErrorResponse(httpErr.Message))
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(fallback))
}
