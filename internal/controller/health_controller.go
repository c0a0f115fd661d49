// FILE: internal/controller/health_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/transformerAnt/orange-fitness-backend/internal/pkg/serverutils"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
}

type healthController struct{}

func NewHealthController() IHealthController {
	return &healthController{}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
}

func (c *healthController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.OkResponse())
}
