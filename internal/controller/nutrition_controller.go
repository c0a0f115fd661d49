// FILE: internal/controller/nutrition_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/transformerAnt/orange-fitness-backend/internal/dto"
	"github.com/transformerAnt/orange-fitness-backend/internal/pkg/serverutils"
	"github.com/transformerAnt/orange-fitness-backend/internal/service"
)

type INutritionController interface {
	RegisterRoutes(r fiber.Router)
	Analyze(ctx *fiber.Ctx) error
}

type nutritionController struct {
	service service.INutritionService
}

func NewNutritionController(service service.INutritionService) INutritionController {
	return &nutritionController{service: service}
}

func (c *nutritionController) RegisterRoutes(r fiber.Router) {
	r.Post("/food/analyze", c.Analyze)
}

func (c *nutritionController) Analyze(ctx *fiber.Ctx) error {
	request := new(dto.AnalyzeFoodRequest)
	if err := ctx.BodyParser(request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("imageUrl is required."))
	}

	payload, err := c.service.Analyze(ctx.Context(), request)
	if err != nil {
		return respondError(ctx, err, "Food analysis failed.")
	}
	return ctx.Type("json").Send(payload)
}
