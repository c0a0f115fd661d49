// FILE: internal/controller/exercise_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/transformerAnt/orange-fitness-backend/internal/dto"
	"github.com/transformerAnt/orange-fitness-backend/internal/pkg/serverutils"
	"github.com/transformerAnt/orange-fitness-backend/internal/service"
)

type IExerciseController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	BodyParts(ctx *fiber.Ctx) error
	ByID(ctx *fiber.Ctx) error
}

type exerciseController struct {
	service service.IExerciseService
}

func NewExerciseController(service service.IExerciseService) IExerciseController {
	return &exerciseController{service: service}
}

func (c *exerciseController) RegisterRoutes(r fiber.Router) {
	// body-parts must be registered before :id
	r.Get("/exercises", c.List)
	r.Get("/exercises/body-parts", c.BodyParts)
	r.Get("/exercises/:id", c.ByID)
}

func (c *exerciseController) List(ctx *fiber.Ctx) error {
	query := new(dto.ListExercisesQuery)
	if err := ctx.QueryParser(query); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Invalid query parameters"))
	}

	body, err := c.service.List(ctx.Context(), query)
	if err != nil {
		return respondError(ctx, err, "Failed to fetch exercises.")
	}
	return ctx.Type("json").Send(body)
}

func (c *exerciseController) BodyParts(ctx *fiber.Ctx) error {
	body, err := c.service.BodyParts(ctx.Context())
	if err != nil {
		return respondError(ctx, err, "Failed to fetch body parts.")
	}
	return ctx.Type("json").Send(body)
}

func (c *exerciseController) ByID(ctx *fiber.Ctx) error {
	body, err := c.service.ByID(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return respondError(ctx, err, "Failed to fetch exercise.")
	}
	return ctx.Type("json").Send(body)
}
