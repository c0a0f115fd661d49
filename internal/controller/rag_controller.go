// FILE: internal/controller/rag_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/transformerAnt/orange-fitness-backend/internal/dto"
	"github.com/transformerAnt/orange-fitness-backend/internal/pkg/serverutils"
	"github.com/transformerAnt/orange-fitness-backend/pkg/rag"
)

type IRagController interface {
	RegisterRoutes(r fiber.Router)
	Search(ctx *fiber.Ctx) error
}

type ragController struct {
	documents []rag.Document
}

func NewRagController(documents []rag.Document) IRagController {
	return &ragController{documents: documents}
}

func (c *ragController) RegisterRoutes(r fiber.Router) {
	r.Post("/rag/search", c.Search)
}

func (c *ragController) Search(ctx *fiber.Ctx) error {
	request := new(dto.SearchRequest)
	if err := ctx.BodyParser(request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("query is required."))
	}
	if err := serverutils.ValidateStruct(request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("query is required."))
	}

	matches := rag.Rank(c.documents, request.Query)
	if matches == nil {
		matches = []rag.Document{}
	}
	return ctx.JSON(dto.SearchResponse{Matches: matches})
}
