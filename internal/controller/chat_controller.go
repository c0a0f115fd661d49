// FILE: internal/controller/chat_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/transformerAnt/orange-fitness-backend/internal/dto"
	"github.com/transformerAnt/orange-fitness-backend/internal/pkg/serverutils"
	"github.com/transformerAnt/orange-fitness-backend/internal/service"
)

const anonymousUserID = "anonymous"

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Send(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.Send)
	r.Get("/chat/history", c.History)
	r.Post("/chat/reset", c.Reset)
}

func (c *chatController) Send(ctx *fiber.Ctx) error {
	request := new(dto.SendChatRequest)
	if err := ctx.BodyParser(request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("message is required."))
	}
	if err := serverutils.ValidateStruct(request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("message is required."))
	}

	res, err := c.service.Send(ctx.Context(), resolveUserID(ctx, request.UserId), request)
	if err != nil {
		return respondError(ctx, err, "Chat failed.")
	}
	return ctx.JSON(res)
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	history := c.service.History(resolveUserID(ctx, ""))
	return ctx.JSON(dto.GetChatHistoryResponse{History: history})
}

func (c *chatController) Reset(ctx *fiber.Ctx) error {
	var request dto.SendChatRequest
	_ = ctx.BodyParser(&request) // body is optional here

	c.service.Reset(resolveUserID(ctx, request.UserId))
	return ctx.JSON(serverutils.OkResponse())
}

// resolveUserID prefers the x-user-id header, then the body field, then the
// shared anonymous bucket.
func resolveUserID(ctx *fiber.Ctx, bodyUserID string) string {
	if id := ctx.Get("x-user-id"); id != "" {
		return id
	}
	if bodyUserID != "" {
		return bodyUserID
	}
	return anonymousUserID
}
