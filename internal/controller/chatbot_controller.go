package controller

import (
	"errors"

	"primoboost-be/internal/dto"
	"primoboost-be/internal/pkg/serverutils"
	"primoboost-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	SendChat(ctx *fiber.Ctx) error
	ResetSession(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
}

type chatbotController struct {
	service service.IChatbotService
}

func NewChatbotController(service service.IChatbotService) IChatbotController {
	return &chatbotController{service: service}
}

// Chat is open to guests, so every route takes an optional token.
func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat", serverutils.OptionalJwtMiddleware)
	h.Post("/sessions", c.CreateSession)
	h.Post("/messages", c.SendChat)
	h.Post("/sessions/reset", c.ResetSession)
	h.Get("/sessions/:sessionId/messages", c.GetHistory)
}

func (c *chatbotController) CreateSession(ctx *fiber.Ctx) error {
	var userId *uuid.UUID
	if id, err := currentUserId(ctx); err == nil {
		userId = &id
	}

	res, err := c.service.CreateSession(ctx.Context(), userId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat session created", res))
}

func (c *chatbotController) SendChat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendChat(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrSessionReset) {
			return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
		}
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Message processed", res))
}

func (c *chatbotController) ResetSession(ctx *fiber.Ctx) error {
	var req dto.ResetChatSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.ResetSession(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat session reset", res))
}

func (c *chatbotController) GetHistory(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid session id"))
	}

	res, err := c.service.GetChatHistory(ctx.Context(), sessionId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat history fetched", res))
}
