package controller

import (
	"primoboost-be/internal/dto"
	"primoboost-be/internal/pkg/serverutils"
	"primoboost-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
	Checkout(ctx *fiber.Ctx) error
	AddonCheckout(ctx *fiber.Ctx) error
	Webhook(ctx *fiber.Ctx) error
	GetSubscription(ctx *fiber.Ctx) error
}

type paymentController struct {
	service service.IPaymentService
}

func NewPaymentController(service service.IPaymentService) IPaymentController {
	return &paymentController{service: service}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/payment")
	// Midtrans calls this one directly, auth is the signature check.
	h.Post("/midtrans/notification", c.Webhook)

	h.Post("/checkout", serverutils.JwtMiddleware, c.Checkout)
	h.Post("/addon-checkout", serverutils.JwtMiddleware, c.AddonCheckout)
	h.Get("/subscription", serverutils.JwtMiddleware, c.GetSubscription)
}

func (c *paymentController) Checkout(ctx *fiber.Ctx) error {
	var req dto.CheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid token subject"))
	}

	res, err := c.service.Checkout(ctx.Context(), userId, &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Checkout created", res))
}

func (c *paymentController) AddonCheckout(ctx *fiber.Ctx) error {
	var req dto.AddonCheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid token subject"))
	}

	res, err := c.service.AddonCheckout(ctx.Context(), userId, &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Add-on checkout created", res))
}

func (c *paymentController) Webhook(ctx *fiber.Ctx) error {
	var req dto.MidtransWebhookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := c.service.HandleNotification(ctx.Context(), &req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	// Midtrans retries on anything but 200.
	return ctx.JSON(serverutils.SuccessResponse[any]("OK", nil))
}

func (c *paymentController) GetSubscription(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid token subject"))
	}

	res, err := c.service.GetUserSubscription(ctx.Context(), userId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Subscription fetched", res))
}
