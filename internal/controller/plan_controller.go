package controller

import (
	"primoboost-be/internal/pkg/serverutils"
	"primoboost-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPlanController interface {
	RegisterRoutes(r fiber.Router)
	GetPlans(ctx *fiber.Ctx) error
}

type planController struct {
	service service.IPlanService
}

func NewPlanController(service service.IPlanService) IPlanController {
	return &planController{service: service}
}

func (c *planController) RegisterRoutes(r fiber.Router) {
	r.Get("/plans", c.GetPlans)
}

func (c *planController) GetPlans(ctx *fiber.Ctx) error {
	res, err := c.service.GetAllActivePlans(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Plans fetched", res))
}
