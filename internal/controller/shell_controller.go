package controller

import (
	"errors"

	"primoboost-be/internal/dto"
	"primoboost-be/internal/pkg/serverutils"
	"primoboost-be/internal/service"
	"primoboost-be/internal/shell"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IShellController interface {
	RegisterRoutes(r fiber.Router)
}

type shellController struct {
	service service.IShellService
}

func NewShellController(service service.IShellService) IShellController {
	return &shellController{service: service}
}

func (c *shellController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/shell")
	h.Post("/sessions", c.CreateSession)

	s := h.Group("/sessions/:sessionId")
	s.Get("/snapshot", c.GetSnapshot)
	s.Get("/route", c.ResolveRoute)
	s.Post("/navigate", c.Navigate)
	s.Post("/viewport", c.SetViewport)
	s.Post("/mobile-menu/toggle", c.ToggleMobileMenu)
	s.Post("/mobile-menu/close", c.CloseMobileMenu)
	s.Post("/auth-modal/open", c.OpenAuthModal)
	s.Post("/auth-modal/view", c.SetAuthModalView)
	s.Post("/auth-modal/close", c.CloseAuthModal)
	s.Post("/plan-selection/open", c.OpenPlanSelection)
	s.Post("/plan-selection/close", c.ClosePlanSelection)
	s.Post("/career-plans", c.SelectCareerPlans)
	s.Post("/subscription-plans/open", c.OpenSubscriptionPlans)
	s.Post("/subscription-plans/close", c.CloseSubscriptionPlans)
	s.Post("/alerts", c.ShowAlert)
	s.Post("/alerts/dismiss", c.DismissAlert)
	s.Post("/alerts/action", c.RunAlertAction)
	s.Post("/welcome-offer/dismiss", c.DismissWelcomeOffer)

	s.Post("/attach-user", serverutils.JwtMiddleware, c.AttachUser)
	s.Post("/detach-user", c.DetachUser)
}

func (c *shellController) CreateSession(ctx *fiber.Ctx) error {
	res, err := c.service.CreateSession(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Shell session created", res))
}

// withShell resolves the :sessionId param to a live shell or writes the
// error response itself. Callers bail out on a nil shell.
func (c *shellController) withShell(ctx *fiber.Ctx) (*shell.Shell, error) {
	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return nil, ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid session id"))
	}

	sh, err := c.service.GetShell(sessionId)
	if err != nil {
		return nil, ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	}
	return sh, nil
}

func (c *shellController) GetSnapshot(ctx *fiber.Ctx) error {
	sh, err := c.withShell(ctx)
	if sh == nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Shell snapshot", sh.Snapshot()))
}

func (c *shellController) ResolveRoute(ctx *fiber.Ctx) error {
	sh, err := c.withShell(ctx)
	if sh == nil {
		return err
	}

	resolved, err := sh.Resolve()
	if err != nil {
		if errors.Is(err, shell.ErrAdminOnly) {
			return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, err.Error()))
		}
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Route resolved", &dto.ShellRouteResponse{
		Pattern: resolved.Pattern,
		Page:    resolved.Page.Name,
		Params:  resolved.Params,
	}))
}

func (c *shellController) Navigate(ctx *fiber.Ctx) error {
	sh, err := c.withShell(ctx)
	if sh == nil {
		return err
	}

	var req dto.ShellNavigateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	sh.Navigate(req.Path, req.RawQuery, req.Fragment)
	return ctx.JSON(serverutils.SuccessResponse("Navigated", sh.Snapshot()))
}

func (c *shellController) SetViewport(ctx *fiber.Ctx) error {
	sh, err := c.withShell(ctx)
	if sh == nil {
		return err
	}

	var req dto.ShellViewportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	sh.SetViewport(req.Width)
	return ctx.JSON(serverutils.SuccessResponse("Viewport updated", sh.Snapshot()))
}

func (c *shellController) ToggleMobileMenu(ctx *fiber.Ctx) error {
	sh, err := c.withShell(ctx)
	if sh == nil {
		return err
	}
	sh.ToggleMobileMenu()
	return ctx.JSON(serverutils.SuccessResponse("Mobile menu toggled", sh.Snapshot()))
}

func (c *shellController) CloseMobileMenu(ctx *fiber.Ctx) error {
	sh, err := c.withShell(ctx)
	if sh == nil {
		return err
	}
	sh.CloseMobileMenu()
	return ctx.JSON(serverutils.SuccessResponse("Mobile menu closed", sh.Snapshot()))
}

func (c *shellController) OpenAuthModal(ctx *fiber.Ctx) error {
	sh, err := c.withShell(ctx)
	if sh == nil {
		return err
	}
	sh.OpenAuthModal(nil)
	return ctx.JSON(serverutils.SuccessResponse("Auth modal opened", sh.Snapshot()))
}

func (c *shellController) SetAuthModalView(ctx *fiber.Ctx) error {
	sh, err := c.withShell(ctx)
	if sh == nil {
		return err
	}

	var req dto.ShellAuthModalRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	sh.SetAuthModalView(shell.AuthModalView(req.View))
	return ctx.JSON(serverutils.SuccessResponse("Auth modal view set", sh.Snapshot()))
}

func (c *shellController) CloseAuthModal(ctx *fiber.Ctx) error {
	sh, err := c.withShell(ctx)
	if sh == nil {
		return err
	}
	sh.CloseAuthModal()
	return ctx.JSON(serverutils.SuccessResponse("Auth modal closed", sh.Snapshot()))
}

func (c *shellController) OpenPlanSelection(ctx *fiber.Ctx) error {
	sh, err := c.withShell(ctx)
	if sh == nil {
		return err
	}

	var req dto.ShellPlanSelectionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	sh.OpenPlanSelection(req.FeatureId, req.ExpandAddons)
	return ctx.JSON(serverutils.SuccessResponse("Plan selection opened", sh.Snapshot()))
}

func (c *shellController) ClosePlanSelection(ctx *fiber.Ctx) error {
	sh, err := c.withShell(ctx)
	if sh == nil {
		return err
	}
	sh.ClosePlanSelection()
	return ctx.JSON(serverutils.SuccessResponse("Plan selection closed", sh.Snapshot()))
}

func (c *shellController) SelectCareerPlans(ctx *fiber.Ctx) error {
	sh, err := c.withShell(ctx)
	if sh == nil {
		return err
	}
	sh.SelectCareerPlans()
	return ctx.JSON(serverutils.SuccessResponse("Career plans selected", sh.Snapshot()))
}

func (c *shellController) OpenSubscriptionPlans(ctx *fiber.Ctx) error {
	sh, err := c.withShell(ctx)
	if sh == nil {
		return err
	}
	sh.OpenSubscriptionPlans()
	return ctx.JSON(serverutils.SuccessResponse("Subscription plans opened", sh.Snapshot()))
}

func (c *shellController) CloseSubscriptionPlans(ctx *fiber.Ctx) error {
	sh, err := c.withShell(ctx)
	if sh == nil {
		return err
	}
	sh.CloseSubscriptionPlans()
	return ctx.JSON(serverutils.SuccessResponse("Subscription plans closed", sh.Snapshot()))
}

func (c *shellController) ShowAlert(ctx *fiber.Ctx) error {
	sh, err := c.withShell(ctx)
	if sh == nil {
		return err
	}

	var req dto.ShellAlertRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	severity := shell.AlertSeverity(req.Severity)
	if req.Severity == "" {
		severity = shell.AlertInfo
	}

	sh.ShowAlert(shell.Alert{
		Title:       req.Title,
		Message:     req.Message,
		Severity:    severity,
		ActionLabel: req.ActionLabel,
	})
	return ctx.JSON(serverutils.SuccessResponse("Alert shown", sh.Snapshot()))
}

func (c *shellController) DismissAlert(ctx *fiber.Ctx) error {
	sh, err := c.withShell(ctx)
	if sh == nil {
		return err
	}
	sh.DismissAlert()
	return ctx.JSON(serverutils.SuccessResponse("Alert dismissed", sh.Snapshot()))
}

func (c *shellController) RunAlertAction(ctx *fiber.Ctx) error {
	sh, err := c.withShell(ctx)
	if sh == nil {
		return err
	}
	sh.RunAlertAction()
	return ctx.JSON(serverutils.SuccessResponse("Alert action executed", sh.Snapshot()))
}

func (c *shellController) DismissWelcomeOffer(ctx *fiber.Ctx) error {
	sh, err := c.withShell(ctx)
	if sh == nil {
		return err
	}
	sh.DismissWelcomeOffer()
	return ctx.JSON(serverutils.SuccessResponse("Welcome offer dismissed", sh.Snapshot()))
}

func (c *shellController) AttachUser(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid session id"))
	}

	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid token subject"))
	}

	if err := c.service.AttachUser(ctx.Context(), sessionId, &userId); err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("User attached to shell", nil))
}

func (c *shellController) DetachUser(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid session id"))
	}

	if err := c.service.AttachUser(ctx.Context(), sessionId, nil); err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("User detached from shell", nil))
}
