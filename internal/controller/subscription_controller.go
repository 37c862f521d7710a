package controller

import (
	"subscription-be/internal/dto"
	"subscription-be/internal/pkg/apperror"
	"subscription-be/internal/pkg/serverutils"
	"subscription-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISubscriptionController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	StartFreeTrial(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	ShowActiveByUser(ctx *fiber.Ctx) error
}

type subscriptionController struct {
	subscriptionService service.ISubscriptionService
}

func NewSubscriptionController(subscriptionService service.ISubscriptionService) ISubscriptionController {
	return &subscriptionController{
		subscriptionService: subscriptionService,
	}
}

func (c *subscriptionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/subscriptions")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Post("free-trial", c.StartFreeTrial)
	h.Get("user/:userId", c.ShowActiveByUser)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Cancel)
}

func (c *subscriptionController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateSubscriptionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.subscriptionService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).
		JSON(serverutils.SuccessResponse("Success create subscription", res))
}

func (c *subscriptionController) StartFreeTrial(ctx *fiber.Ctx) error {
	var req dto.FreeTrialRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.subscriptionService.StartFreeTrial(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).
		JSON(serverutils.SuccessResponse("Success start free trial", res))
}

func (c *subscriptionController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("invalid subscription id")
	}

	var req dto.UpdateSubscriptionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}

	res, err := c.subscriptionService.Update(ctx.Context(), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update subscription", res))
}

func (c *subscriptionController) Cancel(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("invalid subscription id")
	}

	if err := c.subscriptionService.Cancel(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success cancel subscription", nil))
}

func (c *subscriptionController) ShowActiveByUser(ctx *fiber.Ctx) error {
	userId, err := uuid.Parse(ctx.Params("userId"))
	if err != nil {
		return apperror.Validation("invalid user id")
	}

	res, err := c.subscriptionService.GetActiveByUser(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show active subscription", res))
}
