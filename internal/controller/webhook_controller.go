package controller

import (
	"subscription-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IWebhookController interface {
	RegisterRoutes(r fiber.Router)
	HandleStripe(ctx *fiber.Ctx) error
}

// webhookController receives billing provider callbacks. The route is
// unauthenticated on purpose: authenticity comes from the payload
// signature, not from a bearer token.
type webhookController struct {
	subscriptionService service.ISubscriptionService
}

func NewWebhookController(subscriptionService service.ISubscriptionService) IWebhookController {
	return &webhookController{
		subscriptionService: subscriptionService,
	}
}

func (c *webhookController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/webhooks")
	h.Post("stripe", c.HandleStripe)
}

func (c *webhookController) HandleStripe(ctx *fiber.Ctx) error {
	// Raw body is required: re-serialized JSON would break the signature.
	payload := ctx.Body()
	signature := ctx.Get("Stripe-Signature")

	if err := c.subscriptionService.HandleWebhook(ctx.Context(), payload, signature); err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{"received": true})
}
