package handlers

import (
	applog "ctstudio/internal/log"
	"ctstudio/internal/payments"
	"ctstudio/internal/services"

	"github.com/gofiber/fiber/v2"
)

type WebhookHandler struct {
	Orders        *services.OrderService
	WebhookSecret string
}

// POST /api/stripe/webhook — provider-pushed events. The signature is
// verified when a webhook secret is configured; otherwise the payload is
// accepted unverified with a logged warning (development mode).
func (h *WebhookHandler) Handle(c *fiber.Ctx) error {
	payload := c.Body()
	if h.WebhookSecret == "" {
		applog.Warn(c, "webhook.unverified", map[string]any{"reason": "no webhook secret configured"})
	}

	ev, err := payments.ParseWebhook(payload, c.Get("Stripe-Signature"), h.WebhookSecret)
	if err != nil {
		applog.Security(c, "webhook.signature.fail", map[string]any{"err": err.Error()})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid webhook signature",
		})
	}

	switch ev.Type {
	case "checkout.session.completed":
		res, err := h.Orders.Reconcile(ev.SessionID)
		if err != nil || (!res.Saved && res.SaveErr != nil) {
			if err == nil {
				err = res.SaveErr
			}
			// Non-2xx makes the provider redeliver; reconciliation is
			// idempotent so the retry is safe.
			applog.Error(c, "webhook.reconcile.fail", err, map[string]any{"session": ev.SessionID})
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false, "message": "Webhook processing failed",
			})
		}
		applog.Audit(c, "webhook.reconcile", map[string]any{"session": ev.SessionID, "order_id": res.Order.ID})
	case "payment_intent.succeeded":
		applog.Info(c, "webhook.payment_intent.succeeded", map[string]any{"id": ev.ObjectID})
	default:
		applog.Info(c, "webhook.ignored", map[string]any{"type": ev.Type})
	}

	return c.JSON(fiber.Map{"received": true})
}
