package handlers

import (
	"database/sql"
	"errors"

	applog "ctstudio/internal/log"
	"ctstudio/internal/payments"
	"ctstudio/internal/services"
	"ctstudio/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CheckoutHandler struct {
	Checkout *services.CheckoutService
	Orders   *services.OrderService
	Catalog  *services.CatalogService
}

// POST /api/checkout — create a hosted checkout session from cart items.
func (h *CheckoutHandler) Create(c *fiber.Ctx) error {
	var body struct {
		Items []payments.CheckoutItem `json:"items"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid request body",
		})
	}
	if len(body.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "No items given",
		})
	}

	sess, err := h.Checkout.Start(body.Items)
	if err != nil {
		applog.Error(c, "checkout.create.fail", err, map[string]any{"items": len(body.Items)})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Could not create checkout session",
		})
	}
	applog.Audit(c, "checkout.create", map[string]any{"session": sess.ID, "items": len(body.Items)})
	return c.JSON(fiber.Map{"success": true, "sessionId": sess.ID, "url": sess.URL})
}

// POST /api/checkout/product — buy a single catalog product directly.
// The price comes from the catalog, never from the client.
func (h *CheckoutHandler) CreateForProduct(c *fiber.Ctx) error {
	var body struct {
		ID       int64 `json:"id"`
		Quantity int   `json:"quantity"`
	}
	if err := c.BodyParser(&body); err != nil || body.ID < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid product id",
		})
	}

	p, err := h.Catalog.Get(body.ID)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !p.Available) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false, "message": "Product not found",
		})
	}
	if err != nil {
		applog.Error(c, "checkout.product.fail", err, map[string]any{"id": body.ID})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Could not load product",
		})
	}

	sess, err := h.Checkout.Start([]payments.CheckoutItem{{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    validate.Qty(body.Quantity),
	}})
	if err != nil {
		applog.Error(c, "checkout.create.fail", err, map[string]any{"product": body.ID})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Could not create checkout session",
		})
	}
	applog.Audit(c, "checkout.create", map[string]any{"session": sess.ID, "product": body.ID})
	return c.JSON(fiber.Map{"success": true, "sessionId": sess.ID, "url": sess.URL})
}

// POST /api/checkout/session — reconcile a finished session (polled by the
// success page after the provider redirects back).
func (h *CheckoutHandler) ReconcileSession(c *fiber.Ctx) error {
	var body struct {
		SessionID string `json:"sessionId"`
	}
	if err := c.BodyParser(&body); err != nil || body.SessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Session id is required",
		})
	}

	res, err := h.Orders.Reconcile(body.SessionID)
	if err != nil {
		applog.Error(c, "order.reconcile.fail", err, map[string]any{"session": body.SessionID})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Could not load checkout session",
		})
	}
	if !res.Saved {
		applog.Error(c, "order.reconcile.unsaved", res.SaveErr, map[string]any{"session": body.SessionID})
		return c.JSON(fiber.Map{
			"success": true,
			"order":   res.Order,
			"saved":   false,
			"message": "Order built from checkout session (not persisted)",
		})
	}
	applog.Audit(c, "order.reconcile", map[string]any{"session": body.SessionID, "order_id": res.Order.ID})
	return c.JSON(fiber.Map{"success": true, "order": res.Order, "saved": true})
}
