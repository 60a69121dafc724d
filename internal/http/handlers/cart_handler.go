package handlers

import (
	"encoding/base64"

	"ctstudio/internal/cart"
	applog "ctstudio/internal/log"
	"ctstudio/internal/validate"

	"github.com/gofiber/fiber/v2"
)

const cartCookie = "cart"

// CartHandler keeps the cart on the client: the cookie stores the JSON
// item list only (base64, cookie-safe), totals are recomputed on every
// read.
type CartHandler struct{}

func (h *CartHandler) load(c *fiber.Ctx) *cart.Cart {
	raw := c.Cookies(cartCookie)
	if raw == "" {
		return cart.New()
	}
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err == nil {
		var ct *cart.Cart
		if ct, err = cart.Decode(data); err == nil {
			return ct
		}
	}
	applog.Warn(c, "cart.cookie.reset", map[string]any{"err": err.Error()})
	return cart.New()
}

func (h *CartHandler) save(c *fiber.Ctx, ct *cart.Cart) error {
	data, err := ct.Encode()
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     cartCookie,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

// GET /api/cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "cart": h.load(c)})
}

// POST /api/cart/items
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var it cart.Item
	if err := c.BodyParser(&it); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid request body",
		})
	}
	if it.ID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Missing item id",
		})
	}
	if _, ok := validate.Name(it.Name); !ok || !validate.Price(it.Price) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid item",
		})
	}

	ct := h.load(c)
	ct.Add(it)
	if err := h.save(c, ct); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "cart": ct})
}

// PUT /api/cart/items/:id
func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid request body",
		})
	}
	ct := h.load(c)
	ct.SetQuantity(c.Params("id"), body.Quantity)
	if err := h.save(c, ct); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "cart": ct})
}

// DELETE /api/cart/items/:id
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	ct := h.load(c)
	ct.Remove(c.Params("id"))
	if err := h.save(c, ct); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "cart": ct})
}

// DELETE /api/cart
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	ct := cart.New()
	if err := h.save(c, ct); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "cart": ct})
}
