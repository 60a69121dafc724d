package handlers

import (
	"ctstudio/internal/domain"
	applog "ctstudio/internal/log"
	"ctstudio/internal/services"

	"github.com/gofiber/fiber/v2"
)

type PageHandler struct {
	Catalog *services.CatalogService
}

// GET /
func (h *PageHandler) Home(c *fiber.Ctx) error {
	featured, err := h.Catalog.Featured()
	if err != nil {
		applog.Error(c, "page.home.fail", err, nil)
		featured = nil
	}
	return c.Render("home", fiber.Map{"Featured": featured})
}

// GET /shop?category=
func (h *PageHandler) Shop(c *fiber.Ctx) error {
	category := c.Query("category")
	var (
		products []domain.Product
		err      error
	)
	if category != "" && domain.ValidCategory(category) {
		products, err = h.Catalog.ListByCategory(category)
	} else {
		category = ""
		products, err = h.Catalog.List()
	}
	if err != nil {
		applog.Error(c, "page.shop.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
			"Message": "Could not load the shop. Please try again.",
		})
	}
	return c.Render("shop", fiber.Map{"Products": products, "Category": category})
}

// GET /success?session_id= — confirmation page; the embedded script polls
// /api/checkout/session with the session id.
func (h *PageHandler) Success(c *fiber.Ctx) error {
	return c.Render("success", fiber.Map{"SessionID": c.Query("session_id")})
}
