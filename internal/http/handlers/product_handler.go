package handlers

import (
	"database/sql"
	"errors"

	"ctstudio/internal/domain"
	applog "ctstudio/internal/log"
	"ctstudio/internal/repos"
	"ctstudio/internal/services"
	"ctstudio/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// GET /api/products?category=
func (h *ProductHandler) List(c *fiber.Ctx) error {
	category := c.Query("category")

	var (
		products []domain.Product
		err      error
	)
	if category != "" {
		if !domain.ValidCategory(category) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false, "message": "Unknown category",
			})
		}
		products, err = h.Catalog.ListByCategory(category)
	} else {
		products, err = h.Catalog.List()
	}
	if err != nil {
		applog.Error(c, "products.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Could not load products",
		})
	}
	if products == nil {
		products = []domain.Product{}
	}
	return c.JSON(fiber.Map{"success": true, "products": products})
}

// GET /api/products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid product id",
		})
	}
	p, err := h.Catalog.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false, "message": "Product not found",
		})
	}
	if err != nil {
		applog.Error(c, "products.get.fail", err, map[string]any{"id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Could not load product",
		})
	}
	return c.JSON(fiber.Map{"success": true, "product": p})
}

// POST /api/products (admin)
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in repos.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid request body",
		})
	}
	if in.Name == nil || in.Description == nil || in.Price == nil || in.ImageURL == nil || in.Category == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Missing required fields",
		})
	}
	if msg, ok := checkProductFields(in); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": msg})
	}

	p, err := h.Catalog.Create(in)
	if err != nil {
		applog.Error(c, "products.create.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Could not create product",
		})
	}
	applog.Audit(c, "products.create", map[string]any{"id": p.ID, "name": p.Name})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "product": p})
}

// PUT /api/products/:id (admin, partial update)
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid product id",
		})
	}
	var in repos.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid request body",
		})
	}
	if msg, ok := checkProductFields(in); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": msg})
	}

	p, err := h.Catalog.Update(id, in)
	if errors.Is(err, sql.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false, "message": "Product not found",
		})
	}
	if err != nil {
		applog.Error(c, "products.update.fail", err, map[string]any{"id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Could not update product",
		})
	}
	applog.Audit(c, "products.update", map[string]any{"id": id})
	return c.JSON(fiber.Map{"success": true, "product": p})
}

// DELETE /api/products/:id (admin, soft delete)
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid product id",
		})
	}
	deleted, err := h.Catalog.SoftDelete(id)
	if err != nil {
		applog.Error(c, "products.delete.fail", err, map[string]any{"id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Could not delete product",
		})
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false, "message": "Product not found",
		})
	}
	applog.Audit(c, "products.delete", map[string]any{"id": id})
	return c.JSON(fiber.Map{"success": true, "message": "Product deleted"})
}

func checkProductFields(in repos.ProductInput) (string, bool) {
	if in.Name != nil {
		if _, ok := validate.Name(*in.Name); !ok {
			return "Invalid name", false
		}
	}
	if in.Price != nil && !validate.Price(*in.Price) {
		return "Invalid price", false
	}
	if in.Category != nil && !domain.ValidCategory(*in.Category) {
		return "Unknown category", false
	}
	return "", true
}
