package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ctstudio/internal/domain"
	applog "ctstudio/internal/log"
	"ctstudio/internal/repos"
	"ctstudio/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
)

type AdminHandler struct {
	Orders    *repos.OrderRepo
	Customers *repos.CustomerRepo
	DB        *sqlx.DB
	Auth      *AdminAuth
}

// POST /api/admin/login
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid request body",
		})
	}
	if _, ok := validate.Email(body.Email); !ok {
		applog.Security(c, "admin.login.fail", map[string]any{"reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false, "message": "Invalid email or password",
		})
	}
	token, err := h.Auth.Login(body.Email, body.Password)
	if err != nil {
		applog.Security(c, "admin.login.fail", map[string]any{"email": body.Email})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false, "message": "Invalid email or password",
		})
	}
	applog.Audit(c, "admin.login", map[string]any{"email": body.Email})
	return c.JSON(fiber.Map{"success": true, "token": token})
}

// GET /api/admin/orders
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.Orders.ListLatest(100)
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Could not load orders",
		})
	}
	return c.JSON(fiber.Map{"success": true, "orders": orders})
}

// DELETE /api/admin/orders — wipes order items and orders together.
func (h *AdminHandler) DeleteOrders(c *fiber.Ctx) error {
	count, err := h.Orders.DeleteAll()
	if err != nil {
		applog.Error(c, "admin.orders.delete.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Could not delete orders",
		})
	}
	applog.Audit(c, "admin.orders.delete", map[string]any{"count": count})
	return c.JSON(fiber.Map{
		"success":      true,
		"deletedCount": count,
		"message":      fmt.Sprintf("All orders deleted (%d rows)", count),
	})
}

// PATCH /api/admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid order id",
		})
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil || !domain.ValidStatus(body.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid status",
		})
	}

	updated, err := h.Orders.UpdateStatus(id, body.Status)
	if err != nil {
		applog.Error(c, "admin.orders.status.fail", err, map[string]any{"order_id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Could not update status",
		})
	}
	if !updated {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false, "message": "Order not found",
		})
	}
	applog.Audit(c, "admin.orders.status", map[string]any{"order_id": id, "status": body.Status})

	order, err := h.Orders.Get(id)
	if err != nil {
		applog.Error(c, "admin.orders.reload.fail", err, map[string]any{"order_id": id})
		return c.JSON(fiber.Map{"success": true, "message": "Status updated"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Status updated", "order": order})
}

// POST /api/admin/orders/:id/invoice — invoice generation stub; returns
// the invoice number and URL a generator would produce.
func (h *AdminHandler) GenerateInvoice(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid order id",
		})
	}
	if _, err := h.Orders.Get(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false, "message": "Order not found",
			})
		}
		applog.Error(c, "admin.invoice.fail", err, map[string]any{"order_id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Could not generate invoice",
		})
	}

	number := fmt.Sprintf("CTORD-%05d-INV", id)
	applog.Audit(c, "admin.invoice", map[string]any{"order_id": id, "invoice": number})
	return c.JSON(fiber.Map{
		"success":       true,
		"message":       "Invoice generated",
		"invoiceNumber": number,
		"invoiceUrl":    "/invoices/" + number + ".pdf",
		"generatedAt":   time.Now().UTC().Format(time.RFC3339),
	})
}

// GET /api/admin/customers
func (h *AdminHandler) ListCustomers(c *fiber.Ctx) error {
	customers, err := h.Customers.List()
	if err != nil {
		applog.Error(c, "admin.customers.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Could not load customers",
		})
	}
	if customers == nil {
		customers = []domain.Customer{}
	}
	return c.JSON(fiber.Map{"success": true, "customers": customers})
}

// GET /api/admin/db-status
func (h *AdminHandler) DBStatus(c *fiber.Ctx) error {
	if err := h.DB.Ping(); err != nil {
		applog.Error(c, "admin.db.ping.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Database unreachable",
		})
	}
	counts, err := repos.TableCounts(h.DB)
	if err != nil {
		applog.Error(c, "admin.db.counts.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Could not read table counts",
		})
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"status":    "connected",
		"counts":    counts,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
