package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"ctstudio/internal/config"
	"ctstudio/internal/http/handlers"
	applog "ctstudio/internal/log"
	"ctstudio/internal/payments"
	"ctstudio/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	provider := payments.NewStripe(cfg.StripeSecretKey)

	engine := html.New("./web/templates", ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			// Generic envelope; no internals leak to the client
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false, "message": "Something went wrong. Please try again.",
			})
		},
	})
	// Uploads are images; cap request bodies accordingly
	app.Server().MaxRequestBodySize = 5 << 20 // 5 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := string(c.Request().URI().Path())
			return strings.HasPrefix(p, "/static/") || strings.HasPrefix(p, "/uploads/") || p == "/api/stripe/webhook"
		},
	}))

	// ---------- Static assets ----------
	mediaDir := cfg.MediaDir
	if !filepath.IsAbs(mediaDir) {
		if abs, err := filepath.Abs(mediaDir); err == nil {
			mediaDir = abs
		}
	}
	log.Printf("[static] /static  -> ./web/static")
	log.Printf("[static] /uploads -> %s", mediaDir)

	app.Static("/static", "./web/static")
	// Guarded uploads to avoid traversal
	app.Get("/uploads/*", func(c *fiber.Ctx) error {
		full, ok := handlers.SafeMediaPath(mediaDir, c.Params("*"))
		if !ok {
			applog.Security(c, "uploads.traversal.block", map[string]any{"path": c.Params("*")})
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.SendFile(full, true)
	})

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg, provider)

	// Public pages
	app.Get("/", deps.PageHandler.Home)
	app.Get("/shop", deps.PageHandler.Shop)
	app.Get("/success", deps.PageHandler.Success)

	// API
	api := app.Group("/api")
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"uptime":    time.Since(start).Seconds(),
		})
	})
	api.Get("/placeholder", deps.PlaceholderHandler.Generate)

	// Products
	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/:id", deps.ProductHandler.Get)

	// Cart
	api.Get("/cart", deps.CartHandler.View)
	api.Post("/cart/items", deps.CartHandler.Add)
	api.Put("/cart/items/:id", deps.CartHandler.UpdateQuantity)
	api.Delete("/cart/items/:id", deps.CartHandler.Remove)
	api.Delete("/cart", deps.CartHandler.Clear)

	// Checkout & reconciliation
	checkoutLimiter := limiter.New(limiter.Config{
		Max:        15,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.checkout.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false, "message": "Rate limit exceeded, retry soon",
			})
		},
	})
	api.Post("/checkout", checkoutLimiter, deps.CheckoutHandler.Create)
	api.Post("/checkout/product", checkoutLimiter, deps.CheckoutHandler.CreateForProduct)
	api.Post("/checkout/session", deps.CheckoutHandler.ReconcileSession)

	// Provider webhook
	api.Post("/stripe/webhook", deps.WebhookHandler.Handle)

	// Admin (login throttled; everything else behind the bearer token)
	api.Post("/admin/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false, "message": "Too many attempts. Please try again later.",
			})
		},
	}), deps.AdminHandler.Login)

	admin := api.Group("/admin", handlers.RequireAdmin(deps.AdminHandler.Auth))
	admin.Get("/orders", deps.AdminHandler.ListOrders)
	admin.Delete("/orders", deps.AdminHandler.DeleteOrders)
	admin.Patch("/orders/:id/status", deps.AdminHandler.UpdateOrderStatus)
	admin.Post("/orders/:id/invoice", deps.AdminHandler.GenerateInvoice)
	admin.Get("/customers", deps.AdminHandler.ListCustomers)
	admin.Get("/db-status", deps.AdminHandler.DBStatus)

	api.Post("/upload", handlers.RequireAdmin(deps.AdminHandler.Auth), deps.UploadHandler.Upload)

	// Products admin mutations
	api.Post("/products", handlers.RequireAdmin(deps.AdminHandler.Auth), deps.ProductHandler.Create)
	api.Put("/products/:id", handlers.RequireAdmin(deps.AdminHandler.Auth), deps.ProductHandler.Update)
	api.Delete("/products/:id", handlers.RequireAdmin(deps.AdminHandler.Auth), deps.ProductHandler.Delete)

	// 404
	app.Use(func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api/") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false, "message": "Not found",
			})
		}
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}

var start = time.Now()
