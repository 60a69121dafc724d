package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"ctstudio/internal/config"
	"ctstudio/internal/http/handlers"
	"ctstudio/internal/payments"
	"ctstudio/internal/repos"
)

const testAdminToken = "test-admin-token"

// stubProvider replaces the Stripe client for handler tests.
type stubProvider struct {
	sessions map[string]payments.SessionDetail
	created  []payments.CheckoutItem
}

func (p *stubProvider) CreateCheckout(items []payments.CheckoutItem, successURL, cancelURL string) (payments.Session, error) {
	p.created = items
	return payments.Session{ID: "cs_stub", URL: "https://pay.example/cs_stub"}, nil
}

func (p *stubProvider) GetSession(id string) (payments.SessionDetail, error) {
	s, ok := p.sessions[id]
	if !ok {
		return payments.SessionDetail{}, errors.New("no such session")
	}
	return s, nil
}

// newTestApp wires the full route table against an in-memory database and
// the stub payment provider.
func newTestApp(t *testing.T, provider payments.Provider) *fiber.App {
	t.Helper()
	cfg := config.Config{
		SiteURL:          "https://ct-studio.example",
		AdminEmail:       "admin@ct-studio.test",
		AdminPassword:    "Passw0rd!",
		AdminToken:       testAdminToken,
		DefaultProductID: 1,
		MediaDir:         t.TempDir(),
	}
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	deps := handlers.NewDeps(db, cfg, provider)

	engine := html.New("../../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())

	app.Get("/", deps.PageHandler.Home)
	app.Get("/shop", deps.PageHandler.Shop)
	app.Get("/success", deps.PageHandler.Success)

	api := app.Group("/api")
	api.Get("/placeholder", deps.PlaceholderHandler.Generate)

	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/:id", deps.ProductHandler.Get)

	api.Get("/cart", deps.CartHandler.View)
	api.Post("/cart/items", deps.CartHandler.Add)
	api.Put("/cart/items/:id", deps.CartHandler.UpdateQuantity)
	api.Delete("/cart/items/:id", deps.CartHandler.Remove)
	api.Delete("/cart", deps.CartHandler.Clear)

	api.Post("/checkout", deps.CheckoutHandler.Create)
	api.Post("/checkout/product", deps.CheckoutHandler.CreateForProduct)
	api.Post("/checkout/session", deps.CheckoutHandler.ReconcileSession)

	api.Post("/stripe/webhook", deps.WebhookHandler.Handle)

	api.Post("/admin/login", deps.AdminHandler.Login)
	admin := api.Group("/admin", handlers.RequireAdmin(deps.AdminHandler.Auth))
	admin.Get("/orders", deps.AdminHandler.ListOrders)
	admin.Delete("/orders", deps.AdminHandler.DeleteOrders)
	admin.Patch("/orders/:id/status", deps.AdminHandler.UpdateOrderStatus)
	admin.Post("/orders/:id/invoice", deps.AdminHandler.GenerateInvoice)
	admin.Get("/customers", deps.AdminHandler.ListCustomers)
	admin.Get("/db-status", deps.AdminHandler.DBStatus)

	api.Post("/upload", handlers.RequireAdmin(deps.AdminHandler.Auth), deps.UploadHandler.Upload)
	api.Post("/products", handlers.RequireAdmin(deps.AdminHandler.Auth), deps.ProductHandler.Create)
	api.Put("/products/:id", handlers.RequireAdmin(deps.AdminHandler.Auth), deps.ProductHandler.Update)
	api.Delete("/products/:id", handlers.RequireAdmin(deps.AdminHandler.Auth), deps.ProductHandler.Delete)

	return app
}

func jsonReq(method, path string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func asAdmin(req *http.Request) *http.Request {
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+testAdminToken)
	return req
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("bad JSON %q: %v", raw, err)
	}
	return out
}
