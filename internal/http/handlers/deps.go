package handlers

import (
	"ctstudio/internal/config"
	"ctstudio/internal/payments"
	"ctstudio/internal/repos"
	"ctstudio/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	PageHandler        *PageHandler
	ProductHandler     *ProductHandler
	CartHandler        *CartHandler
	CheckoutHandler    *CheckoutHandler
	WebhookHandler     *WebhookHandler
	AdminHandler       *AdminHandler
	UploadHandler      *UploadHandler
	PlaceholderHandler *PlaceholderHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, provider payments.Provider) *Deps {
	prodRepo := repos.NewProductRepo(db)
	custRepo := repos.NewCustomerRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo)
	checkoutSvc := services.NewCheckoutService(provider, cfg.SiteURL)
	orderSvc := services.NewOrderService(orderRepo, provider, cfg.DefaultProductID)

	return &Deps{
		PageHandler:        &PageHandler{Catalog: catalogSvc},
		ProductHandler:     &ProductHandler{Catalog: catalogSvc},
		CartHandler:        &CartHandler{},
		CheckoutHandler:    &CheckoutHandler{Checkout: checkoutSvc, Orders: orderSvc, Catalog: catalogSvc},
		WebhookHandler:     &WebhookHandler{Orders: orderSvc, WebhookSecret: cfg.StripeWebhookKey},
		AdminHandler:       &AdminHandler{Orders: orderRepo, Customers: custRepo, DB: db, Auth: NewAdminAuth(cfg)},
		UploadHandler:      &UploadHandler{MediaDir: cfg.MediaDir},
		PlaceholderHandler: &PlaceholderHandler{},
	}
}
