package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port             string
	DBDSN            string
	LogFile          string
	MediaDir         string
	SiteURL          string
	StripeSecretKey  string
	StripeWebhookKey string
	AdminEmail       string
	AdminPassword    string
	AdminToken       string
	DefaultProductID int64
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "ctstudio.db"
	} // sqlite file in project root
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./ctstudio.log"
	}
	media := os.Getenv("MEDIA_DIR")
	if media == "" {
		media = "./web/uploads"
	}
	site := os.Getenv("SITE_URL")
	if site == "" {
		site = "http://localhost:" + port
	}
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@ct-studio.test"
	}
	adminPass := os.Getenv("ADMIN_PASSWORD")
	if adminPass == "" {
		adminPass = "Passw0rd!"
	}
	adminToken := os.Getenv("ADMIN_TOKEN")
	if adminToken == "" {
		adminToken = "demo-admin-token"
	}
	defaultProduct := int64(1)
	if v := os.Getenv("DEFAULT_PRODUCT_ID"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			defaultProduct = n
		}
	}

	cfg := Config{
		Port:             port,
		DBDSN:            dsn,
		LogFile:          logFile,
		MediaDir:         media,
		SiteURL:          site,
		StripeSecretKey:  os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookKey: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		AdminEmail:       adminEmail,
		AdminPassword:    adminPass,
		AdminToken:       adminToken,
		DefaultProductID: defaultProduct,
	}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s LOG_FILE=%s SITE_URL=%s stripe=%t webhook_secret=%t",
		cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.LogFile, cfg.SiteURL, cfg.StripeSecretKey != "", cfg.StripeWebhookKey != "")
	return cfg
}
