package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed the service catalog if the DB is empty (idempotent; safe on every start)
	if err := seedProducts(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Products
CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  description TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price >= 0),
  image_url TEXT NOT NULL,
  category TEXT NOT NULL CHECK (category IN ('Website','E-Commerce','Marketing','Design','Service')),
  featured INTEGER NOT NULL DEFAULT 0,
  available INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
CREATE INDEX IF NOT EXISTS idx_products_name     ON products(LOWER(name));

-- Customers
CREATE TABLE IF NOT EXISTS customers(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  email TEXT NOT NULL UNIQUE,
  name TEXT,
  address TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_customers_email_nocase ON customers(LOWER(email));

-- Orders. checkout_session is UNIQUE so a client poll racing the webhook
-- cannot double-insert the same checkout.
CREATE TABLE IF NOT EXISTS orders(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  customer_id INTEGER REFERENCES customers(id),
  total NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','processing','completed','cancelled')),
  checkout_session TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_checkout_session ON orders(checkout_session);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

CREATE TABLE IF NOT EXISTS order_items(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id INTEGER NOT NULL REFERENCES products(id),
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  price NUMERIC NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedProducts(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting catalog products")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO products(name,description,price,image_url,category,featured) VALUES
	  ('Starter Website','Eine einfache, responsive Website mit bis zu 5 Seiten für kleine Unternehmen.',499,
	   '/api/placeholder?width=800&height=600&text=Starter%20Website&bg=hsl(270,60%,30%)','Website',1),
	  ('Business Website','Professionelle Website mit bis zu 10 Seiten, Kontaktformular und CMS.',999,
	   '/api/placeholder?width=800&height=600&text=Business%20Website&bg=hsl(220,60%,30%)','Website',1),
	  ('E-Commerce Lösung','Vollständiger Online-Shop mit Produktverwaltung und Zahlungsanbindung.',1499,
	   '/api/placeholder?width=800&height=600&text=E-Commerce&bg=hsl(160,60%,30%)','E-Commerce',1),
	  ('Premium SEO Paket','Suchmaschinenoptimierung mit Keyword-Analyse und monatlichem Reporting.',299,
	   '/api/placeholder?width=800&height=600&text=SEO%20Paket&bg=hsl(30,60%,30%)','Marketing',0),
	  ('Logo & Branding','Logo-Design mit Farbpalette und Styleguide.',399,
	   '/api/placeholder?width=800&height=600&text=Branding&bg=hsl(330,60%,30%)','Design',0),
	  ('Wartung & Support','Monatliche Updates, Backups und technischer Support.',49,
	   '/api/placeholder?width=800&height=600&text=Support&bg=hsl(200,60%,30%)','Service',0)`)
	return tx.Commit()
}
