package repos

import (
	"database/sql"

	"ctstudio/internal/domain"
	"ctstudio/internal/payments"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderCols = `
  o.id, COALESCE(o.customer_id,0) AS customer_id, COALESCE(c.email,'') AS customer_email,
  o.total, o.status, o.checkout_session, o.created_at, COALESCE(o.updated_at,'') AS updated_at`

const orderFrom = `
  FROM orders o LEFT JOIN customers c ON c.id = o.customer_id`

func (r *OrderRepo) Get(id int64) (domain.Order, error) {
	var o domain.Order
	if err := r.db.Get(&o, `SELECT `+orderCols+orderFrom+` WHERE o.id = ?`, id); err != nil {
		return domain.Order{}, err
	}
	items, err := r.items(o.ID)
	if err != nil {
		return domain.Order{}, err
	}
	o.Items = items
	return o, nil
}

// BySession looks up an order by its checkout session identifier.
func (r *OrderRepo) BySession(sessionID string) (domain.Order, error) {
	var o domain.Order
	if err := r.db.Get(&o, `SELECT `+orderCols+orderFrom+` WHERE o.checkout_session = ?`, sessionID); err != nil {
		return domain.Order{}, err
	}
	items, err := r.items(o.ID)
	if err != nil {
		return domain.Order{}, err
	}
	o.Items = items
	return o, nil
}

func (r *OrderRepo) items(orderID int64) ([]domain.OrderItem, error) {
	items := []domain.OrderItem{}
	err := r.db.Select(&items, `
	  SELECT oi.id, oi.order_id, oi.product_id, p.name AS product_name, oi.quantity, oi.price
	  FROM order_items oi
	  JOIN products p ON p.id = oi.product_id
	  WHERE oi.order_id = ?
	  ORDER BY oi.id
	`, orderID)
	return items, err
}

// ListLatest returns the newest orders with their items, for the admin view.
func (r *OrderRepo) ListLatest(limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	orders := []domain.Order{}
	err := r.db.Select(&orders, `
	  SELECT `+orderCols+orderFrom+`
	  ORDER BY datetime(o.created_at) DESC
	  LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		items, err := r.items(orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

// UpdateStatus sets a validated status and bumps updated_at. Returns false
// when the order does not exist.
func (r *OrderRepo) UpdateStatus(id int64, status string) (bool, error) {
	res, err := r.db.Exec(`
	  UPDATE orders SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, status, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// DeleteAll removes every order item and order in one transaction and
// returns the number of orders removed.
func (r *OrderRepo) DeleteAll() (int64, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var count int64
	if err := tx.Get(&count, `SELECT COUNT(*) FROM orders`); err != nil {
		return 0, err
	}
	if _, err := tx.Exec(`DELETE FROM order_items`); err != nil {
		return 0, err
	}
	if _, err := tx.Exec(`DELETE FROM orders`); err != nil {
		return 0, err
	}
	return count, tx.Commit()
}

// SaveReconciled persists a completed checkout session as customer, order
// and order-item rows in a single transaction. The UNIQUE index on
// checkout_session makes the insert idempotent: when a concurrent
// reconciliation already stored the order, the existing rows win and are
// returned untouched.
func (r *OrderRepo) SaveReconciled(sess payments.SessionDetail, status string, defaultProductID int64) (domain.Order, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return domain.Order{}, err
	}
	defer func() { _ = tx.Rollback() }()

	// Customer: look up by email, create on first checkout.
	var customerID sql.NullInt64
	if sess.CustomerEmail != "" {
		err := tx.Get(&customerID.Int64, `SELECT id FROM customers WHERE LOWER(email) = LOWER(?)`, sess.CustomerEmail)
		switch err {
		case nil:
			customerID.Valid = true
		case sql.ErrNoRows:
			res, err := tx.Exec(`
			  INSERT INTO customers(email, name, address) VALUES(?, NULLIF(?,''), NULLIF(?,''))
			`, sess.CustomerEmail, sess.CustomerName, sess.CustomerAddress)
			if err != nil {
				return domain.Order{}, err
			}
			if customerID.Int64, err = res.LastInsertId(); err != nil {
				return domain.Order{}, err
			}
			customerID.Valid = true
		default:
			return domain.Order{}, err
		}
	}

	total := float64(sess.AmountTotal) / 100

	res, err := tx.Exec(`
	  INSERT INTO orders(customer_id, total, status, checkout_session)
	  VALUES(?, ?, ?, ?)
	  ON CONFLICT(checkout_session) DO NOTHING
	`, customerID, total, status, sess.ID)
	if err != nil {
		return domain.Order{}, err
	}

	var orderID int64
	if n, _ := res.RowsAffected(); n == 0 {
		// Lost the race: another writer stored this session already.
		if err := tx.Get(&orderID, `SELECT id FROM orders WHERE checkout_session = ?`, sess.ID); err != nil {
			return domain.Order{}, err
		}
		if err := tx.Commit(); err != nil {
			return domain.Order{}, err
		}
		return r.Get(orderID)
	}
	if orderID, err = res.LastInsertId(); err != nil {
		return domain.Order{}, err
	}

	for _, line := range sess.Lines {
		qty := line.Quantity
		if qty < 1 {
			qty = 1
		}
		productID := defaultProductID
		matched, err := findProductIDByName(tx, line.Description)
		if err == nil {
			productID = matched
		} else if err != sql.ErrNoRows {
			return domain.Order{}, err
		}
		unit := float64(line.AmountTotal) / 100 / float64(qty)
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id, product_id, quantity, price) VALUES(?, ?, ?, ?)
		`, orderID, productID, qty, unit); err != nil {
			return domain.Order{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.Order{}, err
	}
	return r.Get(orderID)
}
