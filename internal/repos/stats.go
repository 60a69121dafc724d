package repos

import "github.com/jmoiron/sqlx"

// TableCounts reports row counts for the admin database page.
func TableCounts(db *sqlx.DB) (map[string]int, error) {
	counts := map[string]int{}
	for _, table := range []string{"products", "customers", "orders", "order_items"} {
		var n int
		if err := db.Get(&n, `SELECT COUNT(*) FROM `+table); err != nil {
			return nil, err
		}
		counts[table] = n
	}
	return counts, nil
}
