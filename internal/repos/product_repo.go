package repos

import (
	"strings"

	"ctstudio/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, name, description, price, image_url, category, featured, available,
  created_at, COALESCE(updated_at,'') AS updated_at`

// ListAvailable returns the storefront catalog: featured first, then by name.
func (r *ProductRepo) ListAvailable() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE available = 1
	  ORDER BY featured DESC, name ASC
	`)
	return out, err
}

func (r *ProductRepo) ListByCategory(category string) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE category = ? AND available = 1
	  ORDER BY featured DESC, name ASC
	`, category)
	return out, err
}

// Get fetches by id regardless of availability, so soft-deleted products
// stay reachable for admin views and order history.
func (r *ProductRepo) Get(id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE id = ?
	`, id)
	return p, err
}

type ProductInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"imageUrl"`
	Category    *string  `json:"category"`
	Featured    *bool    `json:"featured"`
}

func (r *ProductRepo) Create(in ProductInput) (domain.Product, error) {
	featured := in.Featured != nil && *in.Featured
	res, err := r.db.Exec(`
	  INSERT INTO products(name, description, price, image_url, category, featured)
	  VALUES(?, ?, ?, ?, ?, ?)
	`, *in.Name, *in.Description, *in.Price, *in.ImageURL, *in.Category, featured)
	if err != nil {
		return domain.Product{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Product{}, err
	}
	return r.Get(id)
}

// Update builds a dynamic SET list from the provided fields only and
// always bumps updated_at. Returns sql.ErrNoRows when id is unknown.
func (r *ProductRepo) Update(id int64, in ProductInput) (domain.Product, error) {
	sets := []string{}
	args := []any{}
	if in.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *in.Name)
	}
	if in.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *in.Description)
	}
	if in.Price != nil {
		sets = append(sets, "price = ?")
		args = append(args, *in.Price)
	}
	if in.ImageURL != nil {
		sets = append(sets, "image_url = ?")
		args = append(args, *in.ImageURL)
	}
	if in.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *in.Category)
	}
	if in.Featured != nil {
		sets = append(sets, "featured = ?")
		args = append(args, *in.Featured)
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	if _, err := r.db.Exec(`UPDATE products SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...); err != nil {
		return domain.Product{}, err
	}
	return r.Get(id)
}

// SoftDelete marks the product unavailable instead of removing the row.
func (r *ProductRepo) SoftDelete(id int64) (bool, error) {
	res, err := r.db.Exec(`
	  UPDATE products SET available = 0, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// FindIDByName resolves a provider line-item description to a catalog
// product via a case-insensitive substring match on the name.
func (r *ProductRepo) FindIDByName(name string) (int64, error) {
	return findProductIDByName(r.db, name)
}

// findProductIDByName runs the fuzzy name match on any queryer so the
// reconciliation transaction shares the lookup.
func findProductIDByName(q sqlx.Queryer, name string) (int64, error) {
	var id int64
	err := sqlx.Get(q, &id, `
	  SELECT id FROM products WHERE LOWER(name) LIKE ? LIMIT 1
	`, "%"+strings.ToLower(name)+"%")
	return id, err
}
