package repos

import (
	"ctstudio/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CustomerRepo struct{ db *sqlx.DB }

func NewCustomerRepo(db *sqlx.DB) *CustomerRepo { return &CustomerRepo{db: db} }

const customerCols = `
  id, email, COALESCE(name,'') AS name, COALESCE(address,'') AS address, created_at`

func (r *CustomerRepo) ByEmail(email string) (domain.Customer, error) {
	var c domain.Customer
	err := r.db.Get(&c, `
	  SELECT `+customerCols+`
	  FROM customers WHERE LOWER(email) = LOWER(?)
	`, email)
	return c, err
}

func (r *CustomerRepo) Create(email, name, address string) (int64, error) {
	res, err := r.db.Exec(`
	  INSERT INTO customers(email, name, address) VALUES(?, NULLIF(?,''), NULLIF(?,''))
	`, email, name, address)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *CustomerRepo) List() ([]domain.Customer, error) {
	var out []domain.Customer
	err := r.db.Select(&out, `
	  SELECT `+customerCols+`
	  FROM customers
	  ORDER BY datetime(created_at) DESC
	`)
	return out, err
}
