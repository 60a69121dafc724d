package domain

// Product categories offered by the studio.
const (
	CategoryWebsite   = "Website"
	CategoryECommerce = "E-Commerce"
	CategoryMarketing = "Marketing"
	CategoryDesign    = "Design"
	CategoryService   = "Service"
)

// Order lifecycle states.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

type Product struct {
	ID          int64   `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Description string  `db:"description" json:"description"`
	Price       float64 `db:"price" json:"price"`
	ImageURL    string  `db:"image_url" json:"imageUrl"`
	Category    string  `db:"category" json:"category"`
	Featured    bool    `db:"featured" json:"featured"`
	Available   bool    `db:"available" json:"available"`
	CreatedAt   string  `db:"created_at" json:"createdAt"`
	UpdatedAt   string  `db:"updated_at" json:"updatedAt"`
}

type Customer struct {
	ID        int64  `db:"id" json:"id"`
	Email     string `db:"email" json:"email"`
	Name      string `db:"name" json:"name,omitempty"`
	Address   string `db:"address" json:"address,omitempty"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

type Order struct {
	ID              int64       `db:"id" json:"id"`
	CustomerID      int64       `db:"customer_id" json:"customerId,omitempty"`
	CustomerEmail   string      `db:"customer_email" json:"customerEmail,omitempty"`
	Total           float64     `db:"total" json:"total"`
	Status          string      `db:"status" json:"status"`
	CheckoutSession string      `db:"checkout_session" json:"checkoutSession"`
	CreatedAt       string      `db:"created_at" json:"createdAt"`
	UpdatedAt       string      `db:"updated_at" json:"updatedAt"`
	Items           []OrderItem `db:"-" json:"items"`
}

type OrderItem struct {
	ID          int64   `db:"id" json:"id"`
	OrderID     int64   `db:"order_id" json:"orderId"`
	ProductID   int64   `db:"product_id" json:"productId"`
	ProductName string  `db:"product_name" json:"productName"`
	Quantity    int     `db:"quantity" json:"quantity"`
	Price       float64 `db:"price" json:"price"`
}

// ValidStatus reports whether s is one of the order lifecycle states.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ValidCategory reports whether s is a known product category.
func ValidCategory(s string) bool {
	switch s {
	case CategoryWebsite, CategoryECommerce, CategoryMarketing, CategoryDesign, CategoryService:
		return true
	}
	return false
}
