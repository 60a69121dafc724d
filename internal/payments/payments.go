// Package payments wraps the hosted-checkout provider behind a small
// interface so services and tests do not depend on the Stripe SDK.
package payments

// CheckoutItem is one priced entry sent to the provider when a session
// is created. Price is in major currency units (euros).
type CheckoutItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// LineItem is one priced entry read back from a completed session.
// AmountTotal is in minor currency units (cents) for the whole line.
type LineItem struct {
	Description string
	AmountTotal int64
	Quantity    int64
}

// SessionDetail is the provider's view of a checkout session, expanded
// with line items and customer details.
type SessionDetail struct {
	ID              string
	PaymentIntent   string
	PaymentStatus   string
	AmountTotal     int64
	CustomerEmail   string
	CustomerName    string
	CustomerAddress string
	Lines           []LineItem
}

// Paid reports whether the provider considers the session settled.
func (s SessionDetail) Paid() bool { return s.PaymentStatus == "paid" }

// Session is what checkout initiation hands back to the browser.
type Session struct {
	ID  string `json:"sessionId"`
	URL string `json:"url"`
}

type Provider interface {
	// CreateCheckout requests a hosted checkout session for the given
	// items and returns its id and redirect URL.
	CreateCheckout(items []CheckoutItem, successURL, cancelURL string) (Session, error)
	// GetSession fetches session detail, expanded with line items and
	// customer details.
	GetSession(id string) (SessionDetail, error)
}
