package services

import (
	"errors"

	"ctstudio/internal/payments"
	"ctstudio/internal/validate"
)

var ErrNoItems = errors.New("no items to check out")

type CheckoutService struct {
	Provider payments.Provider
	SiteURL  string
}

func NewCheckoutService(provider payments.Provider, siteURL string) *CheckoutService {
	return &CheckoutService{Provider: provider, SiteURL: siteURL}
}

// Start requests a hosted checkout session for the given items (cart
// contents or a single product) and returns the redirect target. Failures
// surface to the caller; the user re-initiates, there is no retry.
func (s *CheckoutService) Start(items []payments.CheckoutItem) (payments.Session, error) {
	if len(items) == 0 {
		return payments.Session{}, ErrNoItems
	}
	for i := range items {
		if _, ok := validate.Name(items[i].Name); !ok {
			return payments.Session{}, errors.New("item name missing")
		}
		if !validate.Price(items[i].Price) {
			return payments.Session{}, errors.New("item price out of range")
		}
		items[i].Quantity = validate.Qty(items[i].Quantity)
	}

	successURL := s.SiteURL + "/success?session_id={CHECKOUT_SESSION_ID}"
	cancelURL := s.SiteURL + "/shop"
	return s.Provider.CreateCheckout(items, successURL, cancelURL)
}
