package payments

import (
	"encoding/json"
	"math"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/checkout/session"
	"github.com/stripe/stripe-go/v80/webhook"
)

// StripeProvider talks to the Stripe API using the package-level key.
type StripeProvider struct{}

func NewStripe(secretKey string) *StripeProvider {
	stripe.Key = secretKey
	return &StripeProvider{}
}

func (p *StripeProvider) CreateCheckout(items []CheckoutItem, successURL, cancelURL string) (Session, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, it := range items {
		pd := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(it.Name),
		}
		if it.Description != "" {
			pd.Description = stripe.String(it.Description)
		}
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String("eur"),
				UnitAmount:  stripe.Int64(int64(math.Round(it.Price * 100))),
				ProductData: pd,
			},
			Quantity: stripe.Int64(int64(it.Quantity)),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:                     stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:                lineItems,
		SuccessURL:               stripe.String(successURL),
		CancelURL:                stripe.String(cancelURL),
		BillingAddressCollection: stripe.String("required"),
		ShippingAddressCollection: &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice([]string{"DE", "AT", "CH"}),
		},
		Locale: stripe.String("de"),
	}

	s, err := session.New(params)
	if err != nil {
		return Session{}, err
	}
	return Session{ID: s.ID, URL: s.URL}, nil
}

func (p *StripeProvider) GetSession(id string) (SessionDetail, error) {
	params := &stripe.CheckoutSessionParams{}
	params.AddExpand("line_items")
	params.AddExpand("customer_details")

	s, err := session.Get(id, params)
	if err != nil {
		return SessionDetail{}, err
	}
	return sessionDetail(s), nil
}

func sessionDetail(s *stripe.CheckoutSession) SessionDetail {
	d := SessionDetail{
		ID:            s.ID,
		PaymentStatus: string(s.PaymentStatus),
		AmountTotal:   s.AmountTotal,
	}
	if s.PaymentIntent != nil {
		d.PaymentIntent = s.PaymentIntent.ID
	}
	if cd := s.CustomerDetails; cd != nil {
		d.CustomerEmail = cd.Email
		d.CustomerName = cd.Name
		if a := cd.Address; a != nil && a.Line1 != "" {
			d.CustomerAddress = a.Line1 + ", " + a.PostalCode + " " + a.City
		}
	}
	if s.LineItems != nil {
		for _, li := range s.LineItems.Data {
			d.Lines = append(d.Lines, LineItem{
				Description: li.Description,
				AmountTotal: li.AmountTotal,
				Quantity:    li.Quantity,
			})
		}
	}
	return d
}

// WebhookEvent is the subset of a provider event the handlers dispatch on.
type WebhookEvent struct {
	Type      string
	SessionID string
	ObjectID  string
}

// ParseWebhook verifies the payload signature when a secret is configured
// and extracts the event type plus the id of the affected object. With no
// secret the payload is parsed unverified; callers should log a warning.
func ParseWebhook(payload []byte, sigHeader, secret string) (WebhookEvent, error) {
	var ev stripe.Event
	if secret != "" {
		verified, err := webhook.ConstructEventWithOptions(payload, sigHeader, secret,
			webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
		if err != nil {
			return WebhookEvent{}, err
		}
		ev = verified
	} else if err := json.Unmarshal(payload, &ev); err != nil {
		return WebhookEvent{}, err
	}

	out := WebhookEvent{Type: string(ev.Type)}
	var obj struct {
		ID string `json:"id"`
	}
	if ev.Data != nil {
		_ = json.Unmarshal(ev.Data.Raw, &obj)
	}
	out.ObjectID = obj.ID
	if out.Type == "checkout.session.completed" {
		out.SessionID = obj.ID
	}
	return out, nil
}
