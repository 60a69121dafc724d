package services

import (
	"database/sql"
	"time"

	"ctstudio/internal/domain"
	"ctstudio/internal/payments"
	"ctstudio/internal/repos"
)

type OrderService struct {
	Orders           *repos.OrderRepo
	Provider         payments.Provider
	DefaultProductID int64
}

func NewOrderService(orders *repos.OrderRepo, provider payments.Provider, defaultProductID int64) *OrderService {
	return &OrderService{Orders: orders, Provider: provider, DefaultProductID: defaultProductID}
}

// ReconcileResult carries the assembled order plus whether it actually
// lives in the database. When persistence failed, Order is a synthetic
// confirmation built from the session and SaveErr holds the cause.
type ReconcileResult struct {
	Order   domain.Order
	Saved   bool
	SaveErr error
}

// Reconcile converts a completed checkout session into persisted
// customer/order/order-item rows. It is idempotent per session id: both
// the client poll after redirect and the provider webhook funnel through
// here, and the unique session index makes the second caller read what
// the first one wrote.
func (s *OrderService) Reconcile(sessionID string) (ReconcileResult, error) {
	o, err := s.Orders.BySession(sessionID)
	if err == nil {
		return ReconcileResult{Order: o, Saved: true}, nil
	}
	if err != sql.ErrNoRows {
		return ReconcileResult{}, err
	}

	sess, err := s.Provider.GetSession(sessionID)
	if err != nil {
		return ReconcileResult{}, err
	}

	status := domain.StatusPending
	if sess.Paid() {
		status = domain.StatusCompleted
	}

	saved, err := s.Orders.SaveReconciled(sess, status, s.DefaultProductID)
	if err != nil {
		// Best-effort degradation: the caller still gets a confirmation
		// built from the session even though nothing was persisted.
		return ReconcileResult{Order: syntheticOrder(sess, status), SaveErr: err}, nil
	}
	return ReconcileResult{Order: saved, Saved: true}, nil
}

func syntheticOrder(sess payments.SessionDetail, status string) domain.Order {
	now := time.Now().UTC().Format(time.RFC3339)
	o := domain.Order{
		CustomerEmail:   sess.CustomerEmail,
		Total:           float64(sess.AmountTotal) / 100,
		Status:          status,
		CheckoutSession: sess.ID,
		CreatedAt:       now,
		UpdatedAt:       now,
		Items:           []domain.OrderItem{},
	}
	for _, line := range sess.Lines {
		qty := line.Quantity
		if qty < 1 {
			qty = 1
		}
		o.Items = append(o.Items, domain.OrderItem{
			ProductName: line.Description,
			Quantity:    int(qty),
			Price:       float64(line.AmountTotal) / 100 / float64(qty),
		})
	}
	return o
}
