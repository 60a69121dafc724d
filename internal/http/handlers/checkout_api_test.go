package handlers_test

import (
	"net/http"
	"testing"

	"ctstudio/internal/payments"
)

func paidStubSession(id string) payments.SessionDetail {
	return payments.SessionDetail{
		ID:            id,
		PaymentStatus: "paid",
		AmountTotal:   99900,
		CustomerEmail: "kunde@example.com",
		CustomerName:  "Max Mustermann",
		Lines: []payments.LineItem{
			{Description: "Business Website", AmountTotal: 99900, Quantity: 1},
		},
	}
}

func TestCheckoutCreate(t *testing.T) {
	provider := &stubProvider{}
	app := newTestApp(t, provider)

	resp, err := app.Test(jsonReq("POST", "/api/checkout", map[string]any{"items": []any{}}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("empty items: want 400, got %d", resp.StatusCode)
	}

	resp, err = app.Test(jsonReq("POST", "/api/checkout", map[string]any{
		"items": []map[string]any{{"id": "2", "name": "Business Website", "price": 999, "quantity": 1}},
	}))
	if err != nil {
		t.Fatal(err)
	}
	body := decode(t, resp)
	if body["success"] != true || body["url"] != "https://pay.example/cs_stub" {
		t.Fatalf("bad checkout response: %v", body)
	}
}

func TestCheckoutForProductUsesCatalogPrice(t *testing.T) {
	provider := &stubProvider{}
	app := newTestApp(t, provider)

	resp, err := app.Test(jsonReq("POST", "/api/checkout/product", map[string]any{"id": 2, "quantity": 1}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	if len(provider.created) != 1 || provider.created[0].Price != 999 {
		t.Fatalf("client did not get the catalog price: %+v", provider.created)
	}

	resp, _ = app.Test(jsonReq("POST", "/api/checkout/product", map[string]any{"id": 99999}))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown product: want 404, got %d", resp.StatusCode)
	}
}

func TestReconcileSessionEndpoint(t *testing.T) {
	provider := &stubProvider{sessions: map[string]payments.SessionDetail{
		"cs_poll": paidStubSession("cs_poll"),
	}}
	app := newTestApp(t, provider)

	resp, err := app.Test(jsonReq("POST", "/api/checkout/session", map[string]any{}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing session id: want 400, got %d", resp.StatusCode)
	}

	resp, err = app.Test(jsonReq("POST", "/api/checkout/session", map[string]any{"sessionId": "cs_poll"}))
	if err != nil {
		t.Fatal(err)
	}
	body := decode(t, resp)
	if body["success"] != true || body["saved"] != true {
		t.Fatalf("bad reconcile response: %v", body)
	}
	order := body["order"].(map[string]any)
	if order["total"].(float64) != 999 || order["status"] != "completed" {
		t.Fatalf("bad order payload: %v", order)
	}

	// Polling again returns the identical persisted order.
	resp, err = app.Test(jsonReq("POST", "/api/checkout/session", map[string]any{"sessionId": "cs_poll"}))
	if err != nil {
		t.Fatal(err)
	}
	again := decode(t, resp)["order"].(map[string]any)
	if again["id"].(float64) != order["id"].(float64) {
		t.Fatalf("second poll produced a different order: %v vs %v", again["id"], order["id"])
	}

	resp, _ = app.Test(jsonReq("POST", "/api/checkout/session", map[string]any{"sessionId": "cs_unknown"}))
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("provider failure: want 500, got %d", resp.StatusCode)
	}
}

func TestWebhookReconcilesCompletedSession(t *testing.T) {
	provider := &stubProvider{sessions: map[string]payments.SessionDetail{
		"cs_hook": paidStubSession("cs_hook"),
	}}
	app := newTestApp(t, provider)

	// No webhook secret configured in tests: payload accepted unverified.
	resp, err := app.Test(jsonReq("POST", "/api/stripe/webhook", map[string]any{
		"type": "checkout.session.completed",
		"data": map[string]any{"object": map[string]any{"id": "cs_hook"}},
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK || decode(t, resp)["received"] != true {
		t.Fatalf("webhook not acknowledged: %d", resp.StatusCode)
	}

	resp, err = app.Test(asAdmin(jsonReq("GET", "/api/admin/orders", nil)))
	if err != nil {
		t.Fatal(err)
	}
	orders := decode(t, resp)["orders"].([]any)
	if len(orders) != 1 {
		t.Fatalf("want one reconciled order, got %d", len(orders))
	}
	if orders[0].(map[string]any)["checkoutSession"] != "cs_hook" {
		t.Fatalf("wrong session recorded: %v", orders[0])
	}
}

func TestWebhookIgnoresOtherEventsAndFailsOnMissingSession(t *testing.T) {
	app := newTestApp(t, &stubProvider{})

	resp, err := app.Test(jsonReq("POST", "/api/stripe/webhook", map[string]any{
		"type": "invoice.created",
		"data": map[string]any{"object": map[string]any{"id": "in_123"}},
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("ignored event: want 200, got %d", resp.StatusCode)
	}

	// Unknown session: non-2xx so the provider redelivers later.
	resp, _ = app.Test(jsonReq("POST", "/api/stripe/webhook", map[string]any{
		"type": "checkout.session.completed",
		"data": map[string]any{"object": map[string]any{"id": "cs_gone"}},
	}))
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("want 500 for failed reconcile, got %d", resp.StatusCode)
	}
}
