package handlers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestProductListAndCategoryFilter(t *testing.T) {
	app := newTestApp(t, &stubProvider{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/products", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	body := decode(t, resp)
	if body["success"] != true {
		t.Fatalf("bad envelope: %v", body)
	}
	if len(body["products"].([]any)) != 6 {
		t.Fatalf("want 6 seeded products, got %v", body["products"])
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/api/products?category=Website", nil))
	if err != nil {
		t.Fatal(err)
	}
	if n := len(decode(t, resp)["products"].([]any)); n != 2 {
		t.Fatalf("want 2 Website products, got %d", n)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/api/products?category=Gadgets", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown category: want 400, got %d", resp.StatusCode)
	}
}

func TestProductGetValidation(t *testing.T) {
	app := newTestApp(t, &stubProvider{})

	resp, _ := app.Test(httptest.NewRequest("GET", "/api/products/abc", nil))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400 for non-numeric id, got %d", resp.StatusCode)
	}
	resp, _ = app.Test(httptest.NewRequest("GET", "/api/products/99999", nil))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("want 404 for unknown id, got %d", resp.StatusCode)
	}
}

func TestProductMutationsRequireBearerToken(t *testing.T) {
	app := newTestApp(t, &stubProvider{})

	for _, tc := range []struct{ method, path string }{
		{"POST", "/api/products"},
		{"PUT", "/api/products/1"},
		{"DELETE", "/api/products/1"},
		{"GET", "/api/admin/orders"},
		{"DELETE", "/api/admin/orders"},
		{"GET", "/api/admin/customers"},
		{"GET", "/api/admin/db-status"},
		{"POST", "/api/upload"},
	} {
		resp, err := app.Test(jsonReq(tc.method, tc.path, nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s %s: want 401 without token, got %d", tc.method, tc.path, resp.StatusCode)
		}
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/api/admin/orders", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("missing header: want 401, got %d", resp.StatusCode)
	}
}

func TestProductCreateUpdateDelete(t *testing.T) {
	app := newTestApp(t, &stubProvider{})

	// Missing required fields
	resp, err := app.Test(asAdmin(jsonReq("POST", "/api/products", map[string]any{"name": "Nur ein Name"})))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400 for partial create, got %d", resp.StatusCode)
	}

	resp, err = app.Test(asAdmin(jsonReq("POST", "/api/products", map[string]any{
		"name":        "Landingpage Express",
		"description": "Einseitige Landingpage in 5 Tagen.",
		"price":       249,
		"imageUrl":    "/api/placeholder?text=Landingpage",
		"category":    "Website",
		"featured":    false,
	})))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("want 201, got %d", resp.StatusCode)
	}
	created := decode(t, resp)["product"].(map[string]any)
	id := int64(created["id"].(float64))

	// Partial update touches only the price
	resp, err = app.Test(asAdmin(jsonReq("PUT", fmt.Sprintf("/api/products/%d", id), map[string]any{"price": 299})))
	if err != nil {
		t.Fatal(err)
	}
	updated := decode(t, resp)["product"].(map[string]any)
	if updated["price"].(float64) != 299 || updated["name"] != "Landingpage Express" {
		t.Fatalf("bad update: %v", updated)
	}

	// Invalid category rejected before touching the database
	resp, _ = app.Test(asAdmin(jsonReq("PUT", fmt.Sprintf("/api/products/%d", id), map[string]any{"category": "Gadgets"})))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400 for bad category, got %d", resp.StatusCode)
	}

	// Soft delete: gone from the list, still fetchable by id
	resp, err = app.Test(asAdmin(jsonReq("DELETE", fmt.Sprintf("/api/products/%d", id), nil)))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200 delete, got %d", resp.StatusCode)
	}

	resp, _ = app.Test(httptest.NewRequest("GET", "/api/products", nil))
	for _, p := range decode(t, resp)["products"].([]any) {
		if int64(p.(map[string]any)["id"].(float64)) == id {
			t.Fatal("soft-deleted product still in catalog")
		}
	}
	resp, _ = app.Test(httptest.NewRequest("GET", fmt.Sprintf("/api/products/%d", id), nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("direct get of soft-deleted product: want 200, got %d", resp.StatusCode)
	}

	resp, _ = app.Test(asAdmin(jsonReq("DELETE", "/api/products/99999", nil)))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("want 404 for unknown id, got %d", resp.StatusCode)
	}
}
