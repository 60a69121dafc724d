package validate_test

import (
	"testing"

	"ctstudio/internal/validate"
)

func TestEmail(t *testing.T) {
	if _, ok := validate.Email("kunde@example.com"); !ok {
		t.Fatal("valid address rejected")
	}
	for _, bad := range []string{"", "plainaddress", "a@b", "x@y.", "@example.com"} {
		if _, ok := validate.Email(bad); ok {
			t.Fatalf("accepted %q", bad)
		}
	}
}

func TestID(t *testing.T) {
	if id, ok := validate.ID(" 42 "); !ok || id != 42 {
		t.Fatalf("want 42, got %d ok=%v", id, ok)
	}
	for _, bad := range []string{"0", "-1", "abc", "", "1.5"} {
		if _, ok := validate.ID(bad); ok {
			t.Fatalf("accepted %q", bad)
		}
	}
}

func TestQtyClamp(t *testing.T) {
	if validate.Qty(-3) != 1 || validate.Qty(0) != 1 {
		t.Fatal("low quantities must clamp to 1")
	}
	if validate.Qty(500) != 50 {
		t.Fatal("high quantities must clamp to 50")
	}
	if validate.Qty(7) != 7 {
		t.Fatal("valid quantity altered")
	}
}

func TestPrice(t *testing.T) {
	if !validate.Price(0) || !validate.Price(999.99) {
		t.Fatal("valid price rejected")
	}
	if validate.Price(-0.01) || validate.Price(1_000_000) {
		t.Fatal("out-of-range price accepted")
	}
}
