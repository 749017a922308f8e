package validation

import (
	"bytes"
	"net/http/httptest"
	"testing"
)

func TestBind_ValidCheckout(t *testing.T) {
	body := []byte(`{
		"items": [
			{"name": "Beans", "price": 1200, "quantity": 2, "purchaseType": "one-time"},
			{"roast": "dark", "price": 1500, "quantity": 1, "purchaseType": "subscription", "deliveryEvery": "weekly"}
		],
		"shippingAddress": {"line1": "1 Rue du Cafe", "city": "Lyon", "postalCode": "69001", "country": "FR"},
		"payment": "pay_123"
	}`)
	r := httptest.NewRequest("POST", "/api/checkout", bytes.NewReader(body))

	var req CheckoutRequest
	if err := Bind(r, New(), &req); err != nil {
		t.Fatalf("Bind returned error: %v", err)
	}
	if len(req.CartItems()) != 2 {
		t.Fatalf("expected 2 cart items, got %d", len(req.CartItems()))
	}
}

func TestBind_ToleratesExtraItemFields(t *testing.T) {
	// Storefront cart lines carry display-only extras; none of them may fail
	// the checkout.
	body := []byte(`{
		"items": [
			{"name": "Beans", "price": 1200, "quantity": 1, "purchaseType": "one-time",
			 "image": "/img/beans.jpg", "slug": "house-beans", "inStock": true}
		],
		"payment": "pay_123"
	}`)
	r := httptest.NewRequest("POST", "/api/checkout", bytes.NewReader(body))

	var req CheckoutRequest
	if err := Bind(r, New(), &req); err != nil {
		t.Fatalf("Bind returned error: %v", err)
	}
	items := req.CartItems()
	if len(items) != 1 {
		t.Fatalf("expected 1 cart item, got %d", len(items))
	}
	if items[0].Image != "/img/beans.jpg" {
		t.Fatalf("image = %q, want it carried into the cart item", items[0].Image)
	}
}

func TestBind_EmptyItemsRejected(t *testing.T) {
	body := []byte(`{"items": [], "payment": "pay_123"}`)
	r := httptest.NewRequest("POST", "/api/checkout", bytes.NewReader(body))

	var req CheckoutRequest
	if err := Bind(r, New(), &req); err == nil {
		t.Fatal("expected validation error for empty items")
	}
}

func TestBind_SubscriptionItemWithoutReferenceRejected(t *testing.T) {
	body := []byte(`{
		"items": [{"price": 1500, "purchaseType": "subscription", "deliveryEvery": "weekly"}],
		"payment": "pay_123"
	}`)
	r := httptest.NewRequest("POST", "/api/checkout", bytes.NewReader(body))

	var req CheckoutRequest
	if err := Bind(r, New(), &req); err == nil {
		t.Fatal("expected validation error for unresolvable subscription item")
	}
}

func TestBind_MalformedJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/checkout", bytes.NewReader([]byte(`{`)))

	var req CheckoutRequest
	if err := Bind(r, New(), &req); err == nil {
		t.Fatal("expected error for malformed body")
	}
}

func TestBind_RegisterFieldRules(t *testing.T) {
	cases := []struct {
		name string
		body string
		ok   bool
	}{
		{"valid", `{"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com", "password": "hunter22"}`, true},
		{"short first name", `{"firstName": "A", "lastName": "Lovelace", "email": "ada@example.com", "password": "hunter22"}`, false},
		{"bad email", `{"firstName": "Ada", "lastName": "Lovelace", "email": "nope", "password": "hunter22"}`, false},
		{"short password", `{"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com", "password": "12345"}`, false},
	}

	v := New()
	for _, tc := range cases {
		r := httptest.NewRequest("POST", "/api/auth/register", bytes.NewReader([]byte(tc.body)))
		var req RegisterRequest
		err := Bind(r, v, &req)
		if tc.ok && err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}
