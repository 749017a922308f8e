package domain

import "testing"

func TestClassification_ExplicitTagWins(t *testing.T) {
	cases := []struct {
		name         string
		item         CartItem
		subscription bool
	}{
		{"subscription tag", CartItem{PurchaseType: "subscription"}, true},
		{"recurring tag", CartItem{PurchaseType: "recurring"}, true},
		{"tag with noise", CartItem{PurchaseType: "  Subscription "}, true},
		{"one-time tag", CartItem{PurchaseType: "one-time"}, false},
		{"onetime spelling", CartItem{PurchaseType: "onetime"}, false},
		{"one_time spelling", CartItem{PurchaseType: "One_Time"}, false},
		{"unknown tag", CartItem{PurchaseType: "gift"}, false},
		{"unknown tag with cadence", CartItem{PurchaseType: "gift", DeliveryEvery: "weekly"}, false},
		{"no tag no cadence", CartItem{}, false},
		{"no tag with cadence", CartItem{DeliveryEvery: "2-weeks"}, true},
	}

	for _, tc := range cases {
		if got := tc.item.IsSubscription(); got != tc.subscription {
			t.Errorf("%s: IsSubscription() = %v, want %v", tc.name, got, tc.subscription)
		}
		// The two predicates must be mutually exclusive and exhaustive.
		if tc.item.IsSubscription() == tc.item.IsOneTime() {
			t.Errorf("%s: classification is not mutually exclusive", tc.name)
		}
	}
}

func TestSubtotal(t *testing.T) {
	items := []CartItem{
		{Price: 1250, Quantity: 2},
		{Price: 800, Quantity: 1},
		{Price: 500},              // missing quantity contributes nothing
		{Price: 300, Quantity: -1}, // negative quantity clamped to zero
	}
	if got := Subtotal(items); got != 3300 {
		t.Fatalf("Subtotal = %d, want 3300", got)
	}
}

func TestSubtotal_Empty(t *testing.T) {
	if got := Subtotal(nil); got != 0 {
		t.Fatalf("Subtotal(nil) = %d, want 0", got)
	}
}
