/**
 * @description
 * This file defines the transient cart item submitted at checkout and the
 * purchase classification rules that split a cart into one-time and
 * subscription lines.
 */
package domain

import "strings"

// CartItem is a single cart line as submitted by the storefront. It is never
// persisted on its own: one-time lines are embedded into an Order, subscription
// lines become Subscription records.
type CartItem struct {
	ProductID       string `json:"productId,omitempty"`
	CoffeeID        string `json:"coffeeId,omitempty"`
	SourceProductID string `json:"sourceProductId,omitempty"`
	Name            string `json:"name,omitempty"`
	Roast           string `json:"roast,omitempty"`
	Price           int64  `json:"price"`
	Quantity        int    `json:"quantity"`
	PurchaseType    string `json:"purchaseType,omitempty"`
	DeliveryEvery   string `json:"deliveryEvery,omitempty"`
	Grind           string `json:"grind,omitempty"`
	Size            string `json:"size,omitempty"`
	// Image is display-only; it rides along into the order line items so
	// order history can render without a catalog lookup.
	Image string `json:"image,omitempty"`
}

// DefaultGrind is applied when a subscription line carries no grind style.
const DefaultGrind = "whole-bean"

// Normalize lowercases and trims a user-supplied token.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// normalizePurchaseType additionally strips separators so spelling variants
// such as "one-time" and "onetime" compare equal.
func normalizePurchaseType(s string) string {
	t := Normalize(s)
	t = strings.ReplaceAll(t, "-", "")
	t = strings.ReplaceAll(t, "_", "")
	t = strings.ReplaceAll(t, " ", "")
	return t
}

// IsSubscription reports whether the item establishes a recurring delivery.
// The explicit purchase type tag wins; when the tag is absent, the presence of
// a delivery cadence marks the line as a subscription.
func (it CartItem) IsSubscription() bool {
	switch normalizePurchaseType(it.PurchaseType) {
	case "subscription", "recurring":
		return true
	case "":
		return strings.TrimSpace(it.DeliveryEvery) != ""
	}
	return false
}

// IsOneTime reports whether the item is bought once. Unrecognized purchase
// type tags land here so every item gets a deterministic bucket.
func (it CartItem) IsOneTime() bool {
	return !it.IsSubscription()
}

// Subtotal sums price times quantity over the given items. A missing quantity
// contributes nothing, matching how order totals are recomputed on read.
func Subtotal(items []CartItem) int64 {
	var sum int64
	for _, it := range items {
		qty := it.Quantity
		if qty < 0 {
			qty = 0
		}
		sum += it.Price * int64(qty)
	}
	return sum
}
