package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatusConfirmed is the terminal status an order is created with in the
// stand-in payment flow. Cancellation and refunds are handled elsewhere.
const OrderStatusConfirmed = "CONFIRMED"

// ShippingAddress is the delivery address attached to an order.
type ShippingAddress struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Order is a single one-time purchase transaction. At most one order is
// created per checkout call, holding every one-time line of the cart.
type Order struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"userId"`
	Items           []CartItem      `json:"items"`
	Subtotal        int64           `json:"subtotal"`
	Shipping        int64           `json:"shipping"`
	Total           int64           `json:"total"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentRef      string          `json:"payment"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
}
