/**
 * @description
 * Event payloads published to the message broker. Mail delivery and
 * downstream fulfilment are handled by external consumers; this service only
 * emits the events.
 */
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Routing keys on the commerce events exchange.
const (
	RoutingKeyAccountActivation    = "mail.account.activation"
	RoutingKeyPasswordReset        = "mail.password.reset"
	RoutingKeyOrderConfirmed       = "order.confirmed"
	RoutingKeySubscriptionCreated  = "subscription.created"
	RoutingKeySubscriptionCanceled = "subscription.cancelled"
)

// AccountActivationEvent asks the mail consumer to send an activation link.
type AccountActivationEvent struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	Token     string `json:"token"`
}

// PasswordResetEvent asks the mail consumer to send a reset link.
type PasswordResetEvent struct {
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// OrderConfirmedEvent announces a confirmed one-time order.
type OrderConfirmedEvent struct {
	OrderID   uuid.UUID `json:"order_id"`
	UserID    uuid.UUID `json:"user_id"`
	Total     int64     `json:"total"`
	ItemCount int       `json:"item_count"`
}

// SubscriptionCreatedEvent announces a newly created subscription.
type SubscriptionCreatedEvent struct {
	SubscriptionID uuid.UUID    `json:"subscription_id"`
	ClientID       uuid.UUID    `json:"client_id"`
	CoffeeID       string       `json:"coffee_id"`
	Plan           DeliveryPlan `json:"plan"`
	NextDelivery   time.Time    `json:"next_delivery"`
}

// SubscriptionCancelledEvent announces a cancelled subscription.
type SubscriptionCancelledEvent struct {
	SubscriptionID uuid.UUID `json:"subscription_id"`
	ClientID       uuid.UUID `json:"client_id"`
	EndDate        time.Time `json:"end_date"`
}
