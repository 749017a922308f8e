/**
 * @description
 * Subscription domain model and the derived lifecycle status computation used
 * by dashboard and history views.
 */
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Stored subscription status strings.
const (
	SubscriptionStatusActive    = "Active"
	SubscriptionStatusCancelled = "Cancelled"
)

// Derived display statuses. Persisted status strings can go stale relative to
// the passage of time, so reads derive the display status instead of trusting
// the stored one.
const (
	DerivedActive    = "active"
	DerivedCancelled = "cancelled"
	DerivedExpired   = "expired"
)

// Subscription is one recurring delivery plan tied to one coffee.
type Subscription struct {
	ID           uuid.UUID    `json:"id"`
	ClientID     uuid.UUID    `json:"client"`
	CoffeeID     string       `json:"coffee"`
	Plan         DeliveryPlan `json:"plan"`
	Grind        string       `json:"grind"`
	Weight       int          `json:"weight"`
	Price        int64        `json:"price"`
	NextDelivery time.Time    `json:"nextDelivery"`
	Status       string       `json:"status"`
	IsActive     bool         `json:"isActive"`
	IsCancelled  bool         `json:"isCancelled"`
	StartDate    time.Time    `json:"startDate"`
	EndDate      *time.Time   `json:"endDate,omitempty"`
}

// DeriveStatus computes the display status of the subscription at `now`.
// Cancellation wins over everything; an "active" subscription with no end date
// stays active; an elapsed end date means expired even when the stored status
// still says active.
func (s Subscription) DeriveStatus(now time.Time) string {
	status := strings.ToLower(strings.TrimSpace(s.Status))
	if s.IsCancelled || status == "cancelled" {
		return DerivedCancelled
	}
	if status == "active" && s.EndDate == nil {
		return DerivedActive
	}
	if s.EndDate != nil && s.EndDate.Before(now) {
		return DerivedExpired
	}
	if status == "active" {
		return DerivedActive
	}
	return DerivedExpired
}
