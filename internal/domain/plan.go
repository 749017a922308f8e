/**
 * @description
 * Delivery cadence planning: normalizing a user-supplied delivery frequency
 * into a fixed plan enumeration, computing the next delivery date for a plan,
 * and mapping bag size to shipped weight.
 */
package domain

import "time"

// DeliveryPlan is the recurring interval at which a subscription redelivers.
type DeliveryPlan string

const (
	PlanWeekly      DeliveryPlan = "Weekly"
	PlanBiWeekly    DeliveryPlan = "Bi-Weekly"
	PlanEvery3Weeks DeliveryPlan = "Every-3-Weeks"
	PlanMonthly     DeliveryPlan = "Monthly"
)

// MapDeliveryPlan normalizes a cadence token into a DeliveryPlan. Unrecognized
// tokens map to Monthly.
func MapDeliveryPlan(deliveryEvery string) DeliveryPlan {
	switch Normalize(deliveryEvery) {
	case "1-week", "weekly":
		return PlanWeekly
	case "2-weeks", "bi-weekly", "biweekly":
		return PlanBiWeekly
	case "3-weeks":
		return PlanEvery3Weeks
	case "1-month", "monthly":
		return PlanMonthly
	}
	return PlanMonthly
}

// NextDelivery computes the delivery date following `from` for a plan. The
// four known plans add a fixed number of calendar days. Any other plan name
// falls back to a quarterly offset with calendar month arithmetic; checkout
// never produces such a plan (MapDeliveryPlan defaults to Monthly), so the
// quarterly branch only applies to plan values persisted by earlier systems.
func NextDelivery(plan DeliveryPlan, from time.Time) time.Time {
	switch plan {
	case PlanWeekly:
		return from.AddDate(0, 0, 7)
	case PlanBiWeekly:
		return from.AddDate(0, 0, 14)
	case PlanEvery3Weeks:
		return from.AddDate(0, 0, 21)
	case PlanMonthly:
		return from.AddDate(0, 0, 30)
	}
	return from.AddDate(0, 3, 0)
}

// MapWeight returns the shipped weight in grams for a bag size and quantity.
// Quantity is floored to 1.
func MapWeight(size string, quantity int) int {
	unit := 500
	switch Normalize(size) {
	case "small":
		unit = 250
	case "large":
		unit = 1000
	}
	if quantity < 1 {
		quantity = 1
	}
	return unit * quantity
}

// LinePrice returns the recurring price for a subscription line: unit price
// times quantity, quantity floored to 1.
func LinePrice(unitPrice int64, quantity int) int64 {
	if quantity < 1 {
		quantity = 1
	}
	return unitPrice * int64(quantity)
}
