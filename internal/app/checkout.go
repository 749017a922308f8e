/**
 * @description
 * Checkout assembler: partitions a cart into one-time and subscription lines,
 * resolves each subscription line to a catalog coffee, plans its delivery
 * cadence, and persists the resulting order and subscriptions atomically.
 */
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/roastline/commerce-service/internal/domain"
	"github.com/roastline/commerce-service/internal/store"
)

var (
	// ErrEmptyCart is returned when checkout is called with no items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrUnresolvedProduct is returned when a subscription item cannot be
	// mapped to a catalog coffee. The whole checkout fails: silently charging
	// for an unfulfillable subscription is worse than rejecting the call.
	ErrUnresolvedProduct = errors.New("unable to resolve product for subscription item")
)

// catalog ids are 24 hexadecimal characters; client-supplied references may
// carry surrounding decoration, so the id is extracted by pattern, not
// compared verbatim.
var catalogIDPattern = regexp.MustCompile(`[a-fA-F0-9]{24}`)

// EventPublisher publishes domain events to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
}

// CheckoutResult is what a successful checkout produced: at most one order
// and zero or more subscriptions.
type CheckoutResult struct {
	Order         *domain.Order         `json:"order"`
	Subscriptions []domain.Subscription `json:"subscriptions"`
}

// CheckoutService orchestrates the checkout flow.
type CheckoutService struct {
	repo     store.Repository
	producer EventPublisher
	logger   *slog.Logger
	now      func() time.Time
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(repo store.Repository, producer EventPublisher, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{repo: repo, producer: producer, logger: logger, now: time.Now}
}

// Checkout runs the stand-in payment flow for a cart. One-time items are
// aggregated into a single confirmed order; each subscription item becomes its
// own subscription record. Every subscription item must resolve to a catalog
// coffee before anything is written, and all writes share one transaction.
func (s *CheckoutService) Checkout(ctx context.Context, userID uuid.UUID, items []domain.CartItem, address domain.ShippingAddress, paymentRef string) (*CheckoutResult, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	var oneTime, recurring []domain.CartItem
	for _, it := range items {
		if it.IsSubscription() {
			recurring = append(recurring, it)
		} else {
			oneTime = append(oneTime, it)
		}
	}

	now := s.now()

	var order *domain.Order
	if len(oneTime) > 0 {
		subtotal := domain.Subtotal(oneTime)
		var shipping int64 // shipping calculation is delegated to a collaborator in the full system
		order = &domain.Order{
			ID:              uuid.New(),
			UserID:          userID,
			Items:           oneTime,
			Subtotal:        subtotal,
			Shipping:        shipping,
			Total:           subtotal + shipping,
			ShippingAddress: address,
			PaymentRef:      paymentRef,
			Status:          domain.OrderStatusConfirmed,
			CreatedAt:       now,
		}
	}

	subscriptions := make([]domain.Subscription, 0, len(recurring))
	for _, item := range recurring {
		coffee, err := s.resolveCoffee(ctx, item)
		if err != nil {
			return nil, err
		}

		plan := domain.MapDeliveryPlan(item.DeliveryEvery)
		grind := strings.TrimSpace(item.Grind)
		if grind == "" {
			grind = domain.DefaultGrind
		}

		subscriptions = append(subscriptions, domain.Subscription{
			ID:           uuid.New(),
			ClientID:     userID,
			CoffeeID:     coffee.ID,
			Plan:         plan,
			Grind:        grind,
			Weight:       domain.MapWeight(item.Size, item.Quantity),
			Price:        domain.LinePrice(item.Price, item.Quantity),
			NextDelivery: domain.NextDelivery(plan, now),
			Status:       domain.SubscriptionStatusActive,
			IsActive:     true,
			IsCancelled:  false,
			StartDate:    now,
		})
	}

	if err := s.repo.CreateCheckout(ctx, order, subscriptions); err != nil {
		return nil, fmt.Errorf("persist checkout: %w", err)
	}

	s.publishCheckoutEvents(ctx, order, subscriptions)

	return &CheckoutResult{Order: order, Subscriptions: subscriptions}, nil
}

// resolveCoffee maps a cart item to a catalog coffee. An embedded 24-hex id
// wins; otherwise a descriptive roast string is matched case-insensitively
// against the catalog's roast level, user input escaped before use as a
// pattern.
func (s *CheckoutService) resolveCoffee(ctx context.Context, item domain.CartItem) (*domain.Coffee, error) {
	for _, candidate := range []string{item.ProductID, item.CoffeeID, item.SourceProductID} {
		id := catalogIDPattern.FindString(strings.TrimSpace(candidate))
		if id == "" {
			continue
		}
		coffee, err := s.repo.FindCoffeeByID(ctx, id)
		if err == nil {
			return coffee, nil
		}
		if !errors.Is(err, store.ErrCoffeeNotFound) {
			return nil, err
		}
		break // one id lookup, matching candidates are tried in priority order
	}

	roast := strings.TrimSpace(item.Roast)
	if roast != "" {
		coffee, err := s.repo.FindCoffeeByRoastPattern(ctx, regexp.QuoteMeta(roast))
		if err == nil {
			return coffee, nil
		}
		if !errors.Is(err, store.ErrCoffeeNotFound) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnresolvedProduct, item.Name)
}

func (s *CheckoutService) publishCheckoutEvents(ctx context.Context, order *domain.Order, subscriptions []domain.Subscription) {
	if s.producer == nil {
		return
	}
	if order != nil {
		event := domain.OrderConfirmedEvent{
			OrderID:   order.ID,
			UserID:    order.UserID,
			Total:     order.Total,
			ItemCount: len(order.Items),
		}
		if err := s.producer.Publish(ctx, domain.RoutingKeyOrderConfirmed, event); err != nil {
			s.logger.Error("failed to publish order confirmed event", "order_id", order.ID, "error", err)
		}
	}
	for _, sub := range subscriptions {
		event := domain.SubscriptionCreatedEvent{
			SubscriptionID: sub.ID,
			ClientID:       sub.ClientID,
			CoffeeID:       sub.CoffeeID,
			Plan:           sub.Plan,
			NextDelivery:   sub.NextDelivery,
		}
		if err := s.producer.Publish(ctx, domain.RoutingKeySubscriptionCreated, event); err != nil {
			s.logger.Error("failed to publish subscription created event", "subscription_id", sub.ID, "error", err)
		}
	}
}
