package app

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/roastline/commerce-service/internal/domain"
	"github.com/roastline/commerce-service/internal/store"
)

type checkoutRepoStub struct {
	store.Repository

	coffees map[string]*domain.Coffee
	byRoast map[string]*domain.Coffee

	idLookups      []string
	patternLookups []string

	createCalled bool
	createdOrder *domain.Order
	createdSubs  []domain.Subscription
	createErr    error
}

func (s *checkoutRepoStub) FindCoffeeByID(ctx context.Context, id string) (*domain.Coffee, error) {
	s.idLookups = append(s.idLookups, id)
	if c, ok := s.coffees[id]; ok {
		return c, nil
	}
	return nil, store.ErrCoffeeNotFound
}

func (s *checkoutRepoStub) FindCoffeeByRoastPattern(ctx context.Context, pattern string) (*domain.Coffee, error) {
	s.patternLookups = append(s.patternLookups, pattern)
	if c, ok := s.byRoast[pattern]; ok {
		return c, nil
	}
	return nil, store.ErrCoffeeNotFound
}

func (s *checkoutRepoStub) CreateCheckout(ctx context.Context, order *domain.Order, subs []domain.Subscription) error {
	s.createCalled = true
	s.createdOrder = order
	s.createdSubs = subs
	return s.createErr
}

type publisherStub struct {
	published []string
}

func (p *publisherStub) Publish(ctx context.Context, routingKey string, event any) error {
	p.published = append(p.published, routingKey)
	return nil
}

func newTestCheckoutService(repo *checkoutRepoStub, producer EventPublisher) *CheckoutService {
	svc := NewCheckoutService(repo, producer, slog.Default())
	svc.now = func() time.Time { return time.Date(2025, time.July, 1, 10, 0, 0, 0, time.UTC) }
	return svc
}

const testCoffeeID = "64b1f20c9a3d5e7f1a2b3c4d"

func TestCheckout_EmptyCartFails(t *testing.T) {
	svc := newTestCheckoutService(&checkoutRepoStub{}, nil)

	_, err := svc.Checkout(context.Background(), uuid.New(), nil, domain.ShippingAddress{}, "pay_1")
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestCheckout_OneTimeOnlyCreatesSingleOrder(t *testing.T) {
	repo := &checkoutRepoStub{}
	svc := newTestCheckoutService(repo, nil)
	userID := uuid.New()

	items := []domain.CartItem{
		{Name: "Espresso Blend", Price: 1250, Quantity: 2, PurchaseType: "one-time"},
		{Name: "Filter Papers", Price: 400, Quantity: 1},
	}

	result, err := svc.Checkout(context.Background(), userID, items, domain.ShippingAddress{City: "Lyon"}, "pay_1")
	if err != nil {
		t.Fatalf("Checkout returned error: %v", err)
	}
	if result.Order == nil {
		t.Fatal("expected an order")
	}
	if got := result.Order.Subtotal; got != 2900 {
		t.Fatalf("subtotal = %d, want 2900", got)
	}
	if result.Order.Total != result.Order.Subtotal {
		t.Fatalf("total = %d, want subtotal (shipping is zero)", result.Order.Total)
	}
	if result.Order.Status != domain.OrderStatusConfirmed {
		t.Fatalf("status = %q, want %q", result.Order.Status, domain.OrderStatusConfirmed)
	}
	if len(result.Subscriptions) != 0 {
		t.Fatalf("expected no subscriptions, got %d", len(result.Subscriptions))
	}
	if !repo.createCalled {
		t.Fatal("expected checkout to be persisted")
	}
}

func TestCheckout_SubscriptionResolvedByNoisyID(t *testing.T) {
	repo := &checkoutRepoStub{
		coffees: map[string]*domain.Coffee{
			testCoffeeID: {ID: testCoffeeID, Name: "House Roast", RoastLevel: "medium"},
		},
	}
	producer := &publisherStub{}
	svc := newTestCheckoutService(repo, producer)

	items := []domain.CartItem{{
		ProductID:     "  id:" + testCoffeeID + " ",
		Price:         1500,
		Quantity:      2,
		PurchaseType:  "subscription",
		DeliveryEvery: "2-weeks",
		Size:          "large",
	}}

	result, err := svc.Checkout(context.Background(), uuid.New(), items, domain.ShippingAddress{}, "pay_1")
	if err != nil {
		t.Fatalf("Checkout returned error: %v", err)
	}
	if result.Order != nil {
		t.Fatal("expected no order for a subscription-only cart")
	}
	if len(result.Subscriptions) != 1 {
		t.Fatalf("expected 1 subscription, got %d", len(result.Subscriptions))
	}
	if len(repo.idLookups) != 1 || repo.idLookups[0] != testCoffeeID {
		t.Fatalf("expected exact id lookup %q, got %v", testCoffeeID, repo.idLookups)
	}

	sub := result.Subscriptions[0]
	if sub.CoffeeID != testCoffeeID {
		t.Fatalf("coffee id = %q, want %q", sub.CoffeeID, testCoffeeID)
	}
	if sub.Plan != domain.PlanBiWeekly {
		t.Fatalf("plan = %q, want %q", sub.Plan, domain.PlanBiWeekly)
	}
	if sub.Weight != 2000 {
		t.Fatalf("weight = %d, want 2000", sub.Weight)
	}
	if sub.Price != 3000 {
		t.Fatalf("price = %d, want 3000", sub.Price)
	}
	if sub.Grind != domain.DefaultGrind {
		t.Fatalf("grind = %q, want default %q", sub.Grind, domain.DefaultGrind)
	}
	wantNext := time.Date(2025, time.July, 15, 10, 0, 0, 0, time.UTC)
	if !sub.NextDelivery.Equal(wantNext) {
		t.Fatalf("next delivery = %v, want %v", sub.NextDelivery, wantNext)
	}

	// Round-trip: a freshly created subscription derives as active.
	if got := sub.DeriveStatus(time.Date(2025, time.July, 2, 0, 0, 0, 0, time.UTC)); got != domain.DerivedActive {
		t.Fatalf("derived status = %q, want %q", got, domain.DerivedActive)
	}

	if len(producer.published) != 1 || producer.published[0] != domain.RoutingKeySubscriptionCreated {
		t.Fatalf("published = %v, want one subscription created event", producer.published)
	}
}

func TestCheckout_SubscriptionResolvedByRoastFallback(t *testing.T) {
	coffee := &domain.Coffee{ID: testCoffeeID, Name: "Dark Star", RoastLevel: "dark"}
	repo := &checkoutRepoStub{
		// The roast string is escaped before use as a pattern.
		byRoast: map[string]*domain.Coffee{`dark \(espresso\)`: coffee},
	}
	svc := newTestCheckoutService(repo, nil)

	items := []domain.CartItem{{
		Roast:         "dark (espresso)",
		Price:         1000,
		PurchaseType:  "subscription",
		DeliveryEvery: "monthly",
	}}

	result, err := svc.Checkout(context.Background(), uuid.New(), items, domain.ShippingAddress{}, "pay_1")
	if err != nil {
		t.Fatalf("Checkout returned error: %v", err)
	}
	if result.Subscriptions[0].CoffeeID != testCoffeeID {
		t.Fatalf("coffee id = %q, want %q", result.Subscriptions[0].CoffeeID, testCoffeeID)
	}
	if len(repo.patternLookups) != 1 {
		t.Fatalf("expected one roast pattern lookup, got %v", repo.patternLookups)
	}
}

func TestCheckout_UnresolvableSubscriptionAbortsEverything(t *testing.T) {
	repo := &checkoutRepoStub{}
	svc := newTestCheckoutService(repo, nil)

	items := []domain.CartItem{
		{Name: "Mug", Price: 900, Quantity: 1, PurchaseType: "one-time"},
		{Roast: "unobtainium", Price: 1000, PurchaseType: "subscription", DeliveryEvery: "weekly"},
	}

	_, err := svc.Checkout(context.Background(), uuid.New(), items, domain.ShippingAddress{}, "pay_1")
	if !errors.Is(err, ErrUnresolvedProduct) {
		t.Fatalf("expected ErrUnresolvedProduct, got %v", err)
	}
	if repo.createCalled {
		t.Fatal("expected no writes when a subscription item is unresolvable")
	}
}

func TestCheckout_PersistFailurePropagates(t *testing.T) {
	repo := &checkoutRepoStub{createErr: errors.New("db down")}
	svc := newTestCheckoutService(repo, nil)

	items := []domain.CartItem{{Name: "Mug", Price: 900, Quantity: 1}}
	_, err := svc.Checkout(context.Background(), uuid.New(), items, domain.ShippingAddress{}, "pay_1")
	if err == nil {
		t.Fatal("expected error from persistence failure")
	}
}
