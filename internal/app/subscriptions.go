/**
 * @description
 * Read and lifecycle operations for subscriptions and orders on the client
 * side: dashboard, history views and cancellation. Display status is derived
 * at read time rather than trusted from storage.
 */
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/roastline/commerce-service/internal/domain"
	"github.com/roastline/commerce-service/internal/store"
)

// SubscriptionView is a subscription plus its derived display status.
type SubscriptionView struct {
	domain.Subscription
	DerivedStatus string `json:"derivedStatus"`
}

// Dashboard is the client landing view: current subscriptions and recent
// orders.
type Dashboard struct {
	Subscriptions []SubscriptionView `json:"subscriptions"`
	Orders        []domain.Order     `json:"orders"`
}

// SubscriptionService provides client-facing subscription and order reads.
type SubscriptionService struct {
	repo     store.Repository
	producer EventPublisher
	logger   *slog.Logger
	now      func() time.Time
}

// NewSubscriptionService creates a new subscription service.
func NewSubscriptionService(repo store.Repository, producer EventPublisher, logger *slog.Logger) *SubscriptionService {
	return &SubscriptionService{repo: repo, producer: producer, logger: logger, now: time.Now}
}

func (s *SubscriptionService) withDerivedStatus(subs []domain.Subscription) []SubscriptionView {
	now := s.now()
	views := make([]SubscriptionView, 0, len(subs))
	for _, sub := range subs {
		views = append(views, SubscriptionView{Subscription: sub, DerivedStatus: sub.DeriveStatus(now)})
	}
	return views
}

// ListByClient returns a client's subscriptions with derived status applied.
func (s *SubscriptionService) ListByClient(ctx context.Context, clientID uuid.UUID) ([]SubscriptionView, error) {
	subs, err := s.repo.FindSubscriptionsByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return s.withDerivedStatus(subs), nil
}

// ListOrders returns a client's order history, newest first.
func (s *SubscriptionService) ListOrders(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	return s.repo.FindOrdersByUserID(ctx, userID)
}

// GetDashboard assembles the client dashboard.
func (s *SubscriptionService) GetDashboard(ctx context.Context, clientID uuid.UUID) (*Dashboard, error) {
	subs, err := s.repo.FindSubscriptionsByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	orders, err := s.repo.FindOrdersByUserID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return &Dashboard{Subscriptions: s.withDerivedStatus(subs), Orders: orders}, nil
}

// Cancel stops a subscription: flags flip, the end date is recorded, and a
// lifecycle event is published. Only the owning client may cancel.
func (s *SubscriptionService) Cancel(ctx context.Context, clientID, subscriptionID uuid.UUID) (*SubscriptionView, error) {
	sub, err := s.repo.FindSubscriptionByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub.ClientID != clientID {
		return nil, store.ErrSubscriptionNotFound
	}

	endDate := s.now()
	cancelled, err := s.repo.CancelSubscription(ctx, subscriptionID, endDate)
	if err != nil {
		return nil, err
	}

	if s.producer != nil {
		event := domain.SubscriptionCancelledEvent{
			SubscriptionID: cancelled.ID,
			ClientID:       cancelled.ClientID,
			EndDate:        endDate,
		}
		if err := s.producer.Publish(ctx, domain.RoutingKeySubscriptionCanceled, event); err != nil {
			s.logger.Error("failed to publish subscription cancelled event", "subscription_id", cancelled.ID, "error", err)
		}
	}

	view := SubscriptionView{Subscription: *cancelled, DerivedStatus: cancelled.DeriveStatus(s.now())}
	return &view, nil
}
