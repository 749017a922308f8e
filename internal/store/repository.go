/**
 * @description
 * This file defines the `Repository` interface: the contract for all data
 * access the commerce service needs. Business logic in internal/app depends on
 * this interface, never on the PostgreSQL implementation, which keeps the
 * services testable with hand-written stubs.
 */
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/roastline/commerce-service/internal/domain"
)

// Repository defines the set of methods for interacting with the database.
type Repository interface {
	// Coffee catalog
	FindCoffeeByID(ctx context.Context, id string) (*domain.Coffee, error)
	// FindCoffeeByRoastPattern matches the roast level against a
	// case-insensitive regular expression; the caller escapes user input.
	// Ordering is deterministic: oldest catalog entry wins.
	FindCoffeeByRoastPattern(ctx context.Context, pattern string) (*domain.Coffee, error)

	// Checkout. Order may be nil when the cart held no one-time items;
	// subscriptions may be empty. All writes happen in one transaction.
	CreateCheckout(ctx context.Context, order *domain.Order, subscriptions []domain.Subscription) error

	// Orders
	FindOrdersByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Order, error)
	FindAllOrders(ctx context.Context) ([]domain.Order, error)

	// Subscriptions
	FindSubscriptionByID(ctx context.Context, id uuid.UUID) (*domain.Subscription, error)
	FindSubscriptionsByClientID(ctx context.Context, clientID uuid.UUID) ([]domain.Subscription, error)
	FindAllSubscriptions(ctx context.Context) ([]domain.Subscription, error)
	CancelSubscription(ctx context.Context, id uuid.UUID, endDate time.Time) (*domain.Subscription, error)
	FindDueSubscriptions(ctx context.Context, now time.Time) ([]domain.Subscription, error)
	AdvanceNextDelivery(ctx context.Context, id uuid.UUID, next time.Time) error

	// Account directory (two disjoint collections)
	FindClientsByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Client, error)
	FindUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error)

	// Client accounts (storefront self-registration)
	CreateClient(ctx context.Context, client *domain.Client) (*domain.Client, error)
	FindClientByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	FindClientByEmail(ctx context.Context, email string) (*domain.Client, error)
	ActivateClientByToken(ctx context.Context, token string) (*domain.Client, error)
	SetClientResetToken(ctx context.Context, email, token string, expiresAt time.Time) (*domain.Client, error)
	ResetClientPassword(ctx context.Context, token, passwordHash string) (*domain.Client, error)
	UpdateClient(ctx context.Context, client *domain.Client) (*domain.Client, error)
	UpdateClientPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	DeleteClient(ctx context.Context, id uuid.UUID) error

	// Staff users (admin CRUD)
	ListUsers(ctx context.Context, role string) ([]domain.User, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}
