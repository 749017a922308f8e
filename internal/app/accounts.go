/**
 * @description
 * Admin read models and staff user management. Orders and subscriptions are
 * joined against the two disjoint account collections (clients, staff users)
 * to attach a customer summary; staff accounts get full CRUD.
 */
package app

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/roastline/commerce-service/internal/domain"
	"github.com/roastline/commerce-service/internal/store"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrMissingCredentials is returned when a staff account is created
	// without an email or password.
	ErrMissingCredentials = errors.New("email and password are required")
)

// AdminOrder is an order with recomputed totals and its customer summary.
type AdminOrder struct {
	domain.Order
	Customer *domain.AccountSummary `json:"customer"`
}

// AdminSubscription is a subscription with its coffee projection and customer
// summary.
type AdminSubscription struct {
	SubscriptionView
	Coffee *domain.CoffeeSummary  `json:"coffee"`
	Client *domain.AccountSummary `json:"client"`
}

// UserListOptions filter and order the staff user listing.
type UserListOptions struct {
	Search string
	Sort   string // firstNameAsc, firstNameDesc, lastNameAsc, lastNameDesc
	Role   string
}

// AccountService provides the admin-facing read models and staff user CRUD.
type AccountService struct {
	repo store.Repository
	now  func() time.Time
}

// NewAccountService creates a new account service.
func NewAccountService(repo store.Repository) *AccountService {
	return &AccountService{repo: repo, now: time.Now}
}

// findAccounts joins ids against both account collections. Staff users are
// loaded after clients, so on an id collision the staff record wins.
func (s *AccountService) findAccounts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.AccountSummary, error) {
	accounts := make(map[uuid.UUID]domain.AccountSummary, len(ids))
	if len(ids) == 0 {
		return accounts, nil
	}

	clients, err := s.repo.FindClientsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, c := range clients {
		accounts[c.ID] = c.Summary()
	}

	users, err := s.repo.FindUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		accounts[u.ID] = u.Summary()
	}

	return accounts, nil
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ListOrders returns all orders for the admin view. Items are re-filtered to
// one-time lines and totals recomputed from them; orders left with no one-time
// lines are dropped.
func (s *AccountService) ListOrders(ctx context.Context) ([]AdminOrder, error) {
	rawOrders, err := s.repo.FindAllOrders(ctx)
	if err != nil {
		return nil, err
	}

	orders := make([]AdminOrder, 0, len(rawOrders))
	ownerIDs := make([]uuid.UUID, 0, len(rawOrders))
	for _, order := range rawOrders {
		items := make([]domain.CartItem, 0, len(order.Items))
		for _, it := range order.Items {
			if it.IsOneTime() {
				items = append(items, it)
			}
		}
		if len(items) == 0 {
			continue
		}

		order.Items = items
		order.Subtotal = domain.Subtotal(items)
		order.Total = order.Subtotal + order.Shipping
		orders = append(orders, AdminOrder{Order: order})
		ownerIDs = append(ownerIDs, order.UserID)
	}

	accounts, err := s.findAccounts(ctx, dedupeIDs(ownerIDs))
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if summary, ok := accounts[orders[i].UserID]; ok {
			customer := summary
			orders[i].Customer = &customer
		}
	}

	return orders, nil
}

// ListSubscriptions returns all subscriptions for the admin view, each with
// its coffee projection, customer summary and derived status.
func (s *AccountService) ListSubscriptions(ctx context.Context) ([]AdminSubscription, error) {
	subs, err := s.repo.FindAllSubscriptions(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	ownerIDs := make([]uuid.UUID, 0, len(subs))
	coffees := make(map[string]*domain.CoffeeSummary)
	result := make([]AdminSubscription, 0, len(subs))

	for _, sub := range subs {
		ownerIDs = append(ownerIDs, sub.ClientID)

		summary, ok := coffees[sub.CoffeeID]
		if !ok {
			coffee, err := s.repo.FindCoffeeByID(ctx, sub.CoffeeID)
			switch {
			case err == nil:
				cs := coffee.Summary()
				summary = &cs
			case errors.Is(err, store.ErrCoffeeNotFound):
				summary = nil // coffee removed from catalog since creation
			default:
				return nil, err
			}
			coffees[sub.CoffeeID] = summary
		}

		result = append(result, AdminSubscription{
			SubscriptionView: SubscriptionView{Subscription: sub, DerivedStatus: sub.DeriveStatus(now)},
			Coffee:           summary,
		})
	}

	accounts, err := s.findAccounts(ctx, dedupeIDs(ownerIDs))
	if err != nil {
		return nil, err
	}
	for i := range result {
		if summary, ok := accounts[result[i].ClientID]; ok {
			client := summary
			result[i].Client = &client
		}
	}

	return result, nil
}

// ListUsers returns staff users filtered by role and free-text search, sorted
// by first or last name.
func (s *AccountService) ListUsers(ctx context.Context, opts UserListOptions) ([]domain.User, error) {
	users, err := s.repo.ListUsers(ctx, opts.Role)
	if err != nil {
		return nil, err
	}

	if search := strings.ToLower(strings.TrimSpace(opts.Search)); search != "" {
		filtered := users[:0]
		for _, u := range users {
			text := strings.ToLower(u.FirstName + " " + u.LastName + " " + u.Email + " " + u.Role)
			if strings.Contains(text, search) {
				filtered = append(filtered, u)
			}
		}
		users = filtered
	}

	key := func(u domain.User) string {
		if strings.HasPrefix(opts.Sort, "lastName") {
			return strings.ToLower(u.LastName)
		}
		return strings.ToLower(u.FirstName)
	}
	desc := strings.HasSuffix(opts.Sort, "Desc")
	sort.SliceStable(users, func(i, j int) bool {
		if desc {
			return key(users[i]) > key(users[j])
		}
		return key(users[i]) < key(users[j])
	})

	return users, nil
}

// GetUser retrieves a staff user.
func (s *AccountService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.repo.FindUserByID(ctx, id)
}

// CreateUser creates a staff user with a hashed password.
func (s *AccountService) CreateUser(ctx context.Context, user domain.User, password string) (*domain.User, error) {
	if strings.TrimSpace(user.Email) == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user.ID = uuid.New()
	user.PasswordHash = string(hash)
	if user.Role == "" {
		user.Role = domain.RoleClient
	}
	user.CreatedAt = s.now()

	return s.repo.CreateUser(ctx, &user)
}

// UpdateUser updates a staff user's profile fields, never the password.
func (s *AccountService) UpdateUser(ctx context.Context, user domain.User) (*domain.User, error) {
	return s.repo.UpdateUser(ctx, &user)
}

// DeleteUser removes a staff user.
func (s *AccountService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteUser(ctx, id)
}
