/**
 * @description
 * PostgreSQL implementation of the `Repository` interface. All SQL for the
 * coffee catalog, orders, subscriptions and the two account collections lives
 * here. Order line items are stored as a jsonb column; checkout writes run in
 * a single transaction so a failing insert never leaves partial state behind.
 *
 * @dependencies
 * - github.com/jackc/pgx/v5: PostgreSQL driver and pool.
 * - internal/domain: domain models used for data transfer.
 */
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/roastline/commerce-service/internal/domain"
)

var (
	ErrCoffeeNotFound       = errors.New("coffee not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrClientNotFound       = errors.New("client not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailTaken           = errors.New("email already in use")
	ErrTokenInvalid         = errors.New("token invalid or expired")
)

// PostgresRepository is a concrete implementation of the Repository interface.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new instance of PostgresRepository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the required tables if they do not exist yet.
// Idempotent; production environments run real migrations instead.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS coffees (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            roast_level TEXT NOT NULL,
            price BIGINT NOT NULL,
            images TEXT[] NOT NULL DEFAULT '{}',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );
        CREATE TABLE IF NOT EXISTS orders (
            id UUID PRIMARY KEY,
            user_id UUID NOT NULL,
            items JSONB NOT NULL,
            subtotal BIGINT NOT NULL,
            shipping BIGINT NOT NULL,
            total BIGINT NOT NULL,
            shipping_address JSONB NOT NULL,
            payment_ref TEXT NOT NULL,
            status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );
        CREATE TABLE IF NOT EXISTS subscriptions (
            id UUID PRIMARY KEY,
            client_id UUID NOT NULL,
            coffee_id TEXT NOT NULL,
            plan TEXT NOT NULL,
            grind TEXT NOT NULL,
            weight INT NOT NULL,
            price BIGINT NOT NULL,
            next_delivery TIMESTAMPTZ NOT NULL,
            status TEXT NOT NULL,
            is_active BOOLEAN NOT NULL DEFAULT TRUE,
            is_cancelled BOOLEAN NOT NULL DEFAULT FALSE,
            start_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            end_date TIMESTAMPTZ
        );
        CREATE TABLE IF NOT EXISTS clients (
            id UUID PRIMARY KEY,
            first_name TEXT NOT NULL,
            last_name TEXT NOT NULL,
            email TEXT NOT NULL UNIQUE,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL,
            is_active BOOLEAN NOT NULL DEFAULT FALSE,
            activation_token TEXT,
            reset_token TEXT,
            reset_expires_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );
        CREATE TABLE IF NOT EXISTS users (
            id UUID PRIMARY KEY,
            first_name TEXT NOT NULL,
            last_name TEXT NOT NULL,
            email TEXT NOT NULL UNIQUE,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL,
            is_active BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );
    `)
	return err
}

const coffeeColumns = "id, name, roast_level, price, images, created_at"

func scanCoffee(row pgx.Row) (*domain.Coffee, error) {
	var c domain.Coffee
	err := row.Scan(&c.ID, &c.Name, &c.RoastLevel, &c.Price, &c.Images, &c.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrCoffeeNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindCoffeeByID retrieves a catalog coffee by its exact 24-hex id.
func (r *PostgresRepository) FindCoffeeByID(ctx context.Context, id string) (*domain.Coffee, error) {
	query := fmt.Sprintf("SELECT %s FROM coffees WHERE id = $1", coffeeColumns)
	return scanCoffee(r.db.QueryRow(ctx, query, id))
}

// FindCoffeeByRoastPattern retrieves the oldest coffee whose roast level
// matches the given case-insensitive pattern.
func (r *PostgresRepository) FindCoffeeByRoastPattern(ctx context.Context, pattern string) (*domain.Coffee, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM coffees
		WHERE roast_level ~* $1
		ORDER BY created_at, id
		LIMIT 1
	`, coffeeColumns)
	return scanCoffee(r.db.QueryRow(ctx, query, pattern))
}

// CreateCheckout persists the order (when present) and every subscription in
// one transaction. On any error the whole checkout rolls back.
func (r *PostgresRepository) CreateCheckout(ctx context.Context, order *domain.Order, subscriptions []domain.Subscription) (txErr error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if txErr != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				txErr = errors.Join(txErr, fmt.Errorf("tx.Rollback: %w", rbErr))
			}
		}
	}()

	if order != nil {
		if err := insertOrder(ctx, tx, order); err != nil {
			return err
		}
	}
	for i := range subscriptions {
		if err := insertSubscription(ctx, tx, &subscriptions[i]); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func insertOrder(ctx context.Context, tx pgx.Tx, order *domain.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}
	address, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return fmt.Errorf("marshal shipping address: %w", err)
	}
	query := `
		INSERT INTO orders (id, user_id, items, subtotal, shipping, total, shipping_address, payment_ref, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = tx.Exec(ctx, query,
		order.ID, order.UserID, items, order.Subtotal, order.Shipping, order.Total,
		address, order.PaymentRef, order.Status, order.CreatedAt,
	)
	return err
}

func insertSubscription(ctx context.Context, tx pgx.Tx, sub *domain.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, client_id, coffee_id, plan, grind, weight, price, next_delivery, status, is_active, is_cancelled, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := tx.Exec(ctx, query,
		sub.ID, sub.ClientID, sub.CoffeeID, sub.Plan, sub.Grind, sub.Weight, sub.Price,
		sub.NextDelivery, sub.Status, sub.IsActive, sub.IsCancelled, sub.StartDate, sub.EndDate,
	)
	return err
}

const orderColumns = "id, user_id, items, subtotal, shipping, total, shipping_address, payment_ref, status, created_at"

func scanOrders(rows pgx.Rows) ([]domain.Order, error) {
	defer rows.Close()
	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		var items, address []byte
		if err := rows.Scan(&o.ID, &o.UserID, &items, &o.Subtotal, &o.Shipping, &o.Total, &address, &o.PaymentRef, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, fmt.Errorf("unmarshal order items: %w", err)
		}
		if err := json.Unmarshal(address, &o.ShippingAddress); err != nil {
			return nil, fmt.Errorf("unmarshal shipping address: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// FindOrdersByUserID returns a user's orders, newest first.
func (r *PostgresRepository) FindOrdersByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	query := fmt.Sprintf("SELECT %s FROM orders WHERE user_id = $1 ORDER BY created_at DESC", orderColumns)
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return scanOrders(rows)
}

// FindAllOrders returns every order, newest first. Admin read model only.
func (r *PostgresRepository) FindAllOrders(ctx context.Context) ([]domain.Order, error) {
	query := fmt.Sprintf("SELECT %s FROM orders ORDER BY created_at DESC", orderColumns)
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return scanOrders(rows)
}

const subscriptionColumns = "id, client_id, coffee_id, plan, grind, weight, price, next_delivery, status, is_active, is_cancelled, start_date, end_date"

func scanSubscription(row pgx.Row) (*domain.Subscription, error) {
	var s domain.Subscription
	err := row.Scan(&s.ID, &s.ClientID, &s.CoffeeID, &s.Plan, &s.Grind, &s.Weight, &s.Price,
		&s.NextDelivery, &s.Status, &s.IsActive, &s.IsCancelled, &s.StartDate, &s.EndDate)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &s, nil
}

func scanSubscriptions(rows pgx.Rows) ([]domain.Subscription, error) {
	defer rows.Close()
	var subs []domain.Subscription
	for rows.Next() {
		var s domain.Subscription
		if err := rows.Scan(&s.ID, &s.ClientID, &s.CoffeeID, &s.Plan, &s.Grind, &s.Weight, &s.Price,
			&s.NextDelivery, &s.Status, &s.IsActive, &s.IsCancelled, &s.StartDate, &s.EndDate); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// FindSubscriptionByID retrieves a single subscription.
func (r *PostgresRepository) FindSubscriptionByID(ctx context.Context, id uuid.UUID) (*domain.Subscription, error) {
	query := fmt.Sprintf("SELECT %s FROM subscriptions WHERE id = $1", subscriptionColumns)
	return scanSubscription(r.db.QueryRow(ctx, query, id))
}

// FindSubscriptionsByClientID returns a client's subscriptions, newest first.
func (r *PostgresRepository) FindSubscriptionsByClientID(ctx context.Context, clientID uuid.UUID) ([]domain.Subscription, error) {
	query := fmt.Sprintf("SELECT %s FROM subscriptions WHERE client_id = $1 ORDER BY start_date DESC", subscriptionColumns)
	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	return scanSubscriptions(rows)
}

// FindAllSubscriptions returns every subscription, newest first. Admin read
// model only.
func (r *PostgresRepository) FindAllSubscriptions(ctx context.Context) ([]domain.Subscription, error) {
	query := fmt.Sprintf("SELECT %s FROM subscriptions ORDER BY start_date DESC", subscriptionColumns)
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return scanSubscriptions(rows)
}

// CancelSubscription flips the lifecycle flags and records the end date.
func (r *PostgresRepository) CancelSubscription(ctx context.Context, id uuid.UUID, endDate time.Time) (*domain.Subscription, error) {
	query := fmt.Sprintf(`
		UPDATE subscriptions
		SET status = $2, is_active = FALSE, is_cancelled = TRUE, end_date = $3
		WHERE id = $1
		RETURNING %s
	`, subscriptionColumns)
	return scanSubscription(r.db.QueryRow(ctx, query, id, domain.SubscriptionStatusCancelled, endDate))
}

// FindDueSubscriptions returns active, non-cancelled subscriptions whose next
// delivery date has passed.
func (r *PostgresRepository) FindDueSubscriptions(ctx context.Context, now time.Time) ([]domain.Subscription, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM subscriptions
		WHERE is_active = TRUE AND is_cancelled = FALSE AND next_delivery <= $1
		ORDER BY next_delivery
	`, subscriptionColumns)
	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		return nil, err
	}
	return scanSubscriptions(rows)
}

// AdvanceNextDelivery moves a subscription's next delivery date forward.
func (r *PostgresRepository) AdvanceNextDelivery(ctx context.Context, id uuid.UUID, next time.Time) error {
	tag, err := r.db.Exec(ctx, "UPDATE subscriptions SET next_delivery = $2 WHERE id = $1", id, next)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

const clientColumns = "id, first_name, last_name, email, password_hash, role, is_active, activation_token, reset_token, reset_expires_at, created_at"

func scanClient(row pgx.Row) (*domain.Client, error) {
	var c domain.Client
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.PasswordHash, &c.Role,
		&c.IsActive, &c.ActivationToken, &c.ResetToken, &c.ResetExpiresAt, &c.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindClientsByIDs loads client projections for the given ids.
func (r *PostgresRepository) FindClientsByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Client, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := "SELECT id, first_name, last_name, email, role, is_active, created_at FROM clients WHERE id = ANY($1)"
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var clients []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Role, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// FindUsersByIDs loads staff user projections for the given ids.
func (r *PostgresRepository) FindUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := "SELECT id, first_name, last_name, email, role, is_active, created_at, updated_at FROM users WHERE id = ANY($1)"
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	return scanUserRows(rows)
}

// CreateClient inserts a new storefront client account.
func (r *PostgresRepository) CreateClient(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	query := fmt.Sprintf(`
		INSERT INTO clients (id, first_name, last_name, email, password_hash, role, is_active, activation_token, created_at)
		VALUES ($1, $2, $3, lower($4), $5, $6, $7, $8, $9)
		RETURNING %s
	`, clientColumns)
	created, err := scanClient(r.db.QueryRow(ctx, query,
		client.ID, client.FirstName, client.LastName, client.Email, client.PasswordHash,
		client.Role, client.IsActive, client.ActivationToken, client.CreatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return created, nil
}

// FindClientByID retrieves a client account.
func (r *PostgresRepository) FindClientByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	query := fmt.Sprintf("SELECT %s FROM clients WHERE id = $1", clientColumns)
	return scanClient(r.db.QueryRow(ctx, query, id))
}

// FindClientByEmail retrieves a client account by email, case-insensitively.
func (r *PostgresRepository) FindClientByEmail(ctx context.Context, email string) (*domain.Client, error) {
	query := fmt.Sprintf("SELECT %s FROM clients WHERE lower(email) = lower(btrim($1))", clientColumns)
	return scanClient(r.db.QueryRow(ctx, query, email))
}

// ActivateClientByToken activates the account holding the given activation
// token and clears the token.
func (r *PostgresRepository) ActivateClientByToken(ctx context.Context, token string) (*domain.Client, error) {
	query := fmt.Sprintf(`
		UPDATE clients
		SET is_active = TRUE, activation_token = NULL
		WHERE activation_token = $1
		RETURNING %s
	`, clientColumns)
	client, err := scanClient(r.db.QueryRow(ctx, query, token))
	if errors.Is(err, ErrClientNotFound) {
		return nil, ErrTokenInvalid
	}
	return client, err
}

// SetClientResetToken stores a password reset token with its expiry.
func (r *PostgresRepository) SetClientResetToken(ctx context.Context, email, token string, expiresAt time.Time) (*domain.Client, error) {
	query := fmt.Sprintf(`
		UPDATE clients
		SET reset_token = $2, reset_expires_at = $3
		WHERE lower(email) = lower(btrim($1))
		RETURNING %s
	`, clientColumns)
	return scanClient(r.db.QueryRow(ctx, query, email, token, expiresAt))
}

// ResetClientPassword swaps the password hash for the account holding a
// non-expired reset token and clears the token.
func (r *PostgresRepository) ResetClientPassword(ctx context.Context, token, passwordHash string) (*domain.Client, error) {
	query := fmt.Sprintf(`
		UPDATE clients
		SET password_hash = $2, reset_token = NULL, reset_expires_at = NULL
		WHERE reset_token = $1 AND reset_expires_at > NOW()
		RETURNING %s
	`, clientColumns)
	client, err := scanClient(r.db.QueryRow(ctx, query, token, passwordHash))
	if errors.Is(err, ErrClientNotFound) {
		return nil, ErrTokenInvalid
	}
	return client, err
}

// UpdateClient updates a client's profile fields. The password hash is not
// touched here.
func (r *PostgresRepository) UpdateClient(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	query := fmt.Sprintf(`
		UPDATE clients
		SET first_name = $2, last_name = $3, email = lower(btrim($4))
		WHERE id = $1
		RETURNING %s
	`, clientColumns)
	updated, err := scanClient(r.db.QueryRow(ctx, query,
		client.ID, client.FirstName, client.LastName, client.Email))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return updated, nil
}

// UpdateClientPassword swaps a client's password hash.
func (r *PostgresRepository) UpdateClientPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := r.db.Exec(ctx, "UPDATE clients SET password_hash = $2 WHERE id = $1", id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrClientNotFound
	}
	return nil
}

// DeleteClient removes a client account.
func (r *PostgresRepository) DeleteClient(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM clients WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrClientNotFound
	}
	return nil
}

const userColumns = "id, first_name, last_name, email, password_hash, role, is_active, created_at, updated_at"

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func scanUserRows(rows pgx.Rows) ([]domain.User, error) {
	defer rows.Close()
	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// ListUsers returns staff users, optionally filtered by role. Search and sort
// are applied in the service layer.
func (r *PostgresRepository) ListUsers(ctx context.Context, role string) ([]domain.User, error) {
	query := "SELECT id, first_name, last_name, email, role, is_active, created_at, updated_at FROM users"
	args := []any{}
	if role != "" {
		query += " WHERE role = $1"
		args = append(args, role)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanUserRows(rows)
}

// FindUserByID retrieves a staff user.
func (r *PostgresRepository) FindUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userColumns)
	return scanUser(r.db.QueryRow(ctx, query, id))
}

// FindUserByEmail retrieves a staff user by email, case-insensitively.
func (r *PostgresRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE lower(email) = lower(btrim($1))", userColumns)
	return scanUser(r.db.QueryRow(ctx, query, email))
}

// CreateUser inserts a new staff user.
func (r *PostgresRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := fmt.Sprintf(`
		INSERT INTO users (id, first_name, last_name, email, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, lower($4), $5, $6, $7, $8, $8)
		RETURNING %s
	`, userColumns)
	created, err := scanUser(r.db.QueryRow(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Email, user.PasswordHash,
		user.Role, user.IsActive, user.CreatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return created, nil
}

// UpdateUser updates a staff user's profile fields. The password hash is not
// touched here; password changes go through a dedicated path that re-hashes.
func (r *PostgresRepository) UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := fmt.Sprintf(`
		UPDATE users
		SET first_name = $2, last_name = $3, email = lower($4), role = $5, is_active = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, userColumns)
	updated, err := scanUser(r.db.QueryRow(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Email, user.Role, user.IsActive))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return updated, nil
}

// DeleteUser removes a staff user.
func (r *PostgresRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
