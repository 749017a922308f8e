/**
 * @description
 * Authentication flows for storefront clients and staff: registration with
 * email activation, login with JWT issuance and rate limiting, and password
 * reset. Mail delivery happens in an external consumer; this service only
 * publishes the mail events.
 */
package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/roastline/commerce-service/internal/domain"
	"github.com/roastline/commerce-service/internal/store"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned on a wrong email/password pair; the
	// same error covers unknown emails so callers cannot probe which exist.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAccountInactive is returned when the password matched but the
	// account is deactivated or not yet activated.
	ErrAccountInactive = errors.New("account is inactive")
	// ErrTooManyAttempts is returned when login rate limiting kicks in.
	ErrTooManyAttempts = errors.New("too many login attempts")
)

const (
	sessionTokenTTL = 24 * time.Hour
	resetTokenTTL   = time.Hour
	loginRateLimit  = 10
	loginRateWindow = 15 * time.Minute
)

// RateLimiter bounds repeated attempts per subject. A nil limiter disables
// limiting.
type RateLimiter interface {
	ConsumeRateLimit(ctx context.Context, scope, subject string, limit int, window time.Duration) (count int, retryAfterSeconds int, err error)
}

// Session is what a successful login returns.
type Session struct {
	Token   string                `json:"token"`
	Account domain.AccountSummary `json:"user"`
}

// AuthService implements registration, activation, login and password reset.
type AuthService struct {
	repo      store.Repository
	producer  EventPublisher
	limiter   RateLimiter
	logger    *slog.Logger
	jwtSecret []byte
	now       func() time.Time
}

// NewAuthService creates a new auth service.
func NewAuthService(repo store.Repository, producer EventPublisher, limiter RateLimiter, logger *slog.Logger, jwtSecret string) *AuthService {
	return &AuthService{
		repo:      repo,
		producer:  producer,
		limiter:   limiter,
		logger:    logger,
		jwtSecret: []byte(jwtSecret),
		now:       time.Now,
	}
}

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

func randomToken() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// Register creates an inactive client account and publishes the activation
// mail event.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.Client, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	token, err := randomToken()
	if err != nil {
		return nil, err
	}

	client := &domain.Client{
		ID:              uuid.New(),
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Email:           input.Email,
		PasswordHash:    string(hash),
		Role:            domain.RoleClient,
		IsActive:        false,
		ActivationToken: &token,
		CreatedAt:       s.now(),
	}

	created, err := s.repo.CreateClient(ctx, client)
	if err != nil {
		return nil, err
	}

	if s.producer != nil {
		event := domain.AccountActivationEvent{Email: created.Email, FirstName: created.FirstName, Token: token}
		if err := s.producer.Publish(ctx, domain.RoutingKeyAccountActivation, event); err != nil {
			s.logger.Error("failed to publish activation mail event", "email", created.Email, "error", err)
		}
	}

	return created, nil
}

// Activate flips the account holding the activation token to active.
func (s *AuthService) Activate(ctx context.Context, token string) error {
	_, err := s.repo.ActivateClientByToken(ctx, token)
	return err
}

// Login authenticates against the client collection first, then staff users,
// and issues an HS256 session token. Attempts are rate limited per email.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	if s.limiter != nil {
		count, _, err := s.limiter.ConsumeRateLimit(ctx, "login", email, loginRateLimit, loginRateWindow)
		if err != nil {
			// The limiter failing open is preferable to blocking all logins.
			s.logger.Error("login rate limiter unavailable", "error", err)
		} else if count > loginRateLimit {
			return nil, ErrTooManyAttempts
		}
	}

	account, hash, active, err := s.findAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrClientNotFound) || errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !active {
		return nil, ErrAccountInactive
	}

	token, err := s.issueToken(account)
	if err != nil {
		return nil, err
	}

	return &Session{Token: token, Account: account}, nil
}

func (s *AuthService) findAccountByEmail(ctx context.Context, email string) (domain.AccountSummary, string, bool, error) {
	client, err := s.repo.FindClientByEmail(ctx, email)
	if err == nil {
		return client.Summary(), client.PasswordHash, client.IsActive, nil
	}
	if !errors.Is(err, store.ErrClientNotFound) {
		return domain.AccountSummary{}, "", false, err
	}

	user, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		return domain.AccountSummary{}, "", false, err
	}
	return user.Summary(), user.PasswordHash, user.IsActive, nil
}

func (s *AuthService) issueToken(account domain.AccountSummary) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   account.ID.String(),
		"email": account.Email,
		"role":  account.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(sessionTokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

// ForgotPassword stores a reset token for the account and publishes the reset
// mail event. Unknown emails are reported as not found by the store; the API
// layer answers uniformly either way.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	token, err := randomToken()
	if err != nil {
		return err
	}

	expiresAt := s.now().Add(resetTokenTTL)
	client, err := s.repo.SetClientResetToken(ctx, email, token, expiresAt)
	if err != nil {
		return err
	}

	if s.producer != nil {
		event := domain.PasswordResetEvent{Email: client.Email, Token: token, ExpiresAt: expiresAt}
		if err := s.producer.Publish(ctx, domain.RoutingKeyPasswordReset, event); err != nil {
			s.logger.Error("failed to publish password reset mail event", "email", client.Email, "error", err)
		}
	}

	return nil
}

// ResetPassword swaps the password for the account holding a valid reset
// token.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if _, err := s.repo.ResetClientPassword(ctx, token, string(hash)); err != nil {
		return err
	}
	return nil
}

// CurrentAccount resolves the authenticated account id to its summary,
// checking clients first, then staff users.
func (s *AuthService) CurrentAccount(ctx context.Context, id uuid.UUID) (*domain.AccountSummary, error) {
	client, err := s.repo.FindClientByID(ctx, id)
	if err == nil {
		summary := client.Summary()
		return &summary, nil
	}
	if !errors.Is(err, store.ErrClientNotFound) {
		return nil, err
	}

	user, err := s.repo.FindUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("resolve account %s: %w", id, err)
	}
	summary := user.Summary()
	return &summary, nil
}
