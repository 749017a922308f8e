/**
 * @description
 * Self-service profile management for storefront clients: read and update the
 * profile, change the password against the current one, and delete the
 * account.
 */
package app

import (
	"context"

	"github.com/google/uuid"
	"github.com/roastline/commerce-service/internal/domain"
	"github.com/roastline/commerce-service/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// ProfileInput carries the profile fields a client may change.
type ProfileInput struct {
	FirstName string
	LastName  string
	Email     string
}

// ProfileService implements the client self-service operations.
type ProfileService struct {
	repo store.Repository
}

// NewProfileService creates a new profile service.
func NewProfileService(repo store.Repository) *ProfileService {
	return &ProfileService{repo: repo}
}

// GetProfile returns the client's safe projection.
func (s *ProfileService) GetProfile(ctx context.Context, clientID uuid.UUID) (*domain.AccountSummary, error) {
	client, err := s.repo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	summary := client.Summary()
	return &summary, nil
}

// UpdateProfile changes the client's name and email.
func (s *ProfileService) UpdateProfile(ctx context.Context, clientID uuid.UUID, input ProfileInput) (*domain.AccountSummary, error) {
	updated, err := s.repo.UpdateClient(ctx, &domain.Client{
		ID:        clientID,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
	})
	if err != nil {
		return nil, err
	}
	summary := updated.Summary()
	return &summary, nil
}

// UpdatePassword swaps the client's password after verifying the current one.
// A wrong current password comes back as ErrInvalidCredentials.
func (s *ProfileService) UpdatePassword(ctx context.Context, clientID uuid.UUID, currentPassword, newPassword string) error {
	client, err := s.repo.FindClientByID(ctx, clientID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(client.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdateClientPassword(ctx, clientID, string(hash))
}

// DeleteAccount removes the client account. Orders and subscriptions are kept
// for bookkeeping; their owner simply no longer resolves.
func (s *ProfileService) DeleteAccount(ctx context.Context, clientID uuid.UUID) error {
	return s.repo.DeleteClient(ctx, clientID)
}
