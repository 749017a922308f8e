package app

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/roastline/commerce-service/internal/domain"
	"github.com/roastline/commerce-service/internal/store"
	"golang.org/x/crypto/bcrypt"
)

type profileRepoStub struct {
	store.Repository

	client       *domain.Client
	updated      *domain.Client
	updateErr    error
	passwordHash string
	deleted      uuid.UUID
}

func (s *profileRepoStub) FindClientByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	if s.client == nil || s.client.ID != id {
		return nil, store.ErrClientNotFound
	}
	return s.client, nil
}

func (s *profileRepoStub) UpdateClient(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	s.updated = client
	return client, nil
}

func (s *profileRepoStub) UpdateClientPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	s.passwordHash = passwordHash
	return nil
}

func (s *profileRepoStub) DeleteClient(ctx context.Context, id uuid.UUID) error {
	if s.client == nil || s.client.ID != id {
		return store.ErrClientNotFound
	}
	s.deleted = id
	return nil
}

func TestGetProfile_ReturnsSafeProjection(t *testing.T) {
	client := &domain.Client{
		ID: uuid.New(), FirstName: "Ada", LastName: "Lovelace",
		Email: "ada@example.com", Role: domain.RoleClient, IsActive: true,
		PasswordHash: hashFor(t, "hunter22"),
	}
	svc := NewProfileService(&profileRepoStub{client: client})

	profile, err := svc.GetProfile(context.Background(), client.ID)
	if err != nil {
		t.Fatalf("GetProfile returned error: %v", err)
	}
	if profile.Email != "ada@example.com" || profile.FirstName != "Ada" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestGetProfile_UnknownClient(t *testing.T) {
	svc := NewProfileService(&profileRepoStub{})
	if _, err := svc.GetProfile(context.Background(), uuid.New()); err != store.ErrClientNotFound {
		t.Fatalf("err = %v, want ErrClientNotFound", err)
	}
}

func TestUpdateProfile_WritesFields(t *testing.T) {
	repo := &profileRepoStub{}
	svc := NewProfileService(repo)
	id := uuid.New()

	profile, err := svc.UpdateProfile(context.Background(), id, ProfileInput{
		FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com",
	})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if repo.updated == nil || repo.updated.ID != id {
		t.Fatal("expected update to target the authenticated client")
	}
	if profile.LastName != "Hopper" {
		t.Fatalf("last name = %q, want Hopper", profile.LastName)
	}
}

func TestUpdateProfile_EmailTaken(t *testing.T) {
	repo := &profileRepoStub{updateErr: store.ErrEmailTaken}
	svc := NewProfileService(repo)

	if _, err := svc.UpdateProfile(context.Background(), uuid.New(), ProfileInput{Email: "dup@example.com"}); err != store.ErrEmailTaken {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestUpdatePassword_VerifiesCurrentBeforeSwapping(t *testing.T) {
	client := &domain.Client{ID: uuid.New(), PasswordHash: hashFor(t, "old-pass")}
	repo := &profileRepoStub{client: client}
	svc := NewProfileService(repo)

	if err := svc.UpdatePassword(context.Background(), client.ID, "wrong", "new-pass"); err != ErrInvalidCredentials {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if repo.passwordHash != "" {
		t.Fatal("password must not change on a failed current-password check")
	}

	if err := svc.UpdatePassword(context.Background(), client.ID, "old-pass", "new-pass"); err != nil {
		t.Fatalf("UpdatePassword returned error: %v", err)
	}
	if repo.passwordHash == "" {
		t.Fatal("expected a new password hash to be stored")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(repo.passwordHash), []byte("new-pass")); err != nil {
		t.Fatal("stored hash does not match the new password")
	}
}

func TestDeleteAccount(t *testing.T) {
	client := &domain.Client{ID: uuid.New()}
	repo := &profileRepoStub{client: client}
	svc := NewProfileService(repo)

	if err := svc.DeleteAccount(context.Background(), client.ID); err != nil {
		t.Fatalf("DeleteAccount returned error: %v", err)
	}
	if repo.deleted != client.ID {
		t.Fatal("expected the client row to be deleted")
	}

	if err := svc.DeleteAccount(context.Background(), uuid.New()); err != store.ErrClientNotFound {
		t.Fatalf("err = %v, want ErrClientNotFound for a foreign id", err)
	}
}
