/**
 * @description
 * Account models for the two disjoint account collections: storefront clients
 * and staff users. Read-side aggregation joins either collection against an
 * order or subscription owner id through the AccountSummary projection.
 */
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Staff roles. Clients always carry RoleClient.
const (
	RoleClient  = "client"
	RoleAdmin   = "admin"
	RoleCourier = "livreur"
)

// Client is a storefront customer account.
type Client struct {
	ID              uuid.UUID  `json:"id"`
	FirstName       string     `json:"firstName"`
	LastName        string     `json:"lastName"`
	Email           string     `json:"email"`
	PasswordHash    string     `json:"-"`
	Role            string     `json:"role"`
	IsActive        bool       `json:"isActive"`
	ActivationToken *string    `json:"-"`
	ResetToken      *string    `json:"-"`
	ResetExpiresAt  *time.Time `json:"-"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// User is a staff account (admin, courier), managed through the admin CRUD
// endpoints rather than self-registration.
type User struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AccountSummary is the read-only projection of either account kind embedded
// in admin order and subscription listings.
type AccountSummary struct {
	ID        uuid.UUID `json:"_id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
}

// Summary returns the account projection of a client.
func (c Client) Summary() AccountSummary {
	return AccountSummary{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName, Email: c.Email, Role: c.Role}
}

// Summary returns the account projection of a staff user.
func (u User) Summary() AccountSummary {
	return AccountSummary{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email, Role: u.Role}
}
