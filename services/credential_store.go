// services/credential_store.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"esports-registration/models"
	"esports-registration/repository"
)

// AdminStore is the persistence the credential store needs.
type AdminStore interface {
	FindByEmailWithPassword(ctx context.Context, email string) (*models.AdminAccount, error)
	FindByID(ctx context.Context, id string) (*models.AdminAccount, error)
	Create(ctx context.Context, acct *models.AdminAccount) error
	Save(ctx context.Context, acct *models.AdminAccount) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}

// CredentialStore owns administrator records and their password hashes.
type CredentialStore struct {
	admins AdminStore
}

func NewCredentialStore(admins AdminStore) *CredentialStore {
	return &CredentialStore{admins: admins}
}

// FindByEmail returns the account with its password hash, or (nil, nil) when
// no account uses email.
func (c *CredentialStore) FindByEmail(ctx context.Context, email string) (*models.AdminAccount, error) {
	acct, err := c.admins.FindByEmailWithPassword(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find admin by email: %w", err)
	}
	return acct, nil
}

// FindByID returns the account without its hash.
func (c *CredentialStore) FindByID(ctx context.Context, id string) (*models.AdminAccount, error) {
	acct, err := c.admins.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return acct, nil
}

// VerifyPassword compares candidate against the stored bcrypt hash.
func (c *CredentialStore) VerifyPassword(acct *models.AdminAccount, candidate string) bool {
	return acct != nil && acct.CheckPassword(candidate)
}

// SetPassword replaces the password of an existing account.
func (c *CredentialStore) SetPassword(ctx context.Context, acct *models.AdminAccount, plain string) error {
	acct.SetPassword(plain)
	if err := c.admins.Save(ctx, acct); err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	return nil
}

// Provision creates a new administrator. Only the provisioning CLI calls it.
func (c *CredentialStore) Provision(ctx context.Context, email, displayName, role, password string) (*models.AdminAccount, error) {
	if !models.IsValidRole(role) {
		return nil, newValidationError(fmt.Sprintf("role must be one of: %s, %s", models.RoleAdmin, models.RoleSuperAdmin))
	}
	if len(password) < 8 {
		return nil, newValidationError("password must be at least 8 characters")
	}
	acct := &models.AdminAccount{Email: email, DisplayName: displayName, Role: role}
	acct.SetPassword(password)
	if err := c.admins.Create(ctx, acct); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("admin %s already exists: %w", email, err)
		}
		return nil, err
	}
	return acct, nil
}

// RecordLogin stamps lastLoginAt.
func (c *CredentialStore) RecordLogin(ctx context.Context, id string, at time.Time) error {
	return c.admins.UpdateLastLogin(ctx, id, at)
}
