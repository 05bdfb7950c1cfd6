// models/admin.go
package models

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

// PasswordHashCost is the bcrypt work factor used for administrator passwords.
var PasswordHashCost = 12

// AdminAccount is a dashboard operator. Accounts are provisioned out of band
// (see cmd/createadmin) and never through a public endpoint.
type AdminAccount struct {
	ID           string     `json:"id" gorm:"primaryKey;size:36"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:320;not null"`
	PasswordHash string     `json:"-" gorm:"column:password_hash;size:255;not null"`
	DisplayName  string     `json:"displayName" gorm:"size:120"`
	Role         string     `json:"role" gorm:"size:16;not null;default:'admin'"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	Timestamps

	// plaintext is held only between SetPassword and the next save.
	plaintext        string
	passwordModified bool
}

func (AdminAccount) TableName() string { return "admins" }

// IsValidRole reports whether role is a known administrator role.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}

// SetPassword stages a new password. The hash is computed when the account is saved.
func (a *AdminAccount) SetPassword(plain string) {
	a.plaintext = plain
	a.passwordModified = true
}

// PasswordModified reports whether a new password is waiting to be hashed.
func (a *AdminAccount) PasswordModified() bool {
	return a.passwordModified
}

// CheckPassword compares candidate against the stored hash.
func (a *AdminAccount) CheckPassword(candidate string) bool {
	if a.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(candidate)) == nil
}

// HashStagedPassword replaces PasswordHash when, and only when, SetPassword
// was called since the last save.
func (a *AdminAccount) HashStagedPassword() error {
	if !a.passwordModified {
		return nil
	}
	if a.plaintext == "" {
		return errors.New("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(a.plaintext), PasswordHashCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	a.plaintext = ""
	a.passwordModified = false
	return nil
}

func (a *AdminAccount) BeforeCreate(tx *gorm.DB) error {
	ensureID(&a.ID)
	return nil
}

func (a *AdminAccount) BeforeSave(tx *gorm.DB) error {
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	if a.Role == "" {
		a.Role = RoleAdmin
	}
	return a.HashStagedPassword()
}
