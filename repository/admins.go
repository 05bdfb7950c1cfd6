package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"esports-registration/models"
)

// AdminRepository stores administrator accounts. The password hash is only
// read by FindByEmailWithPassword.
type AdminRepository struct {
	conn Connector
}

func NewAdminRepository(conn Connector) *AdminRepository {
	return &AdminRepository{conn: conn}
}

// FindByEmailWithPassword loads the full account, hash included, for login.
func (r *AdminRepository) FindByEmailWithPassword(ctx context.Context, email string) (*models.AdminAccount, error) {
	db, err := r.conn.Conn()
	if err != nil {
		return nil, err
	}
	var acct models.AdminAccount
	err = db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&acct).Error
	if err != nil {
		return nil, translate(err)
	}
	return &acct, nil
}

// FindByEmail loads an account without its password hash.
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*models.AdminAccount, error) {
	db, err := r.conn.Conn()
	if err != nil {
		return nil, err
	}
	var acct models.AdminAccount
	err = db.WithContext(ctx).Omit("password_hash").
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&acct).Error
	if err != nil {
		return nil, translate(err)
	}
	return &acct, nil
}

// FindByID loads an account without its password hash.
func (r *AdminRepository) FindByID(ctx context.Context, id string) (*models.AdminAccount, error) {
	db, err := r.conn.Conn()
	if err != nil {
		return nil, err
	}
	var acct models.AdminAccount
	if err := db.WithContext(ctx).Omit("password_hash").First(&acct, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &acct, nil
}

// Create inserts a new account; a taken email yields ErrDuplicate.
func (r *AdminRepository) Create(ctx context.Context, acct *models.AdminAccount) error {
	db, err := r.conn.Conn()
	if err != nil {
		return err
	}
	if err := db.WithContext(ctx).Create(acct).Error; err != nil {
		return fmt.Errorf("create admin: %w", translate(err))
	}
	return nil
}

// Save writes every column of acct. The model hook re-hashes only a staged password.
func (r *AdminRepository) Save(ctx context.Context, acct *models.AdminAccount) error {
	db, err := r.conn.Conn()
	if err != nil {
		return err
	}
	if err := db.WithContext(ctx).Save(acct).Error; err != nil {
		return fmt.Errorf("save admin: %w", translate(err))
	}
	return nil
}

// UpdateLastLogin stamps a successful login without running save hooks.
func (r *AdminRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	db, err := r.conn.Conn()
	if err != nil {
		return err
	}
	res := db.WithContext(ctx).Model(&models.AdminAccount{}).Where("id = ?", id).UpdateColumn("last_login_at", at)
	if res.Error != nil {
		return fmt.Errorf("update last login: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
