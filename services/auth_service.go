// services/auth_service.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"esports-registration/models"
	"esports-registration/validation"

	"golang.org/x/crypto/bcrypt"
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string               `json:"token"`
	ExpiresAt time.Time            `json:"expiresAt"`
	Admin     *models.AdminAccount `json:"admin"`
}

// AuthService handles admin login and token-based authentication.
type AuthService struct {
	creds     *CredentialStore
	tokens    *TokenService
	validator *validation.Validator
	now       func() time.Time
	log       *slog.Logger

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthService(creds *CredentialStore, tokens *TokenService, v *validation.Validator) *AuthService {
	return &AuthService{
		creds:     creds,
		tokens:    tokens,
		validator: v,
		now:       time.Now,
		log:       slog.With("component", "auth"),
	}
}

// Login checks credentials and issues a session token. Unknown emails and
// wrong passwords fail identically.
func (s *AuthService) Login(ctx context.Context, req validation.LoginRequest) (*LoginResult, error) {
	req.Normalize()
	if msgs := s.validator.Struct(req); msgs != nil {
		return nil, newValidationError(msgs...)
	}

	acct, err := s.creds.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		// Spend the same bcrypt time as a real comparison.
		s.burnComparison(req.Password)
		s.log.Info("login failed", "reason", "unknown email")
		return nil, ErrInvalidCredentials
	}
	if !s.creds.VerifyPassword(acct, req.Password) {
		s.log.Info("login failed", "reason", "bad password", "admin_id", acct.ID)
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	if err := s.creds.RecordLogin(ctx, acct.ID, now); err != nil {
		return nil, fmt.Errorf("record login: %w", err)
	}
	acct.LastLoginAt = &now

	token, expires, err := s.tokens.Issue(acct.ID)
	if err != nil {
		return nil, err
	}
	acct.PasswordHash = ""
	s.log.Info("login succeeded", "admin_id", acct.ID)
	return &LoginResult{Token: token, ExpiresAt: expires, Admin: acct}, nil
}

// Authenticate resolves a bearer token to an existing account.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.AdminAccount, error) {
	id, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	return s.creds.FindByID(ctx, id)
}

func (s *AuthService) burnComparison(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), models.PasswordHashCost)
	})
	_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
}
