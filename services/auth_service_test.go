package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"esports-registration/models"
	"esports-registration/validation"
)

func newAuthFixture(t *testing.T) (*AuthService, *CredentialStore, *fakeAdmins, *models.AdminAccount) {
	t.Helper()
	admins := newFakeAdmins()
	creds := NewCredentialStore(admins)
	acct, err := creds.Provision(context.Background(), "Ops@Example.com", "Ops", models.RoleAdmin, "correct-horse")
	if err != nil {
		t.Fatalf("Provision() error = %v", err)
	}
	tokens := NewTokenService("test-secret-0123456789", time.Hour)
	return NewAuthService(creds, tokens, validation.New()), creds, admins, acct
}

func TestLoginSuccess(t *testing.T) {
	t.Parallel()
	auth, _, admins, acct := newAuthFixture(t)

	res, err := auth.Login(context.Background(), validation.LoginRequest{Email: " OPS@example.com ", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if res.Token == "" || res.Admin.ID != acct.ID {
		t.Fatalf("Login() = %+v", res)
	}
	if res.Admin.PasswordHash != "" {
		t.Fatal("login result leaks the password hash")
	}
	if admins.byID[acct.ID].LastLoginAt == nil {
		t.Fatal("lastLoginAt not recorded")
	}

	got, err := auth.Authenticate(context.Background(), res.Token)
	if err != nil || got.ID != acct.ID {
		t.Fatalf("Authenticate() = (%v, %v)", got, err)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()
	auth, _, _, _ := newAuthFixture(t)

	_, wrongPass := auth.Login(context.Background(), validation.LoginRequest{Email: "ops@example.com", Password: "wrong-horse"})
	_, unknown := auth.Login(context.Background(), validation.LoginRequest{Email: "ghost@example.com", Password: "wrong-horse"})

	for _, err := range []error{wrongPass, unknown} {
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("Login() error = %v, want ErrInvalidCredentials", err)
		}
	}
	if wrongPass.Error() != unknown.Error() || wrongPass.Error() != "invalid email or password" {
		t.Fatalf("messages differ: %q vs %q", wrongPass, unknown)
	}
}

func TestAuthenticateDeletedAccount(t *testing.T) {
	t.Parallel()
	auth, _, admins, acct := newAuthFixture(t)
	res, err := auth.Login(context.Background(), validation.LoginRequest{Email: "ops@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatal(err)
	}
	delete(admins.byID, acct.ID)

	if _, err := auth.Authenticate(context.Background(), res.Token); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("Authenticate() error = %v, want ErrAccountNotFound", err)
	}
}

func TestCredentialStoreSetPassword(t *testing.T) {
	t.Parallel()
	_, creds, _, _ := newAuthFixture(t)
	ctx := context.Background()

	acct, err := creds.FindByEmail(ctx, "ops@example.com")
	if err != nil || acct == nil {
		t.Fatalf("FindByEmail() = (%v, %v)", acct, err)
	}
	oldHash := acct.PasswordHash
	if err := creds.SetPassword(ctx, acct, "battery-staple"); err != nil {
		t.Fatalf("SetPassword() error = %v", err)
	}

	reloaded, _ := creds.FindByEmail(ctx, "ops@example.com")
	if reloaded.PasswordHash == oldHash {
		t.Fatal("hash unchanged after SetPassword")
	}
	if !creds.VerifyPassword(reloaded, "battery-staple") || creds.VerifyPassword(reloaded, "correct-horse") {
		t.Fatal("password was not replaced")
	}

	// Saving again without a staged password keeps the hash.
	if err := creds.admins.Save(ctx, reloaded); err != nil {
		t.Fatal(err)
	}
	again, _ := creds.FindByEmail(ctx, "ops@example.com")
	if again.PasswordHash != reloaded.PasswordHash {
		t.Fatal("hash changed without a password update")
	}

	missing, err := creds.FindByEmail(ctx, "nobody@example.com")
	if err != nil || missing != nil {
		t.Fatalf("FindByEmail(unknown) = (%v, %v), want (nil, nil)", missing, err)
	}
}

func TestProvisionRejectsBadInput(t *testing.T) {
	t.Parallel()
	_, creds, _, _ := newAuthFixture(t)
	ctx := context.Background()

	var verr *ValidationError
	if _, err := creds.Provision(ctx, "x@example.com", "X", "root", "long-enough"); !errors.As(err, &verr) {
		t.Fatalf("Provision(bad role) error = %v", err)
	}
	if _, err := creds.Provision(ctx, "x@example.com", "X", models.RoleAdmin, "short"); !errors.As(err, &verr) {
		t.Fatalf("Provision(short password) error = %v", err)
	}
	if _, err := creds.Provision(ctx, "ops@example.com", "Dup", models.RoleAdmin, "long-enough"); err == nil {
		t.Fatal("Provision(duplicate) succeeded")
	}
}
