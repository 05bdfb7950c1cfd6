package models

import (
	"os"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	PasswordHashCost = bcrypt.MinCost
	os.Exit(m.Run())
}

func TestAdminPasswordHashedOnlyWhenModified(t *testing.T) {
	acct := &AdminAccount{Email: "  Admin@Example.COM "}
	acct.SetPassword("s3cret-pass")

	if err := acct.BeforeSave(nil); err != nil {
		t.Fatalf("BeforeSave() error = %v", err)
	}
	if acct.Email != "admin@example.com" {
		t.Fatalf("Email = %q, want lowercase canonical form", acct.Email)
	}
	if acct.PasswordHash == "" || acct.PasswordHash == "s3cret-pass" {
		t.Fatalf("PasswordHash = %q, want a bcrypt hash", acct.PasswordHash)
	}
	if acct.PasswordModified() {
		t.Fatal("PasswordModified() = true after save")
	}
	if !acct.CheckPassword("s3cret-pass") {
		t.Fatal("CheckPassword(correct) = false")
	}
	if acct.CheckPassword("wrong") {
		t.Fatal("CheckPassword(wrong) = true")
	}

	firstHash := acct.PasswordHash
	acct.DisplayName = "Renamed"
	if err := acct.BeforeSave(nil); err != nil {
		t.Fatalf("BeforeSave() error = %v", err)
	}
	if acct.PasswordHash != firstHash {
		t.Fatal("unrelated update re-hashed the password")
	}
}

func TestAdminRejectsEmptyStagedPassword(t *testing.T) {
	acct := &AdminAccount{Email: "a@example.com"}
	acct.SetPassword("")
	if err := acct.BeforeSave(nil); err == nil {
		t.Fatal("BeforeSave() error = nil, want error for empty password")
	}
}

func TestAdminDefaultsRole(t *testing.T) {
	acct := &AdminAccount{Email: "a@example.com"}
	if err := acct.BeforeSave(nil); err != nil {
		t.Fatalf("BeforeSave() error = %v", err)
	}
	if acct.Role != RoleAdmin {
		t.Fatalf("Role = %q, want %q", acct.Role, RoleAdmin)
	}
	if !IsValidRole(RoleSuperAdmin) || IsValidRole("owner") {
		t.Fatal("IsValidRole mismatch")
	}
}

func TestStatusSets(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"new", "read", "replied"} {
		if !IsValidContactStatus(s) {
			t.Fatalf("IsValidContactStatus(%q) = false", s)
		}
	}
	if IsValidContactStatus("archived") {
		t.Fatal("IsValidContactStatus(archived) = true")
	}
	for _, s := range []string{"pending", "approved", "rejected"} {
		if !IsValidRegistrationStatus(s) {
			t.Fatalf("IsValidRegistrationStatus(%q) = false", s)
		}
	}
	if IsValidRegistrationStatus("new") {
		t.Fatal("IsValidRegistrationStatus(new) = true")
	}
}
