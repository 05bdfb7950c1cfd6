// Command createadmin provisions dashboard administrators. There is no public
// endpoint for creating accounts; operators run this against the database.
//
//	createadmin -email ops@example.com -name "Ops" -password '...'
//	createadmin -email ops@example.com -password '...' -reset
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"esports-registration/config"
	"esports-registration/database"
	"esports-registration/models"
	"esports-registration/repository"
	"esports-registration/services"
	"esports-registration/validation"
)

func main() {
	email := flag.String("email", "", "administrator email (required)")
	name := flag.String("name", "", "display name")
	role := flag.String("role", models.RoleAdmin, "role: admin or superadmin")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "password, at least 8 characters (default $ADMIN_PASSWORD)")
	reset := flag.Bool("reset", false, "replace the password of an existing account")
	flag.Parse()

	if err := run(*email, *name, *role, *password, *reset); err != nil {
		fmt.Fprintln(os.Stderr, "createadmin:", err)
		os.Exit(1)
	}
}

func run(email, name, role, password string, reset bool) error {
	email = validation.CanonicalEmail(email)
	if email == "" {
		return errors.New("-email is required")
	}
	if password == "" {
		return errors.New("-password or ADMIN_PASSWORD is required")
	}

	config.SetupLogging(os.Getenv("LOG_LEVEL"))
	cfg, err := config.LoadDatabase()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.NewManager(cfg.DatabaseDriver, cfg.DatabaseURL, cfg.DBSlowQueryLimit)
	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	creds := services.NewCredentialStore(repository.NewAdminRepository(db))

	if reset {
		acct, err := creds.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if acct == nil {
			return fmt.Errorf("no administrator with email %s", email)
		}
		if len(password) < 8 {
			return errors.New("password must be at least 8 characters")
		}
		if err := creds.SetPassword(ctx, acct, password); err != nil {
			return err
		}
		slog.Info("password reset", "admin_id", acct.ID, "email", acct.Email)
		return nil
	}

	acct, err := creds.Provision(ctx, email, name, role, password)
	if err != nil {
		return err
	}
	slog.Info("administrator created", "admin_id", acct.ID, "email", acct.Email, "role", acct.Role)
	return nil
}
