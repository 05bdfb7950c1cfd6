package repository

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"esports-registration/database"
	"esports-registration/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

func newTestConn(t *testing.T) *database.Manager {
	t.Helper()
	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "repo.db"), time.Second)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	m := database.FromDB(db)
	t.Cleanup(m.Close)
	return m
}

func registration(txn, game, mode, status string, fee int, created time.Time) *models.TournamentRegistration {
	return &models.TournamentRegistration{
		Game:          game,
		Mode:          mode,
		Players:       datatypes.JSONSlice[models.Player]{{InGameName: "A", InGameID: "1", Phone: "9876543210"}},
		TransactionID: txn,
		EntryFee:      fee,
		Status:        status,
		Timestamps:    models.Timestamps{CreatedAt: created},
	}
}

func TestRegistrationDuplicateTransactionRejectedUnderRace(t *testing.T) {
	repo := NewRegistrationRepository(newTestConn(t))
	ctx := context.Background()

	const writers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		dupes     int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Create(ctx, registration("UPI-RACE-1", "pubg", "solo", "pending", 5, time.Now()))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrDuplicate):
				dupes++
			default:
				t.Errorf("Create() unexpected error = %v", err)
			}
		}()
	}
	wg.Wait()

	if successes != 1 || dupes != writers-1 {
		t.Fatalf("successes=%d dupes=%d, want 1 and %d", successes, dupes, writers-1)
	}
	exists, err := repo.ExistsByTransactionID(ctx, "UPI-RACE-1")
	if err != nil || !exists {
		t.Fatalf("ExistsByTransactionID() = %t, %v", exists, err)
	}
}

func TestRegistrationListFiltersAndOrders(t *testing.T) {
	repo := NewRegistrationRepository(newTestConn(t))
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	fixtures := []*models.TournamentRegistration{
		registration("T-00001", "pubg", "solo", "pending", 5, base),
		registration("T-00002", "pubg", "duo", "approved", 10, base.Add(time.Minute)),
		registration("T-00003", "cod", "squad", "approved", 20, base.Add(2*time.Minute)),
		registration("T-00004", "freefire", "duo", "rejected", 10, base.Add(3*time.Minute)),
		registration("T-00005", "pubg", "squad", "pending", 20, base.Add(4*time.Minute)),
	}
	for _, f := range fixtures {
		if err := repo.Create(ctx, f); err != nil {
			t.Fatalf("Create(%s) error = %v", f.TransactionID, err)
		}
	}

	all, total, err := repo.List(ctx, RegistrationFilter{}, Page{Offset: 0, Limit: 2})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 5 || len(all) != 2 {
		t.Fatalf("List() total=%d len=%d, want 5 and 2", total, len(all))
	}
	if all[0].TransactionID != "T-00005" || all[1].TransactionID != "T-00004" {
		t.Fatalf("List() order = %s,%s, want newest first", all[0].TransactionID, all[1].TransactionID)
	}
	if len(all[0].Players) != 1 || all[0].Players[0].InGameName != "A" {
		t.Fatalf("roster not round-tripped: %+v", all[0].Players)
	}

	pubg, total, err := repo.List(ctx, RegistrationFilter{Game: "pubg", Status: "pending"}, Page{Limit: 10})
	if err != nil {
		t.Fatalf("List(filter) error = %v", err)
	}
	if total != 2 || len(pubg) != 2 {
		t.Fatalf("List(filter) total=%d len=%d, want 2", total, len(pubg))
	}

	stats, err := repo.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Total != 5 || stats.ByStatus["approved"] != 2 || stats.ByStatus["pending"] != 2 {
		t.Fatalf("Stats() = %+v", stats)
	}
	if stats.ByGame["pubg"] != 3 || stats.ByGame["cod"] != 1 || stats.ByGame["freefire"] != 1 {
		t.Fatalf("Stats().ByGame = %v", stats.ByGame)
	}
	if stats.Revenue != 30 {
		t.Fatalf("Stats().Revenue = %d, want 30 (approved only)", stats.Revenue)
	}
}

func TestRegistrationUpdateStatus(t *testing.T) {
	repo := NewRegistrationRepository(newTestConn(t))
	ctx := context.Background()

	reg := registration("T-UPDATE", "cod", "solo", "", 5, time.Now())
	if err := repo.Create(ctx, reg); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if reg.Status != models.RegistrationStatusPending {
		t.Fatalf("default status = %q, want pending", reg.Status)
	}

	updated, err := repo.UpdateStatus(ctx, reg.ID, models.RegistrationStatusApproved)
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if updated.Status != models.RegistrationStatusApproved || updated.EntryFee != 5 {
		t.Fatalf("UpdateStatus() = %+v", updated)
	}

	if _, err := repo.UpdateStatus(ctx, "missing", "approved"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdateStatus(missing) error = %v, want ErrNotFound", err)
	}
}

func TestContactLifecycle(t *testing.T) {
	repo := NewContactRepository(newTestConn(t))
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < 3; i++ {
		msg := &models.ContactMessage{
			Name:       fmt.Sprintf("Player %d", i),
			Email:      "p@example.com",
			Subject:    "general",
			Message:    "When does registration close?",
			Timestamps: models.Timestamps{CreatedAt: base.Add(time.Duration(i) * time.Minute)},
		}
		if err := repo.Create(ctx, msg); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if msg.Status != models.ContactStatusNew {
			t.Fatalf("Status = %q, want new", msg.Status)
		}
		ids = append(ids, msg.ID)
	}

	// read and replied are independently settable in either order.
	for _, status := range []string{"replied", "read", "replied"} {
		got, err := repo.UpdateStatus(ctx, ids[0], status)
		if err != nil {
			t.Fatalf("UpdateStatus(%s) error = %v", status, err)
		}
		if got.Status != status {
			t.Fatalf("Status = %q, want %q", got.Status, status)
		}
	}

	counts, err := repo.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts() error = %v", err)
	}
	if counts.Total != 3 || counts.New != 2 {
		t.Fatalf("Counts() = %+v, want total 3 new 2", counts)
	}

	list, total, err := repo.List(ctx, ContactFilter{Status: "new"}, Page{Limit: 10})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 2 || list[0].ID != ids[2] {
		t.Fatalf("List() total=%d first=%s, want 2 and newest", total, list[0].ID)
	}

	if err := repo.Delete(ctx, ids[1]); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := repo.Delete(ctx, ids[1]); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestAdminRepository(t *testing.T) {
	models.PasswordHashCost = bcrypt.MinCost
	repo := NewAdminRepository(newTestConn(t))
	ctx := context.Background()

	acct := &models.AdminAccount{Email: "Boss@Example.com", DisplayName: "Boss"}
	acct.SetPassword("correct horse")
	if err := repo.Create(ctx, acct); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	dup := &models.AdminAccount{Email: "boss@example.COM"}
	dup.SetPassword("other")
	if err := repo.Create(ctx, dup); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("Create(duplicate email) error = %v, want ErrDuplicate", err)
	}

	withHash, err := repo.FindByEmailWithPassword(ctx, "BOSS@example.com")
	if err != nil {
		t.Fatalf("FindByEmailWithPassword() error = %v", err)
	}
	if !withHash.CheckPassword("correct horse") {
		t.Fatal("stored hash does not verify")
	}

	plain, err := repo.FindByID(ctx, acct.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if plain.PasswordHash != "" {
		t.Fatal("FindByID() materialized the password hash")
	}
	byEmail, err := repo.FindByEmail(ctx, "boss@example.com")
	if err != nil || byEmail.PasswordHash != "" {
		t.Fatalf("FindByEmail() = %+v, %v", byEmail, err)
	}

	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	if err := repo.UpdateLastLogin(ctx, acct.ID, at); err != nil {
		t.Fatalf("UpdateLastLogin() error = %v", err)
	}
	reloaded, _ := repo.FindByEmailWithPassword(ctx, "boss@example.com")
	if reloaded.LastLoginAt == nil || !reloaded.LastLoginAt.Equal(at) {
		t.Fatalf("LastLoginAt = %v, want %v", reloaded.LastLoginAt, at)
	}
	if reloaded.PasswordHash != withHash.PasswordHash {
		t.Fatal("UpdateLastLogin changed the password hash")
	}

	if _, err := repo.FindByEmail(ctx, "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("FindByEmail(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestUnavailableConnection(t *testing.T) {
	t.Parallel()
	repo := NewContactRepository(database.NewManager("sqlite", "unused", time.Second))
	if err := repo.Create(context.Background(), &models.ContactMessage{}); !errors.Is(err, database.ErrUnavailable) {
		t.Fatalf("Create() error = %v, want ErrUnavailable", err)
	}
}
