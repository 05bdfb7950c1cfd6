package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"esports-registration/models"
	"esports-registration/repository"
	"esports-registration/validation"
)

func newAdminFixture(t *testing.T) (*AdminService, *fakeContacts, *fakeRegistrations) {
	t.Helper()
	contacts := &fakeContacts{}
	regs := &fakeRegistrations{}
	creds := NewCredentialStore(newFakeAdmins())
	return NewAdminService(contacts, regs, creds), contacts, regs
}

func seedRegistration(t *testing.T, store *fakeRegistrations, game, mode, status string, fee int) string {
	t.Helper()
	reg := &models.TournamentRegistration{
		Game:          game,
		Mode:          mode,
		Players:       []models.Player{{InGameName: "p", InGameID: "1", Phone: "9"}},
		TransactionID: game + mode + status + string(rune('a'+len(store.rows))),
		EntryFee:      fee,
		Status:        status,
	}
	if err := store.Create(context.Background(), reg); err != nil {
		t.Fatal(err)
	}
	return reg.ID
}

func TestParsePage(t *testing.T) {
	t.Parallel()
	cases := []struct {
		page, size string
		want       PageRequest
	}{
		{"", "", PageRequest{1, 20}},
		{"3", "50", PageRequest{3, 50}},
		{"0", "-4", PageRequest{1, 20}},
		{"two", "500", PageRequest{1, 100}},
	}
	for _, tc := range cases {
		if got := ParsePage(tc.page, tc.size); got != tc.want {
			t.Errorf("ParsePage(%q, %q) = %+v, want %+v", tc.page, tc.size, got, tc.want)
		}
	}
}

func TestListRegistrationsIgnoresInvalidFilters(t *testing.T) {
	t.Parallel()
	svc, _, regs := newAdminFixture(t)
	for i := 0; i < 3; i++ {
		seedRegistration(t, regs, "pubg", "solo", "pending", 5)
	}
	seedRegistration(t, regs, "cod", "duo", "approved", 10)
	newest := seedRegistration(t, regs, "freefire", "squad", "pending", 20)

	page, meta, err := svc.ListRegistrations(context.Background(), repository.RegistrationFilter{Game: "tetris", Status: "PENDING"}, PageRequest{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("ListRegistrations() error = %v", err)
	}
	if meta.Total != 4 || meta.TotalPages != 2 || meta.PageSize != 2 {
		t.Fatalf("pagination = %+v", meta)
	}
	if page[0].ID != newest {
		t.Fatalf("first row = %s, want newest %s", page[0].ID, newest)
	}

	empty, meta, err := svc.ListRegistrations(context.Background(), repository.RegistrationFilter{}, PageRequest{Page: 9, PageSize: 20})
	if err != nil {
		t.Fatal(err)
	}
	if empty == nil || len(empty) != 0 || meta.Total != 5 {
		t.Fatalf("page past the end = %v, %+v", empty, meta)
	}
}

func TestUpdateStatuses(t *testing.T) {
	t.Parallel()
	svc, contacts, regs := newAdminFixture(t)
	ctx := context.Background()
	id := seedRegistration(t, regs, "pubg", "solo", "pending", 5)
	msg := &models.ContactMessage{Name: "N", Email: "n@example.com", Subject: "general", Message: "hello there!", Status: "new"}
	if err := contacts.Create(ctx, msg); err != nil {
		t.Fatal(err)
	}

	reg, err := svc.UpdateRegistrationStatus(ctx, id, validation.StatusUpdateRequest{Status: " Approved "})
	if err != nil || reg.Status != models.RegistrationStatusApproved {
		t.Fatalf("UpdateRegistrationStatus() = (%v, %v)", reg, err)
	}

	var verr *ValidationError
	if _, err := svc.UpdateRegistrationStatus(ctx, id, validation.StatusUpdateRequest{Status: "refunded"}); !errors.As(err, &verr) {
		t.Fatalf("bad registration status error = %v", err)
	}
	if _, err := svc.UpdateRegistrationStatus(ctx, "missing", validation.StatusUpdateRequest{Status: "rejected"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown registration error = %v", err)
	}

	got, err := svc.UpdateContactStatus(ctx, msg.ID, validation.StatusUpdateRequest{Status: "replied"})
	if err != nil || got.Status != models.ContactStatusReplied {
		t.Fatalf("UpdateContactStatus() = (%v, %v)", got, err)
	}
	if _, err := svc.UpdateContactStatus(ctx, msg.ID, validation.StatusUpdateRequest{Status: "approved"}); !errors.As(err, &verr) {
		t.Fatalf("bad contact status error = %v", err)
	}
	if _, err := svc.UpdateContactStatus(ctx, "missing", validation.StatusUpdateRequest{Status: "read"}); !errors.Is(err, ErrContactNotFound) {
		t.Fatalf("unknown contact error = %v", err)
	}
}

func TestDeleteContact(t *testing.T) {
	t.Parallel()
	svc, contacts, _ := newAdminFixture(t)
	ctx := context.Background()
	msg := &models.ContactMessage{Name: "N", Email: "n@example.com", Subject: "general", Message: "hello there!", Status: "new"}
	if err := contacts.Create(ctx, msg); err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteContact(ctx, msg.ID); err != nil {
		t.Fatalf("DeleteContact() error = %v", err)
	}
	if err := svc.DeleteContact(ctx, msg.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second DeleteContact() error = %v, want not found", err)
	}
}

func TestStatsRevenueCountsApprovedOnly(t *testing.T) {
	t.Parallel()
	svc, contacts, regs := newAdminFixture(t)
	ctx := context.Background()

	seedRegistration(t, regs, "pubg", "squad", models.RegistrationStatusApproved, 20)
	seedRegistration(t, regs, "pubg", "duo", models.RegistrationStatusApproved, 10)
	seedRegistration(t, regs, "cod", "solo", models.RegistrationStatusPending, 5)
	seedRegistration(t, regs, "cod", "squad", models.RegistrationStatusRejected, 20)
	for _, st := range []string{"new", "new", "read"} {
		if err := contacts.Create(ctx, &models.ContactMessage{Name: "N", Email: "n@example.com", Subject: "other", Message: "message body", Status: st}); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	want := Stats{
		TotalContacts:         3,
		NewContacts:           2,
		TotalRegistrations:    4,
		PendingRegistrations:  1,
		ApprovedRegistrations: 2,
		RejectedRegistrations: 1,
		TotalRevenue:          30,
	}
	got := *stats
	got.RegistrationsByGame = nil
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Stats() = %+v, want %+v", got, want)
	}
	byGame := stats.RegistrationsByGame
	if byGame["pubg"] != 2 || byGame["cod"] != 2 || byGame["freefire"] != 0 {
		t.Fatalf("registrationsByGame = %v", byGame)
	}
	if _, ok := byGame["freefire"]; !ok {
		t.Fatal("games without registrations must be reported as zero")
	}
}
