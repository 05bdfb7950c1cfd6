// services/admin_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"esports-registration/models"
	"esports-registration/policy"
	"esports-registration/repository"
	"esports-registration/validation"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type AdminContactStore interface {
	List(ctx context.Context, filter repository.ContactFilter, page repository.Page) ([]models.ContactMessage, int64, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.ContactMessage, error)
	Delete(ctx context.Context, id string) error
	Counts(ctx context.Context) (repository.ContactCounts, error)
}

type AdminRegistrationStore interface {
	List(ctx context.Context, filter repository.RegistrationFilter, page repository.Page) ([]models.TournamentRegistration, int64, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.TournamentRegistration, error)
	Stats(ctx context.Context) (repository.RegistrationStats, error)
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// PageRequest is a raw page selection; ParsePage clamps it.
type PageRequest struct {
	Page     int
	PageSize int
}

// ParsePage reads page and pageSize query values, falling back to defaults
// for missing or malformed input.
func ParsePage(page, pageSize string) PageRequest {
	p, err := strconv.Atoi(strings.TrimSpace(page))
	if err != nil || p < 1 {
		p = 1
	}
	size, err := strconv.Atoi(strings.TrimSpace(pageSize))
	if err != nil || size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return PageRequest{Page: p, PageSize: size}
}

func (p PageRequest) window() repository.Page {
	return repository.Page{Offset: (p.Page - 1) * p.PageSize, Limit: p.PageSize}
}

func (p PageRequest) describe(total int64) Pagination {
	pages := int((total + int64(p.PageSize) - 1) / int64(p.PageSize))
	return Pagination{Page: p.Page, PageSize: p.PageSize, Total: total, TotalPages: pages}
}

// Stats is the admin dashboard summary.
type Stats struct {
	TotalContacts         int64            `json:"totalContacts"`
	NewContacts           int64            `json:"newContacts"`
	TotalRegistrations    int64            `json:"totalRegistrations"`
	PendingRegistrations  int64            `json:"pendingRegistrations"`
	ApprovedRegistrations int64            `json:"approvedRegistrations"`
	RejectedRegistrations int64            `json:"rejectedRegistrations"`
	RegistrationsByGame   map[string]int64 `json:"registrationsByGame"`
	TotalRevenue          int64            `json:"totalRevenue"`
}

// AdminService backs the authenticated dashboard endpoints.
type AdminService struct {
	contacts      AdminContactStore
	registrations AdminRegistrationStore
	creds         *CredentialStore
}

func NewAdminService(contacts AdminContactStore, registrations AdminRegistrationStore, creds *CredentialStore) *AdminService {
	return &AdminService{contacts: contacts, registrations: registrations, creds: creds}
}

// Me returns the account of the signed-in administrator.
func (s *AdminService) Me(ctx context.Context, id string) (*models.AdminAccount, error) {
	return s.creds.FindByID(ctx, id)
}

// ListContacts returns a newest-first page. An unknown status is ignored.
func (s *AdminService) ListContacts(ctx context.Context, status string, page PageRequest) ([]models.ContactMessage, Pagination, error) {
	var filter repository.ContactFilter
	if status = strings.ToLower(strings.TrimSpace(status)); models.IsValidContactStatus(status) {
		filter.Status = status
	}
	msgs, total, err := s.contacts.List(ctx, filter, page.window())
	if err != nil {
		return nil, Pagination{}, err
	}
	if msgs == nil {
		msgs = []models.ContactMessage{}
	}
	return msgs, page.describe(total), nil
}

// ListRegistrations returns a newest-first page. Unknown filter values are ignored.
func (s *AdminService) ListRegistrations(ctx context.Context, filter repository.RegistrationFilter, page PageRequest) ([]models.TournamentRegistration, Pagination, error) {
	norm := func(v string) string { return strings.ToLower(strings.TrimSpace(v)) }
	var clean repository.RegistrationFilter
	if g := norm(filter.Game); policy.IsKnownGame(g) {
		clean.Game = g
	}
	if m := norm(filter.Mode); policy.IsKnownMode(m) {
		clean.Mode = m
	}
	if st := norm(filter.Status); models.IsValidRegistrationStatus(st) {
		clean.Status = st
	}
	regs, total, err := s.registrations.List(ctx, clean, page.window())
	if err != nil {
		return nil, Pagination{}, err
	}
	if regs == nil {
		regs = []models.TournamentRegistration{}
	}
	return regs, page.describe(total), nil
}

func (s *AdminService) UpdateContactStatus(ctx context.Context, id string, req validation.StatusUpdateRequest) (*models.ContactMessage, error) {
	req.Normalize()
	if !models.IsValidContactStatus(req.Status) {
		return nil, newValidationError("status must be one of: " + strings.Join(models.ContactStatuses, ", "))
	}
	msg, err := s.contacts.UpdateStatus(ctx, id, req.Status)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrContactNotFound
	}
	return msg, err
}

func (s *AdminService) UpdateRegistrationStatus(ctx context.Context, id string, req validation.StatusUpdateRequest) (*models.TournamentRegistration, error) {
	req.Normalize()
	if !models.IsValidRegistrationStatus(req.Status) {
		return nil, newValidationError("status must be one of: " + strings.Join(models.RegistrationStatuses, ", "))
	}
	reg, err := s.registrations.UpdateStatus(ctx, id, req.Status)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrRegistrationNotFound
	}
	return reg, err
}

// DeleteContact removes a message permanently.
func (s *AdminService) DeleteContact(ctx context.Context, id string) error {
	err := s.contacts.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrContactNotFound
	}
	return err
}

// Stats gathers contact and registration aggregates concurrently.
func (s *AdminService) Stats(ctx context.Context) (*Stats, error) {
	var (
		contacts repository.ContactCounts
		regs     repository.RegistrationStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		contacts, err = s.contacts.Counts(gctx)
		return err
	})
	g.Go(func() (err error) {
		regs, err = s.registrations.Stats(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("collect stats: %w", err)
	}

	byGame := make(map[string]int64, len(policy.Games))
	for _, game := range policy.Games {
		byGame[game] = regs.ByGame[game]
	}
	return &Stats{
		TotalContacts:         contacts.Total,
		NewContacts:           contacts.New,
		TotalRegistrations:    regs.Total,
		PendingRegistrations:  regs.ByStatus[models.RegistrationStatusPending],
		ApprovedRegistrations: regs.ByStatus[models.RegistrationStatusApproved],
		RejectedRegistrations: regs.ByStatus[models.RegistrationStatusRejected],
		RegistrationsByGame:   byGame,
		TotalRevenue:          regs.Revenue,
	}, nil
}
