// services/registration_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"esports-registration/models"
	"esports-registration/notifier"
	"esports-registration/policy"
	"esports-registration/repository"
	"esports-registration/validation"
)

// RegistrationStore is the persistence the registration workflow needs.
type RegistrationStore interface {
	ExistsByTransactionID(ctx context.Context, txnID string) (bool, error)
	Create(ctx context.Context, reg *models.TournamentRegistration) error
}

// RegistrationReceipt is what the submitter gets back.
type RegistrationReceipt struct {
	ID          string `json:"id"`
	Game        string `json:"game"`
	Mode        string `json:"mode"`
	TeamName    string `json:"teamName,omitempty"`
	PlayerCount int    `json:"playerCount"`
	EntryFee    int    `json:"entryFee"`
	Status      string `json:"status"`
}

type RegistrationService struct {
	store     RegistrationStore
	validator *validation.Validator
	notify    Notifier
	log       *slog.Logger
}

func NewRegistrationService(store RegistrationStore, v *validation.Validator, n Notifier) *RegistrationService {
	return &RegistrationService{
		store:     store,
		validator: v,
		notify:    orDiscard(n),
		log:       slog.With("component", "registration"),
	}
}

// Submit validates and stores a tournament registration. The entry fee is
// always derived from the mode; a transaction id can be used only once.
func (s *RegistrationService) Submit(ctx context.Context, req validation.RegistrationRequest) (*RegistrationReceipt, error) {
	req.Normalize()
	if msgs := s.validator.Struct(req); msgs != nil {
		return nil, newValidationError(msgs...)
	}

	fee := policy.EntryFeeFor(req.Mode)

	used, err := s.store.ExistsByTransactionID(ctx, req.TransactionID)
	if err != nil {
		return nil, err
	}
	if used {
		return nil, ErrTransactionUsed
	}

	if msgs := rosterProblems(req); msgs != nil {
		return nil, newValidationError(msgs...)
	}

	reg := &models.TournamentRegistration{
		Game:          req.Game,
		Mode:          req.Mode,
		TeamName:      req.TeamName,
		Players:       toPlayers(req.Players),
		TransactionID: req.TransactionID,
		EntryFee:      fee,
		Status:        models.RegistrationStatusPending,
	}
	if err := s.store.Create(ctx, reg); err != nil {
		// Lost a race with a concurrent submission of the same transaction.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTransactionUsed
		}
		return nil, fmt.Errorf("store registration: %w", err)
	}

	s.log.Info("registration stored", "id", reg.ID, "game", reg.Game, "mode", reg.Mode, "players", len(reg.Players))
	if !s.notify.Enqueue(notifier.RegistrationNotification(*reg)) {
		s.log.Warn("registration notification dropped", "id", reg.ID)
	}

	return &RegistrationReceipt{
		ID:          reg.ID,
		Game:        reg.Game,
		Mode:        reg.Mode,
		TeamName:    reg.TeamName,
		PlayerCount: len(reg.Players),
		EntryFee:    reg.EntryFee,
		Status:      reg.Status,
	}, nil
}

// rosterProblems applies the mode rules that field validation cannot express.
// Extra players beyond the required count are kept as submitted.
func rosterProblems(req validation.RegistrationRequest) []string {
	var msgs []string
	if need := policy.RequiredPlayerCountFor(req.Mode); len(req.Players) < need {
		msgs = append(msgs, fmt.Sprintf("%s mode requires %d players, got %d", req.Mode, need, len(req.Players)))
	}
	if policy.TeamNameRequired(req.Mode) && req.TeamName == "" {
		msgs = append(msgs, fmt.Sprintf("teamName is required for %s mode", req.Mode))
	}
	return msgs
}

func toPlayers(in []validation.PlayerInput) []models.Player {
	out := make([]models.Player, len(in))
	for i, p := range in {
		out[i] = models.Player{
			InGameName: p.InGameName,
			InGameID:   p.InGameID,
			Phone:      p.Phone,
			Email:      p.Email,
		}
	}
	return out
}
