// services/contact_service.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"esports-registration/models"
	"esports-registration/notifier"
	"esports-registration/validation"
)

type ContactStore interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
}

// ContactReceipt is returned after a message is stored.
type ContactReceipt struct {
	ID string `json:"id"`
}

type ContactService struct {
	store     ContactStore
	validator *validation.Validator
	notify    Notifier
	log       *slog.Logger
}

func NewContactService(store ContactStore, v *validation.Validator, n Notifier) *ContactService {
	return &ContactService{
		store:     store,
		validator: v,
		notify:    orDiscard(n),
		log:       slog.With("component", "contact"),
	}
}

// Submit validates and stores a contact message, then queues the admin alert.
func (s *ContactService) Submit(ctx context.Context, req validation.ContactRequest) (*ContactReceipt, error) {
	req.Normalize()
	if msgs := s.validator.Struct(req); msgs != nil {
		return nil, newValidationError(msgs...)
	}

	msg := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
		Status:  models.ContactStatusNew,
	}
	if err := s.store.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("store contact: %w", err)
	}

	s.log.Info("contact stored", "id", msg.ID, "subject", msg.Subject)
	if !s.notify.Enqueue(notifier.ContactNotification(*msg)) {
		s.log.Warn("contact notification dropped", "id", msg.ID)
	}
	return &ContactReceipt{ID: msg.ID}, nil
}
