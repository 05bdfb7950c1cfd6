package validation

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ContactRequest is the body of POST /api/v1/contact.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email,max=320"`
	Phone   string `json:"phone" validate:"omitempty,max=30"`
	Subject string `json:"subject" validate:"required,contact_subject"`
	Message string `json:"message" validate:"required,min=10,max=2000"`
}

// PlayerInput is one roster entry of a registration request.
type PlayerInput struct {
	InGameName string `json:"inGameName" validate:"required,max=50"`
	InGameID   string `json:"inGameId" validate:"required,max=30"`
	Phone      string `json:"phone" validate:"required,max=30"`
	Email      string `json:"email" validate:"omitempty,email,max=320"`
}

// RegistrationRequest is the body of POST /api/v1/register. It carries no fee
// field: the entry fee is always derived from the mode.
type RegistrationRequest struct {
	Game          string        `json:"game" validate:"required,game"`
	Mode          string        `json:"mode" validate:"required,mode"`
	TeamName      string        `json:"teamName" validate:"max=50"`
	Players       []PlayerInput `json:"players" validate:"required,min=1,max=5,dive"`
	TransactionID string        `json:"transactionId" validate:"required,min=5,max=100"`
}

// LoginRequest is the body of POST /api/v1/admin/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=128"`
}

// StatusUpdateRequest is the body of the admin PATCH endpoints.
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// CanonicalEmail trims and lowercases an email address.
func CanonicalEmail(s string) string {
	return strings.ToLower(clean(s))
}

func (r *ContactRequest) Normalize() {
	r.Name = clean(r.Name)
	r.Email = CanonicalEmail(r.Email)
	r.Phone = clean(r.Phone)
	r.Subject = strings.ToLower(clean(r.Subject))
	r.Message = clean(r.Message)
}

func (r *RegistrationRequest) Normalize() {
	r.Game = strings.ToLower(clean(r.Game))
	r.Mode = strings.ToLower(clean(r.Mode))
	r.TeamName = clean(r.TeamName)
	r.TransactionID = clean(r.TransactionID)
	for i := range r.Players {
		p := &r.Players[i]
		p.InGameName = clean(p.InGameName)
		p.InGameID = clean(p.InGameID)
		p.Phone = clean(p.Phone)
		p.Email = CanonicalEmail(p.Email)
	}
}

func (r *LoginRequest) Normalize() {
	r.Email = CanonicalEmail(r.Email)
}

func (r *StatusUpdateRequest) Normalize() {
	r.Status = strings.ToLower(clean(r.Status))
}
