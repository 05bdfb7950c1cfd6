// models/registration.go
package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RegistrationStatusPending  = "pending"
	RegistrationStatusApproved = "approved"
	RegistrationStatusRejected = "rejected"
)

// RegistrationStatuses lists every registration status.
var RegistrationStatuses = []string{RegistrationStatusPending, RegistrationStatusApproved, RegistrationStatusRejected}

// Player is one roster entry. It has no identity of its own; the first entry
// is the team lead and is the only one that conventionally carries an email.
type Player struct {
	InGameName string `json:"inGameName"`
	InGameID   string `json:"inGameId"`
	Phone      string `json:"phone"`
	Email      string `json:"email,omitempty"`
}

// TournamentRegistration is a paid entry into a tournament. Registrations are
// financial records and are never deleted.
type TournamentRegistration struct {
	ID            string                      `json:"id" gorm:"primaryKey;size:36"`
	Game          string                      `json:"game" gorm:"size:16;not null;index"`
	Mode          string                      `json:"mode" gorm:"size:16;not null;index"`
	TeamName      string                      `json:"teamName,omitempty" gorm:"size:50"`
	Players       datatypes.JSONSlice[Player] `json:"players" gorm:"not null"`
	TransactionID string                      `json:"transactionId" gorm:"uniqueIndex;size:100;not null"`
	EntryFee      int                         `json:"entryFee" gorm:"not null"`
	Status        string                      `json:"status" gorm:"size:16;not null;default:'pending';index"`
	Timestamps
}

func (TournamentRegistration) TableName() string { return "registrations" }

func (r *TournamentRegistration) BeforeCreate(tx *gorm.DB) error {
	ensureID(&r.ID)
	if r.Status == "" {
		r.Status = RegistrationStatusPending
	}
	return nil
}

// IsValidRegistrationStatus reports whether status is a known registration status.
func IsValidRegistrationStatus(status string) bool {
	return contains(RegistrationStatuses, status)
}

// Lead returns the first roster entry, or a zero Player for an empty roster.
func (r *TournamentRegistration) Lead() Player {
	if len(r.Players) == 0 {
		return Player{}
	}
	return r.Players[0]
}
