// models/contact.go
package models

import "gorm.io/gorm"

const (
	ContactStatusNew     = "new"
	ContactStatusRead    = "read"
	ContactStatusReplied = "replied"
)

// ContactStatuses lists every contact message status.
var ContactStatuses = []string{ContactStatusNew, ContactStatusRead, ContactStatusReplied}

// ContactSubjects lists the subject categories offered by the contact form.
var ContactSubjects = []string{"general", "tournament", "registration", "payment", "technical", "partnership", "other"}

// ContactMessage is a message left through the public contact form.
// Only Status changes after creation.
type ContactMessage struct {
	ID      string `json:"id" gorm:"primaryKey;size:36"`
	Name    string `json:"name" gorm:"size:100;not null"`
	Email   string `json:"email" gorm:"size:320;not null;index"`
	Phone   string `json:"phone,omitempty" gorm:"size:30"`
	Subject string `json:"subject" gorm:"size:32;not null"`
	Message string `json:"message" gorm:"type:text;not null"`
	Status  string `json:"status" gorm:"size:16;not null;default:'new';index"`
	Timestamps
}

func (ContactMessage) TableName() string { return "contacts" }

func (m *ContactMessage) BeforeCreate(tx *gorm.DB) error {
	ensureID(&m.ID)
	if m.Status == "" {
		m.Status = ContactStatusNew
	}
	return nil
}

// IsValidContactStatus reports whether status is a known contact status.
func IsValidContactStatus(status string) bool {
	return contains(ContactStatuses, status)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
