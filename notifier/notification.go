// Package notifier delivers admin notifications about new submissions.
// Delivery is best effort: callers hand notifications to a dispatcher and
// never wait for the outcome.
package notifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"esports-registration/models"
)

type Kind string

const (
	KindContact      Kind = "contact"
	KindRegistration Kind = "registration"
)

// Notification is a rendered admin alert plus the record it describes.
type Notification struct {
	Kind      Kind      `json:"kind"`
	RecordID  string    `json:"recordId"`
	Label     string    `json:"label"` // human-friendly name used in archive keys
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	ReplyTo   string    `json:"replyTo,omitempty"`
	Record    any       `json:"record"`
	CreatedAt time.Time `json:"createdAt"`
}

// Sink delivers a notification somewhere. A nil error means delivered.
type Sink interface {
	Name() string
	Send(ctx context.Context, n Notification) error
}

// ContactNotification renders the alert for a new contact message.
func ContactNotification(msg models.ContactMessage) Notification {
	var b strings.Builder
	fmt.Fprintf(&b, "New contact message\n\n")
	fmt.Fprintf(&b, "Name:    %s\n", msg.Name)
	fmt.Fprintf(&b, "Email:   %s\n", msg.Email)
	if msg.Phone != "" {
		fmt.Fprintf(&b, "Phone:   %s\n", msg.Phone)
	}
	fmt.Fprintf(&b, "Subject: %s\n\n", msg.Subject)
	b.WriteString(msg.Message)
	b.WriteString("\n")

	return Notification{
		Kind:      KindContact,
		RecordID:  msg.ID,
		Label:     msg.Name,
		Subject:   fmt.Sprintf("[Contact] %s from %s", msg.Subject, msg.Name),
		Body:      b.String(),
		ReplyTo:   msg.Email,
		Record:    msg,
		CreatedAt: msg.CreatedAt,
	}
}

// RegistrationNotification renders the alert for a new tournament registration.
func RegistrationNotification(reg models.TournamentRegistration) Notification {
	label := reg.TeamName
	if label == "" {
		label = reg.Lead().InGameName
	}

	var b strings.Builder
	fmt.Fprintf(&b, "New tournament registration\n\n")
	fmt.Fprintf(&b, "Game:           %s\n", strings.ToUpper(reg.Game))
	fmt.Fprintf(&b, "Mode:           %s\n", reg.Mode)
	if reg.TeamName != "" {
		fmt.Fprintf(&b, "Team:           %s\n", reg.TeamName)
	}
	fmt.Fprintf(&b, "Entry fee:      %d\n", reg.EntryFee)
	fmt.Fprintf(&b, "Transaction ID: %s\n\n", reg.TransactionID)
	b.WriteString("Players:\n")
	for i, p := range reg.Players {
		fmt.Fprintf(&b, "  %d. %s (ID %s) phone %s", i+1, p.InGameName, p.InGameID, p.Phone)
		if p.Email != "" {
			fmt.Fprintf(&b, " email %s", p.Email)
		}
		b.WriteString("\n")
	}

	return Notification{
		Kind:      KindRegistration,
		RecordID:  reg.ID,
		Label:     label,
		Subject:   fmt.Sprintf("[Registration] %s %s - %s", strings.ToUpper(reg.Game), reg.Mode, label),
		Body:      b.String(),
		ReplyTo:   reg.Lead().Email,
		Record:    reg,
		CreatedAt: reg.CreatedAt,
	}
}
