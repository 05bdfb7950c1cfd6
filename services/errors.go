package services

import (
	"errors"
	"strings"

	"esports-registration/database"
)

// Error classes. Handlers map these to HTTP statuses.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = database.ErrUnavailable
)

// Specific failures. Their messages are safe to show to API clients.
var (
	ErrInvalidCredentials   = classError(ErrUnauthorized, "invalid email or password")
	ErrTokenMissing         = classError(ErrUnauthorized, "no token provided")
	ErrTokenInvalid         = classError(ErrUnauthorized, "invalid token")
	ErrTokenExpired         = classError(ErrUnauthorized, "token expired")
	ErrAccountNotFound      = classError(ErrUnauthorized, "account not found")
	ErrTransactionUsed      = classError(ErrConflict, "transaction already used")
	ErrContactNotFound      = classError(ErrNotFound, "contact not found")
	ErrRegistrationNotFound = classError(ErrNotFound, "registration not found")
)

// ClassifiedError is a client-facing message tagged with an error class.
type ClassifiedError struct {
	class error
	msg   string
}

func classError(class error, msg string) *ClassifiedError {
	return &ClassifiedError{class: class, msg: msg}
}

func (e *ClassifiedError) Error() string { return e.msg }
func (e *ClassifiedError) Unwrap() error { return e.class }

// PublicMessage returns the client-facing message carried by err, if any.
func PublicMessage(err error) (string, bool) {
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.msg, true
	}
	return "", false
}

// ValidationError lists every problem found in a submission.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

func newValidationError(msgs ...string) *ValidationError {
	return &ValidationError{Messages: msgs}
}
