// Package validation turns raw request payloads into normalized, checked
// values. Every rule of a payload is evaluated so callers can report all
// problems in one response.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"esports-registration/models"
	"esports-registration/policy"

	"github.com/go-playground/validator/v10"
)

// ClientPhonePattern is the Indian mobile format the website checks before
// submitting. The server does not enforce it: any non-empty phone is accepted.
var ClientPhonePattern = regexp.MustCompile(`^(\+91)?[6-9]\d{9}$`)

// enumTags maps custom tag names to their allowed values.
var enumTags = map[string][]string{
	"game":            policy.Games,
	"mode":            policy.Modes,
	"contact_subject": models.ContactSubjects,
}

// Validator wraps a configured go-playground validator.
type Validator struct {
	v *validator.Validate
}

// New builds a Validator that reports fields by their JSON names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	for tag, allowed := range enumTags {
		allowed := allowed
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			val := fl.Field().String()
			for _, a := range allowed {
				if a == val {
					return true
				}
			}
			return false
		})
	}
	return &Validator{v: v}
}

// Struct validates s and returns one message per failing field, in field order.
// A nil result means s is valid.
func (v *Validator) Struct(s any) []string {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, message(fe))
	}
	return msgs
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	field := fieldPath(fe)
	isList := fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if isList {
			return fmt.Sprintf("%s must contain at least %s entries", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		if isList {
			return fmt.Sprintf("%s must contain at most %s entries", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	}
	if allowed, ok := enumTags[fe.Tag()]; ok {
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(allowed, ", "))
	}
	return fmt.Sprintf("%s is invalid", field)
}
