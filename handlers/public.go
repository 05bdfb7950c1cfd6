// handlers/public.go
package handlers

import (
	"esports-registration/services"
	"esports-registration/validation"

	"github.com/gofiber/fiber/v2"
)

// PublicHandler serves the unauthenticated submission endpoints.
type PublicHandler struct {
	contacts      *services.ContactService
	registrations *services.RegistrationService
}

func NewPublicHandler(contacts *services.ContactService, registrations *services.RegistrationService) *PublicHandler {
	return &PublicHandler{contacts: contacts, registrations: registrations}
}

func (h *PublicHandler) SubmitContact(c *fiber.Ctx) error {
	var req validation.ContactRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	receipt, err := h.contacts.Submit(c.UserContext(), req)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusCreated, "message received, we will get back to you soon", fiber.Map{
		"id":     receipt.ID,
		"status": "new",
	})
}

func (h *PublicHandler) SubmitRegistration(c *fiber.Ctx) error {
	var req validation.RegistrationRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	receipt, err := h.registrations.Submit(c.UserContext(), req)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusCreated, "registration submitted, pending payment verification", receipt)
}
