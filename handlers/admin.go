// handlers/admin.go
package handlers

import (
	"esports-registration/middleware"
	"esports-registration/repository"
	"esports-registration/services"
	"esports-registration/validation"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves the dashboard endpoints.
type AdminHandler struct {
	auth  *services.AuthService
	admin *services.AdminService
}

func NewAdminHandler(auth *services.AuthService, admin *services.AdminService) *AdminHandler {
	return &AdminHandler{auth: auth, admin: admin}
}

func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req validation.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	res, err := h.auth.Login(c.UserContext(), req)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "login successful", res)
}

func (h *AdminHandler) Me(c *fiber.Ctx) error {
	current, found := middleware.CurrentAdmin(c)
	if !found {
		return services.ErrTokenMissing
	}
	acct, err := h.admin.Me(c.UserContext(), current.ID)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "", acct)
}

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.admin.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "", stats)
}

func (h *AdminHandler) ListContacts(c *fiber.Ctx) error {
	page := services.ParsePage(c.Query("page"), c.Query("pageSize", c.Query("limit")))
	msgs, meta, err := h.admin.ListContacts(c.UserContext(), c.Query("status"), page)
	if err != nil {
		return err
	}
	return c.JSON(Response{Success: true, Data: msgs, Pagination: &meta})
}

func (h *AdminHandler) UpdateContact(c *fiber.Ctx) error {
	var req validation.StatusUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	msg, err := h.admin.UpdateContactStatus(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "contact updated", msg)
}

func (h *AdminHandler) DeleteContact(c *fiber.Ctx) error {
	if err := h.admin.DeleteContact(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "contact deleted", nil)
}

func (h *AdminHandler) ListRegistrations(c *fiber.Ctx) error {
	page := services.ParsePage(c.Query("page"), c.Query("pageSize", c.Query("limit")))
	filter := repository.RegistrationFilter{
		Game:   c.Query("game"),
		Mode:   c.Query("mode"),
		Status: c.Query("status"),
	}
	regs, meta, err := h.admin.ListRegistrations(c.UserContext(), filter, page)
	if err != nil {
		return err
	}
	return c.JSON(Response{Success: true, Data: regs, Pagination: &meta})
}

func (h *AdminHandler) UpdateRegistration(c *fiber.Ctx) error {
	var req validation.StatusUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	reg, err := h.admin.UpdateRegistrationStatus(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "registration updated", reg)
}
