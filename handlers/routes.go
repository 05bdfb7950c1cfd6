// handlers/routes.go
package handlers

import (
	"time"

	"esports-registration/middleware"

	"github.com/gofiber/fiber/v2"
)

// RateLimits configures the per-IP request caps.
type RateLimits struct {
	Window  time.Duration
	General int
	Login   int
}

// SetupRoutes mounts the API under /api/v1. Fiber runs handlers in
// registration order, so routes registered before a group's middleware are
// not affected by it.
func SetupRoutes(app *fiber.App, public *PublicHandler, admin *AdminHandler, health *HealthHandler, auth middleware.Authenticator, limits RateLimits) {
	// Health stays outside the rate limit so probes are never throttled.
	app.Get("/api/v1/health", health.Health)

	api := app.Group("/api/v1", middleware.RateLimit(limits.General, limits.Window, "too many requests, please try again later"))
	api.Post("/contact", public.SubmitContact)
	api.Post("/register", public.SubmitRegistration)

	adminGroup := api.Group("/admin")
	adminGroup.Post("/login",
		middleware.RateLimit(limits.Login, limits.Window, "too many login attempts, please try again later"),
		admin.Login,
	)

	secured := adminGroup.Group("", middleware.AdminAuth(auth))
	secured.Get("/me", admin.Me)
	secured.Get("/stats", admin.Stats)
	secured.Get("/contacts", admin.ListContacts)
	secured.Patch("/contacts/:id", admin.UpdateContact)
	secured.Delete("/contacts/:id", admin.DeleteContact)
	secured.Get("/registrations", admin.ListRegistrations)
	secured.Patch("/registrations/:id", admin.UpdateRegistration)

	app.Use(NotFound)
}
