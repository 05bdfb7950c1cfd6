package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthReporter exposes database reachability.
type HealthReporter interface {
	Healthy() bool
}

type HealthHandler struct {
	db      HealthReporter
	sinks   []string
	started time.Time
}

// NewHealthHandler reports on db and the names of the configured
// notification sinks.
func NewHealthHandler(db HealthReporter, sinks []string) *HealthHandler {
	return &HealthHandler{db: db, sinks: sinks, started: time.Now()}
}

// Health always answers 200 so a load balancer keeps routing to the process
// while the database reconnects.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	status, database := "ok", "up"
	if !h.db.Healthy() {
		status, database = "degraded", "down"
	}
	sinks := h.sinks
	if sinks == nil {
		sinks = []string{}
	}
	return ok(c, fiber.StatusOK, "", fiber.Map{
		"status":    status,
		"database":  database,
		"notifiers": sinks,
		"uptime":    time.Since(h.started).Round(time.Second).String(),
		"timestamp": time.Now().UTC(),
	})
}
