package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/parkside-pos/ordering-terminal/internal/api/dto"
	"github.com/parkside-pos/ordering-terminal/internal/observability"
	"github.com/parkside-pos/ordering-terminal/internal/routing"
	"github.com/parkside-pos/ordering-terminal/internal/session"
)

// NavigationHandler arbitrates UI navigation against the route guard.
type NavigationHandler struct {
	sessions *session.Manager
	table    *routing.Table
	metrics  *observability.Metrics
}

// NewNavigationHandler constructs the handler.
func NewNavigationHandler(sessions *session.Manager, table *routing.Table, metrics *observability.Metrics) *NavigationHandler {
	return &NavigationHandler{sessions: sessions, table: table, metrics: metrics}
}

// Decide handles POST /navigation/decide.
func (h *NavigationHandler) Decide(c *fiber.Ctx) error {
	var req dto.DecideRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Path == "" {
		return fiber.NewError(http.StatusBadRequest, "path required")
	}

	// Re-read the slots so a login or logout elsewhere is visible.
	if err := h.sessions.Refresh(c.Context()); err != nil {
		return err
	}

	dest := h.table.Lookup(req.Path)
	decision := routing.Decide(dest, h.sessions.Customer(), h.sessions.Admin(), req.ModeSwitch)

	outcome := "redirect"
	if decision.Allowed {
		outcome = "allow"
	}
	h.metrics.RecordDecision(req.Path, outcome, string(decision.Reason))

	return c.JSON(fiber.Map{"data": decision})
}
