package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/parkside-pos/ordering-terminal/internal/remote"
)

// SettingsHandler serves the cached public restaurant settings.
type SettingsHandler struct {
	settings *remote.SettingsCache
}

// NewSettingsHandler constructs the handler.
func NewSettingsHandler(settings *remote.SettingsCache) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get handles GET /settings. It never fails: a degraded fetch serves the
// defaults.
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.settings.Get(c.Context())})
}
