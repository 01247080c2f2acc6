package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/parkside-pos/ordering-terminal/internal/api/dto"
	"github.com/parkside-pos/ordering-terminal/internal/theme"
)

// ThemeHandler exposes the terminal's theme preferences.
type ThemeHandler struct {
	prefs *theme.Preferences
}

// NewThemeHandler constructs the handler.
func NewThemeHandler(prefs *theme.Preferences) *ThemeHandler {
	return &ThemeHandler{prefs: prefs}
}

// GetCustomer handles GET /theme/customer.
func (h *ThemeHandler) GetCustomer(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": fiber.Map{"theme": h.prefs.CustomerTheme(c.Context())}})
}

// SetCustomer handles PUT /theme/customer.
func (h *ThemeHandler) SetCustomer(c *fiber.Ctx) error {
	var req dto.SetThemeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.prefs.SetCustomerTheme(c.Context(), req.Theme); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"theme": h.prefs.CustomerTheme(c.Context())}})
}

// GetAdmin handles GET /theme/admin.
func (h *ThemeHandler) GetAdmin(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": fiber.Map{"dark": h.prefs.AdminDark(c.Context())}})
}

// ToggleAdmin handles POST /theme/admin/toggle.
func (h *ThemeHandler) ToggleAdmin(c *fiber.Ctx) error {
	dark, err := h.prefs.ToggleAdminDark(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"dark": dark}})
}
