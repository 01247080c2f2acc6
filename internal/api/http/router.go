package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/parkside-pos/ordering-terminal/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Session    *handlers.SessionHandler
	Navigation *handlers.NavigationHandler
	Cart       *handlers.CartHandler
	Settings   *handlers.SettingsHandler
	Theme      *handlers.ThemeHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	sessionGroup := app.Group("/session")
	sessionGroup.Get("", cfg.Session.Current)
	sessionGroup.Post("/login", cfg.Session.GuestLogin)
	sessionGroup.Post("/customer/login", cfg.Session.CustomerLogin)
	sessionGroup.Post("/staff/login", cfg.Session.StaffLogin)
	sessionGroup.Post("/logout", cfg.Session.Logout)
	sessionGroup.Post("/dining/dine-in", cfg.Session.DineIn)
	sessionGroup.Post("/dining/takeout", cfg.Session.Takeout)
	sessionGroup.Post("/dining/switch", cfg.Session.SwitchMode)

	app.Post("/navigation/decide", cfg.Navigation.Decide)

	cartGroup := app.Group("/cart")
	cartGroup.Get("", cfg.Cart.Get)
	cartGroup.Post("/items", cfg.Cart.AddItem)
	cartGroup.Post("/items/:menuId/decrement", cfg.Cart.Decrement)
	cartGroup.Put("/items/:menuId/notes", cfg.Cart.UpdateNotes)
	cartGroup.Delete("/items/:menuId", cfg.Cart.RemoveItem)
	cartGroup.Delete("", cfg.Cart.Clear)

	app.Get("/settings", cfg.Settings.Get)

	themeGroup := app.Group("/theme")
	themeGroup.Get("/customer", cfg.Theme.GetCustomer)
	themeGroup.Put("/customer", cfg.Theme.SetCustomer)
	themeGroup.Get("/admin", cfg.Theme.GetAdmin)
	themeGroup.Post("/admin/toggle", cfg.Theme.ToggleAdmin)

	app.Post("/terminal/unlock", cfg.Session.Unlock)
}
