package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/parkside-pos/ordering-terminal/internal/api/dto"
	"github.com/parkside-pos/ordering-terminal/internal/cart"
)

// CartHandler exposes the order cart operations. Every mutating endpoint
// returns the full derived cart so the UI can rerender totals directly.
type CartHandler struct {
	cart *cart.Store
}

// NewCartHandler constructs the handler.
func NewCartHandler(cartStore *cart.Store) *CartHandler {
	return &CartHandler{cart: cartStore}
}

// Get handles GET /cart.
func (h *CartHandler) Get(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": dto.NewCartResponse(h.cart)})
}

// AddItem handles POST /cart/items.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var req dto.AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.MenuID == "" || req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "menuId and name required")
	}
	if req.UnitPrice.IsNegative() {
		return fiber.NewError(http.StatusBadRequest, "unitPrice must not be negative")
	}

	if err := h.cart.Add(c.Context(), req.MenuID, req.Name, req.UnitPrice); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCartResponse(h.cart)})
}

// Decrement handles POST /cart/items/:menuId/decrement.
func (h *CartHandler) Decrement(c *fiber.Ctx) error {
	if err := h.cart.DecrementOrRemove(c.Context(), c.Params("menuId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCartResponse(h.cart)})
}

// UpdateNotes handles PUT /cart/items/:menuId/notes.
func (h *CartHandler) UpdateNotes(c *fiber.Ctx) error {
	var req dto.UpdateNotesRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.cart.UpdateNotes(c.Context(), c.Params("menuId"), req.Notes); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCartResponse(h.cart)})
}

// RemoveItem handles DELETE /cart/items/:menuId.
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	if err := h.cart.RemoveItem(c.Context(), c.Params("menuId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCartResponse(h.cart)})
}

// Clear handles DELETE /cart. Only the items empty; the order type and
// table survive for follow-up orders.
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.cart.Clear(c.Context()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCartResponse(h.cart)})
}
