package dto

import (
	"github.com/shopspring/decimal"

	"github.com/parkside-pos/ordering-terminal/internal/cart"
)

// AddItemRequest adds one unit of a menu item to the cart.
type AddItemRequest struct {
	MenuID    string          `json:"menuId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// UpdateNotesRequest replaces an item's free-text notes.
type UpdateNotesRequest struct {
	Notes string `json:"notes"`
}

// CartResponse is the full derived cart view.
type CartResponse struct {
	Items         []cart.Item     `json:"items"`
	OrderType     string          `json:"orderType,omitempty"`
	TableNumber   string          `json:"tableNumber,omitempty"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	TotalQuantity int             `json:"totalQuantity"`
}

// NewCartResponse snapshots the store's derived values.
func NewCartResponse(s *cart.Store) CartResponse {
	return CartResponse{
		Items:         s.Items(),
		OrderType:     string(s.OrderType()),
		TableNumber:   s.TableNumber(),
		TotalPrice:    s.TotalPrice(),
		TotalQuantity: s.TotalQuantity(),
	}
}
