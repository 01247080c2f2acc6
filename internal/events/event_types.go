package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAuthChanged  EventType = "auth_changed"
	EventModeSwitched EventType = "mode_switched"
	EventCartChanged  EventType = "cart_changed"
	EventThemeChanged EventType = "theme_changed"
)

// Slot identifies which identity slot an event concerns.
type Slot string

const (
	SlotCustomer Slot = "customer"
	SlotAdmin    Slot = "admin"
)

// Event represents a state change emitted by the session engine.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Slot      Slot        `json:"slot,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// AuthChangedPayload payload.
type AuthChangedPayload struct {
	Subject  string `json:"subject,omitempty"`
	LoggedIn bool   `json:"logged_in"`
}

// ModeSwitchedPayload payload.
type ModeSwitchedPayload struct {
	PreviousMode  string `json:"previous_mode"`
	PreviousTable string `json:"previous_table,omitempty"`
}

// CartChangedPayload payload.
type CartChangedPayload struct {
	TotalQuantity int    `json:"total_quantity"`
	TotalPrice    string `json:"total_price"`
}
