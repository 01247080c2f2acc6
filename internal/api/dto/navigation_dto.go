package dto

// DecideRequest asks the route guard to arbitrate a navigation.
type DecideRequest struct {
	Path       string `json:"path"`
	ModeSwitch bool   `json:"mode_switch,omitempty"`
}

// SetThemeRequest selects a customer theme.
type SetThemeRequest struct {
	Theme string `json:"theme"`
}
