package dto

// GuestLoginRequest starts a guest ordering session.
type GuestLoginRequest struct {
	Phone string `json:"phone"`
	Mode  string `json:"mode"`
	Table string `json:"table,omitempty"`
}

// CustomerLoginRequest stores an upstream-issued customer credential.
type CustomerLoginRequest struct {
	Token string   `json:"token"`
	Roles []string `json:"roles"`
}

// StaffLoginRequest authenticates staff against the upstream auth service.
type StaffLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LogoutRequest names the identity slot to log out.
type LogoutRequest struct {
	Slot string `json:"slot"`
}

// DineInRequest selects dine-in at a table.
type DineInRequest struct {
	Table string `json:"table"`
}

// UnlockRequest opens the terminal's device-settings panel.
type UnlockRequest struct {
	PIN string `json:"pin"`
}

// IdentityResponse is the resolved actor for one slot.
type IdentityResponse struct {
	Role         string   `json:"role"`
	Capabilities []string `json:"capabilities,omitempty"`
	Subject      string   `json:"subject,omitempty"`
}

// DiningResponse is the current dining session.
type DiningResponse struct {
	Mode   string `json:"mode"`
	Table  string `json:"table,omitempty"`
	Source string `json:"source,omitempty"`
}
