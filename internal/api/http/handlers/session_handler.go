package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/parkside-pos/ordering-terminal/internal/api/dto"
	"github.com/parkside-pos/ordering-terminal/internal/cart"
	"github.com/parkside-pos/ordering-terminal/internal/remote"
	"github.com/parkside-pos/ordering-terminal/internal/routing"
	"github.com/parkside-pos/ordering-terminal/internal/secure"
	"github.com/parkside-pos/ordering-terminal/internal/session"
	"github.com/parkside-pos/ordering-terminal/pkg/util"
)

// SessionHandler exposes login, logout, and dining-session endpoints.
type SessionHandler struct {
	sessions        *session.Manager
	cart            *cart.Store
	upstream        *remote.Client
	encryptor       *secure.Encryptor
	overridePINHash string
	logger          *zap.Logger
}

// NewSessionHandler constructs the handler.
func NewSessionHandler(sessions *session.Manager, cartStore *cart.Store, upstream *remote.Client, encryptor *secure.Encryptor, overridePINHash string, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		sessions:        sessions,
		cart:            cartStore,
		upstream:        upstream,
		encryptor:       encryptor,
		overridePINHash: overridePINHash,
		logger:          logger,
	}
}

// Current handles GET /session.
func (h *SessionHandler) Current(c *fiber.Ctx) error {
	if err := h.sessions.Refresh(c.Context()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"customer": identityResponse(h.sessions.Customer()),
			"admin":    identityResponse(h.sessions.Admin()),
			"dining":   diningResponse(h.sessions.Dining()),
		},
	})
}

// GuestLogin handles POST /session/login.
func (h *SessionHandler) GuestLogin(c *fiber.Ctx) error {
	var req dto.GuestLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	token, err := h.sessions.LoginGuest(c.Context(), req.Phone, session.Mode(req.Mode), req.Table)
	if err != nil {
		return err
	}
	if err := h.cart.SetOrder(c.Context(), h.sessions.Dining().Mode, h.sessions.Dining().Table); err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"token":    token,
			"identity": identityResponse(h.sessions.Customer()),
			"dining":   diningResponse(h.sessions.Dining()),
		},
	})
}

// CustomerLogin handles POST /session/customer/login. It accepts a
// credential already issued by the upstream auth service and stores it in
// the customer slot; dining context carried in the token claims takes
// effect immediately.
func (h *SessionHandler) CustomerLogin(c *fiber.Ctx) error {
	var req dto.CustomerLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Token == "" {
		return fiber.NewError(http.StatusBadRequest, "token required")
	}

	if err := h.sessions.LoginCustomer(c.Context(), req.Token, req.Roles); err != nil {
		return err
	}
	dining := h.sessions.Dining()
	if err := h.cart.SetOrder(c.Context(), dining.Mode, dining.Table); err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"identity": identityResponse(h.sessions.Customer()),
			"dining":   diningResponse(dining),
		},
	})
}

// StaffLogin handles POST /session/staff/login. The password is RSA
// encrypted with the upstream public key before it leaves the terminal.
func (h *SessionHandler) StaffLogin(c *fiber.Ctx) error {
	var req dto.StaffLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "username and password required")
	}

	encrypted, err := h.encryptor.Encrypt(c.Context(), req.Password)
	if err != nil {
		// Without the public key the password cannot leave the terminal.
		return err
	}

	result, err := h.upstream.Login(c.Context(), req.Username, encrypted)
	if err != nil {
		return err
	}
	if err := h.sessions.LoginAdmin(c.Context(), result.Token, result.Roles); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"roles":       result.Roles,
			"identity":    identityResponse(h.sessions.Admin()),
			"redirect_to": routing.PathAdmin,
		},
	})
}

// Logout handles POST /session/logout.
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	var redirect string
	var err error
	switch req.Slot {
	case "admin":
		redirect, err = h.sessions.LogoutAdmin(c.Context())
	case "customer", "":
		redirect, err = h.sessions.LogoutCustomer(c.Context())
	default:
		return fiber.NewError(http.StatusBadRequest, "slot must be customer or admin")
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"redirect_to": redirect}})
}

// DineIn handles POST /session/dining/dine-in.
func (h *SessionHandler) DineIn(c *fiber.Ctx) error {
	var req dto.DineInRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.sessions.SelectDineIn(c.Context(), req.Table); err != nil {
		return err
	}
	if err := h.cart.SetOrder(c.Context(), session.ModeDineIn, req.Table); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": diningResponse(h.sessions.Dining())})
}

// Takeout handles POST /session/dining/takeout.
func (h *SessionHandler) Takeout(c *fiber.Ctx) error {
	if err := h.sessions.SelectTakeout(c.Context()); err != nil {
		return err
	}
	if err := h.cart.SetOrder(c.Context(), session.ModeTakeout, ""); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": diningResponse(h.sessions.Dining())})
}

// SwitchMode handles POST /session/dining/switch.
func (h *SessionHandler) SwitchMode(c *fiber.Ctx) error {
	redirect, err := h.sessions.SwitchMode(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"redirect_to": redirect}})
}

// Unlock handles POST /terminal/unlock.
func (h *SessionHandler) Unlock(c *fiber.Ctx) error {
	var req dto.UnlockRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if !secure.VerifyOverridePIN(h.overridePINHash, req.PIN) {
		return util.NewForbidden("invalid pin")
	}
	return c.SendStatus(http.StatusNoContent)
}

func identityResponse(identity session.ActorIdentity) dto.IdentityResponse {
	caps := make([]string, len(identity.Capabilities))
	for i, tag := range identity.Capabilities {
		caps[i] = string(tag)
	}
	return dto.IdentityResponse{
		Role:         string(identity.Role),
		Capabilities: caps,
		Subject:      identity.Subject,
	}
}

func diningResponse(dining session.DiningSession) dto.DiningResponse {
	return dto.DiningResponse{
		Mode:   string(dining.Mode),
		Table:  dining.Table,
		Source: string(dining.Source),
	}
}
