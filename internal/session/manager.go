package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/parkside-pos/ordering-terminal/internal/credential"
	"github.com/parkside-pos/ordering-terminal/internal/events"
	"github.com/parkside-pos/ordering-terminal/internal/storage"
	"github.com/parkside-pos/ordering-terminal/pkg/util"
)

// EntryPoints are the destinations the terminal returns to after a logout
// or a dining-mode switch.
type EntryPoints struct {
	CustomerEntry string
	StaffEntry    string
	ModeSelect    string
}

// ItemClearer empties the persisted cart items on customer logout. The
// cart package implements it; injected to keep the dependency one-way.
type ItemClearer interface {
	Clear(ctx context.Context) error
}

// Manager owns the two identity slots and the dining session for one
// terminal. It is constructed once per process and injected wherever
// session state is read or mutated.
type Manager struct {
	store      storage.Store
	issuer     *credential.Issuer
	dispatcher events.Dispatcher
	logger     *zap.Logger
	entry      EntryPoints
	cart       ItemClearer

	mu       sync.Mutex
	id       string
	customer ActorIdentity
	admin    ActorIdentity
	dining   DiningSession
}

// NewManager builds the manager and resolves both slots from the store.
func NewManager(ctx context.Context, store storage.Store, issuer *credential.Issuer, dispatcher events.Dispatcher, logger *zap.Logger, entry EntryPoints) (*Manager, error) {
	m := &Manager{
		store:      store,
		issuer:     issuer,
		dispatcher: dispatcher,
		logger:     logger,
		entry:      entry,
		id:         uuid.NewString(),
	}
	if err := m.Refresh(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// AttachCart registers the cart whose items are cleared on customer logout.
func (m *Manager) AttachCart(cart ItemClearer) {
	m.cart = cart
}

// ID returns the process-unique session context id.
func (m *Manager) ID() string {
	return m.id
}

// Refresh re-resolves both identity slots from persisted credentials. The
// slots are independent: each reads only its own keys.
func (m *Manager) Refresh(ctx context.Context) error {
	customerRaw, _, err := m.store.Get(ctx, storage.KeyCustomerCredential)
	if err != nil {
		return err
	}
	adminRaw, _, err := m.store.Get(ctx, storage.KeyAdminCredential)
	if err != nil {
		return err
	}
	fallback := m.loadDiningRecord(ctx)

	customer, dining := Resolve(customerRaw, fallback)
	admin, _ := Resolve(adminRaw, nil)

	m.mu.Lock()
	m.customer = customer
	m.admin = admin
	m.dining = dining
	m.mu.Unlock()
	return nil
}

// Customer returns the customer/guest slot identity.
func (m *Manager) Customer() ActorIdentity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.customer
}

// Admin returns the admin/staff slot identity.
func (m *Manager) Admin() ActorIdentity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.admin
}

// Dining returns the current dining session.
func (m *Manager) Dining() DiningSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dining
}

// LoginGuest mints a guest credential carrying the dining selection and
// stores it in the customer slot.
func (m *Manager) LoginGuest(ctx context.Context, phone string, mode Mode, table string) (string, error) {
	if phone == "" {
		return "", util.NewValidationError("phone required", nil)
	}
	if mode != ModeDineIn && mode != ModeTakeout {
		return "", util.NewValidationError("dining mode must be DINE_IN or TAKEOUT", nil)
	}
	if mode == ModeDineIn && table == "" {
		return "", util.NewValidationError("table required for dine-in", nil)
	}
	if mode == ModeTakeout {
		table = ""
	}

	roles := []string{string(TagGuest)}
	token, _, err := m.issuer.IssueGuest(phone, roles, string(mode), table)
	if err != nil {
		return "", err
	}
	if err := m.storeCustomerLogin(ctx, token, roles, DiningRecord{Mode: mode, Table: table}); err != nil {
		return "", err
	}
	if err := m.Refresh(ctx); err != nil {
		return "", err
	}

	m.publish(ctx, events.Event{
		Type:    events.EventAuthChanged,
		Slot:    events.SlotCustomer,
		Payload: events.AuthChangedPayload{Subject: phone, LoggedIn: true},
	})
	return token, nil
}

// LoginCustomer stores an upstream-issued customer credential in the
// customer slot.
func (m *Manager) LoginCustomer(ctx context.Context, token string, roles []string) error {
	claims, err := credential.Decode(token)
	if err != nil {
		return util.NewDecodeFailed("customer credential rejected", err)
	}

	record := DiningRecord{}
	if claims.DiningMode != "" {
		record = DiningRecord{Mode: Mode(claims.DiningMode), Table: claims.TableNumber}
	}
	if err := m.storeCustomerLogin(ctx, token, roles, record); err != nil {
		return err
	}
	if err := m.Refresh(ctx); err != nil {
		return err
	}

	m.publish(ctx, events.Event{
		Type:    events.EventAuthChanged,
		Slot:    events.SlotCustomer,
		Payload: events.AuthChangedPayload{Subject: claims.Subject, LoggedIn: true},
	})
	return nil
}

// LoginAdmin stores an upstream-issued staff credential in the admin slot.
// The customer slot is untouched.
func (m *Manager) LoginAdmin(ctx context.Context, token string, roles []string) error {
	if token == "" {
		return util.NewValidationError("token required", nil)
	}
	if err := m.store.Set(ctx, storage.KeyAdminCredential, token); err != nil {
		return err
	}
	rolesJSON, err := json.Marshal(roles)
	if err != nil {
		return err
	}
	if err := m.store.Set(ctx, storage.KeyAdminRoles, string(rolesJSON)); err != nil {
		return err
	}
	if err := m.Refresh(ctx); err != nil {
		return err
	}

	m.publish(ctx, events.Event{
		Type:    events.EventAuthChanged,
		Slot:    events.SlotAdmin,
		Payload: events.AuthChangedPayload{LoggedIn: true},
	})
	return nil
}

// SelectDineIn moves the dining session to DINE_IN at the given table and
// persists the selection as the local fallback record.
func (m *Manager) SelectDineIn(ctx context.Context, table string) error {
	if table == "" {
		return util.NewValidationError("table required for dine-in", nil)
	}
	return m.selectMode(ctx, DiningRecord{Mode: ModeDineIn, Table: table})
}

// SelectTakeout moves the dining session to TAKEOUT.
func (m *Manager) SelectTakeout(ctx context.Context) error {
	return m.selectMode(ctx, DiningRecord{Mode: ModeTakeout})
}

func (m *Manager) selectMode(ctx context.Context, record DiningRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}
	if err := m.store.Set(ctx, storage.KeyDiningInfo, string(raw)); err != nil {
		return err
	}

	m.mu.Lock()
	m.dining = DiningSession{Mode: record.Mode, Table: record.Table, Source: SourceLocalFallback}
	m.mu.Unlock()
	return nil
}

// SwitchMode performs a full logout of the customer slot so the diner can
// re-enter with a different mode. It returns the mode-selection entry path.
func (m *Manager) SwitchMode(ctx context.Context) (string, error) {
	m.mu.Lock()
	prev := m.dining
	m.mu.Unlock()

	if err := m.clearCustomerSlot(ctx); err != nil {
		return "", err
	}

	m.publish(ctx, events.Event{
		Type: events.EventModeSwitched,
		Slot: events.SlotCustomer,
		Payload: events.ModeSwitchedPayload{
			PreviousMode:  string(prev.Mode),
			PreviousTable: prev.Table,
		},
	})
	return m.entry.ModeSelect, nil
}

// LogoutCustomer clears the customer slot (credential, roles, dining info,
// cart items) and returns the customer entry path. The admin slot is
// untouched.
func (m *Manager) LogoutCustomer(ctx context.Context) (string, error) {
	if err := m.clearCustomerSlot(ctx); err != nil {
		return "", err
	}
	m.publish(ctx, events.Event{
		Type:    events.EventAuthChanged,
		Slot:    events.SlotCustomer,
		Payload: events.AuthChangedPayload{LoggedIn: false},
	})
	return m.entry.CustomerEntry, nil
}

// LogoutAdmin clears the admin slot and returns the staff entry path. The
// customer slot, dining info, and cart are untouched.
func (m *Manager) LogoutAdmin(ctx context.Context) (string, error) {
	if err := m.store.Remove(ctx, storage.KeyAdminCredential, storage.KeyAdminRoles); err != nil {
		return "", err
	}
	m.mu.Lock()
	m.admin = Guest()
	m.mu.Unlock()

	m.publish(ctx, events.Event{
		Type:    events.EventAuthChanged,
		Slot:    events.SlotAdmin,
		Payload: events.AuthChangedPayload{LoggedIn: false},
	})
	return m.entry.StaffEntry, nil
}

func (m *Manager) clearCustomerSlot(ctx context.Context) error {
	err := m.store.Remove(ctx,
		storage.KeyCustomerCredential,
		storage.KeyCustomerRoles,
		storage.KeyDiningInfo,
	)
	if err != nil {
		return err
	}
	if m.cart != nil {
		if err := m.cart.Clear(ctx); err != nil {
			return err
		}
	}

	m.mu.Lock()
	m.customer = Guest()
	m.dining = DiningSession{Mode: ModeUnset}
	m.mu.Unlock()
	return nil
}

func (m *Manager) storeCustomerLogin(ctx context.Context, token string, roles []string, record DiningRecord) error {
	if err := m.store.Set(ctx, storage.KeyCustomerCredential, token); err != nil {
		return err
	}
	rolesJSON, err := json.Marshal(roles)
	if err != nil {
		return err
	}
	if err := m.store.Set(ctx, storage.KeyCustomerRoles, string(rolesJSON)); err != nil {
		return err
	}
	if record.Mode != ModeUnset {
		raw, err := json.Marshal(record)
		if err != nil {
			return err
		}
		if err := m.store.Set(ctx, storage.KeyDiningInfo, string(raw)); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) loadDiningRecord(ctx context.Context) *DiningRecord {
	raw, ok, err := m.store.Get(ctx, storage.KeyDiningInfo)
	if err != nil || !ok {
		return nil
	}
	var record DiningRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		m.logger.Warn("malformed dining record ignored", zap.Error(err))
		return nil
	}
	return &record
}

func (m *Manager) publish(ctx context.Context, event events.Event) {
	if m.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = m.dispatcher.Publish(ctx, event)
}
