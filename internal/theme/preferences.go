package theme

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/parkside-pos/ordering-terminal/internal/events"
	"github.com/parkside-pos/ordering-terminal/internal/storage"
)

// Customer theme ids shipped with the terminal.
const (
	ThemeBar    = "bar"
	ThemeBistro = "bistro"
	ThemeCafe   = "cafe"

	DefaultCustomerTheme = ThemeBistro
)

var customerThemes = map[string]struct{}{
	ThemeBar:    {},
	ThemeBistro: {},
	ThemeCafe:   {},
}

// Preferences persists the terminal's theme choices: a customer theme id
// and the admin dark/light toggle. Themes survive logout so the kiosk
// keeps its look between diners.
type Preferences struct {
	kv         storage.Store
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewPreferences builds the preference accessor.
func NewPreferences(kv storage.Store, dispatcher events.Dispatcher, logger *zap.Logger) *Preferences {
	return &Preferences{kv: kv, dispatcher: dispatcher, logger: logger}
}

// CustomerTheme returns the persisted customer theme id, defaulting to
// bistro.
func (p *Preferences) CustomerTheme(ctx context.Context) string {
	raw, ok, err := p.kv.Get(ctx, storage.KeyCustomerTheme)
	if err != nil || !ok {
		return DefaultCustomerTheme
	}
	if _, known := customerThemes[raw]; !known {
		return DefaultCustomerTheme
	}
	return raw
}

// SetCustomerTheme persists the theme id. Unknown ids are ignored.
func (p *Preferences) SetCustomerTheme(ctx context.Context, id string) error {
	if _, known := customerThemes[id]; !known {
		return nil
	}
	if err := p.kv.Set(ctx, storage.KeyCustomerTheme, id); err != nil {
		return err
	}
	p.publish(ctx, events.SlotCustomer, id)
	return nil
}

// AdminDark returns the admin dark-mode flag, defaulting to dark.
func (p *Preferences) AdminDark(ctx context.Context) bool {
	raw, ok, err := p.kv.Get(ctx, storage.KeyAdminTheme)
	if err != nil || !ok {
		return true
	}
	return raw != "light"
}

// ToggleAdminDark flips and persists the admin dark-mode flag, returning
// the new value.
func (p *Preferences) ToggleAdminDark(ctx context.Context) (bool, error) {
	dark := !p.AdminDark(ctx)
	value := "light"
	if dark {
		value = "dark"
	}
	if err := p.kv.Set(ctx, storage.KeyAdminTheme, value); err != nil {
		return false, err
	}
	p.publish(ctx, events.SlotAdmin, value)
	return dark, nil
}

func (p *Preferences) publish(ctx context.Context, slot events.Slot, value string) {
	if p.dispatcher == nil {
		return
	}
	_ = p.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventThemeChanged,
		Slot:      slot,
		Timestamp: time.Now(),
		Payload:   value,
	})
}
