package cart

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/parkside-pos/ordering-terminal/internal/events"
	"github.com/parkside-pos/ordering-terminal/internal/session"
	"github.com/parkside-pos/ordering-terminal/internal/storage"
)

// Item is a single cart line. Quantity is at least 1 while the item is
// present; decrementing to zero removes the entry entirely.
type Item struct {
	MenuID    string          `json:"menuId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	Notes     string          `json:"notes,omitempty"`
}

// snapshot is the persisted shape under the cart key. Every mutation
// re-serializes the whole snapshot; hydration happens once at construction.
type snapshot struct {
	Items       map[string]Item `json:"items"`
	OrderType   session.Mode    `json:"orderType,omitempty"`
	TableNumber string          `json:"tableNumber,omitempty"`
}

// Store is the order cart state machine. It is created once per process,
// hydrated from the persisted snapshot, and saves synchronously after
// every mutation.
type Store struct {
	kv         storage.Store
	dispatcher events.Dispatcher
	logger     *zap.Logger

	mu          sync.Mutex
	items       map[string]Item
	orderType   session.Mode
	tableNumber string
}

// NewStore builds the cart and hydrates it from the persistence port. A
// missing or malformed snapshot yields an empty cart.
func NewStore(ctx context.Context, kv storage.Store, dispatcher events.Dispatcher, logger *zap.Logger) (*Store, error) {
	s := &Store{
		kv:         kv,
		dispatcher: dispatcher,
		logger:     logger,
		items:      make(map[string]Item),
	}

	raw, ok, err := kv.Get(ctx, storage.KeyCartSnapshot)
	if err != nil {
		return nil, err
	}
	if ok {
		var snap snapshot
		if err := json.Unmarshal([]byte(raw), &snap); err != nil {
			logger.Warn("malformed cart snapshot ignored", zap.Error(err))
		} else {
			if snap.Items != nil {
				s.items = snap.Items
			}
			s.orderType = snap.OrderType
			s.tableNumber = snap.TableNumber
		}
	}
	return s, nil
}

// Add inserts the menu item with quantity 1, or bumps the quantity when it
// is already in the cart.
func (s *Store) Add(ctx context.Context, menuID, name string, unitPrice decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.items[menuID]; ok {
		existing.Quantity++
		s.items[menuID] = existing
	} else {
		s.items[menuID] = Item{
			MenuID:    menuID,
			Name:      name,
			UnitPrice: unitPrice,
			Quantity:  1,
		}
	}
	return s.saveLocked(ctx)
}

// DecrementOrRemove lowers the quantity by one, removing the entry when it
// reaches zero. Absent items are a no-op.
func (s *Store) DecrementOrRemove(ctx context.Context, menuID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.items[menuID]
	if !ok {
		return nil
	}
	if existing.Quantity > 1 {
		existing.Quantity--
		s.items[menuID] = existing
	} else {
		delete(s.items, menuID)
	}
	return s.saveLocked(ctx)
}

// UpdateNotes replaces the free-text notes of an item. Absent items are a
// no-op.
func (s *Store) UpdateNotes(ctx context.Context, menuID, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.items[menuID]
	if !ok {
		return nil
	}
	existing.Notes = notes
	s.items[menuID] = existing
	return s.saveLocked(ctx)
}

// RemoveItem deletes the entry regardless of quantity. Absent items are a
// no-op.
func (s *Store) RemoveItem(ctx context.Context, menuID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[menuID]; !ok {
		return nil
	}
	delete(s.items, menuID)
	return s.saveLocked(ctx)
}

// Clear empties the item map only. The order type and table number survive
// so a diner can add more to an existing order without re-selecting mode.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]Item)
	return s.saveLocked(ctx)
}

// SetOrder records the dining mode and table the cart will be submitted
// under.
func (s *Store) SetOrder(ctx context.Context, orderType session.Mode, tableNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orderType = orderType
	s.tableNumber = tableNumber
	return s.saveLocked(ctx)
}

// Items returns the cart lines sorted by menu id.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MenuID < out[j].MenuID })
	return out
}

// OrderType returns the recorded dining mode.
func (s *Store) OrderType() session.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orderType
}

// TableNumber returns the recorded table.
func (s *Store) TableNumber() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tableNumber
}

// TotalPrice is the sum of unit price times quantity over all lines.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// TotalQuantity is the sum of quantities over all lines.
func (s *Store) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// saveLocked re-serializes the full snapshot. Callers hold s.mu.
func (s *Store) saveLocked(ctx context.Context) error {
	snap := snapshot{
		Items:       s.items,
		OrderType:   s.orderType,
		TableNumber: s.tableNumber,
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, storage.KeyCartSnapshot, string(raw)); err != nil {
		return err
	}

	if s.dispatcher != nil {
		quantity := 0
		total := decimal.Zero
		for _, item := range s.items {
			quantity += item.Quantity
			total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventCartChanged,
			Slot:      events.SlotCustomer,
			Timestamp: time.Now(),
			Payload: events.CartChangedPayload{
				TotalQuantity: quantity,
				TotalPrice:    total.String(),
			},
		})
	}
	return nil
}
