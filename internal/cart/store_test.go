package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parkside-pos/ordering-terminal/internal/session"
	"github.com/parkside-pos/ordering-terminal/internal/storage"
)

func newTestStore(t *testing.T) (*Store, *storage.MemoryStore) {
	t.Helper()
	kv := storage.NewMemoryStore()
	store, err := NewStore(context.Background(), kv, nil, zap.NewNop())
	require.NoError(t, err)
	return store, kv
}

func price(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestAddAndQuantityBump(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "1", "Pad Thai", price("95.50")))
	require.NoError(t, store.Add(ctx, "1", "Pad Thai", price("95.50")))
	require.NoError(t, store.Add(ctx, "2", "Green Curry", price("120")))

	items := store.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "Pad Thai", items[0].Name)
	assert.Equal(t, 1, items[1].Quantity)

	assert.Equal(t, 3, store.TotalQuantity())
	assert.True(t, store.TotalPrice().Equal(price("311")), store.TotalPrice().String())
}

func TestDecrementRoundTripsToRemoval(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "1", "Pad Thai", price("95.50")))
	require.NoError(t, store.Add(ctx, "1", "Pad Thai", price("95.50")))

	require.NoError(t, store.DecrementOrRemove(ctx, "1"))
	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)

	require.NoError(t, store.DecrementOrRemove(ctx, "1"))
	assert.Empty(t, store.Items())

	// Absent item is a no-op, never an error.
	require.NoError(t, store.DecrementOrRemove(ctx, "1"))
	require.NoError(t, store.DecrementOrRemove(ctx, "missing"))
}

func TestUpdateNotes(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "1", "Pad Thai", price("95.50")))
	require.NoError(t, store.UpdateNotes(ctx, "1", "no peanuts"))
	assert.Equal(t, "no peanuts", store.Items()[0].Notes)

	// Absent item is a no-op.
	require.NoError(t, store.UpdateNotes(ctx, "missing", "extra spicy"))
	assert.Len(t, store.Items(), 1)
}

func TestRemoveItem(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "1", "Pad Thai", price("95.50")))
	require.NoError(t, store.Add(ctx, "1", "Pad Thai", price("95.50")))
	require.NoError(t, store.RemoveItem(ctx, "1"))
	assert.Empty(t, store.Items())

	require.NoError(t, store.RemoveItem(ctx, "missing"))
}

func TestClearPreservesOrderTypeAndTable(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetOrder(ctx, session.ModeDineIn, "5"))
	require.NoError(t, store.Add(ctx, "1", "Pad Thai", price("95.50")))

	beforeType := store.OrderType()
	beforeTable := store.TableNumber()

	require.NoError(t, store.Clear(ctx))

	assert.Empty(t, store.Items())
	assert.Equal(t, beforeType, store.OrderType())
	assert.Equal(t, beforeTable, store.TableNumber())
}

func TestHydrationIdempotence(t *testing.T) {
	first, kv := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, first.SetOrder(ctx, session.ModeDineIn, "7"))
	require.NoError(t, first.Add(ctx, "1", "Pad Thai", price("95.50")))
	require.NoError(t, first.Add(ctx, "2", "Green Curry", price("120")))
	require.NoError(t, first.UpdateNotes(ctx, "2", "mild"))

	// Discard the in-memory store and rehydrate from the same port.
	second, err := NewStore(ctx, kv, nil, zap.NewNop())
	require.NoError(t, err)

	firstItems, secondItems := first.Items(), second.Items()
	require.Len(t, secondItems, len(firstItems))
	for i, item := range firstItems {
		assert.Equal(t, item.MenuID, secondItems[i].MenuID)
		assert.Equal(t, item.Name, secondItems[i].Name)
		assert.Equal(t, item.Quantity, secondItems[i].Quantity)
		assert.Equal(t, item.Notes, secondItems[i].Notes)
		assert.True(t, item.UnitPrice.Equal(secondItems[i].UnitPrice))
	}
	assert.Equal(t, first.OrderType(), second.OrderType())
	assert.Equal(t, first.TableNumber(), second.TableNumber())
	assert.True(t, first.TotalPrice().Equal(second.TotalPrice()))
	assert.Equal(t, first.TotalQuantity(), second.TotalQuantity())
}

func TestMalformedSnapshotYieldsEmptyCart(t *testing.T) {
	kv := storage.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, storage.KeyCartSnapshot, "{not json"))

	store, err := NewStore(ctx, kv, nil, zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, store.Items())
	assert.Equal(t, session.ModeUnset, store.OrderType())
}
