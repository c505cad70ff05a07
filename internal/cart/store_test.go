package cart

import (
	"context"
	"math"
	"testing"

	"github.com/avelarq/tableside-backend/pkg/types"
)

func testMenuItem(id, name string, price float64) *types.MenuItem {
	return &types.MenuItem{ID: id, Name: name, Price: price, Available: true}
}

func newTestStore() (*Store, *MemoryPersister) {
	persister := NewMemoryPersister()
	store := NewStore(StoreParams{SessionID: "sess-1", Persister: persister})
	return store, persister
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAddItem_CreatesDistinctEntries(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore()
	burger := testMenuItem("item-1", "Burger", 12.50)

	first := store.AddItem(ctx, burger, 1, nil, "")
	second := store.AddItem(ctx, burger, 1, nil, "")

	if first.ID == second.ID {
		t.Fatalf("repeated adds must produce distinct cart item ids")
	}
	if len(store.Items()) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(store.Items()))
	}
	if !almostEqual(first.TotalPrice, 12.50) {
		t.Fatalf("expected snapshot total 12.50, got %v", first.TotalPrice)
	}
}

func TestAddItem_SnapshotsModifierTotal(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore()
	pizza := testMenuItem("item-2", "Pizza", 15.00)
	mods := []types.Modifier{
		{ID: "mod-1", Name: "Extra Cheese", Price: 2.00},
		{ID: "mod-2", Name: "Mushrooms", Price: 1.50},
	}

	item := store.AddItem(ctx, pizza, 2, mods, "well done")

	if !almostEqual(item.TotalPrice, 37.00) {
		t.Fatalf("expected (15+3.50)*2 = 37.00, got %v", item.TotalPrice)
	}
}

func TestRemoveItem_NoopWhenAbsent(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore()
	item := store.AddItem(ctx, testMenuItem("item-1", "Burger", 10), 1, nil, "")

	store.RemoveItem(ctx, "does-not-exist")
	if len(store.Items()) != 1 {
		t.Fatalf("removing unknown id must be a no-op")
	}

	store.RemoveItem(ctx, item.ID)
	if len(store.Items()) != 0 {
		t.Fatalf("expected empty cart after removal")
	}
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore()
	item := store.AddItem(ctx, testMenuItem("item-1", "Burger", 10), 1, nil, "")

	store.UpdateQuantity(ctx, item.ID, 3)
	items := store.Items()
	if items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", items[0].Quantity)
	}
	if !almostEqual(items[0].TotalPrice, 30) {
		t.Fatalf("expected refreshed snapshot 30, got %v", items[0].TotalPrice)
	}

	store.UpdateQuantity(ctx, item.ID, 0)
	if len(store.Items()) != 0 {
		t.Fatalf("quantity <= 0 must remove the entry")
	}
}

func TestClearCart_KeepsTableID(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore()
	tableID := "table-7"
	store.SetTableID(ctx, &tableID)
	store.AddItem(ctx, testMenuItem("item-1", "Burger", 10), 2, nil, "")

	store.ClearCart(ctx)

	if len(store.Items()) != 0 {
		t.Fatalf("expected empty items after clear")
	}
	if got := store.TableID(); got == nil || *got != "table-7" {
		t.Fatalf("clear must not unset table id, got %v", got)
	}
}

func TestDerivedReads_RecomputeEveryCall(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore()
	store.AddItem(ctx, testMenuItem("item-1", "Burger", 10), 2, nil, "")
	store.AddItem(ctx, testMenuItem("item-2", "Fries", 4.50), 1, nil, "")

	if got := store.Subtotal(); !almostEqual(got, 24.50) {
		t.Fatalf("expected subtotal 24.50, got %v", got)
	}
	if got := store.Tax(); !almostEqual(got, 2.14) {
		t.Fatalf("expected tax 2.14 at 8.75%%, got %v", got)
	}
	if got := store.Total(); !almostEqual(got, 26.64) {
		t.Fatalf("expected total 26.64, got %v", got)
	}
	if got := store.ItemCount(); got != 3 {
		t.Fatalf("expected item count 3, got %d", got)
	}

	// Idempotent with unchanged state.
	if store.Subtotal() != store.Subtotal() || store.Total() != store.Total() {
		t.Fatalf("derived reads must be stable for unchanged state")
	}
}

func TestPersistOnEveryMutation(t *testing.T) {
	ctx := context.Background()
	store, persister := newTestStore()
	item := store.AddItem(ctx, testMenuItem("item-1", "Burger", 10), 1, nil, "")

	snap, err := persister.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap == nil || len(snap.Items) != 1 {
		t.Fatalf("expected persisted snapshot after add")
	}

	store.RemoveItem(ctx, item.ID)
	snap, _ = persister.Load(ctx, "sess-1")
	if len(snap.Items) != 0 {
		t.Fatalf("expected persisted snapshot refreshed after remove")
	}
}

func TestRestoreStore_RecomputesSnapshots(t *testing.T) {
	tableID := "table-3"
	snap := types.CartSnapshot{
		Items: []types.CartItem{
			{
				ID:       "cart-item-1",
				MenuItem: testMenuItem("item-1", "Burger", 10),
				Quantity: 2,
				// Stale snapshot from an older pricing rule.
				TotalPrice: 99.99,
			},
		},
		TableID: &tableID,
	}

	store := RestoreStore(StoreParams{SessionID: "sess-1"}, snap)

	items := store.Items()
	if len(items) != 1 {
		t.Fatalf("expected restored item")
	}
	if !almostEqual(items[0].TotalPrice, 20) {
		t.Fatalf("expected recomputed snapshot 20, got %v", items[0].TotalPrice)
	}
	if got := store.TableID(); got == nil || *got != "table-3" {
		t.Fatalf("expected restored table id, got %v", got)
	}
}
