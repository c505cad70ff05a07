package cart

import (
	"context"
	"testing"

	"github.com/avelarq/tableside-backend/pkg/types"
)

func TestManagerStoreFor_ReturnsSameStorePerSession(t *testing.T) {
	ctx := context.Background()
	mgr, err := NewManager(ManagerParams{Persister: NewMemoryPersister()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := mgr.StoreFor(ctx, "sess-1")
	b := mgr.StoreFor(ctx, "sess-1")
	if a != b {
		t.Fatalf("expected the same store for one session")
	}
	if other := mgr.StoreFor(ctx, "sess-2"); other == a {
		t.Fatalf("expected distinct stores per session")
	}
}

func TestManagerStoreFor_RehydratesFromPersister(t *testing.T) {
	ctx := context.Background()
	persister := NewMemoryPersister()
	tableID := "table-5"
	seed := types.CartSnapshot{
		Items: []types.CartItem{
			{ID: "cart-item-1", MenuItem: testMenuItem("item-1", "Burger", 10), Quantity: 1},
		},
		TableID: &tableID,
	}
	if err := persister.Save(ctx, "sess-1", seed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mgr, err := NewManager(ManagerParams{Persister: persister})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store := mgr.StoreFor(ctx, "sess-1")
	if len(store.Items()) != 1 {
		t.Fatalf("expected rehydrated cart item")
	}
	if got := store.TableID(); got == nil || *got != "table-5" {
		t.Fatalf("expected rehydrated table id, got %v", got)
	}
}

func TestManagerDrop(t *testing.T) {
	ctx := context.Background()
	persister := NewMemoryPersister()
	mgr, err := NewManager(ManagerParams{Persister: persister})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store := mgr.StoreFor(ctx, "sess-1")
	store.AddItem(ctx, testMenuItem("item-1", "Burger", 10), 1, nil, "")

	if err := mgr.Drop(ctx, "sess-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap, _ := persister.Load(ctx, "sess-1")
	if snap != nil {
		t.Fatalf("expected persisted snapshot deleted")
	}
	if fresh := mgr.StoreFor(ctx, "sess-1"); len(fresh.Items()) != 0 {
		t.Fatalf("expected a fresh empty store after drop")
	}
}

func TestNewManager_RequiresPersister(t *testing.T) {
	if _, err := NewManager(ManagerParams{}); err == nil {
		t.Fatalf("expected error for missing persister")
	}
}
