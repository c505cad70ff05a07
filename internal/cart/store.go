package cart

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/avelarq/tableside-backend/pkg/logger"
	"github.com/avelarq/tableside-backend/pkg/metrics"
	"github.com/avelarq/tableside-backend/pkg/pricing"
	"github.com/avelarq/tableside-backend/pkg/types"
)

// CartTaxRate is the store-side sales tax applied to derived cart reads.
// It is configurable per deployment and deliberately kept separate from
// the menu-wide default rate.
const CartTaxRate = 0.0875

// Store owns the canonical cart for one table session: the item list and
// the table id. Totals are never stored as canonical state; every read
// recomputes them from the current items. The per-item total snapshot is
// refreshed on each mutation and exists only as a display cache.
//
// Store operations do not enforce business rules such as availability or
// quantity caps. Validation happens before order submission.
type Store struct {
	mu        sync.Mutex
	sessionID string
	items     []types.CartItem
	tableID   *string
	taxRate   float64
	persister Persister
	metrics   *metrics.OrderMetrics
	logg      *logger.Logger
}

// StoreParams configures a Store.
type StoreParams struct {
	SessionID string
	TaxRate   float64
	Persister Persister
	Metrics   *metrics.OrderMetrics
	Logger    *logger.Logger
}

// NewStore returns an empty cart store for the session.
func NewStore(params StoreParams) *Store {
	rate := params.TaxRate
	if rate <= 0 {
		rate = CartTaxRate
	}
	return &Store{
		sessionID: params.SessionID,
		taxRate:   rate,
		persister: params.Persister,
		metrics:   params.Metrics,
		logg:      params.Logger,
	}
}

// RestoreStore rebuilds a store from a persisted snapshot. Stale item
// total snapshots are recomputed on load so pricing rule changes never
// leak through persistence.
func RestoreStore(params StoreParams, snap types.CartSnapshot) *Store {
	s := NewStore(params)
	s.items = make([]types.CartItem, 0, len(snap.Items))
	for _, item := range snap.Items {
		item.TotalPrice = pricing.ItemTotal(item)
		s.items = append(s.items, item)
	}
	s.tableID = snap.TableID
	return s
}

// AddItem appends a new cart entry with a fresh id and a total snapshot
// computed at insertion time. Repeated adds of the same menu item create
// distinct entries; the store never merges rows.
func (s *Store) AddItem(ctx context.Context, menuItem *types.MenuItem, quantity int, modifiers []types.Modifier, instructions string) types.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := types.CartItem{
		ID:                  uuid.NewString(),
		MenuItem:            menuItem,
		Quantity:            quantity,
		SelectedModifiers:   modifiers,
		SpecialInstructions: instructions,
	}
	item.TotalPrice = pricing.ItemTotal(item)
	s.items = append(s.items, item)

	s.metrics.IncCartOp("add")
	s.persist(ctx)
	return item
}

// RemoveItem drops the matching entry. Unknown ids are a no-op.
func (s *Store) RemoveItem(ctx context.Context, cartItemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item.ID == cartItemID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.metrics.IncCartOp("remove")
			s.persist(ctx)
			return
		}
	}
}

// UpdateQuantity sets the quantity on an existing entry and refreshes its
// total snapshot. A quantity of zero or less removes the entry instead.
func (s *Store) UpdateQuantity(ctx context.Context, cartItemID string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(ctx, cartItemID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == cartItemID {
			s.items[i].Quantity = quantity
			s.items[i].TotalPrice = pricing.ItemTotal(s.items[i])
			s.metrics.IncCartOp("update_quantity")
			s.persist(ctx)
			return
		}
	}
}

// ClearCart empties the item list. The table id survives so the guest
// stays bound to their table for the next round.
func (s *Store) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.metrics.IncCartOp("clear")
	s.persist(ctx)
}

// SetTableID binds or unbinds the cart's table.
func (s *Store) SetTableID(ctx context.Context, tableID *string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tableID = tableID
	s.persist(ctx)
}

// TableID returns the bound table id, if any.
func (s *Store) TableID() *string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tableID
}

// Items returns a copy of the current entries.
func (s *Store) Items() []types.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]types.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Subtotal recomputes the pre-tax sum from current items.
func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pricing.Subtotal(s.items)
}

// Tax recomputes sales tax on the current subtotal at the store's rate.
func (s *Store) Tax() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pricing.Tax(pricing.Subtotal(s.items), s.taxRate)
}

// Total recomputes subtotal plus tax. Tips are applied at submission,
// not in the cart.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	subtotal := pricing.Subtotal(s.items)
	return pricing.Round2(subtotal + pricing.Tax(subtotal, s.taxRate))
}

// ItemCount sums quantities across entries.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Snapshot returns the persistable state: items and table id only.
func (s *Store) Snapshot() types.CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() types.CartSnapshot {
	items := make([]types.CartItem, len(s.items))
	copy(items, s.items)
	return types.CartSnapshot{Items: items, TableID: s.tableID}
}

// persist writes the snapshot after a mutation. Persistence failures are
// logged and swallowed so a storage blip never loses the in-memory cart.
// Callers hold s.mu.
func (s *Store) persist(ctx context.Context) {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(ctx, s.sessionID, s.snapshotLocked()); err != nil && s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{"session_id": s.sessionID, "error": err.Error()})
		s.logg.Warn(ctx, "persisting cart snapshot failed")
	}
}
