package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/avelarq/tableside-backend/pkg/logger"
	"github.com/avelarq/tableside-backend/pkg/metrics"
)

// Manager hands out one Store per table session, rehydrating from the
// persister the first time a session is seen after a restart.
type Manager struct {
	mu        sync.Mutex
	stores    map[string]*Store
	taxRate   float64
	persister Persister
	metrics   *metrics.OrderMetrics
	logg      *logger.Logger
}

// ManagerParams configures a Manager.
type ManagerParams struct {
	TaxRate   float64
	Persister Persister
	Metrics   *metrics.OrderMetrics
	Logger    *logger.Logger
}

func NewManager(params ManagerParams) (*Manager, error) {
	if params.Persister == nil {
		return nil, errors.New("cart: persister is required")
	}
	rate := params.TaxRate
	if rate <= 0 {
		rate = CartTaxRate
	}
	return &Manager{
		stores:    make(map[string]*Store),
		taxRate:   rate,
		persister: params.Persister,
		metrics:   params.Metrics,
		logg:      params.Logger,
	}, nil
}

// StoreFor returns the session's store, loading any persisted snapshot
// on first access. A corrupt or unreadable snapshot falls back to an
// empty cart rather than failing the request.
func (m *Manager) StoreFor(ctx context.Context, sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if store, ok := m.stores[sessionID]; ok {
		return store
	}

	params := StoreParams{
		SessionID: sessionID,
		TaxRate:   m.taxRate,
		Persister: m.persister,
		Metrics:   m.metrics,
		Logger:    m.logg,
	}

	snap, err := m.persister.Load(ctx, sessionID)
	if err != nil && m.logg != nil {
		ctx = m.logg.WithSessionID(ctx, sessionID)
		m.logg.Warn(ctx, "loading persisted cart failed, starting empty")
	}

	var store *Store
	if snap != nil {
		store = RestoreStore(params, *snap)
	} else {
		store = NewStore(params)
	}
	m.stores[sessionID] = store
	return store
}

// Drop removes the session's store and its persisted snapshot. Used when
// a table session ends.
func (m *Manager) Drop(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	delete(m.stores, sessionID)
	m.mu.Unlock()
	return m.persister.Delete(ctx, sessionID)
}
