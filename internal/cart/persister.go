package cart

import (
	"context"
	"sync"

	"github.com/avelarq/tableside-backend/pkg/types"
)

// Persister stores cart snapshots across client reloads. Only items and
// the table id are persisted; derived totals are always recomputed.
type Persister interface {
	Save(ctx context.Context, sessionID string, snap types.CartSnapshot) error
	Load(ctx context.Context, sessionID string) (*types.CartSnapshot, error)
	Delete(ctx context.Context, sessionID string) error
}

// MemoryPersister keeps snapshots in process memory. It backs tests and
// single-node deployments running without Redis.
type MemoryPersister struct {
	mu    sync.RWMutex
	snaps map[string]types.CartSnapshot
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{snaps: make(map[string]types.CartSnapshot)}
}

func (p *MemoryPersister) Save(_ context.Context, sessionID string, snap types.CartSnapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snaps[sessionID] = snap
	return nil
}

func (p *MemoryPersister) Load(_ context.Context, sessionID string) (*types.CartSnapshot, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	snap, ok := p.snaps[sessionID]
	if !ok {
		return nil, nil
	}
	return &snap, nil
}

func (p *MemoryPersister) Delete(_ context.Context, sessionID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.snaps, sessionID)
	return nil
}
