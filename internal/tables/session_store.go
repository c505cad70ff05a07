package tables

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	pkgerrors "github.com/avelarq/tableside-backend/pkg/errors"
	"github.com/avelarq/tableside-backend/pkg/redis"
)

// SessionRecord is the server-side state for one active table session.
// The JWT carries the same identifiers; the record's presence is what
// makes a token revocable before its expiry.
type SessionRecord struct {
	SessionID string    `json:"session_id"`
	TableID   string    `json:"table_id"`
	TableCode string    `json:"table_code"`
	StartedAt time.Time `json:"started_at"`
}

// SessionStore persists active table sessions.
type SessionStore interface {
	Save(ctx context.Context, record SessionRecord, ttl time.Duration) error
	Load(ctx context.Context, sessionID string) (*SessionRecord, error)
	Delete(ctx context.Context, sessionID string) error
}

// RedisSessionStore keeps sessions in Redis under the session key
// namespace, expiring with the token TTL.
type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) Save(ctx context.Context, record SessionRecord, ttl time.Duration) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding session record")
	}
	if err := s.client.Set(ctx, s.client.SessionKey(record.SessionID), payload, ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "writing session record")
	}
	return nil
}

func (s *RedisSessionStore) Load(ctx context.Context, sessionID string) (*SessionRecord, error) {
	payload, err := s.client.Get(ctx, s.client.SessionKey(sessionID))
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading session record")
	}
	var record SessionRecord
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding session record")
	}
	return &record, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.client.SessionKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting session record")
	}
	return nil
}

// MemorySessionStore backs tests and Redis-less deployments. TTLs are
// checked lazily on load.
type MemorySessionStore struct {
	mu       sync.RWMutex
	records  map[string]SessionRecord
	expiries map[string]time.Time
	now      func() time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		records:  make(map[string]SessionRecord),
		expiries: make(map[string]time.Time),
		now:      time.Now,
	}
}

func (s *MemorySessionStore) Save(_ context.Context, record SessionRecord, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.SessionID] = record
	if ttl > 0 {
		s.expiries[record.SessionID] = s.now().Add(ttl)
	}
	return nil
}

func (s *MemorySessionStore) Load(_ context.Context, sessionID string) (*SessionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[sessionID]
	if !ok {
		return nil, nil
	}
	if expiry, has := s.expiries[sessionID]; has && s.now().After(expiry) {
		return nil, nil
	}
	return &record, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, sessionID)
	delete(s.expiries, sessionID)
	return nil
}
