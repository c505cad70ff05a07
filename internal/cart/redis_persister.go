package cart

import (
	"context"
	"encoding/json"
	"time"

	pkgerrors "github.com/avelarq/tableside-backend/pkg/errors"
	"github.com/avelarq/tableside-backend/pkg/redis"
	"github.com/avelarq/tableside-backend/pkg/types"
)

const defaultCartKeyPrefix = "tableside:cart"

// RedisPersister stores snapshots as JSON under the session's cart key
// with a rolling TTL, so abandoned carts age out on their own.
type RedisPersister struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisPersister(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisPersister {
	if keyPrefix == "" {
		keyPrefix = defaultCartKeyPrefix
	}
	return &RedisPersister{client: client, prefix: keyPrefix, ttl: ttl}
}

func (p *RedisPersister) key(sessionID string) string {
	return p.prefix + ":" + sessionID
}

func (p *RedisPersister) Save(ctx context.Context, sessionID string, snap types.CartSnapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding cart snapshot")
	}
	if err := p.client.Set(ctx, p.key(sessionID), payload, p.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "writing cart snapshot")
	}
	return nil
}

func (p *RedisPersister) Load(ctx context.Context, sessionID string) (*types.CartSnapshot, error) {
	payload, err := p.client.Get(ctx, p.key(sessionID))
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading cart snapshot")
	}
	var snap types.CartSnapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding cart snapshot")
	}
	return &snap, nil
}

func (p *RedisPersister) Delete(ctx context.Context, sessionID string) error {
	if err := p.client.Del(ctx, p.key(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting cart snapshot")
	}
	return nil
}
