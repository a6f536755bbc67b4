package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/prosaasfilms/configurator-backend/internal/order"
	pkgerrors "github.com/prosaasfilms/configurator-backend/pkg/errors"
	"github.com/prosaasfilms/configurator-backend/pkg/redis"
)

type redisCommands interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	SessionKey(sessionID string) string
}

// RedisStore persists session snapshots as JSON values with a rolling TTL,
// so a configurator session survives API restarts but still expires.
type RedisStore struct {
	client redisCommands
	ttl    time.Duration
}

// NewRedisStore builds a redis-backed session store.
func NewRedisStore(client *redis.Client, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func (s *RedisStore) Save(ctx context.Context, o *order.Order) error {
	if o == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "nil order snapshot")
	}
	raw, err := json.Marshal(o)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode session snapshot")
	}
	if err := s.client.Set(ctx, s.client.SessionKey(o.ID.String()), raw, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write session snapshot")
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	raw, err := s.client.Get(ctx, s.client.SessionKey(id.String()))
	if err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "session not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read session snapshot")
	}
	var o order.Order
	if err := json.Unmarshal([]byte(raw), &o); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode session snapshot")
	}
	return &o, nil
}

func (s *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.client.Del(ctx, s.client.SessionKey(id.String())); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete session snapshot")
	}
	return nil
}
