package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/prosaasfilms/configurator-backend/internal/order"
	pkgerrors "github.com/prosaasfilms/configurator-backend/pkg/errors"
	"github.com/prosaasfilms/configurator-backend/pkg/redis"
)

type fakeRedis struct {
	data map[string]string
	ttls map[string]time.Duration
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttls[key] = ttl
	return nil
}

func (f *fakeRedis) Get(_ context.Context, key string) (string, error) {
	v, ok := f.data[key]
	if !ok {
		return "", redis.ErrNotFound
	}
	return v, nil
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func (f *fakeRedis) SessionKey(sessionID string) string {
	return "filmconf:session:" + sessionID
}

func TestRedisStoreRoundTripAndTTL(t *testing.T) {
	t.Parallel()

	fake := newFakeRedis()
	store := &RedisStore{client: fake, ttl: 24 * time.Hour}

	o := order.New()
	o.Options.Delivery = true
	if err := store.Save(context.Background(), o); err != nil {
		t.Fatalf("save: %v", err)
	}

	key := fake.SessionKey(o.ID.String())
	if fake.ttls[key] != 24*time.Hour {
		t.Fatalf("expected TTL applied on save, got %v", fake.ttls[key])
	}

	got, err := store.Get(context.Background(), o.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Options.Delivery {
		t.Fatalf("snapshot not preserved: %+v", got.Options)
	}
}

func TestRedisStoreMissingSession(t *testing.T) {
	t.Parallel()

	store := &RedisStore{client: newFakeRedis(), ttl: time.Hour}
	_, err := store.Get(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestRedisStoreDelete(t *testing.T) {
	t.Parallel()

	fake := newFakeRedis()
	store := &RedisStore{client: fake, ttl: time.Hour}
	o := order.New()
	if err := store.Save(context.Background(), o); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(context.Background(), o.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(context.Background(), o.ID); pkgerrors.As(err) == nil {
		t.Fatalf("expected NOT_FOUND after delete, got %v", err)
	}
}
