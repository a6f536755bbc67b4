package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/prosaasfilms/configurator-backend/internal/order"
	pkgerrors "github.com/prosaasfilms/configurator-backend/pkg/errors"
)

func TestMemoryStoreSaveGetRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(time.Hour)
	o := order.New()
	o.Client.FirstName = "Marie"

	if err := store.Save(context.Background(), o); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Get(context.Background(), o.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Client.FirstName != "Marie" {
		t.Fatalf("snapshot not preserved: %+v", got.Client)
	}

	// The store hands back copies; mutating the result must not leak.
	got.Client.FirstName = "Paul"
	again, err := store.Get(context.Background(), o.ID)
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if again.Client.FirstName != "Marie" {
		t.Fatalf("stored snapshot was aliased: %+v", again.Client)
	}
}

func TestMemoryStoreGetUnknownSession(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(time.Hour)
	_, err := store.Get(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(time.Minute)
	current := time.Now()
	store.now = func() time.Time { return current }

	o := order.New()
	if err := store.Save(context.Background(), o); err != nil {
		t.Fatalf("save: %v", err)
	}

	current = current.Add(2 * time.Minute)
	_, err := store.Get(context.Background(), o.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected expiry to surface as NOT_FOUND, got %v", err)
	}
}

func TestMemoryStoreDeleteIsIdempotent(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(0)
	o := order.New()
	if err := store.Save(context.Background(), o); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(context.Background(), o.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(context.Background(), o.ID); err != nil {
		t.Fatalf("second delete should be a no-op: %v", err)
	}
}
