package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/prosaasfilms/configurator-backend/internal/order"
	pkgerrors "github.com/prosaasfilms/configurator-backend/pkg/errors"
)

type memoryEntry struct {
	snapshot  []byte
	expiresAt time.Time
}

// MemoryStore keeps session snapshots in process memory with lazy TTL expiry.
// Snapshots are stored serialized so callers never share the aggregate.
type MemoryStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[uuid.UUID]memoryEntry
	now     func() time.Time
}

// NewMemoryStore builds an in-memory store; ttl <= 0 disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[uuid.UUID]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, o *order.Order) error {
	if o == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "nil order snapshot")
	}
	raw, err := json.Marshal(o)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode session snapshot")
	}

	var expiresAt time.Time
	if s.ttl > 0 {
		expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[o.ID] = memoryEntry{snapshot: raw, expiresAt: expiresAt}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (*order.Order, error) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()

	if ok && !entry.expiresAt.IsZero() && s.now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, id)
		s.mu.Unlock()
		ok = false
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "session not found")
	}

	var o order.Order
	if err := json.Unmarshal(entry.snapshot, &o); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode session snapshot")
	}
	return &o, nil
}

func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}
