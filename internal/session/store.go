package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/prosaasfilms/configurator-backend/internal/order"
)

// Store persists configurator session snapshots for the lifetime of the
// session. Exactly one mutator (the visitor) exists per session, so stores
// implement last-write-wins without compare-and-swap.
type Store interface {
	// Save writes the snapshot and refreshes its TTL.
	Save(ctx context.Context, o *order.Order) error
	// Get loads the snapshot; a missing or expired session yields NOT_FOUND.
	Get(ctx context.Context, id uuid.UUID) (*order.Order, error)
	// Delete drops the snapshot; absent sessions are not an error.
	Delete(ctx context.Context, id uuid.UUID) error
}
