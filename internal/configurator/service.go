package configurator

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/prosaasfilms/configurator-backend/internal/order"
	"github.com/prosaasfilms/configurator-backend/internal/session"
	"github.com/prosaasfilms/configurator-backend/pkg/logger"
)

// Service owns the form side of a configurator session: creation, reads and
// every order mutation. Each mutation is load-mutate-save on the session
// snapshot and returns the refreshed order.
type Service interface {
	Create(ctx context.Context) (*order.Order, error)
	Get(ctx context.Context, sessionID uuid.UUID) (*order.Order, error)
	AddWindow(ctx context.Context, sessionID uuid.UUID) (*order.Order, error)
	RemoveWindow(ctx context.Context, sessionID, windowID uuid.UUID) (*order.Order, error)
	UpdateWindow(ctx context.Context, sessionID, windowID uuid.UUID, dim order.Dimension, value float64) (*order.Order, error)
	UpdateClient(ctx context.Context, sessionID uuid.UUID, client order.ClientData) (*order.Order, error)
	UpdateOptions(ctx context.Context, sessionID uuid.UUID, opts order.Options) (*order.Order, error)
}

type service struct {
	sessions session.Store
	logg     *logger.Logger
}

// NewService builds the configurator session service.
func NewService(sessions session.Store, logg *logger.Logger) (Service, error) {
	if sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{sessions: sessions, logg: logg}, nil
}

func (s *service) Create(ctx context.Context) (*order.Order, error) {
	o := order.New()
	if err := s.sessions.Save(ctx, o); err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithSessionID(ctx, o.ID.String()), "session.created")
	return o, nil
}

func (s *service) Get(ctx context.Context, sessionID uuid.UUID) (*order.Order, error) {
	return s.sessions.Get(ctx, sessionID)
}

func (s *service) AddWindow(ctx context.Context, sessionID uuid.UUID) (*order.Order, error) {
	return s.mutate(ctx, sessionID, func(o *order.Order) error {
		_, err := o.AddWindow()
		return err
	})
}

func (s *service) RemoveWindow(ctx context.Context, sessionID, windowID uuid.UUID) (*order.Order, error) {
	return s.mutate(ctx, sessionID, func(o *order.Order) error {
		return o.RemoveWindow(windowID)
	})
}

func (s *service) UpdateWindow(ctx context.Context, sessionID, windowID uuid.UUID, dim order.Dimension, value float64) (*order.Order, error) {
	return s.mutate(ctx, sessionID, func(o *order.Order) error {
		return o.UpdateWindow(windowID, dim, value)
	})
}

func (s *service) UpdateClient(ctx context.Context, sessionID uuid.UUID, client order.ClientData) (*order.Order, error) {
	return s.mutate(ctx, sessionID, func(o *order.Order) error {
		return o.UpdateClient(client)
	})
}

func (s *service) UpdateOptions(ctx context.Context, sessionID uuid.UUID, opts order.Options) (*order.Order, error) {
	return s.mutate(ctx, sessionID, func(o *order.Order) error {
		return o.UpdateOptions(opts)
	})
}

func (s *service) mutate(ctx context.Context, sessionID uuid.UUID, apply func(*order.Order) error) (*order.Order, error) {
	o, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := apply(o); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}
