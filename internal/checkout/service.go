package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/prosaasfilms/configurator-backend/internal/leads"
	"github.com/prosaasfilms/configurator-backend/internal/order"
	"github.com/prosaasfilms/configurator-backend/internal/payment"
	"github.com/prosaasfilms/configurator-backend/internal/pricing"
	"github.com/prosaasfilms/configurator-backend/internal/session"
	"github.com/prosaasfilms/configurator-backend/pkg/enums"
	pkgerrors "github.com/prosaasfilms/configurator-backend/pkg/errors"
	"github.com/prosaasfilms/configurator-backend/pkg/logger"
	"github.com/prosaasfilms/configurator-backend/pkg/metrics"
)

// Service executes checkout submissions and resets.
type Service interface {
	// Submit runs the whole attempt: guard, payment, lead capture. The
	// returned order is in a terminal status (success or critical_error)
	// unless the guard rejected it, in which case the error carries the
	// per-field messages and the order stays in form.
	Submit(ctx context.Context, sessionID uuid.UUID) (*order.Order, error)
	// Reset returns a finished session (success or critical_error) to the
	// form view.
	Reset(ctx context.Context, sessionID uuid.UUID) (*order.Order, error)
}

type service struct {
	sessions       session.Store
	calc           *pricing.Calculator
	gateway        payment.Gateway
	notifier       leads.Notifier
	metrics        *metrics.CheckoutMetrics
	logg           *logger.Logger
	paymentTimeout time.Duration
}

// NewService builds the checkout service.
func NewService(
	sessions session.Store,
	calc *pricing.Calculator,
	gateway payment.Gateway,
	notifier leads.Notifier,
	m *metrics.CheckoutMetrics,
	logg *logger.Logger,
	paymentTimeout time.Duration,
) (Service, error) {
	if sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	if calc == nil {
		return nil, fmt.Errorf("pricing calculator required")
	}
	if gateway == nil {
		return nil, fmt.Errorf("payment gateway required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("lead notifier required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		sessions:       sessions,
		calc:           calc,
		gateway:        gateway,
		notifier:       notifier,
		metrics:        m,
		logg:           logg,
		paymentTimeout: paymentTimeout,
	}, nil
}

func (s *service) Submit(ctx context.Context, sessionID uuid.UUID) (*order.Order, error) {
	o, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	ctx = s.logg.WithSessionID(ctx, sessionID.String())

	next, err := Next(o.Status, EventSubmit)
	if err != nil {
		return nil, err
	}

	if fieldErrors := ValidateClient(o.Client); len(fieldErrors) > 0 {
		o.SetFieldErrors(fieldErrors)
		if saveErr := s.sessions.Save(ctx, o); saveErr != nil {
			return nil, saveErr
		}
		return o, pkgerrors.New(pkgerrors.CodeValidation, "client data incomplete").
			WithDetails(map[string]any{"fields": fieldErrors})
	}

	o.SetFieldErrors(nil)
	o.SetStatus(next)
	if err := s.sessions.Save(ctx, o); err != nil {
		return nil, err
	}

	// Snapshot at submission time: every lead event of this attempt carries
	// the same client, summary and window list.
	summary := s.calc.Calculate(o.Windows, o.Options)
	snapshot := payment.Request{
		SessionID: o.ID,
		Client:    o.Client,
		Summary:   summary,
		Windows:   append([]order.WindowItem(nil), o.Windows...),
	}

	s.capture(ctx, enums.LeadEventAttempt, snapshot)

	chargeCtx := ctx
	var cancel context.CancelFunc
	if s.paymentTimeout > 0 {
		chargeCtx, cancel = context.WithTimeout(ctx, s.paymentTimeout)
		defer cancel()
	}
	start := time.Now()
	chargeErr := s.gateway.Charge(chargeCtx, snapshot)
	s.metrics.ObservePaymentDuration(time.Since(start))

	if chargeErr != nil {
		s.logg.Error(ctx, "checkout.payment_failed", chargeErr)
		return s.finish(ctx, o, EventPaymentFailed, enums.LeadEventFailure, snapshot)
	}
	return s.finish(ctx, o, EventPaymentSucceeded, enums.LeadEventSuccess, snapshot)
}

// finish records the terminal transition and its lead event. Payment failure
// resolves to the critical_error view, never to a submission error.
func (s *service) finish(ctx context.Context, o *order.Order, event Event, lead enums.LeadEventType, snapshot payment.Request) (*order.Order, error) {
	next, err := Next(o.Status, event)
	if err != nil {
		return nil, err
	}
	o.SetStatus(next)
	if err := s.sessions.Save(ctx, o); err != nil {
		return nil, err
	}
	s.capture(ctx, lead, snapshot)
	s.metrics.IncOutcome(string(lead))
	s.logg.Info(s.logg.WithField(ctx, "status", next.String()), "checkout.finished")
	return o, nil
}

func (s *service) Reset(ctx context.Context, sessionID uuid.UUID) (*order.Order, error) {
	o, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	next, err := Next(o.Status, EventReset)
	if err != nil {
		return nil, err
	}
	o.SetStatus(next)
	o.SetFieldErrors(nil)
	if err := s.sessions.Save(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) capture(ctx context.Context, event enums.LeadEventType, snapshot payment.Request) {
	s.notifier.Capture(ctx, leads.Payload{
		Type:    event,
		Client:  snapshot.Client,
		Summary: snapshot.Summary,
		Windows: snapshot.Windows,
	})
}
