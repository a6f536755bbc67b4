package payment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/prosaasfilms/configurator-backend/internal/order"
	"github.com/prosaasfilms/configurator-backend/internal/pricing"
	"github.com/prosaasfilms/configurator-backend/pkg/config"
	pkgerrors "github.com/prosaasfilms/configurator-backend/pkg/errors"
)

// Request is the order snapshot presented to the gateway at submission time.
type Request struct {
	SessionID uuid.UUID          `json:"session_id"`
	Client    order.ClientData   `json:"client"`
	Summary   pricing.Summary    `json:"summary"`
	Windows   []order.WindowItem `json:"windows"`
}

// Gateway charges an order. Gateway rejection, network failure and timeout
// are all reported as an error; the checkout state machine treats them alike.
type Gateway interface {
	Charge(ctx context.Context, req Request) error
}

// SimulatedGateway stands in for the real payment provider: it resolves after
// a fixed delay and succeeds unless failure injection is enabled. Context
// cancellation during the delay counts as a gateway failure.
type SimulatedGateway struct {
	delay time.Duration
	fail  bool
}

// NewSimulatedGateway builds the simulator from payment config.
func NewSimulatedGateway(cfg config.PaymentConfig) *SimulatedGateway {
	return &SimulatedGateway{delay: cfg.SimulatedDelay, fail: cfg.SimulateFail}
}

func (g *SimulatedGateway) Charge(ctx context.Context, _ Request) error {
	timer := time.NewTimer(g.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return pkgerrors.Wrap(pkgerrors.CodeDependency, ctx.Err(), "payment gateway timed out")
	case <-timer.C:
	}

	if g.fail {
		return pkgerrors.New(pkgerrors.CodeDependency, "payment gateway rejected the charge")
	}
	return nil
}
