package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/prosaasfilms/configurator-backend/internal/order"
	"github.com/prosaasfilms/configurator-backend/internal/pricing"
	"github.com/prosaasfilms/configurator-backend/pkg/enums"
	pkgerrors "github.com/prosaasfilms/configurator-backend/pkg/errors"
	"github.com/prosaasfilms/configurator-backend/pkg/logger"
)

type stubCheckoutService struct {
	submitOrder *order.Order
	submitErr   error
	resetOrder  *order.Order
	resetErr    error
}

func (s *stubCheckoutService) Submit(_ context.Context, _ uuid.UUID) (*order.Order, error) {
	return s.submitOrder, s.submitErr
}

func (s *stubCheckoutService) Reset(_ context.Context, _ uuid.UUID) (*order.Order, error) {
	return s.resetOrder, s.resetErr
}

func TestCheckoutSubmitReturnsTerminalState(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	calc := pricing.NewCalculator(testRates())

	o := order.New()
	o.SetStatus(enums.OrderStatusCriticalError)
	stub := &stubCheckoutService{submitOrder: o}

	req := withSessionParam(httptest.NewRequest(http.MethodPost, "/", nil), o.ID)
	rec := httptest.NewRecorder()
	CheckoutSubmit(stub, calc, logg).ServeHTTP(rec, req)

	// A failed payment is an order state, not an HTTP error.
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	state := decodeOrderState(t, rec.Body)
	if state.Status != "critical_error" {
		t.Fatalf("expected critical_error, got %s", state.Status)
	}
}

func TestCheckoutSubmitGuardFailure(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	calc := pricing.NewCalculator(testRates())

	stub := &stubCheckoutService{
		submitErr: pkgerrors.New(pkgerrors.CodeValidation, "client data incomplete").
			WithDetails(map[string]any{"fields": map[string]string{"firstName": "Prénom requis"}}),
	}

	req := withSessionParam(httptest.NewRequest(http.MethodPost, "/", nil), uuid.New())
	rec := httptest.NewRecorder()
	CheckoutSubmit(stub, calc, logg).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCheckoutResetConflict(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	calc := pricing.NewCalculator(testRates())

	stub := &stubCheckoutService{
		resetErr: pkgerrors.New(pkgerrors.CodeStateConflict, "event reset not allowed in status form"),
	}

	req := withSessionParam(httptest.NewRequest(http.MethodPost, "/", nil), uuid.New())
	rec := httptest.NewRecorder()
	CheckoutReset(stub, calc, logg).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}
