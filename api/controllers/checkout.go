package controllers

import (
	"net/http"

	"github.com/prosaasfilms/configurator-backend/api/responses"
	checkoutsvc "github.com/prosaasfilms/configurator-backend/internal/checkout"
	"github.com/prosaasfilms/configurator-backend/internal/pricing"
	pkgerrors "github.com/prosaasfilms/configurator-backend/pkg/errors"
	"github.com/prosaasfilms/configurator-backend/pkg/logger"
)

// CheckoutSubmit runs the checkout attempt. A rejected guard surfaces as a
// 400 with per-field details; a payment outcome, good or bad, surfaces as the
// resulting order state.
func CheckoutSubmit(svc checkoutsvc.Service, calc *pricing.Calculator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		o, err := svc.Submit(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newOrderState(o, calc))
	}
}

// CheckoutReset returns a finished order to the form view.
func CheckoutReset(svc checkoutsvc.Service, calc *pricing.Calculator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		o, err := svc.Reset(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newOrderState(o, calc))
	}
}
