package controllers

import (
	"net/http"

	"github.com/prosaasfilms/configurator-backend/api/responses"
	"github.com/prosaasfilms/configurator-backend/api/validators"
	configuratorsvc "github.com/prosaasfilms/configurator-backend/internal/configurator"
	"github.com/prosaasfilms/configurator-backend/internal/order"
	"github.com/prosaasfilms/configurator-backend/internal/pricing"
	pkgerrors "github.com/prosaasfilms/configurator-backend/pkg/errors"
	"github.com/prosaasfilms/configurator-backend/pkg/logger"
)

type updateClientRequest struct {
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	Email                string `json:"email"`
	BillingAddress       string `json:"billing_address"`
	VATNumber            string `json:"vat_number"`
	HasDifferentShipping bool   `json:"has_different_shipping"`
	ShippingAddress      string `json:"shipping_address"`
}

// ClientUpdate replaces the client data wholesale. Completeness is not
// enforced here; the checkout guard owns that at submission time.
func ClientUpdate(svc configuratorsvc.Service, calc *pricing.Calculator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "configurator service unavailable"))
			return
		}

		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateClientRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		o, err := svc.UpdateClient(r.Context(), sessionID, order.ClientData{
			FirstName:            payload.FirstName,
			LastName:             payload.LastName,
			Email:                payload.Email,
			BillingAddress:       payload.BillingAddress,
			VATNumber:            payload.VATNumber,
			HasDifferentShipping: payload.HasDifferentShipping,
			ShippingAddress:      payload.ShippingAddress,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newOrderState(o, calc))
	}
}
