package controllers

import (
	"net/http"
	"strings"

	"github.com/prosaasfilms/configurator-backend/api/responses"
	"github.com/prosaasfilms/configurator-backend/api/validators"
	configuratorsvc "github.com/prosaasfilms/configurator-backend/internal/configurator"
	"github.com/prosaasfilms/configurator-backend/internal/order"
	"github.com/prosaasfilms/configurator-backend/internal/pricing"
	"github.com/prosaasfilms/configurator-backend/pkg/enums"
	pkgerrors "github.com/prosaasfilms/configurator-backend/pkg/errors"
	"github.com/prosaasfilms/configurator-backend/pkg/logger"
)

type updateOptionsRequest struct {
	Design                   string `json:"design" validate:"required"`
	Delivery                 bool   `json:"delivery"`
	ProfessionalInstallation bool   `json:"professional_installation"`
}

// OptionsUpdate replaces the product configuration wholesale.
func OptionsUpdate(svc configuratorsvc.Service, calc *pricing.Calculator, logg *logger.Logger) http.HandlerFunc {
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

		var payload updateOptionsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		design, err := enums.ParseFilmDesign(strings.TrimSpace(payload.Design))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid film design"))
			return
		}

		o, err := svc.UpdateOptions(r.Context(), sessionID, order.Options{
			Design:                   design,
			Delivery:                 payload.Delivery,
			ProfessionalInstallation: payload.ProfessionalInstallation,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newOrderState(o, calc))
	}
}
