package controllers

import (
	"net/http"

	"github.com/prosaasfilms/configurator-backend/api/responses"
	"github.com/prosaasfilms/configurator-backend/api/validators"
	assistantsvc "github.com/prosaasfilms/configurator-backend/internal/assistant"
	pkgerrors "github.com/prosaasfilms/configurator-backend/pkg/errors"
	"github.com/prosaasfilms/configurator-backend/pkg/logger"
)

type assistantMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

type assistantMessageResponse struct {
	Transcript []chatMessageState `json:"transcript"`
}

// AssistantMessage appends a visitor message and the generated (or fallback)
// reply to the session transcript.
func AssistantMessage(svc assistantsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assistant service unavailable"))
			return
		}

		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload assistantMessageRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		o, err := svc.SendMessage(r.Context(), sessionID, payload.Text)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, assistantMessageResponse{Transcript: newTranscript(o.Transcript)})
	}
}

// AssistantTranscript returns the recorded conversation.
func AssistantTranscript(svc assistantsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assistant service unavailable"))
			return
		}

		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		messages, err := svc.Transcript(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, assistantMessageResponse{Transcript: newTranscript(messages)})
	}
}
