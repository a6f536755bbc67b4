package controllers

import (
	"context"
	"net/http"

	"github.com/prosaasfilms/configurator-backend/api/responses"
	"github.com/prosaasfilms/configurator-backend/pkg/config"
	pkgerrors "github.com/prosaasfilms/configurator-backend/pkg/errors"
	"github.com/prosaasfilms/configurator-backend/pkg/logger"
)

// Pinger reports backing-store reachability for readiness checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Filmconf-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the session backend. With the in-memory store the
// pinger is nil and readiness equals liveness.
func HealthReady(cfg *config.Config, logg *logger.Logger, sessions Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Filmconf-Env", cfg.App.Env)

		if sessions != nil {
			if err := sessions.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "session backend unreachable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
