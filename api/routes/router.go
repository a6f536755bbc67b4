package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/prosaasfilms/configurator-backend/api/controllers"
	"github.com/prosaasfilms/configurator-backend/api/middleware"
	assistantsvc "github.com/prosaasfilms/configurator-backend/internal/assistant"
	checkoutsvc "github.com/prosaasfilms/configurator-backend/internal/checkout"
	configuratorsvc "github.com/prosaasfilms/configurator-backend/internal/configurator"
	"github.com/prosaasfilms/configurator-backend/internal/pricing"
	"github.com/prosaasfilms/configurator-backend/pkg/config"
	"github.com/prosaasfilms/configurator-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	sessionPinger controllers.Pinger,
	configuratorService configuratorsvc.Service,
	checkoutService checkoutsvc.Service,
	assistantService assistantsvc.Service,
	calc *pricing.Calculator,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, sessionPinger))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/sessions", func(r chi.Router) {
		r.Post("/", controllers.SessionCreate(configuratorService, calc, logg))

		r.Route("/{sessionId}", func(r chi.Router) {
			r.Get("/", controllers.SessionState(configuratorService, calc, logg))

			r.Route("/windows", func(r chi.Router) {
				r.Post("/", controllers.WindowAdd(configuratorService, calc, logg))
				r.Patch("/{windowId}", controllers.WindowUpdate(configuratorService, calc, logg))
				r.Delete("/{windowId}", controllers.WindowRemove(configuratorService, calc, logg))
			})

			r.Put("/client", controllers.ClientUpdate(configuratorService, calc, logg))
			r.Put("/options", controllers.OptionsUpdate(configuratorService, calc, logg))

			r.Route("/checkout", func(r chi.Router) {
				r.Post("/submit", controllers.CheckoutSubmit(checkoutService, calc, logg))
				r.Post("/reset", controllers.CheckoutReset(checkoutService, calc, logg))
			})

			r.Route("/assistant", func(r chi.Router) {
				r.Post("/messages", controllers.AssistantMessage(assistantService, logg))
				r.Get("/messages", controllers.AssistantTranscript(assistantService, logg))
			})
		})
	})

	return r
}
