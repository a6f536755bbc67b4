package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/prosaasfilms/configurator-backend/api/controllers"
	"github.com/prosaasfilms/configurator-backend/api/routes"
	"github.com/prosaasfilms/configurator-backend/internal/assistant"
	"github.com/prosaasfilms/configurator-backend/internal/checkout"
	"github.com/prosaasfilms/configurator-backend/internal/configurator"
	"github.com/prosaasfilms/configurator-backend/internal/leads"
	"github.com/prosaasfilms/configurator-backend/internal/payment"
	"github.com/prosaasfilms/configurator-backend/internal/pricing"
	"github.com/prosaasfilms/configurator-backend/internal/session"
	"github.com/prosaasfilms/configurator-backend/pkg/config"
	"github.com/prosaasfilms/configurator-backend/pkg/logger"
	"github.com/prosaasfilms/configurator-backend/pkg/metrics"
	"github.com/prosaasfilms/configurator-backend/pkg/redis"
)

const shutdownGrace = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	var (
		sessionStore  session.Store
		sessionPinger controllers.Pinger
		closers       []func() error
	)
	switch cfg.Session.Normalized() {
	case config.SessionBackendRedis:
		redisClient, err := redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		closers = append(closers, redisClient.Close)

		store, err := session.NewRedisStore(redisClient, cfg.Session.TTL)
		if err != nil {
			logg.Error(context.Background(), "failed to create redis session store", err)
			os.Exit(1)
		}
		sessionStore = store
		sessionPinger = redisClient
	default:
		sessionStore = session.NewMemoryStore(cfg.Session.TTL)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)

	calc := pricing.NewCalculator(cfg.Pricing)
	gateway := payment.NewSimulatedGateway(cfg.Payment)
	notifier := leads.NewWebhookNotifier(cfg.Leads, logg, checkoutMetrics)

	configuratorService, err := configurator.NewService(sessionStore, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create configurator service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(sessionStore, calc, gateway, notifier, checkoutMetrics, logg, cfg.Payment.Timeout)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	var generationClient assistant.Client
	if cfg.Assistant.Enabled() {
		generationClient = assistant.NewOpenAIClient(cfg.Assistant)
	}
	assistantService, err := assistant.NewService(cfg.Assistant, sessionStore, generationClient, logg, checkoutMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create assistant service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":             cfg.App.Env,
		"addr":            addr,
		"session_backend": cfg.Session.Normalized(),
		"leads_enabled":   cfg.Leads.Enabled(),
		"assistant":       cfg.Assistant.Enabled(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, sessionPinger, configuratorService, checkoutService, assistantService, calc, registry),
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	closeErr := server.Shutdown(shutdownCtx)
	for _, closeFn := range closers {
		closeErr = multierr.Append(closeErr, closeFn())
	}
	if closeErr != nil {
		logg.Error(ctx, "shutdown finished with errors", closeErr)
		os.Exit(1)
	}
	logg.Info(ctx, "api server stopped")
}
