package main

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"storefront/cmd/web/handlers"
	"storefront/cmd/web/validator"
	"storefront/internal/audit"
	"storefront/internal/catalog"
	"storefront/internal/checkout"
	"storefront/internal/config"
	"storefront/internal/events"
	"storefront/internal/health"
	"storefront/internal/metrics"
	"storefront/kit/broker"
	"storefront/kit/gateway"
	"storefront/kit/idempotency"
	"storefront/kit/observability"
)

func main() {
	logger := observability.NewLogger()
	metricsKit := observability.NewMetrics()

	cfg := config.Load()
	report := cfg.Validate()
	for _, e := range report.Errors {
		logger.Error("config validation", "error", e)
	}
	for _, w := range report.Warnings {
		logger.Warn("config validation", "warning", w)
	}
	logger.Info("configured providers", "providers", strings.Join(cfg.ConfiguredProviders(), ","))

	bus := broker.New()
	auditSvc := audit.NewService(logger)
	bus.Subscribe((events.ChargeSucceeded{}).Name(), auditSvc.HandleAny)
	bus.Subscribe((events.ChargeFailed{}).Name(), auditSvc.HandleAny)

	adapters := gateway.NewRegistry()
	for _, p := range catalog.Processors() {
		fake := gateway.NewFakeAdapter()
		fake.Redirect = p.Flow == catalog.FlowRedirect
		adapters.Register(p.ID, gateway.NewBreakerAdapter(p.ID, fake))
	}

	base := cfg.WebhookBaseURL
	if base == "" {
		base = cfg.BaseAPIURL
	}
	simulator := checkout.NewSimulator(cfg.SimulationSuccessRate, cfg.SimulatedDelay, nil)
	checkoutSvc := checkout.NewService(cfg, adapters, simulator, bus, metricsKit, checkout.Options{
		Simulate:   cfg.SimulationEnabled,
		SuccessURL: base + cfg.SuccessPath,
		CancelURL:  base + cfg.CancelPath,
	})

	var idemStore handlers.IdempotencyContract
	checks := map[string]health.CheckFunc{
		"config": func(ctx context.Context) error {
			if v := cfg.Validate(); !v.Valid {
				return errors.New(strings.Join(v.Errors, "; "))
			}
			return nil
		},
	}
	if cfg.RedisAddr != "" {
		redisStore := idempotency.NewRedisStore(cfg.RedisAddr, "", 0)
		checks["redis"] = redisStore.Ping
		idemStore = redisStore
	} else {
		memStore := idempotency.NewMemoryStore(24 * time.Hour)
		memStore.StartSweeper(10 * time.Minute)
		defer memStore.Close()
		idemStore = memStore
	}
	healthSvc := health.NewService(2*time.Second, checks)

	go func() {
		t := time.NewTicker(10 * time.Second)
		defer t.Stop()
		for range t.C {
			logger.Info(
				"metrics snapshot",
				"charges_attempted", metricsKit.ChargesAttempted.Load(),
				"charges_succeeded", metricsKit.ChargesSucceeded.Load(),
				"charges_failed", metricsKit.ChargesFailed.Load(),
				"charges_simulated", metricsKit.ChargesSimulated.Load(),
				"free_tier_grants", metricsKit.FreeTierGrants.Load(),
			)
		}
	}()

	jsonV := validator.NewJSON()
	paymentH := handlers.NewPayment(jsonV, checkoutSvc, idemStore, metricsKit)
	providersH := handlers.NewProviders(cfg)
	healthH := handlers.NewHealth(healthSvc)
	metricsH := handlers.NewMetrics(metrics.NewService(metricsKit))

	mux := http.NewServeMux()
	mux.HandleFunc("POST /payments", paymentH.Create)
	mux.HandleFunc("GET /providers", providersH.List)
	mux.HandleFunc("GET /health", healthH.Get)
	mux.HandleFunc("GET /metrics", metricsH.Get)

	srv := &http.Server{Addr: ":8080", Handler: mux, ReadHeaderTimeout: 2 * time.Second}

	logger.Info("web server started", "addr", srv.Addr, "simulation", cfg.SimulationEnabled)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("web server error", "error", err.Error())
	}
}
