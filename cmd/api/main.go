package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elcoders/payment-portal/internal/api"
	"github.com/elcoders/payment-portal/internal/api/handlers"
	"github.com/elcoders/payment-portal/internal/auth"
	"github.com/elcoders/payment-portal/internal/config"
	"github.com/elcoders/payment-portal/internal/db"
	"github.com/elcoders/payment-portal/internal/flow"
	"github.com/elcoders/payment-portal/internal/logger"
	"github.com/elcoders/payment-portal/internal/metrics"
	"github.com/elcoders/payment-portal/internal/middleware"
	"github.com/elcoders/payment-portal/internal/repository/localstore"
	"github.com/elcoders/payment-portal/internal/repository/postgres"
	"github.com/elcoders/payment-portal/internal/services"
	"github.com/elcoders/payment-portal/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := localstore.Open(cfg.DataDir, log)
	if err != nil {
		log.Error("open local store", "err", err)
		os.Exit(1)
	}
	repos := localstore.NewRepositories(store)

	// The record set can optionally live in Postgres; the rest of the
	// persisted state stays on the local store either way.
	if cfg.StoreDriver == "postgres" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("db connect", "err", err)
			os.Exit(1)
		}
		defer pool.Close()
		if os.Getenv("APP_MIGRATE") == "true" {
			if err := db.RunMigrations(ctx, pool); err != nil {
				log.Error("migrations", "err", err)
				os.Exit(1)
			}
		}
		repos.Payments = postgres.NewPayments(pool)
	}

	wp := worker.NewPool(4)
	defer wp.Stop()

	delays := services.Delays{}
	rateDelay := time.Duration(0)
	if cfg.SimLatency {
		delays = services.DefaultDelays()
		rateDelay = time.Second
	}

	paymentSvc := services.NewPaymentService(repos.Payments, delays, log)
	sessionSvc := services.NewSessionService(repos.Sessions, log)
	reportSvc := services.NewReportService(repos.ErrorReports, log)
	rateSvc := services.NewRateService(rateDelay, log)
	queueSvc := services.NewOfflineQueue(repos.OfflineActions, paymentSvc, reportSvc, wp, log)

	checkout := flow.NewCheckout(flow.Deps{
		Payments:     paymentSvc,
		Sessions:     sessionSvc,
		Queue:        queueSvc,
		Rates:        rateSvc,
		Log:          log,
		TickInterval: time.Second,
	})

	keyHash, err := auth.HashKey(cfg.AdminKey)
	if err != nil {
		log.Error("hash admin key", "err", err)
		os.Exit(1)
	}
	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTSecret+"-refresh", 15*time.Minute, 24*time.Hour)

	metrics.Init()
	r := api.NewRouter(api.RouterDeps{
		Cfg:      cfg,
		Payments: handlers.NewPaymentsHandler(paymentSvc, queueSvc),
		Checkout: handlers.NewCheckoutHandler(checkout, sessionSvc),
		Session:  handlers.NewSessionHandler(sessionSvc),
		Offline:  handlers.NewOfflineHandler(queueSvc),
		Rates:    handlers.NewRatesHandler(rateSvc),
		Receipts: handlers.NewReceiptsHandler(paymentSvc),
		Accounts: handlers.NewAccountsHandler(),
		Reports:  handlers.NewReportsHandler(reportSvc),
		Admin:    handlers.NewAdminHandler(tm, keyHash, paymentSvc),
		Auth:     middleware.NewAdminAuth(tm),
	})

	go rateSvc.Run(ctx)
	go queueSvc.Run(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "driver", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
