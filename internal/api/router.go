package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/elcoders/payment-portal/internal/api/handlers"
	"github.com/elcoders/payment-portal/internal/config"
	"github.com/elcoders/payment-portal/internal/metrics"
	"github.com/elcoders/payment-portal/internal/middleware"
)

type RouterDeps struct {
	Cfg      config.Config
	Payments *handlers.PaymentsHandler
	Checkout *handlers.CheckoutHandler
	Session  *handlers.SessionHandler
	Offline  *handlers.OfflineHandler
	Rates    *handlers.RatesHandler
	Receipts *handlers.ReceiptsHandler
	Accounts *handlers.AccountsHandler
	Reports  *handlers.ReportsHandler
	Admin    *handlers.AdminHandler
	Auth     *middleware.AdminAuth
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(d.Cfg.RateRPS), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// ---------- admin ----------
		r.Post("/admin/login", d.Admin.Login)
		r.Post("/admin/refresh", d.Admin.Refresh)
		r.With(d.Auth.Require).Post("/admin/purge", d.Admin.Purge)

		// ---------- payments ----------
		r.Route("/payments", func(r chi.Router) {
			r.Get("/", d.Payments.List)
			r.Post("/", d.Payments.Create)
			r.Get("/{id}", d.Payments.Get)
			r.Post("/{id}/verify", d.Payments.Verify)
			r.Patch("/{id}", d.Payments.Update)
			r.Delete("/{id}", d.Payments.Delete)
			r.Get("/{id}/receipt", d.Receipts.Get)
			r.Get("/{id}/receipt/qr", d.Receipts.QR)
		})

		// ---------- checkout flow ----------
		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", d.Checkout.State)
			r.Put("/fields", d.Checkout.SetFields)
			r.Post("/start", d.Checkout.Start)
			r.Post("/verify", d.Checkout.Verify)
			r.Post("/cancel", d.Checkout.Cancel)
			r.Get("/recover", d.Checkout.Recover)
		})

		// ---------- session recovery ----------
		r.Get("/session", d.Session.Get)
		r.Delete("/session", d.Session.Clear)

		// ---------- connectivity & offline queue ----------
		r.Get("/connectivity", d.Offline.Status)
		r.Put("/connectivity", d.Offline.SetConnectivity)
		r.Get("/offline/actions", d.Offline.Actions)

		// ---------- exchange rate ----------
		r.Get("/rates/current", d.Rates.Current)
		r.Post("/rates/refresh", d.Rates.Refresh)

		// ---------- disclosed rails & presets ----------
		r.Get("/accounts/bank", d.Accounts.Bank)
		r.Get("/accounts/crypto", d.Accounts.Crypto)
		r.Get("/accounts/crypto/{network}/qr", d.Accounts.CryptoQR)
		r.Get("/amounts", d.Accounts.Amounts)

		// ---------- error reports ----------
		r.Post("/reports", d.Reports.Submit)
		r.With(d.Auth.Require).Get("/reports", d.Reports.List)
		r.With(d.Auth.Require).Delete("/reports", d.Reports.Clear)
	})

	return r
}
