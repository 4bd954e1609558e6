package web

import (
	"log/slog"
	"net/http"
	"time"

	"tablebook/internal/config"
	"tablebook/internal/domain/customer"
	"tablebook/internal/domain/reservation"
	"tablebook/internal/pkg/apperrors"
	"tablebook/internal/web/handler"
	mw "tablebook/internal/web/middleware"
	"tablebook/internal/web/render"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter(customerService customer.Service, reservationService reservation.Service, renderer *render.Renderer, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(router, cfg, logger)
	setupMetricsEndpoint(router, cfg, logger)
	setupCustomerRoutes(router, customerService, reservationService, renderer, logger)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		renderer.RenderError(w, apperrors.ErrRouteNotFound)
	})

	return router
}

func setupMiddleware(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(mw.NewRateLimiterMiddleware(cfg.Server.RateLimit, logger).Middleware)
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupCustomerRoutes(router *chi.Mux, customerService customer.Service, reservationService reservation.Service, renderer *render.Renderer, logger *slog.Logger) {
	customerHandler := handler.NewCustomerHandler(customerService, reservationService, renderer, logger)
	reservationHandler := handler.NewReservationHandler(reservationService, renderer, logger)

	router.Get("/", customerHandler.List)

	router.Route("/customers", func(r chi.Router) {
		r.Get("/", customerHandler.List)
		r.Get("/search", customerHandler.Search)
		r.Get("/vip", customerHandler.VIPs)
		r.Get("/add/", customerHandler.NewForm)
		r.Post("/add/", customerHandler.Create)
		r.Route("/{customerID}", func(r chi.Router) {
			r.Get("/", customerHandler.Detail)
			r.Get("/edit/", customerHandler.EditForm)
			r.Post("/edit/", customerHandler.Update)
			r.Post("/add-reservation/", reservationHandler.Create)
		})
	})
}
