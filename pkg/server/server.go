package server

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	handlers "github.com/de-tools/dealer-planner/pkg/handlers/planner"
	"github.com/de-tools/dealer-planner/pkg/metrics"
	"github.com/de-tools/dealer-planner/pkg/models/api"
	plannermiddleware "github.com/de-tools/dealer-planner/pkg/server/middleware"
	"github.com/de-tools/dealer-planner/pkg/services/planner"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router  *chi.Mux
	logger  *zerolog.Logger
	server  *http.Server
	timeout time.Duration
}

type Dependencies struct {
	Planner  planner.Service
	Metrics  *metrics.PlannerMetrics
	Registry *prometheus.Registry
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	router := ConfigureRouter(logger, config)

	return &WebAPI{
		router:  router,
		logger:  &logger,
		timeout: timeout,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
	}
}

// ConfigureRouter wires the planning endpoints, the health probe and the
// metrics endpoint onto a chi router.
func ConfigureRouter(logger zerolog.Logger, config Config) *chi.Mux {
	planHandler := handlers.NewHandler(config.Dependencies.Planner, config.Dependencies.Metrics)

	router := chi.NewRouter()

	router.Use(plannermiddleware.RequestID)
	router.Use(plannermiddleware.Logger(&logger))
	router.Use(plannermiddleware.Metrics(config.Dependencies.Metrics))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/plan/baseline", planHandler.GetBaseline)
		r.Post("/plan/scenario", planHandler.ApplyScenario)
		r.Post("/plan/target", planHandler.SolveTarget)
		r.Post("/plan/actions", planHandler.PlanActions)
		r.Get("/kpis", planHandler.ListKPIs)
	})

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(api.SuccessEnvelope{Data: map[string]string{"status": "ok"}})
	})

	if config.Dependencies.Registry != nil {
		router.Get("/metrics", promhttp.HandlerFor(
			config.Dependencies.Registry,
			promhttp.HandlerOpts{},
		).ServeHTTP)
	}

	return router
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
