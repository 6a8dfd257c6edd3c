package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withRequestID, h.withLogging)

	router.Get("/healthz", h.healthz)

	if h.gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{
			ErrorLog:      promLogger{h.logger},
			ErrorHandling: promhttp.ContinueOnError,
		}))
	}

	return router
}
