package handler

import (
	"github.com/MKhiriev/go-media-service/internal/config"
	"github.com/MKhiriev/go-media-service/internal/handler/grpc"
	"github.com/MKhiriev/go-media-service/internal/handler/http"
	"github.com/MKhiriev/go-media-service/internal/lifecycle"
	"github.com/MKhiriev/go-media-service/internal/logger"
	"github.com/MKhiriev/go-media-service/internal/metrics"
	"github.com/MKhiriev/go-media-service/internal/registry"
	"github.com/MKhiriev/go-media-service/models"
	"github.com/prometheus/client_golang/prometheus"
)

// Handlers groups the transport handlers the server runs. HTTP is nil when
// the ops endpoint is disabled.
type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

// Deps are the shared objects handlers are built from. Metrics and Gatherer
// may be nil.
type Deps struct {
	Registry *registry.Registry
	State    *lifecycle.Tracker
	Metrics  metrics.Metrics
	Gatherer prometheus.Gatherer

	// BuildInfo is reported by the ops endpoint.
	BuildInfo models.AppBuildInfo
}

func NewHandlers(deps Deps, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if deps.Registry == nil {
		return nil, errNoRegistry
	}
	if deps.State == nil {
		return nil, errNoStateTracker
	}

	handlers := &Handlers{
		GRPC: grpc.NewHandler(deps.Registry, cfg, deps.Metrics, logger),
	}

	if cfg.OpsAddress != "" {
		handlers.HTTP = http.NewHandler(deps.Gatherer, deps.State, deps.BuildInfo, logger)
	}

	return handlers, nil
}
