package grpc

import (
	"sync"
	"time"

	"github.com/MKhiriev/go-media-service/internal/config"
	"github.com/MKhiriev/go-media-service/internal/logger"
	"github.com/MKhiriev/go-media-service/internal/metrics"
	"github.com/MKhiriev/go-media-service/internal/registry"
	"github.com/MKhiriev/go-media-service/internal/utils"
)

// Handler is the root gRPC transport handler.
//
// It owns the node's handler registry and dispatches every inbound call
// through [Handler.Dispatch], which the server installs as the gRPC
// unknown-service handler. A handler instance is created once at startup and
// shared by the gRPC server.
type Handler struct {
	// registry collects handlers until Seal is called.
	registry *registry.Registry

	// handlers is the sealed snapshot read by Dispatch.
	handlers registry.HandlerSet
	sealOnce sync.Once

	// invoke is the middleware chain ending in the registered handler.
	invoke Invoker

	metrics        metrics.Metrics
	requestTimeout time.Duration
	requestIDs     *utils.UUIDGenerator

	// logger is used for request-scoped and diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler] serving the methods of reg.
//
// Parameters:
//   - reg: handler registry, sealed when the server starts.
//   - cfg: server settings; only RequestTimeout is read here.
//   - m: optional call metrics; nil disables collection.
//   - logger: structured logger used for transport diagnostics.
func NewHandler(reg *registry.Registry, cfg config.Server, m metrics.Metrics, logger *logger.Logger) *Handler {
	h := &Handler{
		registry:       reg,
		metrics:        m,
		requestTimeout: cfg.RequestTimeout,
		requestIDs:     utils.NewUUIDGenerator(),
		logger:         logger,
	}
	h.invoke = chain(invokeHandler,
		h.withLogging,
		h.withMetrics,
		h.withTimeout,
		h.withRecovery,
	)

	logger.Debug().Str("service", reg.Service()).Msg("gRPC handler created")
	return h
}

// Registry returns the registry the handler dispatches from.
func (h *Handler) Registry() *registry.Registry {
	return h.registry
}

// Seal closes the registry and fixes the set of served methods. Only the
// first call has an effect.
func (h *Handler) Seal() registry.HandlerSet {
	h.sealOnce.Do(func() {
		h.handlers = h.registry.Seal()
		h.logger.Info().
			Int("methods", h.handlers.Len()).
			Strs("method_ids", h.handlers.Methods()).
			Msg("handler registry sealed")
	})
	return h.handlers
}
