package http

import (
	"github.com/MKhiriev/go-media-service/internal/lifecycle"
	"github.com/MKhiriev/go-media-service/internal/logger"
	"github.com/MKhiriev/go-media-service/internal/utils"
	"github.com/MKhiriev/go-media-service/models"
	"github.com/prometheus/client_golang/prometheus"
)

type Handler struct {
	// gatherer is scraped by /metrics; nil disables the route.
	gatherer prometheus.Gatherer
	state    *lifecycle.Tracker
	build    models.AppBuildInfo

	requestIDs *utils.UUIDGenerator
	logger     *logger.Logger
}

func NewHandler(gatherer prometheus.Gatherer, state *lifecycle.Tracker, build models.AppBuildInfo, logger *logger.Logger) *Handler {
	logger.Info().Msg("ops http handler created")
	return &Handler{
		gatherer:   gatherer,
		state:      state,
		build:      build,
		requestIDs: utils.NewUUIDGenerator(),
		logger:     logger,
	}
}
