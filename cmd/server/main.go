package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/MKhiriev/go-media-service/internal/app"
	"github.com/MKhiriev/go-media-service/internal/config"
	"github.com/MKhiriev/go-media-service/internal/handler"
	"github.com/MKhiriev/go-media-service/internal/lifecycle"
	"github.com/MKhiriev/go-media-service/internal/logger"
	"github.com/MKhiriev/go-media-service/internal/metrics"
	"github.com/MKhiriev/go-media-service/internal/registry"
	"github.com/MKhiriev/go-media-service/internal/server"
	"github.com/MKhiriev/go-media-service/internal/telemetry"
	"github.com/MKhiriev/go-media-service/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const telemetryFlushTimeout = 5 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	log := logger.NewLogger("media-service")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Error().Err(err).Msg(app.MsgConfigLoadFailed)
		return app.ExitCode(err)
	}

	if err := logger.SetLevel(cfg.Log.Level); err != nil {
		log.Error().Err(err).Msg(app.MsgInvalidLogLevel)
		return app.ExitConfig
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry, cfg.Server.ServiceName, buildInfo.BuildVersion())
	if err != nil {
		log.Warn().Err(err).Msg(app.MsgTelemetrySetupFailed)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), telemetryFlushTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn().Err(err).Msg("error flushing telemetry")
		}
	}()

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// the node boots with an empty handler set
	reg := registry.NewRegistry(cfg.Server.ServiceName)
	state := lifecycle.NewTracker()

	handlers, err := handler.NewHandlers(handler.Deps{
		Registry: reg,
		State:    state,
		Metrics:  metrics.NewPrometheusMetrics(promRegistry),
		Gatherer: promRegistry,

		BuildInfo: buildInfo,
	}, cfg.Server, log)
	if err != nil {
		log.Error().Err(err).Msg(app.MsgHandlersFailed)
		return app.ExitCode(err)
	}

	srv, err := server.NewServer(handlers, cfg.Server, state, log)
	if err != nil {
		log.Error().Err(err).Msg(app.MsgServerCreateFailed)
		return app.ExitCode(err)
	}

	if err := srv.RunServer(ctx); err != nil {
		log.Error().Err(err).Int("exit_code", app.ExitCode(err)).Msg(app.MsgServerFailed)
		return app.ExitCode(err)
	}

	return app.ExitOK
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
