package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-media-service/internal/adapter"
	"github.com/MKhiriev/go-media-service/internal/app"
	"github.com/MKhiriev/go-media-service/internal/config"
	"github.com/MKhiriev/go-media-service/internal/logger"
	"github.com/MKhiriev/go-media-service/internal/rpc"
	"github.com/MKhiriev/go-media-service/models"
	"google.golang.org/grpc/status"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	os.Exit(run())
}

func run() int {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	log := logger.NewLogger("media-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Error().Err(err).Msg(app.MsgConfigLoadFailed)
		return app.ExitCode(err)
	}

	log.Debug().
		Str("version", buildInfo.BuildVersion()).
		Str("commit", buildInfo.BuildCommit()).
		Msg("media-client")

	serverAdapter, err := adapter.NewGRPCServerAdapter(*cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("create server adapter")
		return app.ExitConfig
	}
	defer serverAdapter.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	method := cfg.FullMethod()
	resp, err := serverAdapter.Call(ctx, method, []byte(cfg.Payload))
	if err != nil {
		log.Error().
			Err(err).
			Str("method", method).
			Str("code", status.Code(err).String()).
			Str("reason", rpc.ReasonOf(err)).
			Msg("call failed")
		return app.ExitUnexpected
	}

	fmt.Printf("%s\n", resp)
	return app.ExitOK
}
