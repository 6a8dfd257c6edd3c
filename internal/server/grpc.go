package server

import (
	"context"
	"errors"
	"fmt"

	myGRPC "github.com/MKhiriev/go-media-service/internal/handler/grpc"
	"github.com/MKhiriev/go-media-service/internal/lifecycle"
	"github.com/MKhiriev/go-media-service/internal/logger"
	"github.com/MKhiriev/go-media-service/internal/rpc"
	"github.com/MKhiriev/go-media-service/internal/transport"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type grpcServer struct {
	handler *myGRPC.Handler

	server   *grpc.Server
	health   *health.Server
	address  transport.ListenAddress
	listener *transport.BoundListener

	state  *lifecycle.Tracker
	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, address transport.ListenAddress, state *lifecycle.Tracker, logger *logger.Logger) *grpcServer {
	hs := health.NewServer()
	srv := grpc.NewServer(
		grpc.ForceServerCodec(rpc.Codec{}),
		grpc.UnknownServiceHandler(handler.Dispatch),
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
	)
	healthpb.RegisterHealthServer(srv, hs)

	g := &grpcServer{
		handler: handler,
		server:  srv,
		health:  hs,
		address: address,
		state:   state,
		logger:  logger,
	}
	g.setHealth(healthpb.HealthCheckResponse_NOT_SERVING)

	return g
}

func (g *grpcServer) bind(ctx context.Context) error {
	l, err := transport.Bind(ctx, g.address)
	if err != nil {
		return err
	}
	g.listener = l
	return nil
}

// serve blocks until the server is stopped. Stopping is not an error.
func (g *grpcServer) serve() error {
	lis := &acceptObserver{
		Listener: g.listener,
		onAccept: func() {
			if g.state.Advance(lifecycle.Serving) {
				g.logger.Info().Msg("first connection accepted, serving")
			}
		},
	}

	g.setHealth(healthpb.HealthCheckResponse_SERVING)

	if err := g.server.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("%w: serve gRPC on %s: %w", transport.ErrTransport, g.listener.Address(), err)
	}
	return nil
}

// shutdown stops accepting calls and waits for in-flight ones until ctx
// expires, then aborts the rest.
func (g *grpcServer) shutdown(ctx context.Context) {
	g.logger.Info().Msg("gRPC server Shutdown")
	g.health.Shutdown()

	stopped := make(chan struct{})
	go func() {
		g.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-ctx.Done():
		g.logger.Warn().Msg("shutdown grace period elapsed, aborting in-flight calls")
		g.server.Stop()
		<-stopped
	}
}

func (g *grpcServer) release() {
	if g.listener == nil || g.listener.Closed() {
		return
	}
	if err := g.listener.Close(); err != nil {
		g.logger.Debug().Err(err).Msg("gRPC listener close")
	}
}

func (g *grpcServer) setHealth(status healthpb.HealthCheckResponse_ServingStatus) {
	g.health.SetServingStatus("", status)
	g.health.SetServingStatus(g.handler.Registry().Service(), status)
}
