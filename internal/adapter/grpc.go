package adapter

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-media-service/internal/config"
	"github.com/MKhiriev/go-media-service/internal/logger"
	"github.com/MKhiriev/go-media-service/internal/rpc"
	"github.com/MKhiriev/go-media-service/internal/utils"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const requestIDHeader = "x-request-id"

type grpcServerAdapter struct {
	conn       *grpc.ClientConn
	requestIDs *utils.UUIDGenerator

	logger *logger.Logger
}

// NewGRPCServerAdapter creates a plaintext gRPC [ServerAdapter] for
// cfg.Address. No connection is made until the first call.
func NewGRPCServerAdapter(cfg config.Client, logger *logger.Logger) (ServerAdapter, error) {
	return newGRPCServerAdapter(cfg.Address, logger)
}

func newGRPCServerAdapter(target string, logger *logger.Logger, opts ...grpc.DialOption) (*grpcServerAdapter, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}, opts...)

	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter grpc address %q: %w", target, err)
	}

	return &grpcServerAdapter{
		conn:       conn,
		requestIDs: utils.NewUUIDGenerator(),
		logger:     logger,
	}, nil
}

// Call implements [ServerAdapter]. The request id is taken from ctx or
// generated and sent as x-request-id metadata.
func (g *grpcServerAdapter) Call(ctx context.Context, method string, payload []byte) ([]byte, error) {
	requestID, ok := utils.GetRequestIDFromContext(ctx)
	if !ok {
		requestID = g.requestIDs.Generate()
	}
	ctx = metadata.AppendToOutgoingContext(ctx, requestIDHeader, requestID)

	log := g.logger.With().
		Str("method", method).
		Str("request_id", requestID).
		Logger()

	var header metadata.MD
	resp, err := rpc.Invoke(ctx, g.conn, method, payload, grpc.Header(&header))
	if err != nil {
		log.Debug().
			Err(err).
			Str("code", status.Code(err).String()).
			Str("reason", rpc.ReasonOf(err)).
			Msg("call failed")
		return nil, err
	}

	if ids := header.Get(requestIDHeader); len(ids) > 0 && ids[0] != requestID {
		log.Warn().Str("server_request_id", ids[0]).Msg("server replied with a different request id")
	}
	log.Debug().Int("bytes", len(resp)).Msg("call succeeded")

	return resp, nil
}

// Close implements [ServerAdapter].
func (g *grpcServerAdapter) Close() error {
	return g.conn.Close()
}
