package grpc

import (
	"context"
	"time"

	"github.com/MKhiriev/go-media-service/internal/logger"
	"github.com/MKhiriev/go-media-service/internal/rpc"
)

func (h *Handler) withLogging(next Invoker) Invoker {
	return func(ctx context.Context, call Call) ([]byte, error) {
		log := logger.FromContext(ctx)

		start := time.Now()
		resp, err := next(ctx, call)
		duration := time.Since(start)

		if err != nil {
			log.Warn().
				Err(err).
				Str("code", rpc.ToStatus(err).Code().String()).
				Int("request_size", len(call.Payload)).
				Dur("duration", duration).
				Msg("call failed")
			return nil, err
		}

		log.Info().
			Str("code", "OK").
			Int("request_size", len(call.Payload)).
			Int("response_size", len(resp)).
			Dur("duration", duration).
			Send()

		return resp, nil
	}
}
