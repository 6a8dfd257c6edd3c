package grpc

import (
	"context"
	"time"

	"github.com/MKhiriev/go-media-service/internal/rpc"
)

func (h *Handler) withMetrics(next Invoker) Invoker {
	if h.metrics == nil {
		return next
	}

	return func(ctx context.Context, call Call) ([]byte, error) {
		h.metrics.CallStarted(call.Method)
		start := time.Now()

		resp, err := next(ctx, call)

		h.metrics.CallFinished(call.Method, rpc.ToStatus(err).Code().String(), time.Since(start))
		return resp, err
	}
}
