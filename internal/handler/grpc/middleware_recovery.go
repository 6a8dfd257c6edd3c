package grpc

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/MKhiriev/go-media-service/internal/logger"
	"github.com/MKhiriev/go-media-service/internal/rpc"
	"google.golang.org/grpc/codes"
)

// withRecovery turns a handler panic into an Internal error for that call
// only.
func (h *Handler) withRecovery(next Invoker) Invoker {
	return func(ctx context.Context, call Call) (resp []byte, err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.FromContext(ctx).Error().
					Interface("panic", r).
					Bytes("stack", debug.Stack()).
					Msg("handler panicked")

				resp = nil
				err = rpc.Wrap(codes.Internal, rpc.ReasonHandlerPanicked, "internal error", fmt.Errorf("panic: %v", r))
			}
		}()

		return next(ctx, call)
	}
}
