package grpc

import (
	"context"
)

// withTimeout bounds every call by the configured request timeout. The
// caller's own deadline still applies when it is shorter.
func (h *Handler) withTimeout(next Invoker) Invoker {
	if h.requestTimeout <= 0 {
		return next
	}

	return func(ctx context.Context, call Call) ([]byte, error) {
		ctx, cancel := context.WithTimeout(ctx, h.requestTimeout)
		defer cancel()

		return next(ctx, call)
	}
}
