package grpc

import (
	"context"

	"github.com/MKhiriev/go-media-service/internal/registry"
)

// Call is one inbound RPC after routing.
type Call struct {
	// Method is the full method id, e.g. "/sonet.media.v1.MediaService/Ping".
	Method string

	// Payload is the raw request payload.
	Payload []byte

	// Handler is the registered handler for Method.
	Handler registry.Handler
}

// Invoker runs a call and returns the response payload.
type Invoker func(ctx context.Context, call Call) ([]byte, error)

// Middleware wraps an Invoker.
type Middleware func(next Invoker) Invoker

// chain builds final wrapped by mws. The first middleware is the outermost.
func chain(final Invoker, mws ...Middleware) Invoker {
	for i := len(mws) - 1; i >= 0; i-- {
		final = mws[i](final)
	}
	return final
}

func invokeHandler(ctx context.Context, call Call) ([]byte, error) {
	return call.Handler(ctx, call.Payload)
}
