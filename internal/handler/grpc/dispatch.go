package grpc

import (
	"errors"
	"io"

	"github.com/MKhiriev/go-media-service/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
)

// Dispatch serves every call the gRPC server has no registered service for.
// It is installed with grpc.UnknownServiceHandler.
//
// Unknown methods are rejected with a METHOD_NOT_FOUND status before the
// request payload is read. Known methods receive exactly one request frame
// and answer with exactly one response frame.
func (h *Handler) Dispatch(_ any, stream grpc.ServerStream) error {
	method, ok := grpc.MethodFromServerStream(stream)
	if !ok {
		return rpc.NewError(codes.Internal, rpc.ReasonHandlerFailed, "method missing from stream").GRPCStatus().Err()
	}

	handler, ok := h.handlers.Lookup(method)
	if !ok {
		h.logger.Debug().Str("method", method).Msg("method not found")
		if h.metrics != nil {
			h.metrics.MethodNotFound()
		}
		return rpc.MethodNotFound(method).GRPCStatus().Err()
	}

	var req rpc.Frame
	if err := stream.RecvMsg(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return rpc.NewError(codes.InvalidArgument, rpc.ReasonPayloadMissing, "request payload missing").GRPCStatus().Err()
		}
		return err
	}

	ctx := h.withRequestID(stream, method)

	resp, err := h.invoke(ctx, Call{
		Method:  method,
		Payload: req.Payload,
		Handler: handler,
	})
	if err != nil {
		return rpc.ToStatus(err).Err()
	}

	return stream.SendMsg(&rpc.Frame{Payload: resp})
}
