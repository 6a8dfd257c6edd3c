package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// Invoke performs a unary call of method with an opaque payload and returns
// the raw response payload. Errors are gRPC status errors; use [ReasonOf] to
// read the ErrorInfo reason.
func Invoke(ctx context.Context, conn grpc.ClientConnInterface, method string, payload []byte, opts ...grpc.CallOption) ([]byte, error) {
	var reply Frame
	opts = append([]grpc.CallOption{grpc.ForceCodec(Codec{})}, opts...)
	if err := conn.Invoke(ctx, method, &Frame{Payload: payload}, &reply, opts...); err != nil {
		return nil, err
	}
	return reply.Payload, nil
}
