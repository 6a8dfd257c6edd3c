package grpc

import (
	"context"

	"github.com/MKhiriev/go-media-service/internal/utils"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// requestIDHeader is the metadata key carrying the request id in both
// directions.
const requestIDHeader = "x-request-id"

// withRequestID reuses the caller's request id or generates one, echoes it
// in the response header and returns a context carrying the id and a child
// logger tagged with it.
func (h *Handler) withRequestID(stream grpc.ServerStream, method string) context.Context {
	ctx := stream.Context()

	var requestID string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(requestIDHeader); len(values) > 0 && values[0] != "" {
			requestID = values[0]
		}
	}
	if requestID == "" {
		requestID = h.requestIDs.Generate()
	}

	if err := stream.SetHeader(metadata.Pairs(requestIDHeader, requestID)); err != nil {
		h.logger.Debug().Err(err).Msg("failed to set request id header")
	}

	l := h.logger.GetChildLogger()
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("request_id", requestID).Str("method", method)
	})

	ctx = utils.WithRequestID(ctx, requestID)
	return l.WithContext(ctx)
}
