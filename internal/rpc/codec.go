// Package rpc defines the node's wire envelope on top of gRPC: an opaque
// payload codec and the structured error returned to remote callers.
package rpc

import (
	"fmt"

	"google.golang.org/protobuf/proto"
)

// CodecName is the content-subtype the codec answers to. It stays "proto" so
// that stock gRPC clients and the health service keep working.
const CodecName = "proto"

// Frame carries an opaque request or response payload.
type Frame struct {
	Payload []byte
}

// Codec passes [Frame] payloads through untouched and falls back to protobuf
// for real proto messages, such as grpc.health.v1.
type Codec struct{}

// Marshal implements encoding.Codec.
func (Codec) Marshal(v any) ([]byte, error) {
	switch m := v.(type) {
	case *Frame:
		return m.Payload, nil
	case proto.Message:
		return proto.Marshal(m)
	default:
		return nil, fmt.Errorf("%w: marshal %T", ErrUnsupportedMessage, v)
	}
}

// Unmarshal implements encoding.Codec. The payload is copied because gRPC
// may reuse the receive buffer.
func (Codec) Unmarshal(data []byte, v any) error {
	switch m := v.(type) {
	case *Frame:
		m.Payload = append(m.Payload[:0], data...)
		return nil
	case proto.Message:
		return proto.Unmarshal(data, m)
	default:
		return fmt.Errorf("%w: unmarshal into %T", ErrUnsupportedMessage, v)
	}
}

// Name implements encoding.Codec.
func (Codec) Name() string {
	return CodecName
}
