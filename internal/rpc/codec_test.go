package rpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/proto"
)

// TestCodec_FramePassThrough verifies that frame payloads go over the wire
// byte for byte.
func TestCodec_FramePassThrough(t *testing.T) {
	payload := []byte{0x00, 0xff, 'p', 'i', 'n', 'g'}

	data, err := Codec{}.Marshal(&Frame{Payload: payload})
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	var out Frame
	require.NoError(t, Codec{}.Unmarshal(data, &out))
	assert.Equal(t, payload, out.Payload)
}

// TestCodec_UnmarshalCopies verifies that the frame does not alias the
// receive buffer.
func TestCodec_UnmarshalCopies(t *testing.T) {
	buf := []byte("hello")

	var out Frame
	require.NoError(t, Codec{}.Unmarshal(buf, &out))
	buf[0] = 'j'

	assert.Equal(t, []byte("hello"), out.Payload)
}

// TestCodec_ProtoFallback verifies that proto messages are still encoded
// with protobuf.
func TestCodec_ProtoFallback(t *testing.T) {
	in := &grpc_health_v1.HealthCheckResponse{Status: grpc_health_v1.HealthCheckResponse_SERVING}

	data, err := Codec{}.Marshal(in)
	require.NoError(t, err)

	want, err := proto.Marshal(in)
	require.NoError(t, err)
	assert.Equal(t, want, data)

	out := &grpc_health_v1.HealthCheckResponse{}
	require.NoError(t, Codec{}.Unmarshal(data, out))
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, out.GetStatus())
}

// TestCodec_Unsupported verifies that arbitrary values are rejected.
func TestCodec_Unsupported(t *testing.T) {
	_, err := Codec{}.Marshal("plain string")
	require.ErrorIs(t, err, ErrUnsupportedMessage)

	var s string
	require.ErrorIs(t, Codec{}.Unmarshal([]byte("x"), &s), ErrUnsupportedMessage)
}

// TestCodec_Name verifies the codec answers to the proto content-subtype.
func TestCodec_Name(t *testing.T) {
	assert.Equal(t, "proto", Codec{}.Name())
}
