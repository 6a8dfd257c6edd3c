// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the media-service node.
//
// [ServerAdapter] performs opaque-payload unary calls against a running node
// and is what the command-line client uses. Errors are gRPC status errors;
// [rpc.ReasonOf] reads the ErrorInfo reason (e.g. METHOD_NOT_FOUND).
package adapter

import "context"

// ServerAdapter calls methods on a remote node.
type ServerAdapter interface {
	// Call invokes the fully qualified method with payload and returns the
	// response payload.
	Call(ctx context.Context, method string, payload []byte) ([]byte, error)

	// Close releases the underlying connection.
	Close() error
}
