package server

import "context"

// Server defines the lifecycle contract of the node runtime.
//
// RunServer blocks until the runtime has stopped and returns nil after a
// graceful stop. Shutdown requests a stop and returns immediately.
type Server interface {
	// RunServer binds listeners and serves requests until ctx is cancelled,
	// a termination signal arrives, Shutdown is called or a transport fails.
	RunServer(ctx context.Context) error

	// Shutdown asks a running server to stop. It is safe to call any number
	// of times.
	Shutdown()
}
