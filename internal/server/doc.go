// Package server wires and runs the node's transport servers.
//
// A [Runtime] binds the gRPC listener and the optional ops HTTP listener,
// serves until its context is cancelled, a termination signal arrives or a
// transport fails, then drains in-flight calls within the configured grace
// period. Listeners are released on every exit path.
package server
