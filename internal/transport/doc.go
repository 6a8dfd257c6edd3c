// Package transport resolves listen addresses and owns the TCP listeners the
// node serves on.
//
// [Resolve] turns a textual host:port into a validated [ListenAddress], and
// [Bind] opens a passive socket on it. Every failure is reported as one of the
// sentinel errors in errors.go so that the process entry point can map it to
// a distinct exit code.
package transport
