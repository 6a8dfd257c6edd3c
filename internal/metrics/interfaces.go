// Package metrics records per-call RPC metrics.
//
// The [Metrics] interface is optional everywhere it is accepted: passing nil
// disables collection.
package metrics

import "time"

//go:generate mockgen -source=interfaces.go -destination=../mock/metrics_mock.go -package=mock

// Metrics observes RPC calls served by the node.
type Metrics interface {
	// CallStarted increments the in-flight gauge for method.
	CallStarted(method string)

	// CallFinished decrements the in-flight gauge and records the outcome.
	//
	// Parameters:
	//   - method: full method id (e.g. "/sonet.media.v1.MediaService/Ping")
	//   - code: gRPC status code name (e.g. "OK", "Internal")
	//   - duration: time spent in the handler chain
	CallFinished(method string, code string, duration time.Duration)

	// MethodNotFound counts calls rejected because no handler is registered.
	// The method is not used as a label to keep cardinality bounded.
	MethodNotFound()
}
