// Package http implements the node's ops HTTP endpoint.
//
// It serves /metrics for Prometheus scrapes and /healthz with the runtime
// lifecycle state. Every request gets a request id and an access log line.
package http
