// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// Default values applied before any other source.
const (
	DefaultGRPCAddress     = "0.0.0.0:50051"
	DefaultServiceName     = "sonet.media.v1.MediaService"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultLogLevel        = "info"
)

// StructuredConfig is the top-level configuration container for the
// media-service node. It aggregates all sub-configurations and is populated
// by merging defaults, environment variables, command-line flags and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Server holds listen addresses and timeout settings for the gRPC
	// runtime and the ops HTTP endpoint.
	Server Server `envPrefix:"SERVER_"`

	// Log holds logging settings.
	Log Log `envPrefix:"LOG_"`

	// Telemetry holds tracing exporter settings.
	Telemetry Telemetry `envPrefix:"TELEMETRY_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// GRPCAddress is the TCP address the RPC listener binds,
	// in "host:port" format (e.g. "0.0.0.0:50051").
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// OpsAddress is the TCP address of the HTTP endpoint serving /metrics
	// and /healthz. Empty disables it.
	// Env: SERVER_OPS_ADDRESS
	OpsAddress string `env:"OPS_ADDRESS"`

	// ServiceName qualifies bare method names passed to the handler
	// registry (e.g. "Ping" → "/sonet.media.v1.MediaService/Ping").
	// Env: SERVER_SERVICE_NAME
	ServiceName string `env:"SERVICE_NAME"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// call before its context is cancelled. Zero means no limit.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout is the grace period in-flight calls get to drain after
	// a shutdown signal before they are aborted.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Log holds logging settings.
type Log struct {
	// Level is a zerolog level name (trace, debug, info, warn, error).
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`
}

// Telemetry holds OpenTelemetry settings. Tracing is off when
// OTLPEndpoint is empty.
type Telemetry struct {
	// OTLPEndpoint is the OTLP/HTTP traces endpoint URL
	// (e.g. "http://otel-collector:4318/v1/traces").
	// Env: TELEMETRY_OTLP_ENDPOINT
	OTLPEndpoint string `env:"OTLP_ENDPOINT"`
}

// defaults returns the configuration used when no source sets a field.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		Server: Server{
			GRPCAddress:     DefaultGRPCAddress,
			ServiceName:     DefaultServiceName,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Log: Log{
			Level: DefaultLogLevel,
		},
	}
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  0. Built-in defaults
//  1. JSON file (path taken from env or flags)
//  2. Environment variables
//  3. Command-line flags (os.Args)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}
