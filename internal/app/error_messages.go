// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains process-level constants and helpers shared by the
// media-service entry point: log messages for startup failures and the
// mapping from startup errors to exit codes.
package app

const (
	// MsgConfigLoadFailed is logged when configuration cannot be loaded or
	// fails validation.
	MsgConfigLoadFailed = "error getting configs"

	// MsgInvalidLogLevel is logged when the configured log level is unknown.
	MsgInvalidLogLevel = "invalid log level"

	// MsgTelemetrySetupFailed is logged when the tracing exporter cannot be
	// created. The node keeps running without tracing.
	MsgTelemetrySetupFailed = "error setting up telemetry"

	// MsgHandlersFailed is logged when transport handlers cannot be built.
	MsgHandlersFailed = "error creating handlers"

	// MsgServerCreateFailed is logged when the runtime cannot be created,
	// typically because a listen address is malformed.
	MsgServerCreateFailed = "error creating server"

	// MsgServerFailed is logged when the runtime exits with an error.
	MsgServerFailed = "server exited with error"
)
