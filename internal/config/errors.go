package config

import "errors"

// Errors returned by [GetStructuredConfig].
var (
	// ErrLoadConfig indicates one of the sources (env, flags, JSON file)
	// could not be read or parsed.
	ErrLoadConfig = errors.New("error occurred during building config")
	// ErrInvalidServerConfigs indicates invalid server settings
	// (for example, empty gRPC address or non-positive shutdown timeout).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidLogConfigs indicates an unknown log level.
	ErrInvalidLogConfigs = errors.New("invalid log configuration")
)
