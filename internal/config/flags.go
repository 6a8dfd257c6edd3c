package config

import (
	"errors"
	"flag"
	"io"
	"net"
	"strconv"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
	set  bool
}

// ParseFlags parses configuration flags from args.
//
// Flags:
//
//	-a / -grpc-address gRPC listen address in format [host]:[port]
//	-ops-address       ops HTTP address in format [host]:[port]
//	-service-name      default service for bare method names
//	-request-timeout   per-call timeout (e.g., "30s", "1m")
//	-shutdown-timeout  shutdown grace period (e.g., "10s")
//	-log-level         zerolog level name
//	-otlp-endpoint     OTLP/HTTP traces endpoint URL
//	-c/-config         json file path with configs
func ParseFlags(args []string) (*StructuredConfig, error) {
	var grpcAddress, opsAddress NetAddress
	var serviceName string
	var requestTimeout, shutdownTimeout time.Duration
	var logLevel string
	var otlpEndpoint string
	var jsonConfigPath string

	fs := flag.NewFlagSet("media-service", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&grpcAddress, "a", "Net gRPC address host:port")
	fs.Var(&grpcAddress, "grpc-address", "Net gRPC address host:port (alias)")
	fs.Var(&opsAddress, "ops-address", "Net ops HTTP address host:port")
	fs.StringVar(&serviceName, "service-name", "", "Default service for bare method names")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&shutdownTimeout, "shutdown-timeout", 0, "Shutdown grace period (e.g., 10s)")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&otlpEndpoint, "otlp-endpoint", "", "OTLP/HTTP traces endpoint URL")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		Server: Server{
			GRPCAddress:     grpcAddress.String(),
			OpsAddress:      opsAddress.String(),
			ServiceName:     serviceName,
			RequestTimeout:  requestTimeout,
			ShutdownTimeout: shutdownTimeout,
		},
		Log: Log{
			Level: logLevel,
		},
		Telemetry: Telemetry{
			OTLPEndpoint: otlpEndpoint,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// An address that was never set returns the empty string.
func (a *NetAddress) String() string {
	if !a.set {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses the input string of form host:port and populates the NetAddress.
// IPv6 hosts must be bracketed. Port 0 requests an ephemeral port.
func (a *NetAddress) Set(s string) error {
	host, portText, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portText)
	if err != nil {
		return err
	}

	if port < 0 || port > 65535 {
		return errors.New("port number must be in [0, 65535]")
	}

	a.Host = host
	a.Port = port
	a.set = true
	return nil
}
