package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"dario.cat/mergo"
)

// Client defaults.
const (
	DefaultClientAddress = "127.0.0.1:50051"
	DefaultClientTimeout = 5 * time.Second
)

// ErrInvalidClientConfigs indicates an empty target address or method.
var ErrInvalidClientConfigs = errors.New("invalid client configuration")

// Client configures the command-line client.
type Client struct {
	// Address is the server's gRPC address.
	// Env: CLIENT_ADDRESS
	Address string `env:"ADDRESS"`

	// Method is a full "/pkg.Service/Method" id or a bare method name
	// qualified with ServiceName.
	// Env: CLIENT_METHOD
	Method string `env:"METHOD"`

	// ServiceName qualifies a bare Method.
	// Env: CLIENT_SERVICE_NAME
	ServiceName string `env:"SERVICE_NAME"`

	// Timeout bounds the call.
	// Env: CLIENT_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`

	// Payload is sent as the request body. Flag only.
	Payload string
}

type clientEnv struct {
	Client Client `envPrefix:"CLIENT_"`
}

// FullMethod returns Method qualified with ServiceName when it is bare.
func (c *Client) FullMethod() string {
	if strings.HasPrefix(c.Method, "/") {
		return c.Method
	}
	return "/" + c.ServiceName + "/" + c.Method
}

// GetClientConfig merges defaults, CLIENT_* environment variables and args
// (last wins for non-zero fields) and validates the result.
func GetClientConfig() (*Client, error) {
	return buildClientConfig(os.Args[1:], nil)
}

func buildClientConfig(args []string, environ map[string]string) (*Client, error) {
	cfg := &Client{
		Address:     DefaultClientAddress,
		Method:      "Ping",
		ServiceName: DefaultServiceName,
		Timeout:     DefaultClientTimeout,
	}

	var fromEnv clientEnv
	if err := parseEnv(&fromEnv, environ); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	if err := mergo.Merge(cfg, fromEnv.Client, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	fromFlags, err := parseClientFlags(args)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	if err = mergo.Merge(cfg, fromFlags, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if cfg.Address == "" || cfg.Method == "" || cfg.Timeout <= 0 {
		return nil, ErrInvalidClientConfigs
	}
	if !strings.HasPrefix(cfg.Method, "/") && cfg.ServiceName == "" {
		return nil, fmt.Errorf("%w: bare method %q needs a service name", ErrInvalidClientConfigs, cfg.Method)
	}

	return cfg, nil
}

// parseClientFlags parses:
//
//	-a / -address  server address host:port
//	-m / -method   method to call
//	-service-name  service qualifying a bare method
//	-timeout       call timeout (e.g., "5s")
//	-d / -data     request payload
func parseClientFlags(args []string) (*Client, error) {
	var address NetAddress
	cfg := &Client{}

	fs := flag.NewFlagSet("media-client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&address, "a", "Server address host:port")
	fs.Var(&address, "address", "Server address host:port (alias)")
	fs.StringVar(&cfg.Method, "m", "", "Method to call")
	fs.StringVar(&cfg.Method, "method", "", "Method to call (alias)")
	fs.StringVar(&cfg.ServiceName, "service-name", "", "Service for a bare method name")
	fs.DurationVar(&cfg.Timeout, "timeout", 0, "Call timeout (e.g., 5s)")
	fs.StringVar(&cfg.Payload, "d", "", "Request payload")
	fs.StringVar(&cfg.Payload, "data", "", "Request payload (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.Address = address.String()

	return cfg, nil
}
