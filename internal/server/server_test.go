package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/go-media-service/internal/config"
	"github.com/MKhiriev/go-media-service/internal/handler"
	"github.com/MKhiriev/go-media-service/internal/lifecycle"
	"github.com/MKhiriev/go-media-service/internal/logger"
	"github.com/MKhiriev/go-media-service/internal/metrics"
	"github.com/MKhiriev/go-media-service/internal/registry"
	"github.com/MKhiriev/go-media-service/internal/rpc"
	"github.com/MKhiriev/go-media-service/internal/transport"
	"github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

const pingMethod = "/sonet.media.v1.MediaService/Ping"

// ── helpers ───────────────────────────────────────────────────────────────────

func testConfig() config.Server {
	return config.Server{
		GRPCAddress:     "127.0.0.1:0",
		ServiceName:     config.DefaultServiceName,
		ShutdownTimeout: 2 * time.Second,
	}
}

type testRuntime struct {
	*Runtime
	registry *registry.Registry
	done     chan error
	cancel   context.CancelFunc
}

// newTestRuntime builds a runtime over reg without starting it.
func newTestRuntime(t *testing.T, reg *registry.Registry, cfg config.Server, deps handler.Deps) *testRuntime {
	t.Helper()

	deps.Registry = reg
	if deps.State == nil {
		deps.State = lifecycle.NewTracker()
	}

	handlers, err := handler.NewHandlers(deps, cfg, logger.Nop())
	require.NoError(t, err)

	rt, err := NewServer(handlers, cfg, deps.State, logger.Nop())
	require.NoError(t, err)

	return &testRuntime{Runtime: rt, registry: reg, done: make(chan error, 1)}
}

// start runs the runtime in the background and waits until it is bound.
func (r *testRuntime) start(t *testing.T) *testRuntime {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	go func() { r.done <- r.RunServer(ctx) }()

	select {
	case <-r.Bound():
	case err := <-r.done:
		cancel()
		t.Fatalf("runtime exited before binding: %v", err)
	case <-time.After(5 * time.Second):
		cancel()
		t.Fatal("runtime did not bind in time")
	}

	t.Cleanup(func() {
		r.Shutdown()
		cancel()
	})
	return r
}

// stop requests shutdown and returns RunServer's result.
func (r *testRuntime) stop(t *testing.T) error {
	t.Helper()
	r.Shutdown()
	select {
	case err := <-r.done:
		return err
	case <-time.After(10 * time.Second):
		t.Fatal("runtime did not stop in time")
		return nil
	}
}

func startRuntime(t *testing.T, reg *registry.Registry) *testRuntime {
	t.Helper()
	return newTestRuntime(t, reg, testConfig(), handler.Deps{}).start(t)
}

func dial(t *testing.T, address transport.ListenAddress) *grpc.ClientConn {
	t.Helper()
	conn, err := grpc.NewClient(address.String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func invoke(conn *grpc.ClientConn, method string, payload []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return rpc.Invoke(ctx, conn, method, payload)
}

// rebindable reports whether address can be bound again, i.e. the runtime
// released it.
func rebindable(t *testing.T, address transport.ListenAddress) bool {
	t.Helper()
	l, err := transport.Bind(context.Background(), address)
	if err != nil {
		return false
	}
	require.NoError(t, l.Close())
	return true
}

// ── end to end ────────────────────────────────────────────────────────────────

// TestRuntime_PingEndToEnd verifies the full flow: an empty node answers
// Ping with METHOD_NOT_FOUND and refuses late registration; a node started
// with an echoing Ping handler returns the payload unchanged.
func TestRuntime_PingEndToEnd(t *testing.T) {
	// empty handler set
	empty := startRuntime(t, registry.NewRegistry(config.DefaultServiceName))
	conn := dial(t, empty.GRPCAddress())

	_, err := invoke(conn, pingMethod, []byte("hello"))
	require.Error(t, err)
	assert.Equal(t, codes.Unimplemented, status.Code(err))
	assert.Equal(t, rpc.ReasonMethodNotFound, rpc.ReasonOf(err))

	err = empty.registry.Register("Ping", func(_ context.Context, payload []byte) ([]byte, error) {
		return payload, nil
	})
	require.ErrorIs(t, err, registry.ErrRegistrationClosed)

	require.NoError(t, empty.stop(t))
	assert.Equal(t, lifecycle.Stopped, empty.State())

	// echoing Ping
	reg := registry.NewRegistry(config.DefaultServiceName)
	require.NoError(t, reg.Register("Ping", func(_ context.Context, payload []byte) ([]byte, error) {
		return payload, nil
	}))
	echoing := startRuntime(t, reg)
	conn = dial(t, echoing.GRPCAddress())

	resp, err := invoke(conn, pingMethod, []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), resp)

	require.NoError(t, echoing.stop(t))
}

// ── lifecycle ─────────────────────────────────────────────────────────────────

// TestRuntime_StateTransitions verifies Created → Binding → Serving →
// Stopped as the runtime starts, accepts and stops.
func TestRuntime_StateTransitions(t *testing.T) {
	rt := newTestRuntime(t, registry.NewRegistry(config.DefaultServiceName), testConfig(), handler.Deps{})
	assert.Equal(t, lifecycle.Created, rt.State())
	assert.True(t, rt.GRPCAddress().IsZero())

	rt.start(t)
	assert.Contains(t, []lifecycle.State{lifecycle.Binding, lifecycle.Serving}, rt.State())
	assert.NotZero(t, rt.GRPCAddress().Port())

	conn := dial(t, rt.GRPCAddress())
	_, _ = invoke(conn, pingMethod, nil)
	assert.Equal(t, lifecycle.Serving, rt.State())

	require.NoError(t, rt.stop(t))
	assert.Equal(t, lifecycle.Stopped, rt.State())
	assert.True(t, rebindable(t, rt.GRPCAddress()))
}

// TestRuntime_RunTwice verifies that a runtime runs at most once.
func TestRuntime_RunTwice(t *testing.T) {
	rt := startRuntime(t, registry.NewRegistry(config.DefaultServiceName))

	err := rt.RunServer(context.Background())
	require.ErrorIs(t, err, ErrAlreadyStarted)

	require.NoError(t, rt.stop(t))
}

// TestRuntime_ContextCancel verifies that cancelling the run context stops
// the runtime gracefully.
func TestRuntime_ContextCancel(t *testing.T) {
	rt := startRuntime(t, registry.NewRegistry(config.DefaultServiceName))

	rt.cancel()

	select {
	case err := <-rt.done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("runtime did not stop after cancel")
	}
	assert.Equal(t, lifecycle.Stopped, rt.State())
}

// ── bind failures ─────────────────────────────────────────────────────────────

// TestNewServer_InvalidAddress verifies that malformed addresses are
// rejected before anything is bound.
func TestNewServer_InvalidAddress(t *testing.T) {
	tests := []struct {
		name string
		cfg  func(*config.Server)
	}{
		{name: "grpc address without port", cfg: func(c *config.Server) { c.GRPCAddress = "127.0.0.1" }},
		{name: "grpc port out of range", cfg: func(c *config.Server) { c.GRPCAddress = "127.0.0.1:70000" }},
		{name: "ops address malformed", cfg: func(c *config.Server) { c.OpsAddress = "nowhere" }},
		{name: "grpc hostname malformed", cfg: func(c *config.Server) { c.GRPCAddress = "media_node:0" }},
		{name: "ops hostname numeric", cfg: func(c *config.Server) { c.OpsAddress = "999.1.1.1:0" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.cfg(&cfg)

			state := lifecycle.NewTracker()
			handlers, err := handler.NewHandlers(handler.Deps{
				Registry: registry.NewRegistry(config.DefaultServiceName),
				State:    state,
			}, cfg, logger.Nop())
			require.NoError(t, err)

			rt, err := NewServer(handlers, cfg, state, logger.Nop())
			require.ErrorIs(t, err, transport.ErrInvalidAddress)
			assert.Nil(t, rt)
		})
	}
}

// TestNewServer_Hostname verifies that a hostname is resolved at construction
// and keeps its text once bound.
func TestNewServer_Hostname(t *testing.T) {
	cfg := testConfig()
	cfg.GRPCAddress = "localhost:0"

	rt := newTestRuntime(t, registry.NewRegistry(config.DefaultServiceName), cfg, handler.Deps{}).start(t)

	addr := rt.GRPCAddress()
	assert.Equal(t, "localhost", addr.Host())
	assert.True(t, addr.AddrPort().Addr().IsLoopback())
	assert.NotZero(t, addr.Port())
	require.NoError(t, rt.stop(t))
}

// TestNewServer_NoHandlers verifies the gRPC handler is required.
func TestNewServer_NoHandlers(t *testing.T) {
	rt, err := NewServer(&handler.Handlers{}, testConfig(), lifecycle.NewTracker(), logger.Nop())
	require.ErrorIs(t, err, errNoGRPCHandler)
	assert.Nil(t, rt)
}

// TestRuntime_AddressInUse verifies that a taken address fails startup with
// ErrAddressInUse and leaves the runtime Stopped.
func TestRuntime_AddressInUse(t *testing.T) {
	addr, err := transport.Resolve("127.0.0.1:0")
	require.NoError(t, err)
	occupied, err := transport.Bind(context.Background(), addr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = occupied.Close() })

	tests := []struct {
		name string
		cfg  func(*config.Server)
	}{
		{name: "grpc listener", cfg: func(c *config.Server) { c.GRPCAddress = occupied.Address().String() }},
		{name: "ops listener", cfg: func(c *config.Server) { c.OpsAddress = occupied.Address().String() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.cfg(&cfg)

			reg := registry.NewRegistry(config.DefaultServiceName)
			rt := newTestRuntime(t, reg, cfg, handler.Deps{})

			err := rt.RunServer(context.Background())

			require.ErrorIs(t, err, transport.ErrAddressInUse)
			assert.Equal(t, lifecycle.Stopped, rt.State())
			assert.True(t, reg.Sealed())
			if addr := rt.GRPCAddress(); !addr.IsZero() {
				assert.True(t, rebindable(t, addr), "gRPC listener must be released")
			}
		})
	}
}

// ── shutdown ──────────────────────────────────────────────────────────────────

// TestRuntime_GracefulDrain verifies that an in-flight call completes after
// shutdown starts, new calls are refused and the listener is released.
func TestRuntime_GracefulDrain(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	reg := registry.NewRegistry(config.DefaultServiceName)
	require.NoError(t, reg.Register("Transcode", func(_ context.Context, payload []byte) ([]byte, error) {
		close(entered)
		<-release
		return append([]byte("done:"), payload...), nil
	}))

	rt := startRuntime(t, reg)
	address := rt.GRPCAddress()
	conn := dial(t, address)

	type result struct {
		resp []byte
		err  error
	}
	inFlight := make(chan result, 1)
	go func() {
		resp, err := invoke(conn, registry.MethodID(config.DefaultServiceName, "Transcode"), []byte("clip"))
		inFlight <- result{resp, err}
	}()
	<-entered

	rt.Shutdown()
	require.Eventually(t, func() bool {
		return rt.State() == lifecycle.ShuttingDown
	}, 5*time.Second, 10*time.Millisecond)

	// new connections are refused once the listener is gone
	require.Eventually(t, func() bool {
		fresh, err := grpc.NewClient(address.String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return true
		}
		defer fresh.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()
		_, err = rpc.Invoke(ctx, fresh, pingMethod, nil)
		return status.Code(err) == codes.Unavailable || status.Code(err) == codes.DeadlineExceeded
	}, 5*time.Second, 50*time.Millisecond)

	close(release)

	res := <-inFlight
	require.NoError(t, res.err)
	assert.Equal(t, []byte("done:clip"), res.resp)

	select {
	case err := <-rt.done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("runtime did not stop after drain")
	}
	assert.Equal(t, lifecycle.Stopped, rt.State())
	assert.True(t, rebindable(t, address))
}

// TestRuntime_GraceExpires verifies that calls still running after the grace
// period are aborted and the runtime stops anyway.
func TestRuntime_GraceExpires(t *testing.T) {
	entered := make(chan struct{})

	reg := registry.NewRegistry(config.DefaultServiceName)
	require.NoError(t, reg.Register("Stuck", func(ctx context.Context, _ []byte) ([]byte, error) {
		close(entered)
		<-ctx.Done()
		return nil, ctx.Err()
	}))

	cfg := testConfig()
	cfg.ShutdownTimeout = 100 * time.Millisecond
	rt := newTestRuntime(t, reg, cfg, handler.Deps{}).start(t)
	conn := dial(t, rt.GRPCAddress())

	inFlight := make(chan error, 1)
	go func() {
		_, err := invoke(conn, registry.MethodID(config.DefaultServiceName, "Stuck"), nil)
		inFlight <- err
	}()
	<-entered

	start := time.Now()
	require.NoError(t, rt.stop(t))
	assert.Less(t, time.Since(start), 5*time.Second)

	err := <-inFlight
	require.Error(t, err)
	assert.NotEqual(t, codes.OK, status.Code(err))
	assert.True(t, rebindable(t, rt.GRPCAddress()))
}

// ── health ────────────────────────────────────────────────────────────────────

// TestRuntime_Health verifies the grpc.health.v1 service for the overall
// server and the default service.
func TestRuntime_Health(t *testing.T) {
	rt := startRuntime(t, registry.NewRegistry(config.DefaultServiceName))
	client := healthpb.NewHealthClient(dial(t, rt.GRPCAddress()))

	for _, service := range []string{"", config.DefaultServiceName} {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
		cancel()

		require.NoError(t, err, "service %q", service)
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
	}

	require.NoError(t, rt.stop(t))
}

// ── ops endpoint ──────────────────────────────────────────────────────────────

// TestRuntime_OpsEndpoint verifies that /healthz and /metrics are served on
// the ops address alongside the gRPC listener.
func TestRuntime_OpsEndpoint(t *testing.T) {
	promReg := prometheus.NewRegistry()
	reg := registry.NewRegistry(config.DefaultServiceName)
	require.NoError(t, reg.Register("Ping", func(_ context.Context, payload []byte) ([]byte, error) {
		return payload, nil
	}))

	cfg := testConfig()
	cfg.OpsAddress = "127.0.0.1:0"
	rt := newTestRuntime(t, reg, cfg, handler.Deps{
		Metrics:  metrics.NewPrometheusMetrics(promReg),
		Gatherer: promReg,
	}).start(t)

	require.False(t, rt.OpsAddress().IsZero())
	client := resty.New().SetBaseURL("http://" + rt.OpsAddress().String())

	resp, err := client.R().Get("/healthz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())

	conn := dial(t, rt.GRPCAddress())
	_, err = invoke(conn, pingMethod, []byte("x"))
	require.NoError(t, err)

	resp, err = client.R().Get("/metrics")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Contains(t, resp.String(), `media_rpc_calls_total{code="OK",method="/sonet.media.v1.MediaService/Ping"} 1`)

	opsAddress := rt.OpsAddress()
	require.NoError(t, rt.stop(t))
	assert.True(t, rebindable(t, opsAddress))
}
