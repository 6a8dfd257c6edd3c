package server

import (
	"context"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/MKhiriev/go-media-service/internal/config"
	"github.com/MKhiriev/go-media-service/internal/handler"
	"github.com/MKhiriev/go-media-service/internal/lifecycle"
	"github.com/MKhiriev/go-media-service/internal/logger"
	"github.com/MKhiriev/go-media-service/internal/transport"
	"golang.org/x/sync/errgroup"
)

var _ Server = (*Runtime)(nil)

// resolveTimeout bounds hostname lookups of the configured addresses.
const resolveTimeout = 5 * time.Second

// Runtime runs the gRPC server and the optional ops HTTP server as one unit
// with a shared lifecycle.
type Runtime struct {
	gRPCServer *grpcServer
	httpServer *httpServer

	state           *lifecycle.Tracker
	shutdownTimeout time.Duration

	bound        chan struct{}
	stop         chan struct{}
	stopOnce     sync.Once
	shutdownOnce sync.Once

	logger *logger.Logger
}

// NewServer resolves the configured addresses and builds a runtime in the
// Created state. Address errors ([transport.ErrInvalidAddress],
// [transport.ErrUnsupportedFamily]) are returned here, before anything is
// bound.
func NewServer(handlers *handler.Handlers, cfg config.Server, state *lifecycle.Tracker, logger *logger.Logger) (*Runtime, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.GRPC == nil {
		return nil, errNoGRPCHandler
	}

	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	grpcAddress, err := transport.ResolveContext(ctx, cfg.GRPCAddress)
	if err != nil {
		return nil, err
	}

	s := &Runtime{
		gRPCServer:      newGRPCServer(handlers.GRPC, grpcAddress, state, logger),
		state:           state,
		shutdownTimeout: cfg.ShutdownTimeout,
		bound:           make(chan struct{}),
		stop:            make(chan struct{}),
		logger:          logger,
	}

	if cfg.OpsAddress != "" && handlers.HTTP != nil {
		opsAddress, err := transport.ResolveContext(ctx, cfg.OpsAddress)
		if err != nil {
			return nil, err
		}
		s.httpServer = newHTTPServer(handlers.HTTP.Init(), opsAddress, logger)
	}

	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = config.DefaultShutdownTimeout
	}

	return s, nil
}

// RunServer closes handler registration, binds all listeners and serves
// until ctx is cancelled, SIGTERM/SIGINT/SIGQUIT arrives, Shutdown is called
// or a transport fails.
//
// It returns nil after a graceful stop, the bind error if a listener could
// not be opened and a [transport.ErrTransport] error if a server failed
// while serving. The runtime ends in the Stopped state with every listener
// released.
func (s *Runtime) RunServer(ctx context.Context) error {
	if !s.state.Advance(lifecycle.Binding) {
		return ErrAlreadyStarted
	}
	defer s.state.Advance(lifecycle.Stopped)
	defer s.release()

	s.gRPCServer.handler.Seal()

	ctx, stop := signal.NotifyContext(ctx,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := s.bind(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to bind")
		return err
	}
	close(s.bound)

	event := s.logger.Info().Stringer("grpc_address", s.gRPCServer.listener.Address())
	if s.httpServer != nil {
		event = event.Stringer("ops_address", s.httpServer.listener.Address())
	}
	event.Msg("listening")

	g, gctx := errgroup.WithContext(ctx)

	s.logger.Info().Msg("Launching GRPC server")
	g.Go(s.gRPCServer.serve)

	if s.httpServer != nil {
		s.logger.Info().Msg("Launching HTTP server")
		g.Go(s.httpServer.serve)
	}

	// listen for stop requests
	g.Go(func() error {
		select {
		case <-gctx.Done():
		case <-s.stop:
		}
		s.shutdown()
		return nil
	})

	err := g.Wait()
	if err != nil {
		s.logger.Error().Err(err).Msg("server stopped with error")
		return err
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}

// Shutdown requests a stop of a running runtime. It does not wait; RunServer
// returns once the stop has completed.
func (s *Runtime) Shutdown() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
}

// Bound is closed once every listener is open.
func (s *Runtime) Bound() <-chan struct{} {
	return s.bound
}

// GRPCAddress returns the bound gRPC address. It is valid after Bound is
// closed.
func (s *Runtime) GRPCAddress() transport.ListenAddress {
	if s.gRPCServer.listener == nil {
		return transport.ListenAddress{}
	}
	return s.gRPCServer.listener.Address()
}

// OpsAddress returns the bound ops HTTP address, or the zero address when
// the endpoint is disabled or not yet bound.
func (s *Runtime) OpsAddress() transport.ListenAddress {
	if s.httpServer == nil || s.httpServer.listener == nil {
		return transport.ListenAddress{}
	}
	return s.httpServer.listener.Address()
}

// State returns the current lifecycle state.
func (s *Runtime) State() lifecycle.State {
	return s.state.State()
}

func (s *Runtime) bind(ctx context.Context) error {
	if err := s.gRPCServer.bind(ctx); err != nil {
		return err
	}
	if s.httpServer != nil {
		if err := s.httpServer.bind(ctx); err != nil {
			return err
		}
	}
	return nil
}

// shutdown drains both servers within the grace period. It runs once.
func (s *Runtime) shutdown() {
	s.shutdownOnce.Do(func() {
		s.state.Advance(lifecycle.ShuttingDown)
		s.logger.Info().Dur("grace_period", s.shutdownTimeout).Msg("shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		// finish HTTP server
		if s.httpServer != nil {
			s.httpServer.shutdown(ctx)
		}

		// finish gRPC server
		s.gRPCServer.shutdown(ctx)
	})
}

func (s *Runtime) release() {
	if s.httpServer != nil {
		s.httpServer.release()
	}
	s.gRPCServer.release()
}
