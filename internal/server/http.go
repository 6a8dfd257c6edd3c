package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MKhiriev/go-media-service/internal/logger"
	"github.com/MKhiriev/go-media-service/internal/transport"
)

const opsReadHeaderTimeout = 5 * time.Second

type httpServer struct {
	server   *http.Server
	address  transport.ListenAddress
	listener *transport.BoundListener

	logger *logger.Logger
}

func newHTTPServer(handler http.Handler, address transport.ListenAddress, logger *logger.Logger) *httpServer {
	return &httpServer{
		server: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: opsReadHeaderTimeout,
		},
		address: address,
		logger:  logger,
	}
}

func (h *httpServer) bind(ctx context.Context) error {
	l, err := transport.Bind(ctx, h.address)
	if err != nil {
		return err
	}
	h.listener = l
	return nil
}

func (h *httpServer) serve() error {
	if err := h.server.Serve(h.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%w: serve ops HTTP on %s: %w", transport.ErrTransport, h.listener.Address(), err)
	}
	return nil
}

func (h *httpServer) shutdown(ctx context.Context) {
	h.logger.Info().Msg("HTTP server Shutdown")
	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("HTTP server Shutdown, closing")
		_ = h.server.Close()
	}
}

func (h *httpServer) release() {
	if h.listener == nil || h.listener.Closed() {
		return
	}
	if err := h.listener.Close(); err != nil {
		h.logger.Debug().Err(err).Msg("HTTP listener close")
	}
}
