package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"syscall"

	"go.uber.org/atomic"
)

// BoundListener is a TCP listener opened by [Bind].
//
// Close releases the socket exactly once; later calls return the result of
// the first one. This lets grpc.Server, http.Server and the runtime all close
// the same listener on their own exit paths without racing each other.
type BoundListener struct {
	net.Listener

	address ListenAddress

	closeOnce sync.Once
	closeErr  error
	closed    atomic.Bool
}

// Bind opens a passive TCP socket on address.
//
// Failures are classified into [ErrAddressInUse], [ErrPermissionDenied] or
// [ErrTransport]; the OS error is kept in the chain.
func Bind(ctx context.Context, address ListenAddress) (*BoundListener, error) {
	if address.IsZero() {
		return nil, fmt.Errorf("%w: address is not resolved", ErrInvalidAddress)
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", address.AddrPort().String())
	if err != nil {
		return nil, classifyBindError(address, err)
	}

	bound := address
	if tcpAddr, ok := ln.Addr().(*net.TCPAddr); ok {
		bound = address.withPort(uint16(tcpAddr.Port))
	}

	return &BoundListener{
		Listener: ln,
		address:  bound,
	}, nil
}

func classifyBindError(address ListenAddress, err error) error {
	switch {
	case errors.Is(err, syscall.EADDRINUSE):
		return fmt.Errorf("%w: bind %s: %w", ErrAddressInUse, address, err)
	case errors.Is(err, syscall.EACCES), errors.Is(err, syscall.EPERM):
		return fmt.Errorf("%w: bind %s: %w", ErrPermissionDenied, address, err)
	case errors.Is(err, syscall.EAFNOSUPPORT):
		return fmt.Errorf("%w: bind %s: %w", ErrUnsupportedFamily, address, err)
	default:
		return fmt.Errorf("%w: bind %s: %w", ErrTransport, address, err)
	}
}

// Address returns the address the socket is bound to, with the real port
// filled in when an ephemeral port was requested.
func (l *BoundListener) Address() ListenAddress {
	return l.address
}

// Close releases the socket. It is safe to call any number of times from any
// goroutine.
func (l *BoundListener) Close() error {
	l.closeOnce.Do(func() {
		l.closeErr = l.Listener.Close()
		l.closed.Store(true)
	})
	return l.closeErr
}

// Closed reports whether the socket has been released.
func (l *BoundListener) Closed() bool {
	return l.closed.Load()
}
