package transport

import (
	"context"
	"net"
	"os"
	"sync"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindLoopback(t *testing.T) *BoundListener {
	t.Helper()
	addr, err := Resolve("127.0.0.1:0")
	require.NoError(t, err)

	ln, err := Bind(context.Background(), addr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })
	return ln
}

// TestBind_EphemeralPort verifies that binding port 0 reports the port the OS
// picked.
func TestBind_EphemeralPort(t *testing.T) {
	ln := bindLoopback(t)

	assert.NotZero(t, ln.Address().Port())
	assert.Equal(t, ln.Addr().String(), ln.Address().String())
}

// TestBind_AddressInUse verifies that a second bind on the same address
// fails with ErrAddressInUse.
func TestBind_AddressInUse(t *testing.T) {
	first := bindLoopback(t)

	second, err := Bind(context.Background(), first.Address())
	require.ErrorIs(t, err, ErrAddressInUse)
	assert.Nil(t, second)
	assert.False(t, first.Closed(), "failed bind must not affect the first listener")
}

// TestBind_AddressInUse_Concurrent verifies that of two concurrent binds on
// the same port exactly one wins.
func TestBind_AddressInUse_Concurrent(t *testing.T) {
	probe := bindLoopback(t)
	addr := probe.Address()
	require.NoError(t, probe.Close())

	var wg sync.WaitGroup
	listeners := make([]*BoundListener, 2)
	errs := make([]error, 2)
	for i := range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			listeners[i], errs[i] = Bind(context.Background(), addr)
		}()
	}
	wg.Wait()

	var ok, inUse int
	for i, err := range errs {
		if err == nil {
			ok++
			_ = listeners[i].Close()
			continue
		}
		if assert.ErrorIs(t, err, ErrAddressInUse) {
			inUse++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, inUse)
}

// TestBind_ZeroAddress verifies that an unresolved address is rejected.
func TestBind_ZeroAddress(t *testing.T) {
	_, err := Bind(context.Background(), ListenAddress{})
	require.ErrorIs(t, err, ErrInvalidAddress)
}

// TestBoundListener_CloseOnce verifies that repeated and concurrent Close
// calls release the socket exactly once.
func TestBoundListener_CloseOnce(t *testing.T) {
	ln := bindLoopback(t)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, ln.Close())
		}()
	}
	wg.Wait()

	assert.True(t, ln.Closed())

	_, err := net.Dial("tcp", ln.Address().String())
	assert.Error(t, err, "port must no longer accept connections")

	again, err := Bind(context.Background(), ln.Address())
	require.NoError(t, err, "port must be free after the first Close")
	assert.NoError(t, again.Close())
}

// TestBoundListener_ReleasedPortCanBeRebound verifies that the port is free
// again after Close.
func TestBoundListener_ReleasedPortCanBeRebound(t *testing.T) {
	ln := bindLoopback(t)
	addr := ln.Address()
	require.NoError(t, ln.Close())

	again, err := Bind(context.Background(), addr)
	require.NoError(t, err)
	assert.NoError(t, again.Close())
}

// TestClassifyBindError verifies the mapping of OS errors to sentinels.
func TestClassifyBindError(t *testing.T) {
	addr, err := Resolve("127.0.0.1:1")
	require.NoError(t, err)

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "in use", err: listenError(syscall.EADDRINUSE), want: ErrAddressInUse},
		{name: "access", err: listenError(syscall.EACCES), want: ErrPermissionDenied},
		{name: "perm", err: listenError(syscall.EPERM), want: ErrPermissionDenied},
		{name: "family", err: listenError(syscall.EAFNOSUPPORT), want: ErrUnsupportedFamily},
		{name: "other", err: assert.AnError, want: ErrTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyBindError(addr, tt.err)
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, tt.err, "cause must stay in the chain")
		})
	}
}

func listenError(errno syscall.Errno) error {
	return &net.OpError{Op: "listen", Net: "tcp", Err: os.NewSyscallError("bind", errno)}
}
