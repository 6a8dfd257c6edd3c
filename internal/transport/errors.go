// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package transport

import "errors"

// Startup errors returned by [Resolve] and [Bind]. Callers match them with
// errors.Is; the underlying OS or parser error stays in the chain.
var (
	// ErrInvalidAddress indicates the address string is not a well-formed
	// host:port pair.
	ErrInvalidAddress = errors.New("invalid listen address")
	// ErrUnsupportedFamily indicates the host could not be resolved to an
	// IPv4 or IPv6 address.
	ErrUnsupportedFamily = errors.New("unsupported address family")
	// ErrAddressInUse indicates another socket is already bound to the port.
	ErrAddressInUse = errors.New("address already in use")
	// ErrPermissionDenied indicates the process lacks the privilege to bind
	// the port (e.g. a privileged port without elevated rights).
	ErrPermissionDenied = errors.New("permission denied")
	// ErrTransport covers every other OS-level bind failure.
	ErrTransport = errors.New("transport error")
)
