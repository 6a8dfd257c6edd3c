// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	// ErrAlreadyStarted is returned by RunServer on a runtime that has
	// already been started. A runtime runs at most once.
	ErrAlreadyStarted = errors.New("runtime already started")

	errNoGRPCHandler = errors.New("no gRPC handler provided")
)
