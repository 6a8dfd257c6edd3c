// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

var (
	// errNoRegistry is returned by NewHandlers when no handler registry is
	// supplied. The gRPC handler cannot dispatch without one.
	errNoRegistry = errors.New("no handler registry provided")

	// errNoStateTracker is returned by NewHandlers when no lifecycle tracker
	// is supplied.
	errNoStateTracker = errors.New("no lifecycle tracker provided")
)
