// Package lifecycle tracks the runtime state machine
// Created → Binding → Serving → ShuttingDown → Stopped.
//
// States only move forward. A runtime that fails to bind goes straight to
// Stopped, and one cancelled before its first accept skips Serving.
package lifecycle

import (
	"go.uber.org/atomic"
)

// State is a runtime lifecycle state.
type State int32

const (
	Created State = iota
	Binding
	Serving
	ShuttingDown
	Stopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Created:
		return "Created"
	case Binding:
		return "Binding"
	case Serving:
		return "Serving"
	case ShuttingDown:
		return "ShuttingDown"
	case Stopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// Tracker holds the current state. It is safe for concurrent use.
type Tracker struct {
	state atomic.Int32
}

// NewTracker returns a tracker in the Created state.
func NewTracker() *Tracker {
	return &Tracker{}
}

// State returns the current state.
func (t *Tracker) State() State {
	return State(t.state.Load())
}

// Advance moves the tracker to next if next is later than the current state
// and reports whether it did.
func (t *Tracker) Advance(next State) bool {
	for {
		cur := t.state.Load()
		if int32(next) <= cur {
			return false
		}
		if t.state.CAS(cur, int32(next)) {
			return true
		}
	}
}

// Ready reports whether the listener is open and accepting calls.
func (t *Tracker) Ready() bool {
	s := t.State()
	return s == Binding || s == Serving
}
