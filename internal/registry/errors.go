package registry

import "errors"

// Registration errors. They are fatal at startup configuration time.
var (
	// ErrDuplicateMethod is returned when a method id is registered twice.
	// The first registration stays active.
	ErrDuplicateMethod = errors.New("method already registered")
	// ErrRegistrationClosed is returned when Register is called after the
	// registry has been sealed by the runtime.
	ErrRegistrationClosed = errors.New("registration closed")
	// ErrInvalidMethod is returned for empty or malformed method ids and nil
	// handlers.
	ErrInvalidMethod = errors.New("invalid method")
)
