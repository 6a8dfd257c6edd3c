// Package registry holds the node's handler set: the mapping from RPC method
// id to the function serving it.
//
// A [Registry] is assembled once at startup and sealed by the runtime before
// it accepts calls. Sealing yields a [HandlerSet], an immutable snapshot that
// is read without locks for the life of the process.
package registry

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Handler serves one RPC method. It receives the raw request payload and
// returns the raw response payload or an error. Handlers run concurrently
// with each other and must be safe for that.
type Handler func(ctx context.Context, payload []byte) ([]byte, error)

// MethodID returns the full method id "/<service>/<method>" used on the wire.
func MethodID(service, method string) string {
	return "/" + service + "/" + method
}

// HandlerSet is a read-only snapshot of registered handlers keyed by full
// method id. The zero value is an empty set.
type HandlerSet struct {
	handlers map[string]Handler
}

// Lookup returns the handler registered for the full method id.
func (s HandlerSet) Lookup(method string) (Handler, bool) {
	h, ok := s.handlers[method]
	return h, ok
}

// Len returns the number of registered methods.
func (s HandlerSet) Len() int {
	return len(s.handlers)
}

// Methods returns the registered method ids in sorted order.
func (s HandlerSet) Methods() []string {
	return slices.Sorted(maps.Keys(s.handlers))
}

// Registry collects handlers before the runtime starts.
type Registry struct {
	service string

	mu       sync.Mutex
	handlers map[string]Handler
	sealed   bool
}

// NewRegistry creates an empty registry. Bare method names passed to
// Register are qualified with defaultService.
func NewRegistry(defaultService string) *Registry {
	return &Registry{
		service:  strings.Trim(strings.TrimSpace(defaultService), "/"),
		handlers: make(map[string]Handler),
	}
}

// Service returns the default service name.
func (r *Registry) Service() string {
	return r.service
}

// Register adds handler under methodID.
//
// methodID is either a full id "/pkg.Service/Method" or a bare method name,
// which is qualified with the registry's default service. It returns
// [ErrDuplicateMethod] if the id is taken, [ErrRegistrationClosed] once the
// registry is sealed and [ErrInvalidMethod] for malformed ids or a nil
// handler.
func (r *Registry) Register(methodID string, handler Handler) error {
	if handler == nil {
		return fmt.Errorf("%w: nil handler for %q", ErrInvalidMethod, methodID)
	}

	id, err := r.qualify(methodID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("%w: cannot register %s", ErrRegistrationClosed, id)
	}
	if _, ok := r.handlers[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateMethod, id)
	}

	r.handlers[id] = handler
	return nil
}

// Seal closes the registry for writes and returns the handler snapshot.
// Sealing twice returns an equal snapshot.
func (r *Registry) Seal() HandlerSet {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sealed = true
	return HandlerSet{handlers: maps.Clone(r.handlers)}
}

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sealed
}

func (r *Registry) qualify(methodID string) (string, error) {
	id := strings.TrimSpace(methodID)
	if id == "" {
		return "", fmt.Errorf("%w: empty method id", ErrInvalidMethod)
	}

	if !strings.HasPrefix(id, "/") {
		if strings.Contains(id, "/") || r.service == "" {
			return "", fmt.Errorf("%w: %q", ErrInvalidMethod, methodID)
		}
		return MethodID(r.service, id), nil
	}

	service, method, ok := strings.Cut(id[1:], "/")
	if !ok || service == "" || method == "" || strings.Contains(method, "/") {
		return "", fmt.Errorf("%w: %q is not /service/method", ErrInvalidMethod, methodID)
	}

	return id, nil
}
