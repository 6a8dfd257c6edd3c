package rpc

import (
	"context"
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Domain is the ErrorInfo domain attached to every error the node produces.
const Domain = "media.sonet"

// Reasons attached to errors as errdetails.ErrorInfo.Reason.
const (
	ReasonMethodNotFound  = "METHOD_NOT_FOUND"
	ReasonHandlerFailed   = "HANDLER_FAILED"
	ReasonHandlerPanicked = "HANDLER_PANICKED"
	ReasonPayloadMissing  = "PAYLOAD_MISSING"
)

// ErrUnsupportedMessage is returned by [Codec] for values it cannot encode.
var ErrUnsupportedMessage = errors.New("unsupported message type")

// Error is a structured per-call error. Handlers return it to control the
// status code and reason seen by the caller.
type Error struct {
	Code     codes.Code
	Reason   string
	Message  string
	Metadata map[string]string
	Cause    error
}

// NewError creates an Error without a cause.
func NewError(code codes.Code, reason, message string) *Error {
	return &Error{Code: code, Reason: reason, Message: message}
}

// Wrap creates an Error that keeps cause in the chain. The cause is logged
// server side but never sent to the caller.
func Wrap(code codes.Code, reason, message string, cause error) *Error {
	return &Error{Code: code, Reason: reason, Message: message, Cause: cause}
}

// MethodNotFound is the error for calls to a method with no handler.
func MethodNotFound(method string) *Error {
	return &Error{
		Code:     codes.Unimplemented,
		Reason:   ReasonMethodNotFound,
		Message:  "method not found: " + method,
		Metadata: map[string]string{"method": method},
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error by code and reason.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Reason == t.Reason
}

// GRPCStatus converts the error to a status with an ErrorInfo detail. gRPC
// calls it when the error is returned from a handler.
func (e *Error) GRPCStatus() *status.Status {
	st := status.New(e.Code, e.Message)
	if e.Reason == "" {
		return st
	}

	detailed, err := st.WithDetails(&errdetails.ErrorInfo{
		Reason:   e.Reason,
		Domain:   Domain,
		Metadata: e.Metadata,
	})
	if err != nil {
		return st
	}
	return detailed
}

// ToStatus converts any handler error into the status sent to the caller.
//
// An *Error keeps its code and reason, an existing gRPC status passes
// through verbatim, context errors map to Canceled/DeadlineExceeded and
// everything else becomes Unknown with reason HANDLER_FAILED. A non-nil
// error never converts to OK.
func ToStatus(err error) *status.Status {
	if err == nil {
		return status.New(codes.OK, "")
	}

	st := toStatus(err)
	if st.Code() == codes.OK {
		return Wrap(codes.Unknown, ReasonHandlerFailed, err.Error(), err).GRPCStatus()
	}
	return st
}

func toStatus(err error) *status.Status {
	var rpcErr *Error
	if errors.As(err, &rpcErr) {
		return rpcErr.GRPCStatus()
	}

	if st, ok := status.FromError(err); ok {
		return st
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return status.FromContextError(err)
	}

	return Wrap(codes.Unknown, ReasonHandlerFailed, err.Error(), err).GRPCStatus()
}

// ReasonOf extracts the ErrorInfo reason from an error received over the
// wire. It returns "" when there is none.
func ReasonOf(err error) string {
	st, ok := status.FromError(err)
	if !ok {
		return ""
	}
	for _, detail := range st.Details() {
		if info, ok := detail.(*errdetails.ErrorInfo); ok {
			return info.GetReason()
		}
	}
	return ""
}
