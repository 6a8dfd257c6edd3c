package app

import (
	"errors"

	"github.com/MKhiriev/go-media-service/internal/config"
	"github.com/MKhiriev/go-media-service/internal/registry"
	"github.com/MKhiriev/go-media-service/internal/transport"
)

// Process exit codes, one per startup failure kind.
const (
	ExitOK                = 0
	ExitUnexpected        = 1
	ExitConfig            = 2
	ExitInvalidAddress    = 3
	ExitUnsupportedFamily = 4
	ExitAddressInUse      = 5
	ExitPermissionDenied  = 6
	ExitTransport         = 7
	ExitRegistration      = 8
)

var exitCodes = []struct {
	target error
	code   int
}{
	{config.ErrLoadConfig, ExitConfig},
	{config.ErrInvalidServerConfigs, ExitConfig},
	{config.ErrInvalidLogConfigs, ExitConfig},
	{config.ErrInvalidClientConfigs, ExitConfig},

	{transport.ErrInvalidAddress, ExitInvalidAddress},
	{transport.ErrUnsupportedFamily, ExitUnsupportedFamily},
	{transport.ErrAddressInUse, ExitAddressInUse},
	{transport.ErrPermissionDenied, ExitPermissionDenied},
	{transport.ErrTransport, ExitTransport},

	{registry.ErrDuplicateMethod, ExitRegistration},
	{registry.ErrRegistrationClosed, ExitRegistration},
	{registry.ErrInvalidMethod, ExitRegistration},
}

// ExitCode maps an error returned during startup or serving to the process
// exit code. nil maps to [ExitOK] and unrecognised errors to
// [ExitUnexpected]. The first matching entry wins.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	for _, e := range exitCodes {
		if errors.Is(err, e.target) {
			return e.code
		}
	}
	return ExitUnexpected
}
