// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application constraints before it is used at startup.
//
// Address syntax is checked by the transport binder, which owns the
// distinction between malformed and unresolvable addresses; here only
// presence is required.
func (cfg *StructuredConfig) validate() error {
	if strings.TrimSpace(cfg.Server.GRPCAddress) == "" {
		return fmt.Errorf("%w: gRPC address is empty", ErrInvalidServerConfigs)
	}

	if cfg.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown timeout must be positive", ErrInvalidServerConfigs)
	}

	if cfg.Server.RequestTimeout < 0 {
		return fmt.Errorf("%w: request timeout must not be negative", ErrInvalidServerConfigs)
	}

	if name := strings.Trim(cfg.Server.ServiceName, "/ "); name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("%w: service name %q", ErrInvalidServerConfigs, cfg.Server.ServiceName)
	}

	if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLogConfigs, err)
	}

	return nil
}
