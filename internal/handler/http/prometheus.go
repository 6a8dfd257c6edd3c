package http

import (
	"fmt"

	"github.com/MKhiriev/go-media-service/internal/logger"
)

// promLogger routes promhttp errors into the service log.
type promLogger struct {
	logger *logger.Logger
}

// Println implements promhttp.Logger.
func (l promLogger) Println(v ...any) {
	l.logger.Error().Str("component", "promhttp").Msg(fmt.Sprint(v...))
}
