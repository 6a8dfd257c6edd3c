package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-media-service/internal/logger"
	"github.com/rs/zerolog"
)

// withLogging writes one access line per request. Probes and scrapes are
// frequent, so successful requests log at debug and failures at warn.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		start := time.Now()
		lw := &responseWriter{
			ResponseWriter: w,
		}

		next.ServeHTTP(lw, r)

		level := zerolog.DebugLevel
		if lw.status >= http.StatusBadRequest {
			level = zerolog.WarnLevel
		}

		log.WithLevel(level).
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Int("status", lw.status).
			Dur("duration", time.Since(start)).
			Int("size", lw.size).
			Send()
	})
}
