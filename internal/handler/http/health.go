package http

import (
	"encoding/json"
	"net/http"
)

// healthResponse is the /healthz body.
type healthResponse struct {
	State   string `json:"state"`
	Ready   bool   `json:"ready"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

// healthz reports 200 while the RPC listener is open and 503 before bind and
// from the start of shutdown.
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		State: h.state.State().String(),
		Ready: h.state.Ready(),

		Version: h.build.BuildVersion(),
		Commit:  h.build.BuildCommit(),
	}

	status := http.StatusOK
	if !resp.Ready {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error().Err(err).Msg("failed to write health response")
	}
}
