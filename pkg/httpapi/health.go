package httpapi

import (
	"net/http"

	"github.com/dmitrymomot/schemakit/pkg/logger"
)

// health is a liveness probe without readiness checks and a readiness probe
// with them.
func (a *API) health(w http.ResponseWriter, r *http.Request) {
	if len(a.checks) == 0 {
		writeJSON(w, http.StatusOK, map[string]any{"status": "alive", "schemas": a.registry.Len()})
		return
	}

	for _, check := range a.checks {
		if err := check(r.Context()); err != nil {
			a.logger.ErrorContext(r.Context(), "readiness check failed", logger.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "not_ready"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ready", "schemas": a.registry.Len()})
}
