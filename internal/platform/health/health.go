// Package health exposes the readiness probe. Each dependency registers a
// named check; the endpoint reports per-dependency status so operators can
// tell a dead database from a dead cache.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"inklusi/pkg/platform/httputil"
)

const probeTimeout = 2 * time.Second

// Check probes one dependency.
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

// Handler serves GET /healthz.
type Handler struct {
	checks []Check
	logger *slog.Logger
}

func New(logger *slog.Logger, checks ...Check) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{checks: checks, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/healthz", h.healthz)
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks,omitempty"`
	}

	resp := response{Status: "ok", Checks: make(map[string]string, len(h.checks))}
	status := http.StatusOK

	for _, check := range h.checks {
		ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
		err := check.Probe(ctx)
		cancel()

		if err != nil {
			h.logger.WarnContext(r.Context(), "health check failed", "check", check.Name, "error", err)
			resp.Checks[check.Name] = "unavailable"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[check.Name] = "ok"
	}

	httputil.WriteJSON(w, status, resp)
}
