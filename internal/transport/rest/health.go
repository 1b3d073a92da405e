package rest

import (
	"context"
	"net/http"
	"time"
)

// Pinger is a dependency that can report its availability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Check is one component reported by the health endpoints. Only critical
// components affect readiness.
type Check struct {
	Name     string
	Pinger   Pinger
	Critical bool
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	version     string
	environment string
	checks      []Check
	now         func() time.Time
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(version, environment string, checks ...Check) *HealthHandler {
	return &HealthHandler{
		version:     version,
		environment: environment,
		checks:      checks,
		now:         time.Now,
	}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status      string                `json:"status"`
	Version     string                `json:"version,omitempty"`
	Environment string                `json:"environment,omitempty"`
	Components  map[string]CompStatus `json:"components,omitempty"`
	Timestamp   time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: h.now(),
	})
}

// Ready is the readiness probe: 503 when any critical component is down.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	_, ok := h.probe(r.Context(), true)
	if !ok {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "down", Timestamp: h.now()})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: h.now()})
}

// Health reports every component with its latency. Non-critical components
// being down degrade the status without failing the check.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	components, ok := h.probe(r.Context(), false)

	status, code := "ok", http.StatusOK
	switch {
	case !ok:
		status, code = "down", http.StatusServiceUnavailable
	default:
		for _, c := range components {
			if c.Status != "ok" {
				status = "degraded"
			}
		}
	}

	writeJSON(w, code, HealthResponse{
		Status:      status,
		Version:     h.version,
		Environment: h.environment,
		Components:  components,
		Timestamp:   h.now(),
	})
}

// probe pings the checks. ok is false when a critical one failed.
func (h *HealthHandler) probe(ctx context.Context, criticalOnly bool) (map[string]CompStatus, bool) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	components := make(map[string]CompStatus, len(h.checks))
	ok := true
	for _, c := range h.checks {
		if criticalOnly && !c.Critical {
			continue
		}
		start := time.Now()
		if err := c.Pinger.Ping(ctx); err != nil {
			components[c.Name] = CompStatus{Status: "down"}
			if c.Critical {
				ok = false
			}
			continue
		}
		components[c.Name] = CompStatus{Status: "ok", Latency: time.Since(start).String()}
	}
	return components, ok
}
