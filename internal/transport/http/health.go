package http

import (
	"net/http"
	"runtime"
	"time"
)

// HealthStatus represents the health check response
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Checks    map[string]Check `json:"checks,omitempty"`
	System    *SystemInfo      `json:"system,omitempty"`
}

// Check represents a single health check result
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// SystemInfo contains system information
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	NumCPU       int    `json:"num_cpu"`
	MemAlloc     uint64 `json:"mem_alloc_mb"`
}

const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
)

// Health reports whether the service is configured to serve /predict. It
// never calls the model service.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]Check{
		"llm":     h.checkModel(),
		"api_key": h.checkAPIKey(),
	}

	overall := StatusHealthy
	for _, c := range checks {
		if c.Status != StatusHealthy {
			overall = StatusDegraded
		}
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	writeJSON(w, http.StatusOK, HealthStatus{
		Status:    overall,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		System: &SystemInfo{
			GoVersion:    runtime.Version(),
			NumGoroutine: runtime.NumGoroutine(),
			NumCPU:       runtime.NumCPU(),
			MemAlloc:     memStats.Alloc / 1024 / 1024,
		},
	})
}

func (h *Handlers) checkModel() Check {
	return Check{
		Status:  StatusHealthy,
		Message: h.Config.Provider + "/" + h.Config.Model,
	}
}

// checkAPIKey is degraded when no secret is set, since /predict then rejects every request.
func (h *Handlers) checkAPIKey() Check {
	if h.Config.APIKey == "" {
		return Check{Status: StatusDegraded, Message: "API_KEY not set, /predict rejects all requests"}
	}
	return Check{Status: StatusHealthy, Message: "configured"}
}
