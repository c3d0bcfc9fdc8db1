package models

import "time"

// Creator is one row in the creator registry. Handles are stored
// normalized (lowercase, no leading @).
type Creator struct {
	Platform    string    `json:"platform"`
	Handle      string    `json:"handle"`
	DisplayName string    `json:"displayName"`
	Address     string    `json:"address"`
	Verified    bool      `json:"verified"`
	CreatedAt   time.Time `json:"createdAt"`
}

// LookupRequest is the query shape of GET /api/creators/lookup.
type LookupRequest struct {
	Platform string `query:"platform" validate:"required"`
	Handle   string `query:"handle" validate:"required"`
}

// BatchLookupRequest is the body of POST /api/creators/batch. The handle
// cap is a contract: oversized batches are rejected, not truncated.
type BatchLookupRequest struct {
	Platform string   `json:"platform" validate:"required"`
	Handles  []string `json:"handles" validate:"required,min=1,max=100,dive,required"`
}

// BatchLookupResponse maps each original (non-normalized) input handle to
// its creator, or to null when no registration exists.
type BatchLookupResponse struct {
	Creators map[string]*Creator `json:"creators"`
}

// Health status classification.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// HealthCheck is the outcome of a single probe.
type HealthCheck struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// HealthResponse is the composite health report of GET /api/health.
type HealthResponse struct {
	Status    string        `json:"status"`
	Checks    []HealthCheck `json:"checks"`
	Timestamp time.Time     `json:"timestamp"`
}
