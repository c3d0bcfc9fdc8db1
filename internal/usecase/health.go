package usecase

import (
	"context"
	"time"

	"QuotePulse/internal/domain/models"
	drepo "QuotePulse/internal/domain/repository"
)

// HealthService composes the creator-store probes into one classified
// report.
type HealthService struct {
	store drepo.CreatorStore
}

// NewHealthService creates a health service. A nil store means the
// registry was never configured.
func NewHealthService(store drepo.CreatorStore) *HealthService {
	return &HealthService{store: store}
}

// Check runs all probes. Missing configuration short-circuits: there is
// nothing else worth probing without store credentials.
func (h *HealthService) Check(ctx context.Context) models.HealthResponse {
	if h.store == nil {
		return models.HealthResponse{
			Status: models.StatusUnhealthy,
			Checks: []models.HealthCheck{
				{Name: "configuration", OK: false, Error: "creator store not configured"},
			},
			Timestamp: time.Now().UTC(),
		}
	}

	checks := append([]models.HealthCheck{
		{Name: "configuration", OK: true},
	}, h.store.Health(ctx)...)

	return models.HealthResponse{
		Status:    ClassifyHealth(checks),
		Checks:    checks,
		Timestamp: time.Now().UTC(),
	}
}

// ClassifyHealth maps probe outcomes to an overall status. A failed
// secondary table leaves lookups working, so it only degrades; anything
// else failing is unhealthy.
func ClassifyHealth(checks []models.HealthCheck) string {
	status := models.StatusHealthy
	for _, c := range checks {
		if c.OK {
			continue
		}
		if c.Name == "tip_events_table" {
			if status == models.StatusHealthy {
				status = models.StatusDegraded
			}
			continue
		}
		return models.StatusUnhealthy
	}
	return status
}
