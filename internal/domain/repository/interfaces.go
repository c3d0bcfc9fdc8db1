package repository

import (
	"context"

	"QuotePulse/internal/domain/models"
)

// QuoteSource resolves one symbol to a quote. Implementations return an
// error for any failure mode (transport, non-2xx, missing data); callers
// treat all failures identically and drop the symbol.
type QuoteSource interface {
	Fetch(ctx context.Context, symbol string) (*models.Quote, error)
}

// CreatorStore exposes read operations against the creator registry.
type CreatorStore interface {
	// Lookup finds one creator by platform and normalized handle.
	// Returns (nil, nil) when no registration exists.
	Lookup(ctx context.Context, platform, handle string) (*models.Creator, error)
	// BatchLookup resolves up to 100 handles in one query. The result is
	// keyed by normalized handle; missing handles are absent.
	BatchLookup(ctx context.Context, platform string, handles []string) (map[string]*models.Creator, error)
	// Health probes the store and its tables.
	Health(ctx context.Context) []models.HealthCheck
}

// SnapshotPublisher pushes aggregated quote snapshots to an external
// sink (Kafka).
type SnapshotPublisher interface {
	Publish(ctx context.Context, snapshot models.QuoteSnapshot) error
	Close() error
}

// Metrics records operational counters for the quote pipeline.
type Metrics interface {
	RecordFetch(source, symbol string)
	RecordError(kind string)
	RecordLastPrice(symbol string, price float64)
	RecordLatency(op string, seconds float64)
}
