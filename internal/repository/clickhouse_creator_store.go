package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"QuotePulse/internal/domain/models"
	pkgch "QuotePulse/pkg/clickhouse"
)

// maxBatchHandles caps one batch-lookup query.
const maxBatchHandles = 100

// CreatorStore reads the creator registry from ClickHouse.
type CreatorStore struct {
	client   *pkgch.Client
	database string
}

// NewCreatorStore creates a ClickHouse-backed creator store.
func NewCreatorStore(client *pkgch.Client, database string) *CreatorStore {
	return &CreatorStore{client: client, database: database}
}

// NormalizeHandle canonicalizes a creator handle: trimmed, lowercased,
// leading @ stripped. Stored handles are always in this form.
func NormalizeHandle(handle string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(handle), "@"))
}

// Lookup finds one creator by platform and normalized handle. Returns
// (nil, nil) when no registration exists.
func (s *CreatorStore) Lookup(ctx context.Context, platform, handle string) (*models.Creator, error) {
	query := fmt.Sprintf(
		`SELECT platform, handle, display_name, address, verified, created_at
		 FROM %s.creators WHERE platform = ? AND handle = ? LIMIT 1`,
		s.database,
	)

	row := s.client.DB().QueryRowContext(ctx, query, platform, handle)
	var c models.Creator
	var verified uint8
	if err := row.Scan(&c.Platform, &c.Handle, &c.DisplayName, &c.Address, &verified, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("creator lookup: %w", err)
	}
	c.Verified = verified != 0
	return &c, nil
}

// BatchLookup resolves up to 100 normalized handles in one query. The
// result is keyed by normalized handle; handles without a registration
// are absent from the map.
func (s *CreatorStore) BatchLookup(ctx context.Context, platform string, handles []string) (map[string]*models.Creator, error) {
	if len(handles) == 0 {
		return map[string]*models.Creator{}, nil
	}
	if len(handles) > maxBatchHandles {
		return nil, fmt.Errorf("batch lookup: %d handles exceeds cap of %d", len(handles), maxBatchHandles)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(handles)), ",")
	query := fmt.Sprintf(
		`SELECT platform, handle, display_name, address, verified, created_at
		 FROM %s.creators WHERE platform = ? AND handle IN (%s)`,
		s.database, placeholders,
	)

	args := make([]interface{}, 0, len(handles)+1)
	args = append(args, platform)
	for _, h := range handles {
		args = append(args, h)
	}

	rows, err := s.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("creator batch lookup: %w", err)
	}
	defer rows.Close()

	result := make(map[string]*models.Creator, len(handles))
	for rows.Next() {
		var c models.Creator
		var verified uint8
		if err := rows.Scan(&c.Platform, &c.Handle, &c.DisplayName, &c.Address, &verified, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("creator batch scan: %w", err)
		}
		c.Verified = verified != 0
		result[c.Handle] = &c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("creator batch rows: %w", err)
	}
	return result, nil
}

// Health probes the connection and both registry tables. The creators
// table is the primary; tip_events only feeds stats, so its probe is
// classified separately by the caller.
func (s *CreatorStore) Health(ctx context.Context) []models.HealthCheck {
	checks := make([]models.HealthCheck, 0, 3)

	if err := s.client.Health(ctx); err != nil {
		checks = append(checks, models.HealthCheck{Name: "database", OK: false, Error: err.Error()})
		return checks
	}
	checks = append(checks, models.HealthCheck{Name: "database", OK: true})

	checks = append(checks, s.probeTable(ctx, "creators", "creators_table"))
	checks = append(checks, s.probeTable(ctx, "tip_events", "tip_events_table"))
	return checks
}

func (s *CreatorStore) probeTable(ctx context.Context, table, checkName string) models.HealthCheck {
	query := fmt.Sprintf("SELECT 1 FROM %s.%s LIMIT 1", s.database, table)
	rows, err := s.client.DB().QueryContext(ctx, query)
	if err != nil {
		return models.HealthCheck{Name: checkName, OK: false, Error: err.Error()}
	}
	rows.Close()
	return models.HealthCheck{Name: checkName, OK: true}
}
