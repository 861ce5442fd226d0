package store

import (
	"context"
	"fmt"
	"time"

	"github.com/albapepper/courtside/internal/db"
)

// Health statuses.
const (
	HealthOperational = "operational"
	HealthDegraded    = "degraded"
	HealthError       = "error"
)

// DegradedErrorCount is the number of errors in 24h at which the system
// reports degraded.
const DegradedErrorCount = 10

type HealthRepository struct {
	db db.DB
}

// Check probes the database and gathers the operational snapshot. On a failed
// probe it returns a snapshot with status "error" alongside the cause. When the
// probe succeeds but a later query fails, the partial snapshot is "degraded".
func (r *HealthRepository) Check(ctx context.Context) (*Health, error) {
	h := &Health{
		Status:       HealthError,
		Database:     "disconnected",
		EntityCounts: map[string]int{},
		Timestamp:    time.Now().UTC(),
	}
	if _, err := r.db.Exec(ctx, "health_check"); err != nil {
		return h, fmt.Errorf("database probe: %w", err)
	}
	h.Database = "connected"
	h.Status = HealthDegraded

	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM error_logs WHERE created_at >= NOW() - INTERVAL '24 hours')::int,
			(SELECT COUNT(*) FROM data_loads WHERE status IN ('pending', 'running'))::int`,
	).Scan(&h.RecentErrors, &h.ActiveLoads)
	if err != nil {
		return h, fmt.Errorf("counting recent activity: %w", err)
	}

	last, err := selectMaps(ctx, r.db, `
		SELECT load_id, load_type, started_at, completed_at, records_processed, records_failed
		FROM data_loads
		WHERE status = 'completed'
		ORDER BY completed_at DESC, load_id DESC
		LIMIT 1`)
	if err != nil {
		return h, fmt.Errorf("querying last completed load: %w", err)
	}
	if len(last) > 0 {
		h.LastCompleted = last[0]
	}

	var players, teams, games, users int
	err = r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM players)::int,
			(SELECT COUNT(*) FROM teams)::int,
			(SELECT COUNT(*) FROM game)::int,
			(SELECT COUNT(*) FROM users)::int`,
	).Scan(&players, &teams, &games, &users)
	if err != nil {
		return h, fmt.Errorf("counting entities: %w", err)
	}
	h.EntityCounts = map[string]int{"players": players, "teams": teams, "games": games, "users": users}

	h.Status = HealthOperational
	if h.RecentErrors >= DegradedErrorCount {
		h.Status = HealthDegraded
	}
	return h, nil
}
