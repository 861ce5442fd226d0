// Package store is the data access layer: one repository per resource area,
// each translating typed inputs into parameterized SQL against Postgres.
package store

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/albapepper/courtside/internal/db"
)

// Store groups every repository over one shared pool.
type Store struct {
	Players     *PlayerRepository
	Teams       *TeamRepository
	Games       *GameRepository
	Analytics   *AnalyticsRepository
	Plans       *GamePlanRepository
	Evaluations *EvaluationRepository
	Users       *UserRepository
	Loads       *DataLoadRepository
	ErrorLogs   *ErrorLogRepository
	DataErrors  *DataErrorRepository
	Cleanup     *CleanupRepository
	Validation  *ValidationRepository
	SystemLogs  *SystemLogRepository
	Health      *HealthRepository
}

// New wires every repository to conn. warningThreshold is the invalid-row
// ratio below which a validation run is a warning rather than a failure.
func New(conn db.DB, warningThreshold float64) *Store {
	return &Store{
		Players:     &PlayerRepository{db: conn},
		Teams:       &TeamRepository{db: conn},
		Games:       &GameRepository{db: conn},
		Analytics:   &AnalyticsRepository{db: conn},
		Plans:       &GamePlanRepository{db: conn},
		Evaluations: &EvaluationRepository{db: conn},
		Users:       &UserRepository{db: conn},
		Loads:       &DataLoadRepository{db: conn},
		ErrorLogs:   &ErrorLogRepository{db: conn},
		DataErrors:  &DataErrorRepository{db: conn},
		Cleanup:     &CleanupRepository{db: conn},
		Validation:  &ValidationRepository{db: conn, threshold: warningThreshold},
		SystemLogs:  &SystemLogRepository{db: conn},
		Health:      &HealthRepository{db: conn},
	}
}

// ---- Row helpers ----

// selectAll runs sql and maps every row onto T by column name. The result is
// never nil so empty collections encode as [].
func selectAll[T any](ctx context.Context, q db.Querier, sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// selectOne maps exactly one row onto T; no rows yields pgx.ErrNoRows.
func selectOne[T any](ctx context.Context, q db.Querier, sql string, args ...any) (*T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByNameLax[T])
}

// selectMaps returns dictionary rows keyed by column name.
func selectMaps(ctx context.Context, q db.Querier, sql string, args ...any) ([]map[string]any, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	out, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []map[string]any{}
	}
	return out, nil
}

// exists reports whether a row with the given key is present in table.
// table and keyCol are always package constants.
func exists(ctx context.Context, q db.Querier, table, keyCol string, id int64) (bool, error) {
	var ok bool
	err := q.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM "+table+" WHERE "+keyCol+" = $1)", id).Scan(&ok)
	return ok, err
}

// daysBack is the standard "created within the last N days" predicate.
func daysBack(col string) string {
	return col + " >= NOW() - make_interval(days => ?)"
}
