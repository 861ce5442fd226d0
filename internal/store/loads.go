package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/albapepper/courtside/internal/config"
	"github.com/albapepper/courtside/internal/db"
	"github.com/albapepper/courtside/internal/domain"
)

// DataLoadRepository records ingestion intent and outcome. Nothing here runs
// a load.
type DataLoadRepository struct {
	db  db.DB
	now func() time.Time
}

const loadSelect = `
	SELECT load_id, load_type, status, started_at, completed_at, records_processed,
	       records_failed, error_message, source_file, initiated_by
	FROM data_loads`

func (r *DataLoadRepository) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

func (r *DataLoadRepository) withDuration(loads []DataLoad) {
	now := r.clock()
	for i := range loads {
		loads[i].DurationSeconds = domain.DurationSeconds(loads[i].StartedAt, loads[i].CompletedAt, now)
	}
}

// List returns loads started within f.Days, newest first, plus a count per
// status over the same window.
func (r *DataLoadRepository) List(ctx context.Context, f LoadFilter) ([]DataLoad, map[string]int, error) {
	w := db.NewFilter()
	w.Add(daysBack("started_at"), f.Days)
	if f.Status != nil {
		w.Add("status = ?", *f.Status)
	}
	if f.LoadType != nil {
		w.Add("load_type = ?", *f.LoadType)
	}
	loads, err := selectAll[DataLoad](ctx, r.db, loadSelect+w.Where()+" ORDER BY started_at DESC, load_id DESC", w.Args()...)
	if err != nil {
		return nil, nil, fmt.Errorf("querying data loads: %w", err)
	}
	r.withDuration(loads)

	summary := make(map[string]int, len(domain.LoadStatuses))
	for _, s := range domain.LoadStatuses {
		summary[s] = 0
	}
	for _, l := range loads {
		summary[l.Status]++
	}
	return loads, summary, nil
}

func (r *DataLoadRepository) Get(ctx context.Context, id int64) (*DataLoad, error) {
	l, err := selectOne[DataLoad](ctx, r.db, loadSelect+" WHERE load_id = $1", id)
	if db.IsNoRows(err) {
		return nil, domain.NotFound("Data load %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying data load %d: %w", id, err)
	}
	l.DurationSeconds = domain.DurationSeconds(l.StartedAt, l.CompletedAt, r.clock())
	return l, nil
}

// Create records a pending load. A load of the same type that is still
// pending or running is a conflict; the partial unique index
// uq_data_loads_active settles concurrent inserts.
func (r *DataLoadRepository) Create(ctx context.Context, in LoadInput) (int64, error) {
	var id int64
	err := db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		var active int64
		err := tx.QueryRow(ctx,
			"SELECT load_id FROM data_loads WHERE load_type = $1 AND status IN ('pending', 'running') LIMIT 1",
			in.LoadType,
		).Scan(&active)
		if err == nil {
			return domain.Conflict("A %s load is already in progress (load %d)", in.LoadType, active)
		}
		if !db.IsNoRows(err) {
			return fmt.Errorf("checking active %s loads: %w", in.LoadType, err)
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO data_loads (load_type, status, source_file, initiated_by)
			VALUES ($1, 'pending', $2, $3)
			RETURNING load_id`,
			in.LoadType, in.SourceFile, in.InitiatedBy,
		).Scan(&id)
		if db.IsUniqueViolation(err, "uq_data_loads_active") {
			return domain.Conflict("A %s load is already in progress", in.LoadType)
		}
		if err != nil {
			return fmt.Errorf("inserting data load: %w", db.Translate(err))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Update applies a partial status/progress change. Moving to completed or
// failed stamps completed_at. A completed or failed load keeps its status.
func (r *DataLoadRepository) Update(ctx context.Context, id int64, in LoadPatch) error {
	b := db.NewUpdate(config.DataLoadsTable, "status", "records_processed", "records_failed", "error_message")
	db.SetIfPresent(b, "status", in.Status)
	db.SetIfPresent(b, "records_processed", in.RecordsProcessed)
	db.SetIfPresent(b, "records_failed", in.RecordsFailed)
	db.SetIfPresent(b, "error_message", in.ErrorMessage)
	if b.Len() == 0 {
		return domain.Invalid("No valid fields to update")
	}

	return db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		var current string
		err := tx.QueryRow(ctx, "SELECT status FROM data_loads WHERE load_id = $1 FOR UPDATE", id).Scan(&current)
		if db.IsNoRows(err) {
			return domain.NotFound("Data load %d not found", id)
		}
		if err != nil {
			return fmt.Errorf("locking data load %d: %w", id, err)
		}

		if in.Status != nil && *in.Status != current {
			if domain.IsTerminalLoadStatus(current) {
				return domain.Conflict("Data load %d is already %s", id, current)
			}
			if domain.IsTerminalLoadStatus(*in.Status) {
				b.SetRaw("completed_at = GREATEST(NOW(), started_at)")
			}
		}

		sql, args, err := b.Build("load_id", id)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, sql, args...)
		if db.IsUniqueViolation(err, "uq_data_loads_active") {
			return domain.Conflict("Another load of this type is already in progress")
		}
		if err != nil {
			return fmt.Errorf("updating data load %d: %w", id, db.Translate(err))
		}
		return nil
	})
}
