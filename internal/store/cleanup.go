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

const (
	cleanupHistoryDays  = 30
	cleanupHistoryLimit = 20
)

// CleanupRepository records cleanup schedules and their outcomes. It never
// deletes anything on a schedule's behalf.
type CleanupRepository struct {
	db db.DB
}

const scheduleSelect = `
	SELECT schedule_id, cleanup_type, frequency, next_run, last_run, retention_days,
	       is_active, created_by, created_at
	FROM cleanup_schedule`

// ListActive returns active schedules by next_run and the recent history.
func (r *CleanupRepository) ListActive(ctx context.Context) ([]CleanupSchedule, []CleanupHistory, error) {
	schedules, err := selectAll[CleanupSchedule](ctx, r.db,
		scheduleSelect+" WHERE is_active ORDER BY next_run, schedule_id")
	if err != nil {
		return nil, nil, fmt.Errorf("querying cleanup schedules: %w", err)
	}
	history, err := selectAll[CleanupHistory](ctx, r.db, `
		SELECT history_id, schedule_id, cleanup_type, started_at, completed_at,
		       records_deleted, status, error_message
		FROM cleanup_history
		WHERE started_at >= NOW() - make_interval(days => $1)
		ORDER BY started_at DESC, history_id DESC
		LIMIT $2`, cleanupHistoryDays, cleanupHistoryLimit)
	if err != nil {
		return nil, nil, fmt.Errorf("querying cleanup history: %w", err)
	}
	return schedules, history, nil
}

func (r *CleanupRepository) Get(ctx context.Context, id int64) (*CleanupSchedule, error) {
	s, err := selectOne[CleanupSchedule](ctx, r.db, scheduleSelect+" WHERE schedule_id = $1", id)
	if db.IsNoRows(err) {
		return nil, domain.NotFound("Cleanup schedule %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying cleanup schedule %d: %w", id, err)
	}
	return s, nil
}

// Create adds an active schedule. When next_run is omitted it is one
// frequency unit from now.
func (r *CleanupRepository) Create(ctx context.Context, in CleanupInput) (int64, error) {
	next := in.NextRun
	if next == nil {
		t, err := domain.NextRun(in.Frequency, time.Now().UTC())
		if err != nil {
			return 0, err
		}
		next = &t
	}

	var id int64
	err := db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		var active int64
		err := tx.QueryRow(ctx,
			"SELECT schedule_id FROM cleanup_schedule WHERE cleanup_type = $1 AND is_active",
			in.CleanupType,
		).Scan(&active)
		if err == nil {
			return domain.Conflict("Active cleanup schedule for '%s' already exists", in.CleanupType)
		}
		if !db.IsNoRows(err) {
			return fmt.Errorf("checking cleanup schedules: %w", err)
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO cleanup_schedule (cleanup_type, frequency, next_run, retention_days, created_by)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING schedule_id`,
			in.CleanupType, in.Frequency, *next, in.RetentionDays, in.CreatedBy,
		).Scan(&id)
		if db.IsUniqueViolation(err, "uq_cleanup_schedule_active") {
			return domain.Conflict("Active cleanup schedule for '%s' already exists", in.CleanupType)
		}
		if err != nil {
			return fmt.Errorf("inserting cleanup schedule: %w", db.Translate(err))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *CleanupRepository) Update(ctx context.Context, id int64, in CleanupPatch) error {
	b := db.NewUpdate(config.CleanupScheduleTable, "frequency", "next_run", "retention_days", "is_active")
	db.SetIfPresent(b, "frequency", in.Frequency)
	db.SetIfPresent(b, "next_run", in.NextRun)
	db.SetIfPresent(b, "retention_days", in.RetentionDays)
	db.SetIfPresent(b, "is_active", in.IsActive)
	if b.Len() == 0 {
		return domain.Invalid("No valid fields to update")
	}

	sql, args, err := b.Build("schedule_id", id)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if db.IsUniqueViolation(err, "uq_cleanup_schedule_active") {
		return domain.Conflict("Another active schedule exists for this cleanup type")
	}
	if err != nil {
		return fmt.Errorf("updating cleanup schedule %d: %w", id, db.Translate(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("Cleanup schedule %d not found", id)
	}
	return nil
}

// RecordHistory appends an outcome and, when it names a schedule, stamps that
// schedule's last_run in the same transaction.
func (r *CleanupRepository) RecordHistory(ctx context.Context, in CleanupHistoryInput) (int64, error) {
	var id int64
	err := db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		if in.ScheduleID != nil {
			tag, err := tx.Exec(ctx,
				"UPDATE cleanup_schedule SET last_run = NOW() WHERE schedule_id = $1", *in.ScheduleID)
			if err != nil {
				return fmt.Errorf("stamping schedule %d: %w", *in.ScheduleID, err)
			}
			if tag.RowsAffected() == 0 {
				return domain.NotFound("Cleanup schedule %d not found", *in.ScheduleID)
			}
		}
		err := tx.QueryRow(ctx, `
			INSERT INTO cleanup_history (schedule_id, cleanup_type, completed_at,
			                             records_deleted, status, error_message)
			VALUES ($1, $2, NOW(), $3, $4, $5)
			RETURNING history_id`,
			in.ScheduleID, in.CleanupType, in.RecordsDeleted, in.Status, in.ErrorMessage,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("inserting cleanup history: %w", db.Translate(err))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}
