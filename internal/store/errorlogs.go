package store

import (
	"context"
	"fmt"

	"github.com/albapepper/courtside/internal/config"
	"github.com/albapepper/courtside/internal/db"
	"github.com/albapepper/courtside/internal/domain"
)

// MinPurgeDays is the youngest age an error log may be purged at.
const MinPurgeDays = 30

// ErrorLogRepository is the canonical sink for application errors.
type ErrorLogRepository struct {
	db db.DB
}

const errorLogSelect = `
	SELECT error_id, error_type, severity, module, error_message, stack_trace, user_id,
	       created_at, resolved_at, resolved_by, resolution_notes
	FROM error_logs`

func (r *ErrorLogRepository) Create(ctx context.Context, in ErrorLogInput) (int64, error) {
	if _, err := domain.ParseSeverity(in.Severity); err != nil {
		return 0, err
	}
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO error_logs (error_type, severity, module, error_message, stack_trace, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING error_id`,
		in.ErrorType, in.Severity, in.Module, in.ErrorMessage, in.StackTrace, in.UserID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting error log: %w", db.Translate(err))
	}
	return id, nil
}

// List returns logs from the last f.Days days plus a count per severity.
func (r *ErrorLogRepository) List(ctx context.Context, f ErrorLogFilter) ([]ErrorLog, map[string]int, error) {
	w := db.NewFilter()
	w.Add(daysBack("created_at"), f.Days)
	if f.Severity != nil {
		w.Add("severity = ?", *f.Severity)
	}
	if f.Module != nil {
		w.Add("module = ?", *f.Module)
	}
	if f.Resolved != nil {
		if *f.Resolved {
			w.Add("resolved_at IS NOT NULL")
		} else {
			w.Add("resolved_at IS NULL")
		}
	}
	logs, err := selectAll[ErrorLog](ctx, r.db,
		errorLogSelect+w.Where()+" ORDER BY created_at DESC, error_id DESC", w.Args()...)
	if err != nil {
		return nil, nil, fmt.Errorf("querying error logs: %w", err)
	}

	summary := map[string]int{
		string(domain.SeverityInfo):     0,
		string(domain.SeverityWarning):  0,
		string(domain.SeverityError):    0,
		string(domain.SeverityCritical): 0,
	}
	for _, l := range logs {
		summary[l.Severity]++
	}
	return logs, summary, nil
}

// Resolve stamps resolved_at together with the supplied resolver fields in one
// statement. Resolving an already resolved log keeps the first resolution.
func (r *ErrorLogRepository) Resolve(ctx context.Context, id int64, in ResolveInput) error {
	if in.Resolved != nil && !*in.Resolved {
		return domain.Invalid("Resolved error logs cannot be reopened")
	}
	b := db.NewUpdate(config.ErrorLogsTable, "resolved_by", "resolution_notes")
	db.SetIfPresent(b, "resolved_by", in.ResolvedBy)
	db.SetIfPresent(b, "resolution_notes", in.ResolutionNotes)
	cond := "error_id = ?"
	if in.Resolved != nil {
		b.SetRaw("resolved_at = NOW()")
		cond += " AND resolved_at IS NULL"
	} else if b.Len() == 0 {
		return domain.Invalid("No valid fields to update")
	}

	sql, args, err := b.BuildWhere(cond, id)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("resolving error log %d: %w", id, db.Translate(err))
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	ok, err := exists(ctx, r.db, config.ErrorLogsTable, "error_id", id)
	if err != nil {
		return fmt.Errorf("checking error log %d: %w", id, err)
	}
	if !ok {
		return domain.NotFound("Error log %d not found", id)
	}
	return nil
}

// Purge deletes logs older than days. With a severity, only rows at or below
// that level go.
func (r *ErrorLogRepository) Purge(ctx context.Context, days int, severity *domain.Severity) (int64, error) {
	if days < MinPurgeDays {
		return 0, domain.Invalid("days must be at least %d", MinPurgeDays)
	}
	w := db.NewFilter()
	w.Add("created_at < NOW() - make_interval(days => ?)", days)
	if severity != nil {
		w.Add("severity = ANY(?)", severity.AtOrBelow())
	}
	tag, err := r.db.Exec(ctx, "DELETE FROM error_logs"+w.Where(), w.Args()...)
	if err != nil {
		return 0, fmt.Errorf("purging error logs: %w", err)
	}
	return tag.RowsAffected(), nil
}
