package store

import (
	"context"
	"fmt"

	"github.com/albapepper/courtside/internal/config"
	"github.com/albapepper/courtside/internal/db"
	"github.com/albapepper/courtside/internal/domain"
)

// DataErrorRepository tracks data-quality defects found by pipelines.
type DataErrorRepository struct {
	db db.DB
}

const dataErrorSelect = `
	SELECT data_error_id, error_type, table_name, record_id, field_name, invalid_value,
	       expected_format, detected_at, resolved_at, auto_fixed
	FROM data_errors`

func (r *DataErrorRepository) Create(ctx context.Context, in DataErrorInput) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO data_errors (error_type, table_name, record_id, field_name,
		                         invalid_value, expected_format)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING data_error_id`,
		in.ErrorType, in.TableName, in.RecordID, in.FieldName, in.InvalidValue, in.ExpectedFormat,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting data error: %w", db.Translate(err))
	}
	return id, nil
}

// List returns errors detected in the last f.Days days plus unresolved counts
// per (table_name, error_type).
func (r *DataErrorRepository) List(ctx context.Context, f DataErrorFilter) ([]DataError, []DataErrorSummary, error) {
	w := db.NewFilter()
	w.Add(daysBack("detected_at"), f.Days)
	if f.ErrorType != nil {
		w.Add("error_type = ?", *f.ErrorType)
	}
	if f.TableName != nil {
		w.Add("table_name = ?", *f.TableName)
	}
	rows, err := selectAll[DataError](ctx, r.db,
		dataErrorSelect+w.Where()+" ORDER BY detected_at DESC, data_error_id DESC", w.Args()...)
	if err != nil {
		return nil, nil, fmt.Errorf("querying data errors: %w", err)
	}

	summary, err := selectAll[DataErrorSummary](ctx, r.db, `
		SELECT table_name, error_type, COUNT(*)::int AS unresolved
		FROM data_errors`+w.Where()+` AND resolved_at IS NULL
		GROUP BY table_name, error_type
		ORDER BY table_name, error_type`, w.Args()...)
	if err != nil {
		return nil, nil, fmt.Errorf("summarizing data errors: %w", err)
	}
	return rows, summary, nil
}

// Resolve marks a data error resolved, optionally as auto-fixed.
func (r *DataErrorRepository) Resolve(ctx context.Context, id int64, autoFixed *bool) error {
	b := db.NewUpdate(config.DataErrorsTable, "auto_fixed")
	db.SetIfPresent(b, "auto_fixed", autoFixed)
	b.SetRaw("resolved_at = NOW()")

	sql, args, err := b.Build("data_error_id", id)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("resolving data error %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("Data error %d not found", id)
	}
	return nil
}

// Purge removes errors resolved more than days ago. Unresolved rows stay.
func (r *DataErrorRepository) Purge(ctx context.Context, days int) (int64, error) {
	if days < 0 {
		return 0, domain.Invalid("days must not be negative")
	}
	tag, err := r.db.Exec(ctx, `
		DELETE FROM data_errors
		WHERE resolved_at IS NOT NULL AND resolved_at < NOW() - make_interval(days => $1)`, days)
	if err != nil {
		return 0, fmt.Errorf("purging data errors: %w", err)
	}
	return tag.RowsAffected(), nil
}
