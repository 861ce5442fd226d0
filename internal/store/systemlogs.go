package store

import (
	"context"
	"fmt"

	"github.com/albapepper/courtside/internal/db"
)

// DefaultSystemLogLimit caps a journal read when the caller gives no limit.
const DefaultSystemLogLimit = 100

// SystemLogRepository reads the journal that triggers keep in step with
// data_loads and error_logs. It has no write path.
type SystemLogRepository struct {
	db db.DB
}

func (r *SystemLogRepository) List(ctx context.Context, f SystemLogFilter) ([]SystemLog, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultSystemLogLimit
	}
	w := db.NewFilter()
	w.Add(daysBack("created_at"), f.Days)
	if f.LogType != nil {
		w.Add("log_type = ?", *f.LogType)
	}
	if f.Severity != nil {
		w.Add("severity = ?", *f.Severity)
	}
	sql := `
		SELECT log_id, log_type, service_name, severity, message, source_file, user_id,
		       records_processed, records_failed, created_at, resolved_at
		FROM system_logs` + w.Where() + " ORDER BY created_at DESC, log_id DESC LIMIT " + w.Arg(limit)
	logs, err := selectAll[SystemLog](ctx, r.db, sql, w.Args()...)
	if err != nil {
		return nil, fmt.Errorf("querying system logs: %w", err)
	}
	return logs, nil
}
