package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/albapepper/courtside/internal/config"
	"github.com/albapepper/courtside/internal/db"
	"github.com/albapepper/courtside/internal/domain"
)

// validationTarget is a table a run may count, with the predicate that marks
// a row invalid. An empty predicate counts nothing as invalid.
type validationTarget struct {
	table   string
	invalid string
}

// validationTargets is keyed by lower-case table name without underscores so
// "Players", "players" and "TeamsPlayers"/"teams_players" all resolve.
var validationTargets = map[string]validationTarget{
	"players":             {config.PlayersTable, "first_name IS NULL OR last_name IS NULL"},
	"teams":               {config.TeamsTable, "name IS NULL OR city IS NULL"},
	"teamsplayers":        {config.TeamsPlayersTable, ""},
	"game":                {config.GameTable, ""},
	"games":               {config.GameTable, ""},
	"playergamestats":     {config.PlayerGameStatsTable, ""},
	"lineupconfiguration": {config.LineupTable, ""},
	"playerlineups":       {config.PlayerLineupsTable, ""},
	"gameplans":           {config.GamePlansTable, ""},
	"draftevaluations":    {config.DraftEvaluationsTable, ""},
	"users":               {config.UsersTable, ""},
	"dataloads":           {config.DataLoadsTable, ""},
	"errorlogs":           {config.ErrorLogsTable, ""},
	"dataerrors":          {config.DataErrorsTable, ""},
}

func lookupTarget(name string) (validationTarget, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "")
	t, ok := validationTargets[key]
	if !ok {
		return validationTarget{}, domain.Invalid("Unknown table '%s'", name)
	}
	return t, nil
}

// ValidationRepository runs counting queries and records their reports.
type ValidationRepository struct {
	db        db.DB
	threshold float64
}

const validationSelect = `
	SELECT validation_id, validation_type, table_name, status, total_records,
	       valid_records, invalid_records, validation_rules, error_details, run_date, run_by
	FROM validation_reports`

// List returns recent reports and a passed/warning/failed count per table.
func (r *ValidationRepository) List(ctx context.Context, f ValidationFilter) ([]ValidationReport, []ValidationSummary, error) {
	w := db.NewFilter()
	w.Add(daysBack("run_date"), f.Days)
	if f.Status != nil {
		w.Add("status = ?", *f.Status)
	}
	reports, err := selectAll[ValidationReport](ctx, r.db,
		validationSelect+w.Where()+" ORDER BY run_date DESC, validation_id DESC", w.Args()...)
	if err != nil {
		return nil, nil, fmt.Errorf("querying validation reports: %w", err)
	}

	summary, err := selectAll[ValidationSummary](ctx, r.db, `
		SELECT table_name,
		       COUNT(*) FILTER (WHERE status = 'passed')::int  AS passed,
		       COUNT(*) FILTER (WHERE status = 'warning')::int AS warning,
		       COUNT(*) FILTER (WHERE status = 'failed')::int  AS failed
		FROM validation_reports`+w.Where()+`
		GROUP BY table_name
		ORDER BY table_name`, w.Args()...)
	if err != nil {
		return nil, nil, fmt.Errorf("summarizing validation reports: %w", err)
	}
	return reports, summary, nil
}

// Run validates table_name, or every entry of Tables, and records one report
// per table. All reports commit together.
func (r *ValidationRepository) Run(ctx context.Context, in ValidationRun) ([]ValidationReport, error) {
	names := in.Tables
	if len(names) == 0 {
		names = []string{in.TableName}
	}
	targets := make([]validationTarget, 0, len(names))
	for _, n := range names {
		t, err := lookupTarget(n)
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}

	reports := make([]ValidationReport, 0, len(targets))
	err := db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		for _, t := range targets {
			rep, err := r.runOne(ctx, tx, t, in)
			if err != nil {
				return err
			}
			reports = append(reports, *rep)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *ValidationRepository) runOne(ctx context.Context, tx pgx.Tx, t validationTarget, in ValidationRun) (*ValidationReport, error) {
	pred := "FALSE"
	if t.invalid != "" {
		pred = t.invalid
	}
	var total, invalid int
	err := tx.QueryRow(ctx,
		"SELECT COUNT(*)::int, COUNT(*) FILTER (WHERE "+pred+")::int FROM "+t.table,
	).Scan(&total, &invalid)
	if err != nil {
		return nil, fmt.Errorf("counting %s: %w", t.table, err)
	}

	status := domain.ValidationStatus(invalid, total, r.threshold)
	var details *string
	if invalid > 0 {
		d := fmt.Sprintf("%d of %d rows in %s failed %s", invalid, total, t.table, in.ValidationType)
		details = &d
	}

	rep, err := selectOne[ValidationReport](ctx, tx, `
		INSERT INTO validation_reports (validation_type, table_name, status, total_records,
		                                valid_records, invalid_records, validation_rules,
		                                error_details, run_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING validation_id, validation_type, table_name, status, total_records,
		          valid_records, invalid_records, validation_rules, error_details, run_date, run_by`,
		in.ValidationType, t.table, status, total, total-invalid, invalid, in.Rules, details, in.RunBy,
	)
	if err != nil {
		return nil, fmt.Errorf("recording validation of %s: %w", t.table, db.Translate(err))
	}
	return rep, nil
}

// HasIssues reports whether any report is not passed.
func HasIssues(reports []ValidationReport) bool {
	for _, r := range reports {
		if r.Status != domain.ValidationPassed {
			return true
		}
	}
	return false
}
