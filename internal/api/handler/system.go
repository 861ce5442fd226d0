package handler

import (
	"errors"
	"net/http"

	"github.com/albapepper/courtside/internal/api/respond"
	"github.com/albapepper/courtside/internal/config"
	"github.com/albapepper/courtside/internal/domain"
	"github.com/albapepper/courtside/internal/logging"
	"github.com/albapepper/courtside/internal/metrics"
	"github.com/albapepper/courtside/internal/store"
)

const moduleSystem = "system"

// Default days-back windows for the operational listings.
const (
	defaultLoadDays       = 30
	defaultErrorLogDays   = 7
	defaultDataErrorDays  = 30
	defaultValidationDays = 30
	defaultSystemLogDays  = 7
	defaultDataErrorPurge = 30
	maxSystemLogLimit     = 1000
)

// queryDays reads a non-negative days-back window.
func queryDays(r *http.Request, def int) (int, error) {
	days, err := queryInt(r, "days", def)
	if err != nil {
		return 0, err
	}
	if days < 0 {
		return 0, domain.Invalid("days must not be negative")
	}
	return days, nil
}

// querySeverity reads an optional severity, rejecting unknown levels.
func querySeverity(r *http.Request) (*domain.Severity, error) {
	raw := queryString(r, "severity")
	if raw == nil {
		return nil, nil
	}
	sev, err := domain.ParseSeverity(*raw)
	if err != nil {
		return nil, err
	}
	return &sev, nil
}

// --------------------------------------------------------------------------
// Health
// --------------------------------------------------------------------------

// SystemHealth reports database connectivity and operational counters.
// @Summary System health
// @Description operational, degraded (10+ errors in 24h) or error (503) when the database is unreachable.
// @Tags system
// @Produce json
// @Success 200 {object} store.Health
// @Failure 503 {object} store.Health
// @Router /system/system-health [get]
func (h *Handler) SystemHealth(w http.ResponseWriter, r *http.Request) {
	health, err := h.Health.Check(r.Context())
	if err != nil {
		log := logging.FromContext(r.Context())
		switch {
		case health == nil:
			log.Error("Health check failed", "module", moduleSystem, "error", err)
			respond.WriteError(w, http.StatusServiceUnavailable, "Database unavailable")
		case health.Status == store.HealthDegraded:
			log.Warn("Health snapshot incomplete", "module", moduleSystem, "error", err)
			respond.WriteJSON(w, http.StatusOK, health)
		default:
			log.Error("Health check failed", "module", moduleSystem, "error", err)
			health.Status = store.HealthError
			respond.WriteJSON(w, http.StatusServiceUnavailable, health)
		}
		return
	}
	respond.WriteJSON(w, http.StatusOK, health)
}

// --------------------------------------------------------------------------
// Data loads
// --------------------------------------------------------------------------

// ListDataLoads returns load history with a per-status count.
// @Summary List data loads
// @Tags system
// @Produce json
// @Param status query string false "Status" Enums(pending, running, completed, failed)
// @Param load_type query string false "Load type"
// @Param days query int false "Days back (default 30)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /system/data-loads [get]
func (h *Handler) ListDataLoads(w http.ResponseWriter, r *http.Request) {
	f := store.LoadFilter{LoadType: queryString(r, "load_type")}
	var err error
	if f.Status, err = queryOneOf(r, "status", domain.LoadStatuses); err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	if f.Days, err = queryDays(r, defaultLoadDays); err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	loads, summary, err := h.Loads.List(r.Context(), f)
	if err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{
		"data_loads":     loads,
		"total_count":    len(loads),
		"status_summary": summary,
	})
}

// @Summary Get data load
// @Tags system
// @Produce json
// @Param id path int true "Load ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Router /system/data-loads/{id} [get]
func (h *Handler) GetDataLoad(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	load, err := h.Loads.Get(r.Context(), id)
	if err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{"data_load": load})
}

// CreateDataLoad records a pending load. A second load of the same type
// while one is pending or running is a conflict.
// @Summary Start data load
// @Tags system
// @Accept json
// @Produce json
// @Param body body store.LoadInput true "Load"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Router /system/data-loads [post]
func (h *Handler) CreateDataLoad(w http.ResponseWriter, r *http.Request) {
	var in store.LoadInput
	if err := h.decode(w, r, &in); err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	id, err := h.Loads.Create(r.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			metrics.DataLoadConflicts.Inc()
		}
		fail(w, r, moduleSystem, err)
		return
	}
	metrics.DataLoadsCreated.WithLabelValues(in.LoadType).Inc()
	respond.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "Data load created successfully",
		"load_id": id,
		"status":  domain.LoadPending,
	})
}

// UpdateDataLoad advances a load. completed and failed stamp completed_at and are final.
// @Summary Update data load
// @Tags system
// @Accept json
// @Produce json
// @Param id path int true "Load ID"
// @Param body body store.LoadPatch true "Fields to change"
// @Success 200 {object} respond.MessageResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Router /system/data-loads/{id} [put]
func (h *Handler) UpdateDataLoad(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	var in store.LoadPatch
	if err := h.decode(w, r, &in); err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	if err := h.Loads.Update(r.Context(), id, in); err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	respond.WriteMessage(w, http.StatusOK, "Data load updated successfully")
}

// --------------------------------------------------------------------------
// Error logs
// --------------------------------------------------------------------------

// ListErrorLogs returns recent error logs with a per-severity count.
// @Summary List error logs
// @Tags system
// @Produce json
// @Param severity query string false "Severity" Enums(info, warning, error, critical)
// @Param module query string false "Module"
// @Param resolved query bool false "Resolved state"
// @Param days query int false "Days back (default 7)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /system/error-logs [get]
func (h *Handler) ListErrorLogs(w http.ResponseWriter, r *http.Request) {
	f := store.ErrorLogFilter{Module: queryString(r, "module")}
	sev, err := querySeverity(r)
	if err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	if sev != nil {
		s := string(*sev)
		f.Severity = &s
	}
	if f.Resolved, err = queryBool(r, "resolved"); err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	if f.Days, err = queryDays(r, defaultErrorLogDays); err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	logs, summary, err := h.ErrorLogs.List(r.Context(), f)
	if err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{
		"error_logs":       logs,
		"total_count":      len(logs),
		"severity_summary": summary,
	})
}

// CreateErrorLog records an application error.
// @Summary Record error log
// @Tags system
// @Accept json
// @Produce json
// @Param body body store.ErrorLogInput true "Error"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /system/error-logs [post]
func (h *Handler) CreateErrorLog(w http.ResponseWriter, r *http.Request) {
	var in store.ErrorLogInput
	if err := h.decode(w, r, &in); err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	sev, err := domain.ParseSeverity(in.Severity)
	if err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	id, err := h.ErrorLogs.Create(r.Context(), in)
	if err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	metrics.ErrorLogsRecorded.WithLabelValues(string(sev)).Inc()
	created(w, "Error log created successfully", "error_id", id)
}

// ResolveErrorLog stamps resolved_at together with resolver and notes.
// @Summary Resolve error log
// @Tags system
// @Accept json
// @Produce json
// @Param id path int true "Error ID"
// @Param body body store.ResolveInput true "Resolution"
// @Success 200 {object} respond.MessageResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /system/error-logs/{id} [put]
func (h *Handler) ResolveErrorLog(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	var in store.ResolveInput
	if err := h.decode(w, r, &in); err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	if err := h.ErrorLogs.Resolve(r.Context(), id, in); err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	respond.WriteMessage(w, http.StatusOK, "Error log resolved successfully")
}

// PurgeErrorLogs deletes logs older than days (at least 30). With severity,
// only rows at or below that level are removed.
// @Summary Purge error logs
// @Tags system
// @Produce json
// @Param days query int true "Age in days, at least 30"
// @Param severity query string false "Highest severity to purge" Enums(info, warning, error, critical)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /system/error-logs [delete]
func (h *Handler) PurgeErrorLogs(w http.ResponseWriter, r *http.Request) {
	days, err := queryIntPtr(r, "days")
	if err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	if days == nil {
		fail(w, r, moduleSystem, domain.Invalid("days is required"))
		return
	}
	if *days < store.MinPurgeDays {
		fail(w, r, moduleSystem, domain.Invalid("days must be at least %d", store.MinPurgeDays))
		return
	}
	sev, err := querySeverity(r)
	if err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	n, err := h.ErrorLogs.Purge(r.Context(), *days, sev)
	if err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	metrics.RowsPurged.WithLabelValues(config.ErrorLogsTable).Add(float64(n))
	respond.WriteJSON(w, http.StatusOK, map[string]any{
		"message":       "Error logs purged successfully",
		"deleted_count": n,
	})
}

// --------------------------------------------------------------------------
// Data errors
// --------------------------------------------------------------------------

// ListDataErrors returns detected data errors and the unresolved breakdown.
// @Summary List data errors
// @Tags system
// @Produce json
// @Param error_type query string false "Type" Enums(duplicate, missing, invalid)
// @Param table_name query string false "Table"
// @Param days query int false "Days back (default 30)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /system/data-errors [get]
func (h *Handler) ListDataErrors(w http.ResponseWriter, r *http.Request) {
	f := store.DataErrorFilter{TableName: queryString(r, "table_name")}
	var err error
	if f.ErrorType, err = queryOneOf(r, "error_type", domain.DataErrorTypes); err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	if f.Days, err = queryDays(r, defaultDataErrorDays); err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	rows, summary, err := h.DataErrors.List(r.Context(), f)
	if err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{
		"data_errors":        rows,
		"total_count":        len(rows),
		"unresolved_summary": summary,
	})
}

// @Summary Record data error
// @Tags system
// @Accept json
// @Produce json
// @Param body body store.DataErrorInput true "Data error"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /system/data-errors [post]
func (h *Handler) CreateDataError(w http.ResponseWriter, r *http.Request) {
	var in store.DataErrorInput
	if err := h.decode(w, r, &in); err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	id, err := h.DataErrors.Create(r.Context(), in)
	if err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	created(w, "Data error recorded successfully", "data_error_id", id)
}

type resolveDataErrorRequest struct {
	AutoFixed *bool `json:"auto_fixed"`
}

// @Summary Resolve data error
// @Tags system
// @Accept json
// @Produce json
// @Param id path int true "Data error ID"
// @Param body body resolveDataErrorRequest false "Resolution"
// @Success 200 {object} respond.MessageResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /system/data-errors/{id} [put]
func (h *Handler) ResolveDataError(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	var req resolveDataErrorRequest
	if err := h.decodeOptional(w, r, &req); err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	if err := h.DataErrors.Resolve(r.Context(), id, req.AutoFixed); err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	respond.WriteMessage(w, http.StatusOK, "Data error resolved successfully")
}

// PurgeDataErrors deletes errors resolved more than days ago.
// @Summary Purge resolved data errors
// @Tags system
// @Produce json
// @Param days query int false "Resolved more than N days ago (default 30)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /system/data-errors [delete]
func (h *Handler) PurgeDataErrors(w http.ResponseWriter, r *http.Request) {
	days, err := queryDays(r, defaultDataErrorPurge)
	if err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	n, err := h.DataErrors.Purge(r.Context(), days)
	if err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	metrics.RowsPurged.WithLabelValues(config.DataErrorsTable).Add(float64(n))
	respond.WriteJSON(w, http.StatusOK, map[string]any{
		"message":       "Resolved data errors purged successfully",
		"deleted_count": n,
	})
}

// --------------------------------------------------------------------------
// Cleanup schedules
// --------------------------------------------------------------------------

// ListCleanup returns active schedules by next run and recent history.
// @Summary Cleanup schedules
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /system/data-cleanup [get]
func (h *Handler) ListCleanup(w http.ResponseWriter, r *http.Request) {
	schedules, history, err := h.Cleanup.ListActive(r.Context())
	if err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{
		"schedules":      schedules,
		"total_count":    len(schedules),
		"recent_history": history,
	})
}

// CreateCleanup adds a schedule; next_run defaults to one frequency from now.
// @Summary Create cleanup schedule
// @Tags system
// @Accept json
// @Produce json
// @Param body body store.CleanupInput true "Schedule"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Router /system/data-cleanup [post]
func (h *Handler) CreateCleanup(w http.ResponseWriter, r *http.Request) {
	var in store.CleanupInput
	if err := h.decode(w, r, &in); err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	id, err := h.Cleanup.Create(r.Context(), in)
	if err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	created(w, "Cleanup schedule created successfully", "schedule_id", id)
}

// @Summary Update cleanup schedule
// @Tags system
// @Accept json
// @Produce json
// @Param id path int true "Schedule ID"
// @Param body body store.CleanupPatch true "Fields to change"
// @Success 200 {object} respond.MessageResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Router /system/data-cleanup/{id} [put]
func (h *Handler) UpdateCleanup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	var in store.CleanupPatch
	if err := h.decode(w, r, &in); err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	if err := h.Cleanup.Update(r.Context(), id, in); err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	respond.WriteMessage(w, http.StatusOK, "Cleanup schedule updated successfully")
}

// RecordCleanupHistory appends the outcome of a cleanup run performed
// elsewhere. Nothing is deleted here.
// @Summary Record cleanup outcome
// @Tags system
// @Accept json
// @Produce json
// @Param body body store.CleanupHistoryInput true "Outcome"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /system/data-cleanup/history [post]
func (h *Handler) RecordCleanupHistory(w http.ResponseWriter, r *http.Request) {
	var in store.CleanupHistoryInput
	if err := h.decode(w, r, &in); err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	id, err := h.Cleanup.RecordHistory(r.Context(), in)
	if err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	created(w, "Cleanup history recorded successfully", "history_id", id)
}

// --------------------------------------------------------------------------
// Validation
// --------------------------------------------------------------------------

// ListValidation returns recent reports and a per-table outcome summary.
// @Summary Validation reports
// @Tags system
// @Produce json
// @Param status query string false "Status" Enums(passed, warning, failed)
// @Param days query int false "Days back (default 30)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /system/data-validation [get]
func (h *Handler) ListValidation(w http.ResponseWriter, r *http.Request) {
	var f store.ValidationFilter
	var err error
	if f.Status, err = queryOneOf(r, "status", domain.ValidationStatuses); err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	if f.Days, err = queryDays(r, defaultValidationDays); err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	reports, summary, err := h.Validation.List(r.Context(), f)
	if err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{
		"validation_reports": reports,
		"total_count":        len(reports),
		"summary":            summary,
	})
}

// overallStatus is the worst status among reports.
func overallStatus(reports []store.ValidationReport) string {
	status := domain.ValidationPassed
	for _, rep := range reports {
		switch rep.Status {
		case domain.ValidationFailed:
			return domain.ValidationFailed
		case domain.ValidationWarning:
			status = domain.ValidationWarning
		}
	}
	return status
}

// RunValidation counts invalid rows for one table (table_name) or several
// (tables) and stores a report per table. Any invalid rows answer 422 with
// the reports attached.
// @Summary Run data validation
// @Tags system
// @Accept json
// @Produce json
// @Param body body store.ValidationRun true "Run"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 422 {object} map[string]interface{}
// @Router /system/data-validation [post]
func (h *Handler) RunValidation(w http.ResponseWriter, r *http.Request) {
	var in store.ValidationRun
	if err := h.decode(w, r, &in); err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	reports, err := h.Validation.Run(r.Context(), in)
	if err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	for _, rep := range reports {
		metrics.ValidationRuns.WithLabelValues(rep.TableName, rep.Status).Inc()
	}

	status := http.StatusOK
	msg := "Validation passed"
	if store.HasIssues(reports) {
		status = http.StatusUnprocessableEntity
		msg = "Validation found invalid records"
	}
	out := map[string]any{
		"message":     msg,
		"status":      overallStatus(reports),
		"reports":     reports,
		"total_count": len(reports),
	}
	if len(reports) == 1 {
		out["validation_id"] = reports[0].ValidationID
		out["report"] = reports[0]
	}
	respond.WriteJSON(w, status, out)
}

// --------------------------------------------------------------------------
// System logs
// --------------------------------------------------------------------------

// ListSystemLogs reads the journal mirrored from data loads and error logs.
// @Summary System logs
// @Tags system
// @Produce json
// @Param log_type query string false "data_load or error"
// @Param severity query string false "Severity"
// @Param days query int false "Days back (default 7)"
// @Param limit query int false "Maximum rows (default 100)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /system/system-logs [get]
func (h *Handler) ListSystemLogs(w http.ResponseWriter, r *http.Request) {
	f := store.SystemLogFilter{LogType: queryString(r, "log_type"), Severity: queryString(r, "severity")}
	var err error
	if f.Days, err = queryDays(r, defaultSystemLogDays); err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	if f.Limit, err = queryInt(r, "limit", store.DefaultSystemLogLimit); err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	if f.Limit <= 0 || f.Limit > maxSystemLogLimit {
		fail(w, r, moduleSystem, domain.Invalid("limit must be between 1 and %d", maxSystemLogLimit))
		return
	}
	logs, err := h.SystemLogs.List(r.Context(), f)
	if err != nil {
		fail(w, r, moduleSystem, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{"system_logs": logs, "total_count": len(logs)})
}
