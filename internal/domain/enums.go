package domain

import (
	"slices"
	"strings"
)

// --------------------------------------------------------------------------
// Severity (error logs): total order info < warning < error < critical
// --------------------------------------------------------------------------

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

var severityOrder = []Severity{SeverityInfo, SeverityWarning, SeverityError, SeverityCritical}

// ParseSeverity accepts only the four known levels.
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(s)
	if !slices.Contains(severityOrder, sev) {
		return "", Invalid("Invalid severity. Must be one of: %s", joinSeverities(severityOrder))
	}
	return sev, nil
}

// Rank is the position of s in the severity order, -1 when unknown.
func (s Severity) Rank() int {
	return slices.Index(severityOrder, s)
}

// AtOrBelow returns every severity whose rank is <= s, lowest first.
func (s Severity) AtOrBelow() []string {
	r := s.Rank()
	if r < 0 {
		return nil
	}
	out := make([]string, 0, r+1)
	for _, sev := range severityOrder[:r+1] {
		out = append(out, string(sev))
	}
	return out
}

func joinSeverities(ss []Severity) string {
	parts := make([]string, len(ss))
	for i, s := range ss {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

// --------------------------------------------------------------------------
// Status sets
// --------------------------------------------------------------------------

const (
	LoadPending   = "pending"
	LoadRunning   = "running"
	LoadCompleted = "completed"
	LoadFailed    = "failed"
)

var LoadStatuses = []string{LoadPending, LoadRunning, LoadCompleted, LoadFailed}

// IsTerminalLoadStatus reports whether a load in this status carries a completed_at.
func IsTerminalLoadStatus(s string) bool {
	return s == LoadCompleted || s == LoadFailed
}

const (
	GameScheduled  = "scheduled"
	GameInProgress = "in_progress"
	GameCompleted  = "completed"
)

var GameStatuses = []string{GameScheduled, GameInProgress, GameCompleted}

const (
	PlanDraft    = "draft"
	PlanActive   = "active"
	PlanArchived = "archived"
)

var PlanStatuses = []string{PlanDraft, PlanActive, PlanArchived}

var EvaluationTypes = []string{"prospect", "free_agent", "trade_target"}

var DataErrorTypes = []string{"duplicate", "missing", "invalid"}

const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

var Frequencies = []string{FrequencyDaily, FrequencyWeekly, FrequencyMonthly}

const (
	ValidationPassed  = "passed"
	ValidationWarning = "warning"
	ValidationFailed  = "failed"
)

var ValidationStatuses = []string{ValidationPassed, ValidationWarning, ValidationFailed}

// OneOf returns an Invalid error naming field when v is not in allowed.
func OneOf(field, v string, allowed []string) error {
	if slices.Contains(allowed, v) {
		return nil
	}
	return Invalid("Invalid %s '%s'. Must be one of: %s", field, v, strings.Join(allowed, ", "))
}

// --------------------------------------------------------------------------
// Roles
// --------------------------------------------------------------------------

var teamAssignableRoles = []string{"head_coach", "general_manager", "coach", "gm"}

// CanAssignTeam reports whether a user with role may be attached to a team.
func CanAssignTeam(role string) bool {
	return slices.Contains(teamAssignableRoles, strings.ToLower(role))
}

// --------------------------------------------------------------------------
// Ratings
// --------------------------------------------------------------------------

const (
	MinRating = 0
	MaxRating = 100
)

// CheckRating rejects ratings outside [0,100].
func CheckRating(field string, v *float64) error {
	if v == nil {
		return nil
	}
	if *v < MinRating || *v > MaxRating {
		return Invalid("%s must be between %d and %d", field, MinRating, MaxRating)
	}
	return nil
}
