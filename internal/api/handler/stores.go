package handler

import (
	"context"

	"github.com/albapepper/courtside/internal/domain"
	"github.com/albapepper/courtside/internal/store"
)

// The interfaces below are the slices of the store each handler group uses.
// *store.Store's repositories satisfy them; tests substitute mocks.

// PlayerStore reads and writes player profiles and their stat lines.
type PlayerStore interface {
	List(ctx context.Context, f store.PlayerFilter) ([]store.Player, error)
	Get(ctx context.Context, id int64) (*store.Player, error)
	Create(ctx context.Context, in store.PlayerInput) (int64, error)
	Update(ctx context.Context, id int64, in store.PlayerInput) error
	Averages(ctx context.Context, id int64, f store.StatsFilter) (*store.StatLine, error)
	Stats(ctx context.Context, id int64, f store.StatsFilter, limit int) (*store.PlayerStats, error)
}

// TeamStore covers teams and roster memberships.
type TeamStore interface {
	List(ctx context.Context) ([]store.Team, error)
	Get(ctx context.Context, id int64) (*store.Team, error)
	Create(ctx context.Context, in store.TeamInput) (int64, error)
	Roster(ctx context.Context, teamID int64) ([]store.RosterEntry, error)
	AddPlayer(ctx context.Context, teamID int64, in store.RosterInput) error
	UpdateMembership(ctx context.Context, teamID, playerID int64, in store.RosterPatch) error
}

// GameStore covers games and their box scores.
type GameStore interface {
	List(ctx context.Context, f store.GameFilter) ([]store.Game, error)
	Get(ctx context.Context, id int64) (*store.GameDetail, error)
	Create(ctx context.Context, in store.GameInput) (int64, error)
	Update(ctx context.Context, id int64, in store.GameInput) error
	RecordStats(ctx context.Context, gameID int64, lines []store.BoxScoreInput) (int, error)
}

// AnalyticsStore serves the composite analytics queries.
type AnalyticsStore interface {
	PlayerMatchup(ctx context.Context, p1, p2 int64, season *string) (*store.Matchup, error)
	OpponentReport(ctx context.Context, teamID, opponentID int64, lastN int) (*store.OpponentReport, error)
	Lineups(ctx context.Context, teamID int64, minGames int, season *string) ([]store.LineupStat, error)
	CreateLineup(ctx context.Context, in store.LineupInput) (int64, error)
	TeamSeason(ctx context.Context, teamID int64, season *string) (*store.TeamSeasonSummary, error)
	Situational(ctx context.Context, teamID int64) (*store.Situational, error)
}

// PlanStore manages game plans.
type PlanStore interface {
	List(ctx context.Context, f store.PlanFilter) ([]store.GamePlan, error)
	Get(ctx context.Context, id int64) (*store.GamePlan, error)
	Create(ctx context.Context, in store.GamePlanInput) (int64, error)
	Update(ctx context.Context, id int64, in store.GamePlanPatch) error
}

// EvaluationStore manages draft evaluations.
type EvaluationStore interface {
	List(ctx context.Context, f store.EvaluationFilter) ([]store.DraftEvaluation, error)
	Get(ctx context.Context, id int64) (*store.DraftEvaluation, error)
	Create(ctx context.Context, in store.EvaluationInput) (int64, error)
	Update(ctx context.Context, id int64, in store.EvaluationInput) error
}

// UserStore manages dashboard users and their team assignment.
type UserStore interface {
	List(ctx context.Context, role *string) ([]store.User, error)
	Get(ctx context.Context, id int64) (*store.User, error)
	GetByUsername(ctx context.Context, username string) (*store.User, error)
	Create(ctx context.Context, in store.UserInput) (int64, error)
	AssignTeam(ctx context.Context, userID, teamID int64) (*store.User, error)
}

// LoadStore records data load intent and outcome.
type LoadStore interface {
	List(ctx context.Context, f store.LoadFilter) ([]store.DataLoad, map[string]int, error)
	Get(ctx context.Context, id int64) (*store.DataLoad, error)
	Create(ctx context.Context, in store.LoadInput) (int64, error)
	Update(ctx context.Context, id int64, in store.LoadPatch) error
}

// ErrorLogStore is the application error log.
type ErrorLogStore interface {
	List(ctx context.Context, f store.ErrorLogFilter) ([]store.ErrorLog, map[string]int, error)
	Create(ctx context.Context, in store.ErrorLogInput) (int64, error)
	Resolve(ctx context.Context, id int64, in store.ResolveInput) error
	Purge(ctx context.Context, days int, severity *domain.Severity) (int64, error)
}

// DataErrorStore tracks detected data-quality errors.
type DataErrorStore interface {
	List(ctx context.Context, f store.DataErrorFilter) ([]store.DataError, []store.DataErrorSummary, error)
	Create(ctx context.Context, in store.DataErrorInput) (int64, error)
	Resolve(ctx context.Context, id int64, autoFixed *bool) error
	Purge(ctx context.Context, days int) (int64, error)
}

// CleanupStore manages cleanup schedules and their history.
type CleanupStore interface {
	ListActive(ctx context.Context) ([]store.CleanupSchedule, []store.CleanupHistory, error)
	Create(ctx context.Context, in store.CleanupInput) (int64, error)
	Update(ctx context.Context, id int64, in store.CleanupPatch) error
	RecordHistory(ctx context.Context, in store.CleanupHistoryInput) (int64, error)
}

// ValidationStore runs and lists data validation reports.
type ValidationStore interface {
	List(ctx context.Context, f store.ValidationFilter) ([]store.ValidationReport, []store.ValidationSummary, error)
	Run(ctx context.Context, in store.ValidationRun) ([]store.ValidationReport, error)
}

// SystemLogStore reads the system log journal.
type SystemLogStore interface {
	List(ctx context.Context, f store.SystemLogFilter) ([]store.SystemLog, error)
}

// HealthStore takes the operational health snapshot.
type HealthStore interface {
	Check(ctx context.Context) (*store.Health, error)
}

// Stores bundles every dependency a Handler needs.
type Stores struct {
	Players     PlayerStore
	Teams       TeamStore
	Games       GameStore
	Analytics   AnalyticsStore
	Plans       PlanStore
	Evaluations EvaluationStore
	Users       UserStore
	Loads       LoadStore
	ErrorLogs   ErrorLogStore
	DataErrors  DataErrorStore
	Cleanup     CleanupStore
	Validation  ValidationStore
	SystemLogs  SystemLogStore
	Health      HealthStore
}

// StoresFrom adapts the concrete store.
func StoresFrom(s *store.Store) Stores {
	return Stores{
		Players:     s.Players,
		Teams:       s.Teams,
		Games:       s.Games,
		Analytics:   s.Analytics,
		Plans:       s.Plans,
		Evaluations: s.Evaluations,
		Users:       s.Users,
		Loads:       s.Loads,
		ErrorLogs:   s.ErrorLogs,
		DataErrors:  s.DataErrors,
		Cleanup:     s.Cleanup,
		Validation:  s.Validation,
		SystemLogs:  s.SystemLogs,
		Health:      s.Health,
	}
}
