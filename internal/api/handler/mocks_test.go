package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/albapepper/courtside/internal/domain"
	"github.com/albapepper/courtside/internal/store"
)

// ptr returns the typed value of args[i], or nil when the mock returned nil.
func ptr[T any](args mock.Arguments, i int) *T {
	v := args.Get(i)
	if v == nil {
		return nil
	}
	return v.(*T)
}

type MockPlayerStore struct{ mock.Mock }

func (m *MockPlayerStore) List(ctx context.Context, f store.PlayerFilter) ([]store.Player, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]store.Player), args.Error(1)
}

func (m *MockPlayerStore) Get(ctx context.Context, id int64) (*store.Player, error) {
	args := m.Called(ctx, id)
	return ptr[store.Player](args, 0), args.Error(1)
}

func (m *MockPlayerStore) Create(ctx context.Context, in store.PlayerInput) (int64, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPlayerStore) Update(ctx context.Context, id int64, in store.PlayerInput) error {
	return m.Called(ctx, id, in).Error(0)
}

func (m *MockPlayerStore) Averages(ctx context.Context, id int64, f store.StatsFilter) (*store.StatLine, error) {
	args := m.Called(ctx, id, f)
	return ptr[store.StatLine](args, 0), args.Error(1)
}

func (m *MockPlayerStore) Stats(ctx context.Context, id int64, f store.StatsFilter, limit int) (*store.PlayerStats, error) {
	args := m.Called(ctx, id, f, limit)
	return ptr[store.PlayerStats](args, 0), args.Error(1)
}

type MockGameStore struct{ mock.Mock }

func (m *MockGameStore) List(ctx context.Context, f store.GameFilter) ([]store.Game, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]store.Game), args.Error(1)
}

func (m *MockGameStore) Get(ctx context.Context, id int64) (*store.GameDetail, error) {
	args := m.Called(ctx, id)
	return ptr[store.GameDetail](args, 0), args.Error(1)
}

func (m *MockGameStore) Create(ctx context.Context, in store.GameInput) (int64, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGameStore) Update(ctx context.Context, id int64, in store.GameInput) error {
	return m.Called(ctx, id, in).Error(0)
}

func (m *MockGameStore) RecordStats(ctx context.Context, gameID int64, lines []store.BoxScoreInput) (int, error) {
	args := m.Called(ctx, gameID, lines)
	return args.Int(0), args.Error(1)
}

type MockAnalyticsStore struct{ mock.Mock }

func (m *MockAnalyticsStore) PlayerMatchup(ctx context.Context, p1, p2 int64, season *string) (*store.Matchup, error) {
	args := m.Called(ctx, p1, p2, season)
	return ptr[store.Matchup](args, 0), args.Error(1)
}

func (m *MockAnalyticsStore) OpponentReport(ctx context.Context, teamID, opponentID int64, lastN int) (*store.OpponentReport, error) {
	args := m.Called(ctx, teamID, opponentID, lastN)
	return ptr[store.OpponentReport](args, 0), args.Error(1)
}

func (m *MockAnalyticsStore) Lineups(ctx context.Context, teamID int64, minGames int, season *string) ([]store.LineupStat, error) {
	args := m.Called(ctx, teamID, minGames, season)
	return args.Get(0).([]store.LineupStat), args.Error(1)
}

func (m *MockAnalyticsStore) CreateLineup(ctx context.Context, in store.LineupInput) (int64, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnalyticsStore) TeamSeason(ctx context.Context, teamID int64, season *string) (*store.TeamSeasonSummary, error) {
	args := m.Called(ctx, teamID, season)
	return ptr[store.TeamSeasonSummary](args, 0), args.Error(1)
}

func (m *MockAnalyticsStore) Situational(ctx context.Context, teamID int64) (*store.Situational, error) {
	args := m.Called(ctx, teamID)
	return ptr[store.Situational](args, 0), args.Error(1)
}

type MockPlanStore struct{ mock.Mock }

func (m *MockPlanStore) List(ctx context.Context, f store.PlanFilter) ([]store.GamePlan, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]store.GamePlan), args.Error(1)
}

func (m *MockPlanStore) Get(ctx context.Context, id int64) (*store.GamePlan, error) {
	args := m.Called(ctx, id)
	return ptr[store.GamePlan](args, 0), args.Error(1)
}

func (m *MockPlanStore) Create(ctx context.Context, in store.GamePlanInput) (int64, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPlanStore) Update(ctx context.Context, id int64, in store.GamePlanPatch) error {
	return m.Called(ctx, id, in).Error(0)
}

type MockEvaluationStore struct{ mock.Mock }

func (m *MockEvaluationStore) List(ctx context.Context, f store.EvaluationFilter) ([]store.DraftEvaluation, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]store.DraftEvaluation), args.Error(1)
}

func (m *MockEvaluationStore) Get(ctx context.Context, id int64) (*store.DraftEvaluation, error) {
	args := m.Called(ctx, id)
	return ptr[store.DraftEvaluation](args, 0), args.Error(1)
}

func (m *MockEvaluationStore) Create(ctx context.Context, in store.EvaluationInput) (int64, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEvaluationStore) Update(ctx context.Context, id int64, in store.EvaluationInput) error {
	return m.Called(ctx, id, in).Error(0)
}

type MockUserStore struct{ mock.Mock }

func (m *MockUserStore) List(ctx context.Context, role *string) ([]store.User, error) {
	args := m.Called(ctx, role)
	return args.Get(0).([]store.User), args.Error(1)
}

func (m *MockUserStore) Get(ctx context.Context, id int64) (*store.User, error) {
	args := m.Called(ctx, id)
	return ptr[store.User](args, 0), args.Error(1)
}

func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*store.User, error) {
	args := m.Called(ctx, username)
	return ptr[store.User](args, 0), args.Error(1)
}

func (m *MockUserStore) Create(ctx context.Context, in store.UserInput) (int64, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserStore) AssignTeam(ctx context.Context, userID, teamID int64) (*store.User, error) {
	args := m.Called(ctx, userID, teamID)
	return ptr[store.User](args, 0), args.Error(1)
}

type MockLoadStore struct{ mock.Mock }

func (m *MockLoadStore) List(ctx context.Context, f store.LoadFilter) ([]store.DataLoad, map[string]int, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]store.DataLoad), args.Get(1).(map[string]int), args.Error(2)
}

func (m *MockLoadStore) Get(ctx context.Context, id int64) (*store.DataLoad, error) {
	args := m.Called(ctx, id)
	return ptr[store.DataLoad](args, 0), args.Error(1)
}

func (m *MockLoadStore) Create(ctx context.Context, in store.LoadInput) (int64, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLoadStore) Update(ctx context.Context, id int64, in store.LoadPatch) error {
	return m.Called(ctx, id, in).Error(0)
}

type MockErrorLogStore struct{ mock.Mock }

func (m *MockErrorLogStore) List(ctx context.Context, f store.ErrorLogFilter) ([]store.ErrorLog, map[string]int, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]store.ErrorLog), args.Get(1).(map[string]int), args.Error(2)
}

func (m *MockErrorLogStore) Create(ctx context.Context, in store.ErrorLogInput) (int64, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockErrorLogStore) Resolve(ctx context.Context, id int64, in store.ResolveInput) error {
	return m.Called(ctx, id, in).Error(0)
}

func (m *MockErrorLogStore) Purge(ctx context.Context, days int, severity *domain.Severity) (int64, error) {
	args := m.Called(ctx, days, severity)
	return args.Get(0).(int64), args.Error(1)
}

type MockDataErrorStore struct{ mock.Mock }

func (m *MockDataErrorStore) List(ctx context.Context, f store.DataErrorFilter) ([]store.DataError, []store.DataErrorSummary, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]store.DataError), args.Get(1).([]store.DataErrorSummary), args.Error(2)
}

func (m *MockDataErrorStore) Create(ctx context.Context, in store.DataErrorInput) (int64, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDataErrorStore) Resolve(ctx context.Context, id int64, autoFixed *bool) error {
	return m.Called(ctx, id, autoFixed).Error(0)
}

func (m *MockDataErrorStore) Purge(ctx context.Context, days int) (int64, error) {
	args := m.Called(ctx, days)
	return args.Get(0).(int64), args.Error(1)
}

type MockValidationStore struct{ mock.Mock }

func (m *MockValidationStore) List(ctx context.Context, f store.ValidationFilter) ([]store.ValidationReport, []store.ValidationSummary, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]store.ValidationReport), args.Get(1).([]store.ValidationSummary), args.Error(2)
}

func (m *MockValidationStore) Run(ctx context.Context, in store.ValidationRun) ([]store.ValidationReport, error) {
	args := m.Called(ctx, in)
	return args.Get(0).([]store.ValidationReport), args.Error(1)
}

type MockHealthStore struct{ mock.Mock }

func (m *MockHealthStore) Check(ctx context.Context) (*store.Health, error) {
	args := m.Called(ctx)
	return ptr[store.Health](args, 0), args.Error(1)
}

var (
	_ PlayerStore     = (*store.PlayerRepository)(nil)
	_ TeamStore       = (*store.TeamRepository)(nil)
	_ GameStore       = (*store.GameRepository)(nil)
	_ AnalyticsStore  = (*store.AnalyticsRepository)(nil)
	_ PlanStore       = (*store.GamePlanRepository)(nil)
	_ EvaluationStore = (*store.EvaluationRepository)(nil)
	_ UserStore       = (*store.UserRepository)(nil)
	_ LoadStore       = (*store.DataLoadRepository)(nil)
	_ ErrorLogStore   = (*store.ErrorLogRepository)(nil)
	_ DataErrorStore  = (*store.DataErrorRepository)(nil)
	_ CleanupStore    = (*store.CleanupRepository)(nil)
	_ ValidationStore = (*store.ValidationRepository)(nil)
	_ SystemLogStore  = (*store.SystemLogRepository)(nil)
	_ HealthStore     = (*store.HealthRepository)(nil)

	_ PlayerStore     = (*MockPlayerStore)(nil)
	_ GameStore       = (*MockGameStore)(nil)
	_ AnalyticsStore  = (*MockAnalyticsStore)(nil)
	_ PlanStore       = (*MockPlanStore)(nil)
	_ EvaluationStore = (*MockEvaluationStore)(nil)
	_ UserStore       = (*MockUserStore)(nil)
	_ LoadStore       = (*MockLoadStore)(nil)
	_ ErrorLogStore   = (*MockErrorLogStore)(nil)
	_ DataErrorStore  = (*MockDataErrorStore)(nil)
	_ ValidationStore = (*MockValidationStore)(nil)
	_ HealthStore     = (*MockHealthStore)(nil)
)
