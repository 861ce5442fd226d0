package store_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/albapepper/courtside/internal/config"
	"github.com/albapepper/courtside/internal/db"
	"github.com/albapepper/courtside/internal/domain"
	"github.com/albapepper/courtside/internal/store"
)

func ptr[T any](v T) *T { return &v }

// startStore boots Postgres, applies migrations and returns a store whose
// validation warning threshold is 0.25.
func startStore(t *testing.T) (*store.Store, *db.Pool) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx := context.Background()

	var pgContainer *postgres.PostgresContainer
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("Skipping integration test, docker unavailable: %v", r)
			}
		}()
		pgContainer, err = postgres.Run(ctx,
			"postgres:15-alpine",
			postgres.WithDatabase("courtside"),
			postgres.WithUsername("courtside"),
			postgres.WithPassword("courtside"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
	}()
	if err != nil {
		t.Skipf("Skipping integration test, postgres container failed: %v", err)
	}
	t.Cleanup(func() { _ = pgContainer.Terminate(ctx) })

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := db.New(ctx, &config.Config{DatabaseURL: connStr, DBPoolMaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, db.Migrate(ctx, pool.Pool))
	return store.New(pool, 0.25), pool
}

func reset(t *testing.T, pool *db.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `
		TRUNCATE players, teams, teams_players, game, player_game_stats, lineup_configuration,
		         player_lineups, game_plans, draft_evaluations, users, data_loads, error_logs,
		         data_errors, validation_reports, cleanup_schedule, cleanup_history, system_logs,
		         game_quarter_scores, team_clutch_stats
		RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
}

// race runs fn from n goroutines released together and counts successes and
// conflicts. Any other error is a test failure.
func race(t *testing.T, n int, fn func() error) (succeeded, conflicts int32) {
	t.Helper()
	var wg sync.WaitGroup
	var failures int32
	start := make(chan struct{})
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			<-start
			err := fn()
			switch {
			case err == nil:
				atomic.AddInt32(&succeeded, 1)
			case errors.Is(err, domain.ErrConflict):
				atomic.AddInt32(&conflicts, 1)
			default:
				t.Errorf("unexpected error: %v", err)
				atomic.AddInt32(&failures, 1)
			}
		}()
	}
	close(start)
	wg.Wait()
	assert.Zero(t, failures)
	return succeeded, conflicts
}

func TestStore_Integration(t *testing.T) {
	s, pool := startStore(t)
	ctx := context.Background()

	t.Run("DuplicateActiveLoad", func(t *testing.T) {
		reset(t, pool)

		first, err := s.Loads.Create(ctx, store.LoadInput{LoadType: "nba_stats", InitiatedBy: ptr("etl")})
		require.NoError(t, err)

		_, err = s.Loads.Create(ctx, store.LoadInput{LoadType: "nba_stats"})
		assert.ErrorIs(t, err, domain.ErrConflict)

		require.NoError(t, s.Loads.Update(ctx, first, store.LoadPatch{Status: ptr(domain.LoadRunning)}))
		_, err = s.Loads.Create(ctx, store.LoadInput{LoadType: "nba_stats"})
		assert.ErrorIs(t, err, domain.ErrConflict)

		require.NoError(t, s.Loads.Update(ctx, first, store.LoadPatch{
			Status:           ptr(domain.LoadCompleted),
			RecordsProcessed: ptr(120),
		}))
		got, err := s.Loads.Get(ctx, first)
		require.NoError(t, err)
		require.NotNil(t, got.CompletedAt)
		assert.GreaterOrEqual(t, got.DurationSeconds, 0.0)

		err = s.Loads.Update(ctx, first, store.LoadPatch{Status: ptr(domain.LoadPending)})
		assert.ErrorIs(t, err, domain.ErrConflict)
		require.NoError(t, s.Loads.Update(ctx, first, store.LoadPatch{RecordsFailed: ptr(3)}))
		after, err := s.Loads.Get(ctx, first)
		require.NoError(t, err)
		assert.Equal(t, domain.LoadCompleted, after.Status)
		require.NotNil(t, after.CompletedAt)
		assert.True(t, got.CompletedAt.Equal(*after.CompletedAt))

		assert.ErrorIs(t, s.Loads.Update(ctx, 9999, store.LoadPatch{RecordsFailed: ptr(1)}), domain.ErrNotFound)

		second, err := s.Loads.Create(ctx, store.LoadInput{LoadType: "nba_stats"})
		require.NoError(t, err)
		assert.NotEqual(t, first, second)

		loads, summary, err := s.Loads.List(ctx, store.LoadFilter{Days: 7})
		require.NoError(t, err)
		assert.Len(t, loads, 2)
		assert.Equal(t, 1, summary[domain.LoadCompleted])
		assert.Equal(t, 1, summary[domain.LoadPending])

		logs, err := s.SystemLogs.List(ctx, store.SystemLogFilter{LogType: ptr("data_load"), Days: 1})
		require.NoError(t, err)
		assert.NotEmpty(t, logs)
	})

	t.Run("ErrorLogPurgeBoundary", func(t *testing.T) {
		reset(t, pool)

		_, err := s.ErrorLogs.Purge(ctx, 29, nil)
		assert.ErrorIs(t, err, domain.ErrInvalid)

		for _, sev := range []string{"info", "warning", "error", "critical"} {
			id, err := s.ErrorLogs.Create(ctx, store.ErrorLogInput{
				ErrorType: "db", Severity: sev, Module: "loader", ErrorMessage: "old " + sev,
			})
			require.NoError(t, err)
			_, err = pool.Exec(ctx, "UPDATE error_logs SET created_at = NOW() - INTERVAL '40 days' WHERE error_id = $1", id)
			require.NoError(t, err)
		}
		_, err = s.ErrorLogs.Create(ctx, store.ErrorLogInput{
			ErrorType: "db", Severity: "info", Module: "loader", ErrorMessage: "recent info",
		})
		require.NoError(t, err)

		warn := domain.SeverityWarning
		n, err := s.ErrorLogs.Purge(ctx, 30, &warn)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		_, summary, err := s.ErrorLogs.List(ctx, store.ErrorLogFilter{Days: 365})
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"info": 1, "warning": 0, "error": 1, "critical": 1}, summary)

		n, err = s.ErrorLogs.Purge(ctx, 45, nil)
		require.NoError(t, err)
		assert.Zero(t, n)

		n, err = s.ErrorLogs.Purge(ctx, 30, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		logs, _, err := s.ErrorLogs.List(ctx, store.ErrorLogFilter{Days: 365})
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, "recent info", logs[0].ErrorMessage)

		_, err = s.ErrorLogs.Create(ctx, store.ErrorLogInput{
			ErrorType: "db", Severity: "emergency", Module: "loader", ErrorMessage: "x",
		})
		assert.ErrorIs(t, err, domain.ErrInvalid)
	})

	t.Run("ErrorLogResolve", func(t *testing.T) {
		reset(t, pool)
		id, err := s.ErrorLogs.Create(ctx, store.ErrorLogInput{
			ErrorType: "api", Severity: "error", Module: "games", ErrorMessage: "timeout",
		})
		require.NoError(t, err)

		err = s.ErrorLogs.Resolve(ctx, id, store.ResolveInput{Resolved: ptr(false)})
		assert.ErrorIs(t, err, domain.ErrInvalid)
		err = s.ErrorLogs.Resolve(ctx, 9999, store.ResolveInput{Resolved: ptr(true)})
		assert.ErrorIs(t, err, domain.ErrNotFound)

		require.NoError(t, s.ErrorLogs.Resolve(ctx, id, store.ResolveInput{
			Resolved: ptr(true), ResolvedBy: ptr("ops"), ResolutionNotes: ptr("retried"),
		}))
		logs, _, err := s.ErrorLogs.List(ctx, store.ErrorLogFilter{Days: 1, Resolved: ptr(true)})
		require.NoError(t, err)
		require.Len(t, logs, 1)
		first := logs[0]
		require.NotNil(t, first.ResolvedAt)
		assert.Equal(t, "ops", *first.ResolvedBy)

		// A second resolve keeps the original resolution.
		require.NoError(t, s.ErrorLogs.Resolve(ctx, id, store.ResolveInput{
			Resolved: ptr(true), ResolvedBy: ptr("someone else"),
		}))
		logs, _, err = s.ErrorLogs.List(ctx, store.ErrorLogFilter{Days: 1, Resolved: ptr(true)})
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.True(t, first.ResolvedAt.Equal(*logs[0].ResolvedAt))
		assert.Equal(t, "ops", *logs[0].ResolvedBy)

		require.NoError(t, s.ErrorLogs.Resolve(ctx, id, store.ResolveInput{ResolutionNotes: ptr("root cause: pool size")}))
		assert.ErrorIs(t, s.ErrorLogs.Resolve(ctx, 9999, store.ResolveInput{ResolutionNotes: ptr("x")}), domain.ErrNotFound)

		journal, err := s.SystemLogs.List(ctx, store.SystemLogFilter{LogType: ptr("error"), Days: 1})
		require.NoError(t, err)
		require.Len(t, journal, 2)
		assert.NotNil(t, journal[0].ResolvedAt)
		assert.Nil(t, journal[1].ResolvedAt)
	})

	t.Run("ConcurrentActiveLoads", func(t *testing.T) {
		reset(t, pool)
		ok, conflicts := race(t, 4, func() error {
			_, err := s.Loads.Create(ctx, store.LoadInput{LoadType: "nba_stats"})
			return err
		})
		assert.Equal(t, int32(1), ok)
		assert.Equal(t, int32(3), conflicts)

		loads, _, err := s.Loads.List(ctx, store.LoadFilter{Days: 1})
		require.NoError(t, err)
		assert.Len(t, loads, 1)
	})

	t.Run("ConcurrentCleanupSchedules", func(t *testing.T) {
		reset(t, pool)
		ok, conflicts := race(t, 4, func() error {
			_, err := s.Cleanup.Create(ctx, store.CleanupInput{
				CleanupType: "system_logs", Frequency: "daily", RetentionDays: 30, CreatedBy: "ops",
			})
			return err
		})
		assert.Equal(t, int32(1), ok)
		assert.Equal(t, int32(3), conflicts)

		schedules, _, err := s.Cleanup.ListActive(ctx)
		require.NoError(t, err)
		assert.Len(t, schedules, 1)
	})

	t.Run("EvaluationRatingsAndUniqueness", func(t *testing.T) {
		reset(t, pool)
		pid, err := s.Players.Create(ctx, store.PlayerInput{FirstName: ptr("Ada"), LastName: ptr("Guard")})
		require.NoError(t, err)

		_, err = s.Evaluations.Create(ctx, store.EvaluationInput{PlayerID: &pid, OverallRating: ptr(101.0)})
		assert.ErrorIs(t, err, domain.ErrInvalid)

		_, err = s.Evaluations.Create(ctx, store.EvaluationInput{PlayerID: &pid, OverallRating: ptr(88.5)})
		require.NoError(t, err)

		_, err = s.Evaluations.Create(ctx, store.EvaluationInput{PlayerID: &pid, OverallRating: ptr(70.0)})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("ValidationThresholds", func(t *testing.T) {
		reset(t, pool)
		for i := 0; i < 8; i++ {
			_, err := s.Players.Create(ctx, store.PlayerInput{FirstName: ptr("P"), LastName: ptr("Q")})
			require.NoError(t, err)
		}
		for i := 0; i < 2; i++ {
			_, err := s.Players.Create(ctx, store.PlayerInput{LastName: ptr("Nameless")})
			require.NoError(t, err)
		}

		run := store.ValidationRun{ValidationType: "null_check", TableName: "Players", RunBy: "qa"}
		reports, err := s.Validation.Run(ctx, run)
		require.NoError(t, err)
		require.Len(t, reports, 1)
		assert.Equal(t, domain.ValidationWarning, reports[0].Status)
		assert.Equal(t, 10, reports[0].TotalRecords)
		assert.Equal(t, 2, reports[0].InvalidRecords)
		assert.True(t, store.HasIssues(reports))

		_, err = s.Players.Create(ctx, store.PlayerInput{LastName: ptr("Nameless")})
		require.NoError(t, err)
		_, err = pool.Exec(ctx, "DELETE FROM players WHERE player_id = (SELECT MIN(player_id) FROM players)")
		require.NoError(t, err)

		reports, err = s.Validation.Run(ctx, run)
		require.NoError(t, err)
		assert.Equal(t, domain.ValidationFailed, reports[0].Status)

		_, err = s.Validation.Run(ctx, store.ValidationRun{ValidationType: "null_check", TableName: "nope", RunBy: "qa"})
		assert.ErrorIs(t, err, domain.ErrInvalid)

		_, summary, err := s.Validation.List(ctx, store.ValidationFilter{Days: 7})
		require.NoError(t, err)
		require.Len(t, summary, 1)
		assert.Equal(t, 1, summary[0].Warning)
		assert.Equal(t, 1, summary[0].Failed)
	})

	t.Run("PlayerMatchup", func(t *testing.T) {
		reset(t, pool)
		home, err := s.Teams.Create(ctx, store.TeamInput{Name: "Hawks", City: ptr("Atlanta")})
		require.NoError(t, err)
		away, err := s.Teams.Create(ctx, store.TeamInput{Name: "Bulls", City: ptr("Chicago")})
		require.NoError(t, err)
		a, err := s.Players.Create(ctx, store.PlayerInput{FirstName: ptr("A"), LastName: ptr("One")})
		require.NoError(t, err)
		b, err := s.Players.Create(ctx, store.PlayerInput{FirstName: ptr("B"), LastName: ptr("Two")})
		require.NoError(t, err)

		for i, pts := range [][2]int{{20, 15}, {10, 22}} {
			date := time.Date(2024, 1, 10+i, 0, 0, 0, 0, time.UTC)
			gid, err := s.Games.Create(ctx, store.GameInput{
				Date: &date, Season: ptr("2023-24"), HomeTeamID: &home, AwayTeamID: &away,
			})
			require.NoError(t, err)
			_, err = s.Games.RecordStats(ctx, gid, []store.BoxScoreInput{
				{PlayerID: a, TeamID: home, Points: pts[0], MinutesPlayed: 30},
				{PlayerID: b, TeamID: away, Points: pts[1], MinutesPlayed: 30},
			})
			require.NoError(t, err)
		}

		m, err := s.Analytics.PlayerMatchup(ctx, a, b, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, m.Summary.GamesPlayed)
		assert.Equal(t, 15.0, m.Summary.Player1.AvgPoints)
		assert.Equal(t, 18.5, m.Summary.Player2.AvgPoints)
		assert.Equal(t, 1, m.Summary.Player1.HeadToHeadWins)
		assert.Equal(t, 1, m.Summary.Player2.HeadToHeadWins)

		same := home
		_, err = s.Games.Create(ctx, store.GameInput{
			Date: ptr(time.Now()), Season: ptr("2023-24"), HomeTeamID: &home, AwayTeamID: &same,
		})
		assert.ErrorIs(t, err, domain.ErrInvalid)
	})

	t.Run("AssignTeam", func(t *testing.T) {
		reset(t, pool)
		team, err := s.Teams.Create(ctx, store.TeamInput{Name: "Suns"})
		require.NoError(t, err)
		fan, err := s.Users.Create(ctx, store.UserInput{Username: "fan", Role: "superfan"})
		require.NoError(t, err)
		coach, err := s.Users.Create(ctx, store.UserInput{Username: "coach", Role: "head_coach"})
		require.NoError(t, err)

		_, err = s.Users.AssignTeam(ctx, fan, team)
		assert.ErrorIs(t, err, domain.ErrForbidden)

		_, err = s.Users.AssignTeam(ctx, coach, 9999)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		u, err := s.Users.AssignTeam(ctx, coach, team)
		require.NoError(t, err)
		require.NotNil(t, u.TeamID)
		assert.Equal(t, team, *u.TeamID)

		got, err := s.Users.Get(ctx, coach)
		require.NoError(t, err)
		assert.Equal(t, team, *got.TeamID)

		_, err = s.Users.Create(ctx, store.UserInput{Username: "coach", Role: "gm"})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("CleanupSchedules", func(t *testing.T) {
		reset(t, pool)
		id, err := s.Cleanup.Create(ctx, store.CleanupInput{
			CleanupType: "error_logs", Frequency: "weekly", RetentionDays: 90, CreatedBy: "ops",
		})
		require.NoError(t, err)

		_, err = s.Cleanup.Create(ctx, store.CleanupInput{
			CleanupType: "error_logs", Frequency: "daily", RetentionDays: 30, CreatedBy: "ops",
		})
		assert.ErrorIs(t, err, domain.ErrConflict)

		_, err = s.Cleanup.RecordHistory(ctx, store.CleanupHistoryInput{
			ScheduleID: &id, CleanupType: "error_logs", RecordsDeleted: 12, Status: "completed",
		})
		require.NoError(t, err)

		schedules, history, err := s.Cleanup.ListActive(ctx)
		require.NoError(t, err)
		require.Len(t, schedules, 1)
		assert.NotNil(t, schedules[0].LastRun)
		assert.True(t, schedules[0].NextRun.After(time.Now().Add(6*24*time.Hour)))
		assert.Len(t, history, 1)
	})

	t.Run("RostersAndLineups", func(t *testing.T) {
		reset(t, pool)
		team, err := s.Teams.Create(ctx, store.TeamInput{Name: "Celtics"})
		require.NoError(t, err)
		rival, err := s.Teams.Create(ctx, store.TeamInput{Name: "Knicks"})
		require.NoError(t, err)

		var ids []int64
		for i := 0; i < 5; i++ {
			id, err := s.Players.Create(ctx, store.PlayerInput{FirstName: ptr("P"), LastName: ptr(string(rune('A' + i)))})
			require.NoError(t, err)
			require.NoError(t, s.Teams.AddPlayer(ctx, team, store.RosterInput{PlayerID: id, JerseyNum: ptr(i)}))
			ids = append(ids, id)
		}

		err = s.Teams.AddPlayer(ctx, team, store.RosterInput{PlayerID: ids[0]})
		assert.ErrorIs(t, err, domain.ErrConflict)

		left := time.Now().UTC().AddDate(0, 0, 1)
		require.NoError(t, s.Teams.UpdateMembership(ctx, team, ids[4], store.RosterPatch{LeftDate: &left}))
		roster, err := s.Teams.Roster(ctx, team)
		require.NoError(t, err)
		assert.Len(t, roster, 4)

		date := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
		gid, err := s.Games.Create(ctx, store.GameInput{
			Date: &date, Season: ptr("2023-24"), HomeTeamID: &team, AwayTeamID: &rival,
		})
		require.NoError(t, err)

		_, err = s.Analytics.CreateLineup(ctx, store.LineupInput{TeamID: team, GameID: &gid, PlayerIDs: ids[:4]})
		assert.ErrorIs(t, err, domain.ErrInvalid)

		_, err = s.Analytics.CreateLineup(ctx, store.LineupInput{
			TeamID: team, GameID: &gid, Quarter: ptr(1), PlusMinus: 6, PlayerIDs: ids,
		})
		require.NoError(t, err)

		lineups, err := s.Analytics.Lineups(ctx, team, 1, nil)
		require.NoError(t, err)
		require.Len(t, lineups, 1)
		assert.Equal(t, 6, lineups[0].PlusMinus)
		assert.Equal(t, 1, lineups[0].GamesPlayed)

		lineups, err = s.Analytics.Lineups(ctx, team, 5, nil)
		require.NoError(t, err)
		assert.Empty(t, lineups)

		// Same name as ids[0], different player: a separate lineup.
		namesake, err := s.Players.Create(ctx, store.PlayerInput{FirstName: ptr("P"), LastName: ptr("A")})
		require.NoError(t, err)
		_, err = s.Analytics.CreateLineup(ctx, store.LineupInput{
			TeamID: team, GameID: &gid, Quarter: ptr(2), PlusMinus: -2,
			PlayerIDs: append([]int64{namesake}, ids[1:]...),
		})
		require.NoError(t, err)

		lineups, err = s.Analytics.Lineups(ctx, team, 1, nil)
		require.NoError(t, err)
		require.Len(t, lineups, 2)
		assert.Equal(t, ids, lineups[0].PlayerIDs)
		assert.Equal(t, 6, lineups[0].PlusMinus)
		assert.Equal(t, -2, lineups[1].PlusMinus)
		assert.Equal(t, lineups[0].Players, lineups[1].Players)
	})

	t.Run("DataErrors", func(t *testing.T) {
		reset(t, pool)
		id, err := s.DataErrors.Create(ctx, store.DataErrorInput{
			ErrorType: "missing", TableName: "players", FieldName: ptr("position"),
		})
		require.NoError(t, err)

		_, summary, err := s.DataErrors.List(ctx, store.DataErrorFilter{Days: 30})
		require.NoError(t, err)
		require.Len(t, summary, 1)
		assert.Equal(t, 1, summary[0].Unresolved)

		n, err := s.DataErrors.Purge(ctx, 0)
		require.NoError(t, err)
		assert.Zero(t, n)

		require.NoError(t, s.DataErrors.Resolve(ctx, id, ptr(true)))
		assert.ErrorIs(t, s.DataErrors.Resolve(ctx, 9999, nil), domain.ErrNotFound)

		rows, summary, err := s.DataErrors.List(ctx, store.DataErrorFilter{Days: 30})
		require.NoError(t, err)
		assert.Empty(t, summary)
		require.Len(t, rows, 1)
		assert.True(t, rows[0].AutoFixed)
		assert.NotNil(t, rows[0].ResolvedAt)

		n, err = s.DataErrors.Purge(ctx, 0)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
	})

	t.Run("Situational", func(t *testing.T) {
		reset(t, pool)
		team, err := s.Teams.Create(ctx, store.TeamInput{Name: "Heat"})
		require.NoError(t, err)

		sit, err := s.Analytics.Situational(ctx, team)
		require.NoError(t, err)
		assert.Equal(t, 0, sit.Clutch.Games)
		assert.Empty(t, sit.ByQuarter)
		assert.Empty(t, sit.CloseGames)

		_, err = s.Analytics.Situational(ctx, 9999)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("GamePlanRoundTrip", func(t *testing.T) {
		reset(t, pool)
		team, err := s.Teams.Create(ctx, store.TeamInput{Name: "Lakers"})
		require.NoError(t, err)

		_, err = s.Plans.Create(ctx, store.GamePlanInput{TeamID: &team})
		assert.ErrorIs(t, err, domain.ErrInvalid)

		id, err := s.Plans.Create(ctx, store.GamePlanInput{TeamID: &team, PlanName: ptr("Switch everything")})
		require.NoError(t, err)

		plan, err := s.Plans.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.PlanDraft, plan.Status)
		assert.Equal(t, "Switch everything", plan.PlanName)

		require.NoError(t, s.Plans.Update(ctx, id, store.GamePlanPatch{}))
		touched, err := s.Plans.Get(ctx, id)
		require.NoError(t, err)
		assert.True(t, touched.UpdatedDate.After(plan.UpdatedDate))
		assert.Equal(t, plan.PlanName, touched.PlanName)

		require.NoError(t, s.Plans.Update(ctx, id, store.GamePlanPatch{Status: ptr("active")}))
		active, err := s.Plans.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "active", active.Status)
		assert.True(t, active.UpdatedDate.After(touched.UpdatedDate))

		plans, err := s.Plans.List(ctx, store.PlanFilter{TeamID: &team, Status: ptr("active")})
		require.NoError(t, err)
		assert.Len(t, plans, 1)

		assert.ErrorIs(t, s.Plans.Update(ctx, 9999, store.GamePlanPatch{}), domain.ErrNotFound)
		_, err = s.Plans.Get(ctx, 9999)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("PlayerAndTeamAggregates", func(t *testing.T) {
		reset(t, pool)
		hawks, err := s.Teams.Create(ctx, store.TeamInput{Name: "Hawks"})
		require.NoError(t, err)
		bulls, err := s.Teams.Create(ctx, store.TeamInput{Name: "Bulls"})
		require.NoError(t, err)
		a, err := s.Players.Create(ctx, store.PlayerInput{FirstName: ptr("A"), LastName: ptr("Hawk"), Age: ptr(24)})
		require.NoError(t, err)
		b, err := s.Players.Create(ctx, store.PlayerInput{FirstName: ptr("B"), LastName: ptr("Bull"), Age: ptr(30)})
		require.NoError(t, err)
		require.NoError(t, s.Teams.AddPlayer(ctx, hawks, store.RosterInput{PlayerID: a}))
		require.NoError(t, s.Teams.AddPlayer(ctx, bulls, store.RosterInput{PlayerID: b}))

		games := []struct {
			date       time.Time
			season     string
			completed  bool
			home, away int
			aPts, bPts int
		}{
			{time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), "2023-24", true, 100, 95, 20, 15},
			{time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC), "2023-24", true, 90, 104, 10, 22},
			{time.Date(2022, 11, 1, 0, 0, 0, 0, time.UTC), "2022-23", false, 0, 0, 30, 0},
		}
		for _, g := range games {
			gid, err := s.Games.Create(ctx, store.GameInput{
				Date: &g.date, Season: &g.season, HomeTeamID: &hawks, AwayTeamID: &bulls,
			})
			require.NoError(t, err)
			lines := []store.BoxScoreInput{{PlayerID: a, TeamID: hawks, Points: g.aPts, MinutesPlayed: 30}}
			if g.bPts > 0 {
				lines = append(lines, store.BoxScoreInput{PlayerID: b, TeamID: bulls, Points: g.bPts, MinutesPlayed: 30})
			}
			_, err = s.Games.RecordStats(ctx, gid, lines)
			require.NoError(t, err)
			if g.completed {
				require.NoError(t, s.Games.Update(ctx, gid, store.GameInput{
					Status: ptr("completed"), HomeScore: ptr(g.home), AwayScore: ptr(g.away),
				}))
			}
		}

		all, err := s.Players.Averages(ctx, a, store.StatsFilter{})
		require.NoError(t, err)
		assert.Equal(t, 3, all.GamesPlayed)
		assert.Equal(t, 20.0, all.Points)
		assert.Equal(t, 30.0, all.MinutesPlayed)
		require.NotNil(t, all.SeasonHigh)
		require.NotNil(t, all.SeasonLow)
		assert.Equal(t, 30, *all.SeasonHigh)
		assert.Equal(t, 10, *all.SeasonLow)

		season, err := s.Players.Averages(ctx, a, store.StatsFilter{Season: ptr("2023-24")})
		require.NoError(t, err)
		assert.Equal(t, 2, season.GamesPlayed)
		assert.Equal(t, 15.0, season.Points)

		stats, err := s.Players.Stats(ctx, a, store.StatsFilter{}, 2)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.Averages.GamesPlayed)
		require.Len(t, stats.RecentGames, 2)
		assert.Equal(t, "2024-01-12", stats.RecentGames[0].Date)
		assert.Equal(t, "Bulls", stats.RecentGames[0].Opponent)
		assert.Equal(t, 10, stats.RecentGames[0].Points)
		assert.Equal(t, "2024-01-10", stats.RecentGames[1].Date)

		_, err = s.Players.Stats(ctx, 9999, store.StatsFilter{}, 5)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		summary, err := s.Analytics.TeamSeason(ctx, hawks, ptr("2023-24"))
		require.NoError(t, err)
		assert.Equal(t, 2, summary.GamesPlayed)
		assert.Equal(t, 1, summary.Wins)
		assert.Equal(t, 1, summary.Losses)
		assert.Equal(t, 95.0, summary.AvgScored)
		assert.Equal(t, 99.5, summary.AvgAllowed)

		// The 2022-23 game never completed, so it does not count.
		whole, err := s.Analytics.TeamSeason(ctx, hawks, nil)
		require.NoError(t, err)
		assert.Equal(t, summary, whole)

		empty, err := s.Analytics.TeamSeason(ctx, hawks, ptr("2019-20"))
		require.NoError(t, err)
		assert.Equal(t, 0, empty.GamesPlayed)
		assert.Equal(t, 0.0, empty.AvgScored)

		report, err := s.Analytics.OpponentReport(ctx, hawks, bulls, 10)
		require.NoError(t, err)
		require.NotNil(t, report.Opponent.Name)
		assert.Equal(t, "Bulls", *report.Opponent.Name)
		assert.Equal(t, 1, report.RosterSummary.RosterSize)
		require.NotNil(t, report.RosterSummary.AvgAge)
		assert.Equal(t, 30.0, *report.RosterSummary.AvgAge)

		require.Len(t, report.HeadToHead, 2)
		assert.Equal(t, "L", report.HeadToHead[0]["result"])
		assert.EqualValues(t, 90, report.HeadToHead[0]["team_score"])
		assert.EqualValues(t, 104, report.HeadToHead[0]["opponent_score"])
		assert.Equal(t, "W", report.HeadToHead[1]["result"])
		assert.Equal(t, 1, report.HeadToHeadWins)
		assert.Equal(t, 1, report.HeadToHeadLoss)

		require.Len(t, report.RecentGames, 2)
		assert.Equal(t, "Hawks", report.RecentGames[0]["against"])
		assert.EqualValues(t, 104, report.RecentGames[0]["points_for"])

		require.Len(t, report.TopPlayers, 1)
		assert.Equal(t, b, report.TopPlayers[0].PlayerID)
		assert.Equal(t, 18.5, report.TopPlayers[0].AvgPoints)
		assert.Equal(t, 2, report.TopPlayers[0].Games)

		last, err := s.Analytics.OpponentReport(ctx, hawks, bulls, 1)
		require.NoError(t, err)
		assert.Len(t, last.HeadToHead, 1)
		assert.Len(t, last.RecentGames, 1)

		_, err = s.Analytics.OpponentReport(ctx, hawks, 9999, 10)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Health", func(t *testing.T) {
		reset(t, pool)
		h, err := s.Health.Check(ctx)
		require.NoError(t, err)
		assert.Equal(t, store.HealthOperational, h.Status)
		assert.Equal(t, "connected", h.Database)
		assert.Nil(t, h.LastCompleted)
		assert.Equal(t, 0, h.EntityCounts["players"])
	})
}
