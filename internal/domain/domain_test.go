package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorKinds(t *testing.T) {
	err := Conflict("Evaluation already exists for player %d", 7)
	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "Evaluation already exists for player 7", err.Error())
	assert.Equal(t, "Evaluation already exists for player 7", Message(err))
	assert.Empty(t, Message(errors.New("boom")))
}

func TestParseSeverity(t *testing.T) {
	for _, s := range []string{"info", "warning", "error", "critical"} {
		sev, err := ParseSeverity(s)
		require.NoError(t, err)
		assert.Equal(t, Severity(s), sev)
	}

	_, err := ParseSeverity("emergency")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "info, warning, error, critical")
}

func TestSeverityAtOrBelow(t *testing.T) {
	tests := []struct {
		sev  Severity
		want []string
	}{
		{SeverityInfo, []string{"info"}},
		{SeverityWarning, []string{"info", "warning"}},
		{SeverityError, []string{"info", "warning", "error"}},
		{SeverityCritical, []string{"info", "warning", "error", "critical"}},
		{Severity("emergency"), nil},
	}
	for _, tt := range tests {
		t.Run(string(tt.sev), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sev.AtOrBelow())
		})
	}
}

func TestValidationStatus(t *testing.T) {
	tests := []struct {
		name      string
		invalid   int
		total     int
		threshold float64
		want      string
	}{
		{"clean table", 0, 10, 0.05, ValidationPassed},
		{"empty table", 0, 0, 0.05, ValidationPassed},
		{"two of ten under quarter threshold", 2, 10, 0.25, ValidationWarning},
		{"three of ten over quarter threshold", 3, 10, 0.25, ValidationFailed},
		{"two of ten with default threshold", 2, 10, 0.05, ValidationFailed},
		{"one of hundred with default threshold", 1, 100, 0.05, ValidationWarning},
		{"exactly at threshold fails", 5, 100, 0.05, ValidationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidationStatus(tt.invalid, tt.total, tt.threshold))
		})
	}
}

func TestNextRun(t *testing.T) {
	from := time.Date(2024, 1, 31, 3, 0, 0, 0, time.UTC)

	got, err := NextRun("daily", from)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 3, 0, 0, 0, time.UTC), got)

	got, err = NextRun("weekly", from)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 7, 3, 0, 0, 0, time.UTC), got)

	got, err = NextRun("monthly", from)
	require.NoError(t, err)
	assert.True(t, got.After(from))

	_, err = NextRun("hourly", from)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDurationSeconds(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Second)
	now := start.Add(10 * time.Minute)

	assert.Equal(t, 90.0, DurationSeconds(start, &end, now))
	assert.Equal(t, 600.0, DurationSeconds(start, nil, now))

	before := start.Add(-time.Second)
	assert.Equal(t, 0.0, DurationSeconds(start, &before, now))
}

func TestSummarizeMatchup(t *testing.T) {
	s := SummarizeMatchup([]SharedGame{
		{GameID: 1, Player1Points: 20, Player2Points: 15},
		{GameID: 2, Player1Points: 10, Player2Points: 22},
	})

	assert.Equal(t, 2, s.GamesPlayed)
	assert.Equal(t, 15.0, s.Player1.AvgPoints)
	assert.Equal(t, 18.5, s.Player2.AvgPoints)
	assert.Equal(t, 1, s.Player1.HeadToHeadWins)
	assert.Equal(t, 1, s.Player2.HeadToHeadWins)
	assert.Zero(t, s.Ties)

	empty := SummarizeMatchup(nil)
	assert.Zero(t, empty.GamesPlayed)
	assert.Zero(t, empty.Player1.AvgPoints)
}

func TestRolesAndRatings(t *testing.T) {
	assert.True(t, CanAssignTeam("head_coach"))
	assert.True(t, CanAssignTeam("GM"))
	assert.False(t, CanAssignTeam("superfan"))

	ok := 0.0
	hi := 101.0
	lo := -1.0
	assert.NoError(t, CheckRating("overall_rating", &ok))
	assert.NoError(t, CheckRating("overall_rating", nil))
	assert.ErrorIs(t, CheckRating("overall_rating", &hi), ErrInvalid)
	assert.ErrorIs(t, CheckRating("overall_rating", &lo), ErrInvalid)
}

func TestGameHelpers(t *testing.T) {
	assert.Equal(t, "W", GameResult(101, 99))
	assert.Equal(t, "L", GameResult(99, 101))
	assert.Equal(t, 0.457, Round(0.4567, 3))
}
