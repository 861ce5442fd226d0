package domain

import (
	"math"
	"time"
)

// ValidationStatus classifies a counting run. Empty tables pass.
func ValidationStatus(invalid, total int, warningThreshold float64) string {
	if invalid <= 0 || total <= 0 {
		return ValidationPassed
	}
	if float64(invalid)/float64(total) < warningThreshold {
		return ValidationWarning
	}
	return ValidationFailed
}

// NextRun adds one unit of frequency to from.
func NextRun(frequency string, from time.Time) (time.Time, error) {
	switch frequency {
	case FrequencyDaily:
		return from.AddDate(0, 0, 1), nil
	case FrequencyWeekly:
		return from.AddDate(0, 0, 7), nil
	case FrequencyMonthly:
		return from.AddDate(0, 1, 0), nil
	}
	return time.Time{}, OneOf("frequency", frequency, Frequencies)
}

// DurationSeconds is end (or now, while unfinished) minus start, never negative.
func DurationSeconds(start time.Time, end *time.Time, now time.Time) float64 {
	stop := now
	if end != nil {
		stop = *end
	}
	d := stop.Sub(start).Seconds()
	if d < 0 {
		return 0
	}
	return Round(d, 1)
}

// Round rounds v half away from zero to the given number of decimals.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// --------------------------------------------------------------------------
// Head-to-head matchups
// --------------------------------------------------------------------------

// SharedGame is one game both players appeared in.
type SharedGame struct {
	GameID        int64
	Player1Points int
	Player2Points int
}

// MatchupSide summarizes one player's side of a matchup.
type MatchupSide struct {
	AvgPoints      float64 `json:"avg_points"`
	HeadToHeadWins int     `json:"head_to_head_wins"`
}

// MatchupSummary is the aggregate over all shared games.
type MatchupSummary struct {
	GamesPlayed int         `json:"games_played"`
	Player1     MatchupSide `json:"player1"`
	Player2     MatchupSide `json:"player2"`
	Ties        int         `json:"ties"`
}

// SummarizeMatchup averages points per side and counts a head-to-head win for
// whichever player scored more in a game. Equal scores are ties.
func SummarizeMatchup(games []SharedGame) MatchupSummary {
	var s MatchupSummary
	s.GamesPlayed = len(games)
	if len(games) == 0 {
		return s
	}
	var p1, p2 int
	for _, g := range games {
		p1 += g.Player1Points
		p2 += g.Player2Points
		switch {
		case g.Player1Points > g.Player2Points:
			s.Player1.HeadToHeadWins++
		case g.Player2Points > g.Player1Points:
			s.Player2.HeadToHeadWins++
		default:
			s.Ties++
		}
	}
	n := float64(len(games))
	s.Player1.AvgPoints = Round(float64(p1)/n, 1)
	s.Player2.AvgPoints = Round(float64(p2)/n, 1)
	return s
}

// GameResult is "W" or "L" for team given the final score of a game.
func GameResult(teamScore, oppScore int) string {
	if teamScore > oppScore {
		return "W"
	}
	return "L"
}
