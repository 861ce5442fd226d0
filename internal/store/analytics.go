package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/albapepper/courtside/internal/config"
	"github.com/albapepper/courtside/internal/db"
	"github.com/albapepper/courtside/internal/domain"
)

// AnalyticsRepository runs the read-only composite queries.
type AnalyticsRepository struct {
	db db.DB
}

// ---- Player matchups ----

// Matchup is two players' lines in every game they both appeared in.
type Matchup struct {
	Player1 MatchupPlayer         `json:"player1"`
	Player2 MatchupPlayer         `json:"player2"`
	Games   []MatchupGame         `json:"games"`
	Summary domain.MatchupSummary `json:"summary"`
}

func (r *AnalyticsRepository) matchupPlayer(ctx context.Context, id int64) (*MatchupPlayer, error) {
	p, err := selectOne[MatchupPlayer](ctx, r.db,
		"SELECT player_id, first_name, last_name, position FROM players WHERE player_id = $1", id)
	if db.IsNoRows(err) {
		return nil, domain.NotFound("Player %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying player %d: %w", id, err)
	}
	return p, nil
}

// PlayerMatchup compares two players over their shared games.
func (r *AnalyticsRepository) PlayerMatchup(ctx context.Context, p1, p2 int64, season *string) (*Matchup, error) {
	a, err := r.matchupPlayer(ctx, p1)
	if err != nil {
		return nil, err
	}
	b, err := r.matchupPlayer(ctx, p2)
	if err != nil {
		return nil, err
	}

	w := db.NewFilter(p1, p2)
	if season != nil {
		w.Add("g.season = ?", *season)
	}
	games, err := selectAll[MatchupGame](ctx, r.db, `
		SELECT g.game_id, g.date::text AS date, g.season,
		       s1.points AS player1_points, s1.rebounds AS player1_rebounds, s1.assists AS player1_assists,
		       s2.points AS player2_points, s2.rebounds AS player2_rebounds, s2.assists AS player2_assists
		FROM player_game_stats s1
		JOIN player_game_stats s2 ON s2.game_id = s1.game_id AND s2.player_id = $2
		JOIN game g ON g.game_id = s1.game_id
		WHERE s1.player_id = $1`+w.And()+`
		ORDER BY g.date DESC, g.game_id DESC`, w.Args()...)
	if err != nil {
		return nil, fmt.Errorf("querying matchup %d vs %d: %w", p1, p2, err)
	}

	shared := make([]domain.SharedGame, len(games))
	for i, g := range games {
		shared[i] = domain.SharedGame{GameID: g.GameID, Player1Points: g.Player1Points, Player2Points: g.Player2Points}
	}
	return &Matchup{Player1: *a, Player2: *b, Games: games, Summary: domain.SummarizeMatchup(shared)}, nil
}

// ---- Opponent reports ----

// OpponentReport scouts opponentID from teamID's point of view over the last
// lastN completed games.
func (r *AnalyticsRepository) OpponentReport(ctx context.Context, teamID, opponentID int64, lastN int) (*OpponentReport, error) {
	teams := &TeamRepository{db: r.db}
	team, err := teams.Get(ctx, teamID)
	if err != nil {
		return nil, err
	}
	opp, err := teams.Get(ctx, opponentID)
	if err != nil {
		return nil, err
	}

	report := &OpponentReport{Team: *team, Opponent: *opp}

	summary, err := selectOne[RosterSummary](ctx, r.db, `
		SELECT COUNT(DISTINCT p.player_id)::int AS roster_size,
		       ROUND(AVG(p.age), 1)::float8 AS avg_age
		FROM teams_players tp
		JOIN players p ON p.player_id = tp.player_id
		WHERE tp.team_id = $1 AND tp.left_date IS NULL`, opponentID)
	if err != nil {
		return nil, fmt.Errorf("summarizing roster of team %d: %w", opponentID, err)
	}
	report.RosterSummary = *summary

	report.HeadToHead, err = selectMaps(ctx, r.db, `
		SELECT g.game_id, g.date::text AS date, g.season,
		       CASE WHEN g.home_team_id = $1 THEN g.home_score ELSE g.away_score END AS team_score,
		       CASE WHEN g.home_team_id = $1 THEN g.away_score ELSE g.home_score END AS opponent_score,
		       CASE WHEN (g.home_team_id = $1 AND g.home_score > g.away_score)
		              OR (g.away_team_id = $1 AND g.away_score > g.home_score)
		            THEN 'W' ELSE 'L' END AS result
		FROM game g
		WHERE g.status = 'completed'
		  AND ((g.home_team_id = $1 AND g.away_team_id = $2)
		    OR (g.home_team_id = $2 AND g.away_team_id = $1))
		ORDER BY g.date DESC, g.game_id DESC
		LIMIT $3`, teamID, opponentID, lastN)
	if err != nil {
		return nil, fmt.Errorf("querying head-to-head %d vs %d: %w", teamID, opponentID, err)
	}
	for _, g := range report.HeadToHead {
		if g["result"] == "W" {
			report.HeadToHeadWins++
		} else {
			report.HeadToHeadLoss++
		}
	}

	report.RecentGames, err = selectMaps(ctx, r.db, `
		SELECT g.game_id, g.date::text AS date,
		       other.name AS against,
		       CASE WHEN g.home_team_id = $1 THEN g.home_score ELSE g.away_score END AS points_for,
		       CASE WHEN g.home_team_id = $1 THEN g.away_score ELSE g.home_score END AS points_against
		FROM game g
		JOIN teams other ON other.team_id =
			CASE WHEN g.home_team_id = $1 THEN g.away_team_id ELSE g.home_team_id END
		WHERE g.status = 'completed' AND (g.home_team_id = $1 OR g.away_team_id = $1)
		ORDER BY g.date DESC, g.game_id DESC
		LIMIT $2`, opponentID, lastN)
	if err != nil {
		return nil, fmt.Errorf("querying recent games of team %d: %w", opponentID, err)
	}

	report.TopPlayers, err = selectAll[TopScorer](ctx, r.db, `
		SELECT p.player_id, p.first_name, p.last_name, p.position,
		       ROUND(AVG(s.points), 1)::float8 AS avg_points,
		       COUNT(*)::int AS games
		FROM players p
		JOIN player_game_stats s ON s.player_id = p.player_id
		WHERE p.player_id IN (
			SELECT player_id FROM teams_players WHERE team_id = $1 AND left_date IS NULL)
		GROUP BY p.player_id
		ORDER BY avg_points DESC, p.last_name
		LIMIT 5`, opponentID)
	if err != nil {
		return nil, fmt.Errorf("querying top players of team %d: %w", opponentID, err)
	}
	return report, nil
}

// ---- Lineups ----

// Lineups ranks a team's five-man units by summed plus/minus. Configurations
// are grouped by their ordered player names; units seen in fewer than
// minGames distinct games are dropped.
func (r *AnalyticsRepository) Lineups(ctx context.Context, teamID int64, minGames int, season *string) ([]LineupStat, error) {
	ok, err := exists(ctx, r.db, config.TeamsTable, "team_id", teamID)
	if err != nil {
		return nil, fmt.Errorf("checking team %d: %w", teamID, err)
	}
	if !ok {
		return nil, domain.NotFound("Team %d not found", teamID)
	}

	w := db.NewFilter(teamID, minGames)
	if season != nil {
		w.Add("g.season = ?", *season)
	}
	lineups, err := selectAll[LineupStat](ctx, r.db, `
		WITH named AS (
			SELECT lc.lineup_id, lc.game_id, lc.plus_minus, lc.offensive_rating, lc.defensive_rating,
			       array_agg(pl.player_id ORDER BY pl.player_id)::bigint[] AS player_ids,
			       string_agg(concat_ws(' ', p.first_name, p.last_name), ', '
			                  ORDER BY pl.position_in_lineup) AS players
			FROM lineup_configuration lc
			JOIN player_lineups pl ON pl.lineup_id = lc.lineup_id
			JOIN players p ON p.player_id = pl.player_id
			LEFT JOIN game g ON g.game_id = lc.game_id
			WHERE lc.team_id = $1`+w.And()+`
			GROUP BY lc.lineup_id
		)
		SELECT player_ids,
		       MIN(players) AS players,
		       SUM(plus_minus)::int AS plus_minus,
		       ROUND(AVG(offensive_rating), 1)::float8 AS offensive_rating,
		       ROUND(AVG(defensive_rating), 1)::float8 AS defensive_rating,
		       COUNT(*)::int AS quarters_played,
		       COUNT(DISTINCT game_id)::int AS games_played
		FROM named
		GROUP BY player_ids
		HAVING COUNT(DISTINCT game_id) >= $2
		ORDER BY SUM(plus_minus) DESC, MIN(players)
		LIMIT 10`, w.Args()...)
	if err != nil {
		return nil, fmt.Errorf("querying lineups for team %d: %w", teamID, err)
	}
	return lineups, nil
}

// CreateLineup stores a lineup and its five players in positions 1..5, in
// the order given.
func (r *AnalyticsRepository) CreateLineup(ctx context.Context, in LineupInput) (int64, error) {
	if len(in.PlayerIDs) != 5 {
		return 0, domain.Invalid("A lineup needs exactly 5 players, got %d", len(in.PlayerIDs))
	}
	seen := make(map[int64]bool, 5)
	for _, id := range in.PlayerIDs {
		if seen[id] {
			return 0, domain.Invalid("Player %d appears twice in the lineup", id)
		}
		seen[id] = true
	}

	var id int64
	err := db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO lineup_configuration (team_id, game_id, quarter, plus_minus,
			                                  offensive_rating, defensive_rating)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING lineup_id`,
			in.TeamID, in.GameID, in.Quarter, in.PlusMinus, in.OffensiveRating, in.DefensiveRating,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("inserting lineup: %w", db.Translate(err))
		}
		for i, pid := range in.PlayerIDs {
			if _, err := tx.Exec(ctx,
				"INSERT INTO player_lineups (lineup_id, player_id, position_in_lineup) VALUES ($1, $2, $3)",
				id, pid, i+1); err != nil {
				return fmt.Errorf("inserting lineup player %d: %w", pid, db.Translate(err))
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ---- Season summaries ----

// TeamSeason is W/L and scoring averages over completed games.
func (r *AnalyticsRepository) TeamSeason(ctx context.Context, teamID int64, season *string) (*TeamSeasonSummary, error) {
	ok, err := exists(ctx, r.db, config.TeamsTable, "team_id", teamID)
	if err != nil {
		return nil, fmt.Errorf("checking team %d: %w", teamID, err)
	}
	if !ok {
		return nil, domain.NotFound("Team %d not found", teamID)
	}

	w := db.NewFilter(teamID)
	if season != nil {
		w.Add("g.season = ?", *season)
	}
	s, err := selectOne[TeamSeasonSummary](ctx, r.db, `
		WITH games AS (
			SELECT CASE WHEN g.home_team_id = $1 THEN g.home_score ELSE g.away_score END AS scored,
			       CASE WHEN g.home_team_id = $1 THEN g.away_score ELSE g.home_score END AS allowed
			FROM game g
			WHERE g.status = 'completed' AND (g.home_team_id = $1 OR g.away_team_id = $1)`+w.And()+`
		)
		SELECT COUNT(*)::int AS games_played,
		       COUNT(*) FILTER (WHERE scored > allowed)::int AS wins,
		       COUNT(*) FILTER (WHERE scored <= allowed)::int AS losses,
		       COALESCE(ROUND(AVG(scored), 1), 0)::float8 AS avg_scored,
		       COALESCE(ROUND(AVG(allowed), 1), 0)::float8 AS avg_allowed
		FROM games`, w.Args()...)
	if err != nil {
		return nil, fmt.Errorf("summarizing season for team %d: %w", teamID, err)
	}
	return s, nil
}

// ---- Situational performance ----

// Situational returns clutch ratings, per-quarter scoring, and close games.
// Blocks without data come back zero-valued or empty.
func (r *AnalyticsRepository) Situational(ctx context.Context, teamID int64) (*Situational, error) {
	ok, err := exists(ctx, r.db, config.TeamsTable, "team_id", teamID)
	if err != nil {
		return nil, fmt.Errorf("checking team %d: %w", teamID, err)
	}
	if !ok {
		return nil, domain.NotFound("Team %d not found", teamID)
	}

	out := &Situational{TeamID: teamID}

	clutch, err := selectOne[ClutchBlock](ctx, r.db, `
		SELECT COUNT(*)::int AS games,
		       ROUND(AVG(offensive_rating), 1)::float8 AS offensive_rating,
		       ROUND(AVG(defensive_rating), 1)::float8 AS defensive_rating,
		       ROUND(AVG(offensive_rating - defensive_rating), 1)::float8 AS net_rating
		FROM team_clutch_stats
		WHERE team_id = $1`, teamID)
	if err != nil {
		return nil, fmt.Errorf("querying clutch stats for team %d: %w", teamID, err)
	}
	out.Clutch = *clutch

	out.ByQuarter, err = selectAll[QuarterSplit](ctx, r.db, `
		SELECT q.quarter,
		       ROUND(AVG(q.points), 1)::float8 AS points_for,
		       ROUND(AVG(o.points), 1)::float8 AS points_against
		FROM game_quarter_scores q
		LEFT JOIN game_quarter_scores o
		       ON o.game_id = q.game_id AND o.quarter = q.quarter AND o.team_id <> q.team_id
		WHERE q.team_id = $1
		GROUP BY q.quarter
		ORDER BY q.quarter`, teamID)
	if err != nil {
		return nil, fmt.Errorf("querying quarter splits for team %d: %w", teamID, err)
	}

	out.CloseGames, err = selectAll[CloseGame](ctx, r.db, `
		SELECT game_id, date, opponent, team_score, opp_score
		FROM (
			SELECT g.game_id, g.date::text AS date, other.name AS opponent,
			       CASE WHEN g.home_team_id = $1 THEN g.home_score ELSE g.away_score END AS team_score,
			       CASE WHEN g.home_team_id = $1 THEN g.away_score ELSE g.home_score END AS opp_score,
			       g.date AS sort_date
			FROM game g
			JOIN teams other ON other.team_id =
				CASE WHEN g.home_team_id = $1 THEN g.away_team_id ELSE g.home_team_id END
			WHERE g.status = 'completed' AND (g.home_team_id = $1 OR g.away_team_id = $1)
			  AND ABS(g.home_score - g.away_score) <= 5
		) cg
		ORDER BY sort_date DESC, game_id DESC`, teamID)
	if err != nil {
		return nil, fmt.Errorf("querying close games for team %d: %w", teamID, err)
	}
	for i := range out.CloseGames {
		g := &out.CloseGames[i]
		g.Result = domain.GameResult(g.TeamScore, g.OppScore)
	}
	return out, nil
}
