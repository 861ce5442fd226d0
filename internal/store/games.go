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

// GameRepository covers games and their box scores.
type GameRepository struct {
	db db.DB
}

const gameSelect = `
	SELECT g.game_id, g.date::text AS date, g.game_time, g.season, g.game_type,
	       g.is_playoff, g.home_team_id, g.away_team_id,
	       ht.name AS home_team_name, awt.name AS away_team_name,
	       g.home_score, g.away_score, g.status, g.venue
	FROM game g
	JOIN teams ht ON ht.team_id = g.home_team_id
	JOIN teams awt ON awt.team_id = g.away_team_id`

// List returns games matching f, newest first.
func (r *GameRepository) List(ctx context.Context, f GameFilter) ([]Game, error) {
	w := db.NewFilter()
	if f.StartDate != nil {
		w.Add("g.date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		w.Add("g.date <= ?", *f.EndDate)
	}
	if f.Season != nil {
		w.Add("g.season = ?", *f.Season)
	}
	if f.GameType != nil {
		w.Add("g.game_type = ?", *f.GameType)
	}
	if f.Status != nil {
		w.Add("g.status = ?", *f.Status)
	}
	if f.TeamID != nil {
		w.Add("(g.home_team_id = ? OR g.away_team_id = ?)", *f.TeamID, *f.TeamID)
	}

	games, err := selectAll[Game](ctx, r.db,
		gameSelect+w.Where()+" ORDER BY g.date DESC, g.game_id DESC", w.Args()...)
	if err != nil {
		return nil, fmt.Errorf("querying games: %w", err)
	}
	return games, nil
}

// Get returns a game with each side's box scores.
func (r *GameRepository) Get(ctx context.Context, id int64) (*GameDetail, error) {
	g, err := selectOne[Game](ctx, r.db, gameSelect+" WHERE g.game_id = $1", id)
	if db.IsNoRows(err) {
		return nil, domain.NotFound("Game %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying game %d: %w", id, err)
	}

	home, err := r.boxScores(ctx, id, g.HomeTeamID)
	if err != nil {
		return nil, err
	}
	away, err := r.boxScores(ctx, id, g.AwayTeamID)
	if err != nil {
		return nil, err
	}
	return &GameDetail{Game: *g, HomeTeamStats: home, AwayTeamStats: away}, nil
}

func (r *GameRepository) boxScores(ctx context.Context, gameID, teamID int64) ([]BoxScore, error) {
	rows, err := selectAll[BoxScore](ctx, r.db, `
		SELECT s.player_id, s.team_id, p.first_name, p.last_name, p.position,
		       s.points, s.rebounds, s.assists, s.steals, s.blocks, s.turnovers,
		       s.minutes_played::float8 AS minutes_played,
		       s.shooting_percentage::float8 AS shooting_percentage, s.plus_minus
		FROM player_game_stats s
		JOIN players p ON p.player_id = s.player_id
		WHERE s.game_id = $1 AND s.team_id = $2
		ORDER BY s.points DESC, p.last_name`, gameID, teamID)
	if err != nil {
		return nil, fmt.Errorf("querying box scores for game %d team %d: %w", gameID, teamID, err)
	}
	return rows, nil
}

// Create inserts a game. Date, season, and both team ids are required and the
// teams must differ; scores default to 0.
func (r *GameRepository) Create(ctx context.Context, in GameInput) (int64, error) {
	if err := ValidateNewGame(in); err != nil {
		return 0, err
	}
	zero := 0
	if in.HomeScore == nil {
		in.HomeScore = &zero
	}
	if in.AwayScore == nil {
		in.AwayScore = &zero
	}

	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO game (date, game_time, season, game_type, is_playoff,
		                  home_team_id, away_team_id, home_score, away_score, status, venue)
		VALUES ($1, $2, $3, COALESCE($4, 'regular'), COALESCE($5, FALSE),
		        $6, $7, $8, $9, COALESCE($10, 'scheduled'), $11)
		RETURNING game_id`,
		*in.Date, in.GameTime, *in.Season, in.GameType, in.IsPlayoff,
		*in.HomeTeamID, *in.AwayTeamID, *in.HomeScore, *in.AwayScore, in.Status, in.Venue,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting game: %w", db.Translate(err))
	}
	return id, nil
}

// ValidateNewGame checks the fields a new game cannot do without.
func ValidateNewGame(in GameInput) error {
	var missing []string
	if in.Date == nil {
		missing = append(missing, "date")
	}
	if in.Season == nil || *in.Season == "" {
		missing = append(missing, "season")
	}
	if in.HomeTeamID == nil {
		missing = append(missing, "home_team_id")
	}
	if in.AwayTeamID == nil {
		missing = append(missing, "away_team_id")
	}
	if len(missing) > 0 {
		return domain.Invalid("Missing required fields: %s", strings.Join(missing, ", "))
	}
	if *in.HomeTeamID == *in.AwayTeamID {
		return domain.Invalid("Home and away teams must be different")
	}
	return nil
}

// Update applies the non-nil fields of in. Status and scores are taken as
// given.
func (r *GameRepository) Update(ctx context.Context, id int64, in GameInput) error {
	if in.HomeTeamID != nil && in.AwayTeamID != nil && *in.HomeTeamID == *in.AwayTeamID {
		return domain.Invalid("Home and away teams must be different")
	}
	b := db.NewUpdate(config.GameTable,
		"date", "game_time", "season", "game_type", "is_playoff", "home_team_id",
		"away_team_id", "home_score", "away_score", "status", "venue")
	db.SetIfPresent(b, "date", in.Date)
	db.SetIfPresent(b, "game_time", in.GameTime)
	db.SetIfPresent(b, "season", in.Season)
	db.SetIfPresent(b, "game_type", in.GameType)
	db.SetIfPresent(b, "is_playoff", in.IsPlayoff)
	db.SetIfPresent(b, "home_team_id", in.HomeTeamID)
	db.SetIfPresent(b, "away_team_id", in.AwayTeamID)
	db.SetIfPresent(b, "home_score", in.HomeScore)
	db.SetIfPresent(b, "away_score", in.AwayScore)
	db.SetIfPresent(b, "status", in.Status)
	db.SetIfPresent(b, "venue", in.Venue)
	if b.Len() == 0 {
		return domain.Invalid("No valid fields to update")
	}

	sql, args, err := b.Build("game_id", id)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("updating game %d: %w", id, db.Translate(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("Game %d not found", id)
	}
	return nil
}

// RecordStats upserts box-score rows for one game in a single transaction.
// Every row's team must be one of the game's two teams.
func (r *GameRepository) RecordStats(ctx context.Context, gameID int64, lines []BoxScoreInput) (int, error) {
	if len(lines) == 0 {
		return 0, domain.Invalid("At least one stat line is required")
	}
	err := db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		var home, away int64
		err := tx.QueryRow(ctx,
			"SELECT home_team_id, away_team_id FROM game WHERE game_id = $1 FOR SHARE", gameID,
		).Scan(&home, &away)
		if db.IsNoRows(err) {
			return domain.NotFound("Game %d not found", gameID)
		}
		if err != nil {
			return fmt.Errorf("locking game %d: %w", gameID, err)
		}

		batch := &pgx.Batch{}
		for _, l := range lines {
			if l.TeamID != home && l.TeamID != away {
				return domain.Invalid("Team %d did not play in game %d", l.TeamID, gameID)
			}
			batch.Queue(`
				INSERT INTO player_game_stats (player_id, game_id, team_id, points, rebounds,
				       assists, steals, blocks, turnovers, minutes_played, shooting_percentage, plus_minus)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
				ON CONFLICT (player_id, game_id) DO UPDATE SET
				       team_id = EXCLUDED.team_id, points = EXCLUDED.points,
				       rebounds = EXCLUDED.rebounds, assists = EXCLUDED.assists,
				       steals = EXCLUDED.steals, blocks = EXCLUDED.blocks,
				       turnovers = EXCLUDED.turnovers, minutes_played = EXCLUDED.minutes_played,
				       shooting_percentage = EXCLUDED.shooting_percentage,
				       plus_minus = EXCLUDED.plus_minus`,
				l.PlayerID, gameID, l.TeamID, l.Points, l.Rebounds, l.Assists, l.Steals,
				l.Blocks, l.Turnovers, l.MinutesPlayed, l.ShootingPercentage, l.PlusMinus)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("writing stats for game %d: %w", gameID, db.Translate(err))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(lines), nil
}
