package store

import (
	"context"
	"fmt"

	"github.com/albapepper/courtside/internal/config"
	"github.com/albapepper/courtside/internal/db"
	"github.com/albapepper/courtside/internal/domain"
)

// PlayerRepository reads and writes players and their game aggregates.
type PlayerRepository struct {
	db db.DB
}

const playerSelect = `
	SELECT p.player_id, p.first_name, p.last_name, p.position, p.age, p.height,
	       p.weight, p.years_exp, p.college, p.current_salary, p.expected_salary,
	       p.player_status, cur.team_id AS current_team_id, cur.name AS current_team,
	       cur.jersey_num
	FROM players p
	LEFT JOIN LATERAL (
		SELECT t.team_id, t.name, tp.jersey_num
		FROM teams_players tp
		JOIN teams t ON t.team_id = tp.team_id
		WHERE tp.player_id = p.player_id AND tp.left_date IS NULL
		ORDER BY tp.joined_date DESC
		LIMIT 1
	) cur ON TRUE`

// List returns players matching f, ordered by last then first name.
func (r *PlayerRepository) List(ctx context.Context, f PlayerFilter) ([]Player, error) {
	w := db.NewFilter()
	if f.Position != nil {
		w.Add("p.position = ?", *f.Position)
	}
	if f.MinAge != nil {
		w.Add("p.age >= ?", *f.MinAge)
	}
	if f.MaxAge != nil {
		w.Add("p.age <= ?", *f.MaxAge)
	}
	if f.TeamID != nil {
		w.Add("cur.team_id = ?", *f.TeamID)
	}
	if f.MinSalary != nil {
		w.Add("p.current_salary >= ?", *f.MinSalary)
	}
	if f.MaxSalary != nil {
		w.Add("p.current_salary <= ?", *f.MaxSalary)
	}

	players, err := selectAll[Player](ctx, r.db,
		playerSelect+w.Where()+" ORDER BY p.last_name, p.first_name", w.Args()...)
	if err != nil {
		return nil, fmt.Errorf("querying players: %w", err)
	}
	return players, nil
}

// Get returns one player with the active team attached.
func (r *PlayerRepository) Get(ctx context.Context, id int64) (*Player, error) {
	p, err := selectOne[Player](ctx, r.db, playerSelect+" WHERE p.player_id = $1", id)
	if db.IsNoRows(err) {
		return nil, domain.NotFound("Player %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying player %d: %w", id, err)
	}
	return p, nil
}

// Create inserts a player and returns its id.
func (r *PlayerRepository) Create(ctx context.Context, in PlayerInput) (int64, error) {
	status := "active"
	if in.PlayerStatus != nil {
		status = *in.PlayerStatus
	}
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO players (first_name, last_name, position, age, height, weight,
		                     years_exp, college, current_salary, expected_salary, player_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING player_id`,
		in.FirstName, in.LastName, in.Position, in.Age, in.Height, in.Weight,
		in.YearsExp, in.College, in.CurrentSalary, in.ExpectedSalary, status,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting player: %w", db.Translate(err))
	}
	return id, nil
}

// Update applies the non-nil fields of in.
func (r *PlayerRepository) Update(ctx context.Context, id int64, in PlayerInput) error {
	b := db.NewUpdate(config.PlayersTable,
		"first_name", "last_name", "position", "age", "height", "weight",
		"years_exp", "college", "current_salary", "expected_salary", "player_status")
	db.SetIfPresent(b, "first_name", in.FirstName)
	db.SetIfPresent(b, "last_name", in.LastName)
	db.SetIfPresent(b, "position", in.Position)
	db.SetIfPresent(b, "age", in.Age)
	db.SetIfPresent(b, "height", in.Height)
	db.SetIfPresent(b, "weight", in.Weight)
	db.SetIfPresent(b, "years_exp", in.YearsExp)
	db.SetIfPresent(b, "college", in.College)
	db.SetIfPresent(b, "current_salary", in.CurrentSalary)
	db.SetIfPresent(b, "expected_salary", in.ExpectedSalary)
	db.SetIfPresent(b, "player_status", in.PlayerStatus)
	if b.Len() == 0 {
		return domain.Invalid("No valid fields to update")
	}

	sql, args, err := b.Build("player_id", id)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("updating player %d: %w", id, db.Translate(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("Player %d not found", id)
	}
	return nil
}

const statLineSelect = `
	SELECT COUNT(*)::int AS games_played,
	       COALESCE(ROUND(AVG(s.points), 1), 0)::float8 AS points,
	       COALESCE(ROUND(AVG(s.rebounds), 1), 0)::float8 AS rebounds,
	       COALESCE(ROUND(AVG(s.assists), 1), 0)::float8 AS assists,
	       COALESCE(ROUND(AVG(s.steals), 1), 0)::float8 AS steals,
	       COALESCE(ROUND(AVG(s.blocks), 1), 0)::float8 AS blocks,
	       COALESCE(ROUND(AVG(s.turnovers), 1), 0)::float8 AS turnovers,
	       COALESCE(ROUND(AVG(s.minutes_played), 1), 0)::float8 AS minutes_played,
	       COALESCE(ROUND(AVG(s.plus_minus), 1), 0)::float8 AS plus_minus,
	       COALESCE(ROUND(AVG(s.shooting_percentage), 3), 0)::float8 AS shooting_percentage,
	       MAX(s.points) AS season_high,
	       MIN(s.points) AS season_low
	FROM player_game_stats s
	JOIN game g ON g.game_id = s.game_id
	WHERE s.player_id = $1`

// Averages aggregates a player's box scores, optionally by season or game type.
func (r *PlayerRepository) Averages(ctx context.Context, id int64, f StatsFilter) (*StatLine, error) {
	w := db.NewFilter(id)
	if f.Season != nil {
		w.Add("g.season = ?", *f.Season)
	}
	if f.GameType != nil {
		w.Add("g.game_type = ?", *f.GameType)
	}
	line, err := selectOne[StatLine](ctx, r.db, statLineSelect+w.And(), w.Args()...)
	if err != nil {
		return nil, fmt.Errorf("aggregating stats for player %d: %w", id, err)
	}
	return line, nil
}

// Stats is the player, their averages, and the most recent limit box scores.
func (r *PlayerRepository) Stats(ctx context.Context, id int64, f StatsFilter, limit int) (*PlayerStats, error) {
	player, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	line, err := r.Averages(ctx, id, f)
	if err != nil {
		return nil, err
	}

	w := db.NewFilter(id)
	if f.Season != nil {
		w.Add("g.season = ?", *f.Season)
	}
	if f.GameType != nil {
		w.Add("g.game_type = ?", *f.GameType)
	}
	lim := w.Arg(limit)
	recent, err := selectAll[RecentGame](ctx, r.db, `
		SELECT g.game_id, g.date::text AS date, COALESCE(opp.name, '') AS opponent,
		       s.points, s.rebounds, s.assists
		FROM player_game_stats s
		JOIN game g ON g.game_id = s.game_id
		JOIN teams opp ON opp.team_id =
			CASE WHEN s.team_id = g.home_team_id THEN g.away_team_id ELSE g.home_team_id END
		WHERE s.player_id = $1`+w.And()+`
		ORDER BY g.date DESC, g.game_id DESC
		LIMIT `+lim, w.Args()...)
	if err != nil {
		return nil, fmt.Errorf("querying recent games for player %d: %w", id, err)
	}

	return &PlayerStats{Player: player, Averages: *line, RecentGames: recent}, nil
}
