package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/albapepper/courtside/internal/config"
	"github.com/albapepper/courtside/internal/db"
	"github.com/albapepper/courtside/internal/domain"
)

// TeamRepository covers teams and roster membership.
type TeamRepository struct {
	db db.DB
}

const teamSelect = `SELECT team_id, name, abrv, city, conference, division FROM teams`

func (r *TeamRepository) List(ctx context.Context) ([]Team, error) {
	teams, err := selectAll[Team](ctx, r.db, teamSelect+" ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("querying teams: %w", err)
	}
	return teams, nil
}

func (r *TeamRepository) Get(ctx context.Context, id int64) (*Team, error) {
	t, err := selectOne[Team](ctx, r.db, teamSelect+" WHERE team_id = $1", id)
	if db.IsNoRows(err) {
		return nil, domain.NotFound("Team %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying team %d: %w", id, err)
	}
	return t, nil
}

func (r *TeamRepository) Create(ctx context.Context, in TeamInput) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO teams (name, abrv, city, conference, division)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING team_id`,
		in.Name, in.Abrv, in.City, in.Conference, in.Division,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting team: %w", db.Translate(err))
	}
	return id, nil
}

// Roster returns the active roster, one row per player, ordered by jersey
// number then last name.
func (r *TeamRepository) Roster(ctx context.Context, teamID int64) ([]RosterEntry, error) {
	ok, err := exists(ctx, r.db, config.TeamsTable, "team_id", teamID)
	if err != nil {
		return nil, fmt.Errorf("checking team %d: %w", teamID, err)
	}
	if !ok {
		return nil, domain.NotFound("Team %d not found", teamID)
	}

	roster, err := selectAll[RosterEntry](ctx, r.db, `
		SELECT * FROM (
			SELECT DISTINCT ON (p.player_id)
			       p.player_id, p.first_name, p.last_name, p.position, p.age,
			       tp.jersey_num, tp.joined_date::text AS joined_date
			FROM teams_players tp
			JOIN players p ON p.player_id = tp.player_id
			WHERE tp.team_id = $1 AND tp.left_date IS NULL
			ORDER BY p.player_id, tp.joined_date DESC
		) roster
		ORDER BY jersey_num NULLS LAST, last_name`, teamID)
	if err != nil {
		return nil, fmt.Errorf("querying roster for team %d: %w", teamID, err)
	}
	return roster, nil
}

// AddPlayer opens an active roster membership.
func (r *TeamRepository) AddPlayer(ctx context.Context, teamID int64, in RosterInput) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO teams_players (team_id, player_id, jersey_num, joined_date)
		VALUES ($1, $2, $3, COALESCE($4::date, CURRENT_DATE))`,
		teamID, in.PlayerID, in.JerseyNum, in.JoinedDate)
	switch {
	case db.IsUniqueViolation(err, "uq_teams_players_active"):
		return domain.Conflict("Player %d is already on the active roster of team %d", in.PlayerID, teamID)
	case db.IsUniqueViolation(err):
		return domain.Conflict("Player %d already joined team %d on that date", in.PlayerID, teamID)
	case err != nil:
		err = db.Translate(err)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFound("Team %d or player %d not found", teamID, in.PlayerID)
		}
		if domain.Message(err) != "" {
			return err
		}
		return fmt.Errorf("adding player %d to team %d: %w", in.PlayerID, teamID, err)
	}
	return nil
}

// UpdateMembership edits the player's current membership row: the active one
// when it exists, otherwise the most recent.
func (r *TeamRepository) UpdateMembership(ctx context.Context, teamID, playerID int64, in RosterPatch) error {
	b := db.NewUpdate(config.TeamsPlayersTable, "jersey_num", "left_date")
	db.SetIfPresent(b, "jersey_num", in.JerseyNum)
	db.SetIfPresent(b, "left_date", in.LeftDate)
	if b.Len() == 0 {
		return domain.Invalid("No valid fields to update")
	}

	sql, args, err := b.BuildWhere(`ctid = (
		SELECT ctid FROM teams_players
		WHERE team_id = ? AND player_id = ?
		ORDER BY (left_date IS NULL) DESC, joined_date DESC
		LIMIT 1)`, teamID, playerID)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("updating membership %d/%d: %w", teamID, playerID, db.Translate(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("Player %d has no membership on team %d", playerID, teamID)
	}
	return nil
}
