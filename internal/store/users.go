package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/albapepper/courtside/internal/config"
	"github.com/albapepper/courtside/internal/db"
	"github.com/albapepper/courtside/internal/domain"
)

// UserRepository backs the demo auth surface. No credentials are stored.
type UserRepository struct {
	db db.DB
}

const userSelect = `
	SELECT u.user_id, u.username, u.email, u.role, u.is_active, u.team_id,
	       t.name AS team_name, u.created_at
	FROM users u
	LEFT JOIN teams t ON t.team_id = u.team_id`

func (r *UserRepository) List(ctx context.Context, role *string) ([]User, error) {
	w := db.NewFilter()
	if role != nil {
		w.Add("u.role = ?", *role)
	}
	users, err := selectAll[User](ctx, r.db, userSelect+w.Where()+" ORDER BY u.username", w.Args()...)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Get(ctx context.Context, id int64) (*User, error) {
	return r.one(ctx, " WHERE u.user_id = $1", id, fmt.Sprintf("User %d not found", id))
}

// GetByUsername is the whole of "login": a lookup with no credential check.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	return r.one(ctx, " WHERE u.username = $1", username, fmt.Sprintf("User '%s' not found", username))
}

func (r *UserRepository) one(ctx context.Context, where string, arg any, notFound string) (*User, error) {
	u, err := selectOne[User](ctx, r.db, userSelect+where, arg)
	if db.IsNoRows(err) {
		return nil, domain.NotFound("%s", notFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, in UserInput) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (username, email, role, team_id)
		VALUES ($1, $2, $3, $4)
		RETURNING user_id`,
		in.Username, in.Email, in.Role, in.TeamID,
	).Scan(&id)
	if db.IsUniqueViolation(err, "uq_users_username") {
		return 0, domain.Conflict("Username '%s' already exists", in.Username)
	}
	if err != nil {
		return 0, fmt.Errorf("inserting user: %w", db.Translate(err))
	}
	return id, nil
}

// AssignTeam attaches a coaching or front-office user to a team.
func (r *UserRepository) AssignTeam(ctx context.Context, userID, teamID int64) (*User, error) {
	err := db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		var role string
		err := tx.QueryRow(ctx, "SELECT role FROM users WHERE user_id = $1 FOR UPDATE", userID).Scan(&role)
		if db.IsNoRows(err) {
			return domain.NotFound("User %d not found", userID)
		}
		if err != nil {
			return fmt.Errorf("locking user %d: %w", userID, err)
		}
		if !domain.CanAssignTeam(role) {
			return domain.Forbidden("Role '%s' cannot be assigned to a team", role)
		}

		ok, err := exists(ctx, tx, config.TeamsTable, "team_id", teamID)
		if err != nil {
			return fmt.Errorf("checking team %d: %w", teamID, err)
		}
		if !ok {
			return domain.NotFound("Team %d not found", teamID)
		}

		if _, err := tx.Exec(ctx, "UPDATE users SET team_id = $1 WHERE user_id = $2", teamID, userID); err != nil {
			return fmt.Errorf("assigning team %d to user %d: %w", teamID, userID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, userID)
}
