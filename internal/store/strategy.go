package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/albapepper/courtside/internal/config"
	"github.com/albapepper/courtside/internal/db"
	"github.com/albapepper/courtside/internal/domain"
)

// --------------------------------------------------------------------------
// Game plans
// --------------------------------------------------------------------------

type GamePlanRepository struct {
	db db.DB
}

const planSelect = `
	SELECT gp.plan_id, gp.team_id, gp.opponent_id, gp.game_id, gp.plan_name,
	       gp.offensive_strategy, gp.defensive_strategy, gp.key_matchups,
	       gp.special_instructions, gp.status, gp.created_date, gp.updated_date,
	       t.name AS team_name, o.name AS opponent_name
	FROM game_plans gp
	JOIN teams t ON t.team_id = gp.team_id
	LEFT JOIN teams o ON o.team_id = gp.opponent_id`

func (r *GamePlanRepository) List(ctx context.Context, f PlanFilter) ([]GamePlan, error) {
	w := db.NewFilter()
	if f.TeamID != nil {
		w.Add("gp.team_id = ?", *f.TeamID)
	}
	if f.Status != nil {
		w.Add("gp.status = ?", *f.Status)
	}
	plans, err := selectAll[GamePlan](ctx, r.db,
		planSelect+w.Where()+" ORDER BY gp.updated_date DESC, gp.plan_id DESC", w.Args()...)
	if err != nil {
		return nil, fmt.Errorf("querying game plans: %w", err)
	}
	return plans, nil
}

func (r *GamePlanRepository) Get(ctx context.Context, id int64) (*GamePlan, error) {
	p, err := selectOne[GamePlan](ctx, r.db, planSelect+" WHERE gp.plan_id = $1", id)
	if db.IsNoRows(err) {
		return nil, domain.NotFound("Game plan %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying game plan %d: %w", id, err)
	}
	return p, nil
}

// Create inserts a plan. team_id and plan_name are required; status defaults
// to draft.
func (r *GamePlanRepository) Create(ctx context.Context, in GamePlanInput) (int64, error) {
	if in.TeamID == nil || in.PlanName == nil || *in.PlanName == "" {
		return 0, domain.Invalid("team_id and plan_name are required")
	}
	status := domain.PlanDraft
	if in.Status != nil {
		status = *in.Status
	}

	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO game_plans (team_id, opponent_id, game_id, plan_name, offensive_strategy,
		                        defensive_strategy, key_matchups, special_instructions, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING plan_id`,
		*in.TeamID, in.OpponentID, in.GameID, *in.PlanName, in.OffensiveStrategy,
		in.DefensiveStrategy, in.KeyMatchups, in.SpecialInstructions, status,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting game plan: %w", db.Translate(err))
	}
	return id, nil
}

// Update applies the non-nil fields of in and always refreshes updated_date.
func (r *GamePlanRepository) Update(ctx context.Context, id int64, in GamePlanPatch) error {
	b := db.NewUpdate(config.GamePlansTable,
		"plan_name", "offensive_strategy", "defensive_strategy", "key_matchups",
		"special_instructions", "status")
	db.SetIfPresent(b, "plan_name", in.PlanName)
	db.SetIfPresent(b, "offensive_strategy", in.OffensiveStrategy)
	db.SetIfPresent(b, "defensive_strategy", in.DefensiveStrategy)
	db.SetIfPresent(b, "key_matchups", in.KeyMatchups)
	db.SetIfPresent(b, "special_instructions", in.SpecialInstructions)
	db.SetIfPresent(b, "status", in.Status)
	// GREATEST keeps updated_date strictly increasing within one transaction clock.
	b.SetRaw("updated_date = GREATEST(NOW(), updated_date + INTERVAL '1 microsecond')")

	sql, args, err := b.Build("plan_id", id)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("updating game plan %d: %w", id, db.Translate(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("Game plan %d not found", id)
	}
	return nil
}

// --------------------------------------------------------------------------
// Draft evaluations
// --------------------------------------------------------------------------

type EvaluationRepository struct {
	db db.DB
}

const evaluationSelect = `
	SELECT de.evaluation_id, de.player_id, p.first_name, p.last_name, p.position,
	       de.overall_rating::float8 AS overall_rating,
	       de.offensive_rating::float8 AS offensive_rating,
	       de.defensive_rating::float8 AS defensive_rating,
	       de.athleticism_rating::float8 AS athleticism_rating,
	       de.potential_rating::float8 AS potential_rating,
	       de.evaluation_type, de.strengths, de.weaknesses, de.scout_notes,
	       de.projected_round, de.comparison_player, de.last_updated
	FROM draft_evaluations de
	JOIN players p ON p.player_id = de.player_id`

func (r *EvaluationRepository) List(ctx context.Context, f EvaluationFilter) ([]DraftEvaluation, error) {
	w := db.NewFilter()
	if f.EvaluationType != nil {
		w.Add("de.evaluation_type = ?", *f.EvaluationType)
	}
	if f.MinRating != nil {
		w.Add("de.overall_rating >= ?", *f.MinRating)
	}
	evals, err := selectAll[DraftEvaluation](ctx, r.db,
		evaluationSelect+w.Where()+" ORDER BY de.overall_rating DESC, de.evaluation_id", w.Args()...)
	if err != nil {
		return nil, fmt.Errorf("querying draft evaluations: %w", err)
	}
	return evals, nil
}

func (r *EvaluationRepository) Get(ctx context.Context, id int64) (*DraftEvaluation, error) {
	e, err := selectOne[DraftEvaluation](ctx, r.db, evaluationSelect+" WHERE de.evaluation_id = $1", id)
	if db.IsNoRows(err) {
		return nil, domain.NotFound("Draft evaluation %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying draft evaluation %d: %w", id, err)
	}
	return e, nil
}

// CheckRatings range-checks every supplied rating.
func CheckRatings(in EvaluationInput) error {
	for _, f := range []struct {
		name string
		v    *float64
	}{
		{"overall_rating", in.OverallRating},
		{"offensive_rating", in.OffensiveRating},
		{"defensive_rating", in.DefensiveRating},
		{"athleticism_rating", in.AthleticismRating},
		{"potential_rating", in.PotentialRating},
	} {
		if err := domain.CheckRating(f.name, f.v); err != nil {
			return err
		}
	}
	return nil
}

// Create inserts the single evaluation allowed per player.
func (r *EvaluationRepository) Create(ctx context.Context, in EvaluationInput) (int64, error) {
	if in.PlayerID == nil || in.OverallRating == nil {
		return 0, domain.Invalid("player_id and overall_rating are required")
	}
	if err := CheckRatings(in); err != nil {
		return 0, err
	}
	evalType := "prospect"
	if in.EvaluationType != nil {
		evalType = *in.EvaluationType
	}

	var id int64
	err := db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		var existing int64
		err := tx.QueryRow(ctx,
			"SELECT evaluation_id FROM draft_evaluations WHERE player_id = $1", *in.PlayerID,
		).Scan(&existing)
		if err == nil {
			return domain.Conflict("Evaluation already exists for player %d", *in.PlayerID)
		}
		if !db.IsNoRows(err) {
			return fmt.Errorf("checking evaluation for player %d: %w", *in.PlayerID, err)
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO draft_evaluations (player_id, overall_rating, offensive_rating,
			       defensive_rating, athleticism_rating, potential_rating, evaluation_type,
			       strengths, weaknesses, scout_notes, projected_round, comparison_player)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING evaluation_id`,
			*in.PlayerID, *in.OverallRating, in.OffensiveRating, in.DefensiveRating,
			in.AthleticismRating, in.PotentialRating, evalType, in.Strengths,
			in.Weaknesses, in.ScoutNotes, in.ProjectedRound, in.ComparisonPlayer,
		).Scan(&id)
		if db.IsUniqueViolation(err, "uq_draft_evaluations_player") {
			return domain.Conflict("Evaluation already exists for player %d", *in.PlayerID)
		}
		if err != nil {
			err = db.Translate(err)
			if errors.Is(err, domain.ErrNotFound) {
				return domain.NotFound("Player %d not found", *in.PlayerID)
			}
			return fmt.Errorf("inserting draft evaluation: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Update applies the non-nil fields of in and refreshes last_updated.
func (r *EvaluationRepository) Update(ctx context.Context, id int64, in EvaluationInput) error {
	if err := CheckRatings(in); err != nil {
		return err
	}
	b := db.NewUpdate(config.DraftEvaluationsTable,
		"overall_rating", "offensive_rating", "defensive_rating", "athleticism_rating",
		"potential_rating", "evaluation_type", "strengths", "weaknesses", "scout_notes",
		"projected_round", "comparison_player")
	db.SetIfPresent(b, "overall_rating", in.OverallRating)
	db.SetIfPresent(b, "offensive_rating", in.OffensiveRating)
	db.SetIfPresent(b, "defensive_rating", in.DefensiveRating)
	db.SetIfPresent(b, "athleticism_rating", in.AthleticismRating)
	db.SetIfPresent(b, "potential_rating", in.PotentialRating)
	db.SetIfPresent(b, "evaluation_type", in.EvaluationType)
	db.SetIfPresent(b, "strengths", in.Strengths)
	db.SetIfPresent(b, "weaknesses", in.Weaknesses)
	db.SetIfPresent(b, "scout_notes", in.ScoutNotes)
	db.SetIfPresent(b, "projected_round", in.ProjectedRound)
	db.SetIfPresent(b, "comparison_player", in.ComparisonPlayer)
	b.SetRaw("last_updated = GREATEST(NOW(), last_updated + INTERVAL '1 microsecond')")

	sql, args, err := b.Build("evaluation_id", id)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("updating draft evaluation %d: %w", id, db.Translate(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("Draft evaluation %d not found", id)
	}
	return nil
}
