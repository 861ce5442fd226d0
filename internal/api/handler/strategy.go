package handler

import (
	"net/http"

	"github.com/albapepper/courtside/internal/api/respond"
	"github.com/albapepper/courtside/internal/domain"
	"github.com/albapepper/courtside/internal/store"
)

const moduleStrategy = "strategy"

// --------------------------------------------------------------------------
// Game plans
// --------------------------------------------------------------------------

// ListGamePlans returns plans, most recently updated first.
// @Summary List game plans
// @Tags strategy
// @Produce json
// @Param team_id query int false "Team"
// @Param status query string false "Status" Enums(draft, active, archived)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /strategy/game-plans [get]
func (h *Handler) ListGamePlans(w http.ResponseWriter, r *http.Request) {
	var f store.PlanFilter
	var err error
	if f.TeamID, err = queryID(r, "team_id"); err != nil {
		fail(w, r, moduleStrategy, err)
		return
	}
	if f.Status, err = queryOneOf(r, "status", domain.PlanStatuses); err != nil {
		fail(w, r, moduleStrategy, err)
		return
	}
	plans, err := h.Plans.List(r.Context(), f)
	if err != nil {
		fail(w, r, moduleStrategy, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{"game_plans": plans, "total_count": len(plans)})
}

// @Summary Get game plan
// @Tags strategy
// @Produce json
// @Param id path int true "Plan ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Router /strategy/game-plans/{id} [get]
func (h *Handler) GetGamePlan(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		fail(w, r, moduleStrategy, err)
		return
	}
	p, err := h.Plans.Get(r.Context(), id)
	if err != nil {
		fail(w, r, moduleStrategy, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{"game_plan": p})
}

// CreateGamePlan inserts a plan in draft unless a status is given.
// @Summary Create game plan
// @Tags strategy
// @Accept json
// @Produce json
// @Param body body store.GamePlanInput true "Plan"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /strategy/game-plans [post]
func (h *Handler) CreateGamePlan(w http.ResponseWriter, r *http.Request) {
	var in store.GamePlanInput
	if err := h.decode(w, r, &in); err != nil {
		fail(w, r, moduleStrategy, err)
		return
	}
	id, err := h.Plans.Create(r.Context(), in)
	if err != nil {
		fail(w, r, moduleStrategy, err)
		return
	}
	created(w, "Game plan created successfully", "plan_id", id)
}

// UpdateGamePlan changes the supplied fields and refreshes updated_date.
// @Summary Update game plan
// @Tags strategy
// @Accept json
// @Produce json
// @Param id path int true "Plan ID"
// @Param body body store.GamePlanPatch true "Fields to change"
// @Success 200 {object} respond.MessageResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /strategy/game-plans/{id} [put]
func (h *Handler) UpdateGamePlan(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		fail(w, r, moduleStrategy, err)
		return
	}
	var in store.GamePlanPatch
	if err := h.decode(w, r, &in); err != nil {
		fail(w, r, moduleStrategy, err)
		return
	}
	if err := h.Plans.Update(r.Context(), id, in); err != nil {
		fail(w, r, moduleStrategy, err)
		return
	}
	respond.WriteMessage(w, http.StatusOK, "Game plan updated successfully")
}

// --------------------------------------------------------------------------
// Draft evaluations
// --------------------------------------------------------------------------

// ListEvaluations returns evaluations, best overall rating first.
// @Summary List draft evaluations
// @Tags strategy
// @Produce json
// @Param evaluation_type query string false "Type" Enums(prospect, free_agent, trade_target)
// @Param min_rating query number false "Minimum overall rating"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /strategy/draft-evaluations [get]
func (h *Handler) ListEvaluations(w http.ResponseWriter, r *http.Request) {
	var f store.EvaluationFilter
	var err error
	if f.EvaluationType, err = queryOneOf(r, "evaluation_type", domain.EvaluationTypes); err != nil {
		fail(w, r, moduleStrategy, err)
		return
	}
	if f.MinRating, err = queryFloat(r, "min_rating"); err != nil {
		fail(w, r, moduleStrategy, err)
		return
	}
	evals, err := h.Evaluations.List(r.Context(), f)
	if err != nil {
		fail(w, r, moduleStrategy, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{"evaluations": evals, "total_count": len(evals)})
}

// @Summary Get draft evaluation
// @Tags strategy
// @Produce json
// @Param id path int true "Evaluation ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Router /strategy/draft-evaluations/{id} [get]
func (h *Handler) GetEvaluation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		fail(w, r, moduleStrategy, err)
		return
	}
	e, err := h.Evaluations.Get(r.Context(), id)
	if err != nil {
		fail(w, r, moduleStrategy, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{"evaluation": e})
}

// CreateEvaluation inserts the one evaluation allowed per player.
// @Summary Create draft evaluation
// @Tags strategy
// @Accept json
// @Produce json
// @Param body body store.EvaluationInput true "Evaluation; player_id and overall_rating required"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Router /strategy/draft-evaluations [post]
func (h *Handler) CreateEvaluation(w http.ResponseWriter, r *http.Request) {
	var in store.EvaluationInput
	if err := h.decode(w, r, &in); err != nil {
		fail(w, r, moduleStrategy, err)
		return
	}
	if in.PlayerID == nil || in.OverallRating == nil {
		fail(w, r, moduleStrategy, domain.Invalid("player_id and overall_rating are required"))
		return
	}
	if err := store.CheckRatings(in); err != nil {
		fail(w, r, moduleStrategy, err)
		return
	}
	id, err := h.Evaluations.Create(r.Context(), in)
	if err != nil {
		fail(w, r, moduleStrategy, err)
		return
	}
	created(w, "Draft evaluation created successfully", "evaluation_id", id)
}

// UpdateEvaluation range-checks any supplied rating and refreshes last_updated.
// @Summary Update draft evaluation
// @Tags strategy
// @Accept json
// @Produce json
// @Param id path int true "Evaluation ID"
// @Param body body store.EvaluationInput true "Fields to change"
// @Success 200 {object} respond.MessageResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /strategy/draft-evaluations/{id} [put]
func (h *Handler) UpdateEvaluation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		fail(w, r, moduleStrategy, err)
		return
	}
	var in store.EvaluationInput
	if err := h.decode(w, r, &in); err != nil {
		fail(w, r, moduleStrategy, err)
		return
	}
	if err := store.CheckRatings(in); err != nil {
		fail(w, r, moduleStrategy, err)
		return
	}
	if err := h.Evaluations.Update(r.Context(), id, in); err != nil {
		fail(w, r, moduleStrategy, err)
		return
	}
	respond.WriteMessage(w, http.StatusOK, "Draft evaluation updated successfully")
}
