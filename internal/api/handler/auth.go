package handler

import (
	"net/http"

	"github.com/albapepper/courtside/internal/api/respond"
	"github.com/albapepper/courtside/internal/store"
)

const moduleAuth = "auth"

// @Summary List users
// @Tags auth
// @Produce json
// @Param role query string false "Role"
// @Success 200 {object} map[string]interface{}
// @Router /auth/users [get]
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List(r.Context(), queryString(r, "role"))
	if err != nil {
		fail(w, r, moduleAuth, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{"users": users, "total_count": len(users)})
}

// @Summary Create user
// @Tags auth
// @Accept json
// @Produce json
// @Param body body store.UserInput true "User"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Router /auth/users [post]
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var in store.UserInput
	if err := h.decode(w, r, &in); err != nil {
		fail(w, r, moduleAuth, err)
		return
	}
	id, err := h.Users.Create(r.Context(), in)
	if err != nil {
		fail(w, r, moduleAuth, err)
		return
	}
	created(w, "User created successfully", "user_id", id)
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
}

// Login looks a user up by username. There is no credential check; a real
// deployment puts authentication in front of this API.
// @Summary Demo login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "Username"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := h.decode(w, r, &req); err != nil {
		fail(w, r, moduleAuth, err)
		return
	}
	u, err := h.Users.GetByUsername(r.Context(), req.Username)
	if err != nil {
		fail(w, r, moduleAuth, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{"message": "Login successful", "user": u})
}

type assignTeamRequest struct {
	TeamID int64 `json:"team_id" validate:"required,gt=0"`
}

// AssignTeam attaches a coach or general manager to a team.
// @Summary Assign team to user
// @Tags auth
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param body body assignTeamRequest true "Team"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 403 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /auth/users/{id}/assign-team [put]
func (h *Handler) AssignTeam(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		fail(w, r, moduleAuth, err)
		return
	}
	var req assignTeamRequest
	if err := h.decode(w, r, &req); err != nil {
		fail(w, r, moduleAuth, err)
		return
	}
	u, err := h.Users.AssignTeam(r.Context(), id, req.TeamID)
	if err != nil {
		fail(w, r, moduleAuth, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{"message": "Team assigned successfully", "user": u})
}
