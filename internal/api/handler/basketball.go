package handler

import (
	"net/http"

	"github.com/albapepper/courtside/internal/api/respond"
	"github.com/albapepper/courtside/internal/domain"
	"github.com/albapepper/courtside/internal/store"
)

const moduleBasketball = "basketball"

// --------------------------------------------------------------------------
// Players
// --------------------------------------------------------------------------

// ListPlayers returns players with their current team.
// @Summary List players
// @Description Filters by position, age range, team and salary range. Ordered by last name, first name.
// @Tags basketball
// @Produce json
// @Param position query string false "Position"
// @Param min_age query int false "Minimum age"
// @Param max_age query int false "Maximum age"
// @Param team_id query int false "Active roster team"
// @Param min_salary query number false "Minimum current salary"
// @Param max_salary query number false "Maximum current salary"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /basketball/players [get]
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	f := store.PlayerFilter{Position: queryString(r, "position")}
	var err error
	if f.MinAge, err = queryIntPtr(r, "min_age"); err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	if f.MaxAge, err = queryIntPtr(r, "max_age"); err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	if f.TeamID, err = queryID(r, "team_id"); err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	if f.MinSalary, err = queryFloat(r, "min_salary"); err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	if f.MaxSalary, err = queryFloat(r, "max_salary"); err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}

	players, err := h.Players.List(r.Context(), f)
	if err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{"players": players, "total_count": len(players)})
}

// GetPlayer returns one player.
// @Summary Get player
// @Tags basketball
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Router /basketball/players/{id} [get]
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	p, err := h.Players.Get(r.Context(), id)
	if err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{"player": p})
}

// CreatePlayer inserts a player.
// @Summary Create player
// @Tags basketball
// @Accept json
// @Produce json
// @Param body body store.PlayerInput true "Player"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /basketball/players [post]
func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var in store.PlayerInput
	if err := h.decode(w, r, &in); err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	id, err := h.Players.Create(r.Context(), in)
	if err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	created(w, "Player created successfully", "player_id", id)
}

// UpdatePlayer applies a partial update.
// @Summary Update player
// @Tags basketball
// @Accept json
// @Produce json
// @Param id path int true "Player ID"
// @Param body body store.PlayerInput true "Fields to change"
// @Success 200 {object} respond.MessageResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /basketball/players/{id} [put]
func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	var in store.PlayerInput
	if err := h.decode(w, r, &in); err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	if err := h.Players.Update(r.Context(), id, in); err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	respond.WriteMessage(w, http.StatusOK, "Player updated successfully")
}

// GetPlayerStats returns averages and recent box scores.
// @Summary Player statistics
// @Description Per-game averages (one decimal; shooting percentage three) and the most recent box scores.
// @Tags basketball
// @Produce json
// @Param id path int true "Player ID"
// @Param season query string false "Season, e.g. 2023-24"
// @Param game_type query string false "Game type"
// @Param recent_games query int false "Number of recent games"
// @Success 200 {object} store.PlayerStats
// @Failure 404 {object} respond.ErrorResponse
// @Router /basketball/players/{id}/stats [get]
func (h *Handler) GetPlayerStats(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	limit, err := queryInt(r, "recent_games", h.cfg.RecentGamesLimit)
	if err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	if limit <= 0 {
		fail(w, r, moduleBasketball, domain.Invalid("recent_games must be positive"))
		return
	}
	f := store.StatsFilter{Season: queryString(r, "season"), GameType: queryString(r, "game_type")}
	stats, err := h.Players.Stats(r.Context(), id, f, limit)
	if err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, stats)
}

// --------------------------------------------------------------------------
// Teams and rosters
// --------------------------------------------------------------------------

// @Summary List teams
// @Tags basketball
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /basketball/teams [get]
func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.Teams.List(r.Context())
	if err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{"teams": teams, "total_count": len(teams)})
}

// @Summary Get team
// @Tags basketball
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Router /basketball/teams/{id} [get]
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	t, err := h.Teams.Get(r.Context(), id)
	if err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{"team": t})
}

// @Summary Create team
// @Tags basketball
// @Accept json
// @Produce json
// @Param body body store.TeamInput true "Team"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /basketball/teams [post]
func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var in store.TeamInput
	if err := h.decode(w, r, &in); err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	id, err := h.Teams.Create(r.Context(), in)
	if err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	created(w, "Team created successfully", "team_id", id)
}

// GetRoster returns the active roster, one row per player.
// @Summary Team roster
// @Tags basketball
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Router /basketball/teams/{id}/players [get]
func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	roster, err := h.Teams.Roster(r.Context(), id)
	if err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{"team_id": id, "players": roster, "total_count": len(roster)})
}

type rosterRequest struct {
	store.RosterInput
	JoinedDate *string `json:"joined_date"`
}

// AddRosterPlayer signs a player to the team.
// @Summary Add player to roster
// @Tags basketball
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param body body rosterRequest true "Membership"
// @Success 201 {object} respond.MessageResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Router /basketball/teams/{id}/players [post]
func (h *Handler) AddRosterPlayer(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathID(r, "id")
	if err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	var req rosterRequest
	if err := h.decode(w, r, &req); err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	if req.RosterInput.JoinedDate, err = parseDate("joined_date", req.JoinedDate); err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	if err := h.Teams.AddPlayer(r.Context(), teamID, req.RosterInput); err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	respond.WriteMessage(w, http.StatusCreated, "Player added to roster")
}

type rosterPatchRequest struct {
	store.RosterPatch
	LeftDate *string `json:"left_date"`
}

// UpdateRosterPlayer changes jersey number or records departure.
// @Summary Update roster membership
// @Tags basketball
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param player_id path int true "Player ID"
// @Param body body rosterPatchRequest true "Fields to change"
// @Success 200 {object} respond.MessageResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /basketball/teams/{id}/players/{player_id} [put]
func (h *Handler) UpdateRosterPlayer(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathID(r, "id")
	if err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	playerID, err := pathID(r, "player_id")
	if err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	var req rosterPatchRequest
	if err := h.decode(w, r, &req); err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	if req.RosterPatch.LeftDate, err = parseDate("left_date", req.LeftDate); err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	if err := h.Teams.UpdateMembership(r.Context(), teamID, playerID, req.RosterPatch); err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	respond.WriteMessage(w, http.StatusOK, "Roster entry updated successfully")
}

// --------------------------------------------------------------------------
// Games
// --------------------------------------------------------------------------

// ListGames filters the schedule.
// @Summary List games
// @Tags basketball
// @Produce json
// @Param start_date query string false "From date (YYYY-MM-DD)"
// @Param end_date query string false "To date (YYYY-MM-DD)"
// @Param season query string false "Season"
// @Param game_type query string false "Game type"
// @Param status query string false "Status" Enums(scheduled, in_progress, completed)
// @Param team_id query int false "Participating team"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /basketball/games [get]
func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	f := store.GameFilter{Season: queryString(r, "season"), GameType: queryString(r, "game_type")}
	var err error
	if f.StartDate, err = queryDate(r, "start_date"); err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	if f.EndDate, err = queryDate(r, "end_date"); err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	if f.Status, err = queryOneOf(r, "status", domain.GameStatuses); err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	if f.TeamID, err = queryID(r, "team_id"); err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}

	games, err := h.Games.List(r.Context(), f)
	if err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{"games": games, "total_count": len(games)})
}

// GetGame returns a game with both teams' box scores.
// @Summary Game detail
// @Tags basketball
// @Produce json
// @Param id path int true "Game ID"
// @Success 200 {object} store.GameDetail
// @Failure 404 {object} respond.ErrorResponse
// @Router /basketball/games/{id} [get]
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	g, err := h.Games.Get(r.Context(), id)
	if err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, g)
}

type gameRequest struct {
	store.GameInput
	Date *string `json:"date"`
}

func (h *Handler) decodeGame(w http.ResponseWriter, r *http.Request) (store.GameInput, error) {
	var req gameRequest
	if err := h.decode(w, r, &req); err != nil {
		return store.GameInput{}, err
	}
	d, err := parseDate("date", req.Date)
	if err != nil {
		return store.GameInput{}, err
	}
	req.GameInput.Date = d
	return req.GameInput, nil
}

// CreateGame schedules a game between two different teams.
// @Summary Create game
// @Tags basketball
// @Accept json
// @Produce json
// @Param body body gameRequest true "Game"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /basketball/games [post]
func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	in, err := h.decodeGame(w, r)
	if err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	if err := store.ValidateNewGame(in); err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	id, err := h.Games.Create(r.Context(), in)
	if err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	created(w, "Game created successfully", "game_id", id)
}

// UpdateGame sets scores, status and other mutable fields.
// @Summary Update game
// @Tags basketball
// @Accept json
// @Produce json
// @Param id path int true "Game ID"
// @Param body body gameRequest true "Fields to change"
// @Success 200 {object} respond.MessageResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /basketball/games/{id} [put]
func (h *Handler) UpdateGame(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	in, err := h.decodeGame(w, r)
	if err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	if err := h.Games.Update(r.Context(), id, in); err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	respond.WriteMessage(w, http.StatusOK, "Game updated successfully")
}

type statsRequest struct {
	Stats []store.BoxScoreInput `json:"stats" validate:"required,min=1,dive"`
}

// RecordGameStats upserts box-score lines for a game.
// @Summary Record box scores
// @Tags basketball
// @Accept json
// @Produce json
// @Param id path int true "Game ID"
// @Param body body statsRequest true "Stat lines"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /basketball/games/{id}/stats [post]
func (h *Handler) RecordGameStats(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	var req statsRequest
	if err := h.decode(w, r, &req); err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	n, err := h.Games.RecordStats(r.Context(), id, req.Stats)
	if err != nil {
		fail(w, r, moduleBasketball, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, map[string]any{
		"message":          "Stats recorded successfully",
		"game_id":          id,
		"records_recorded": n,
	})
}
