package handler

import (
	"net/http"

	"github.com/albapepper/courtside/internal/api/respond"
	"github.com/albapepper/courtside/internal/domain"
	"github.com/albapepper/courtside/internal/store"
)

const moduleAnalytics = "analytics"

// GetPlayerMatchup compares two players across the games they both played.
// @Summary Player matchup
// @Description Per-shared-game lines for both players plus average points and head-to-head wins.
// @Tags analytics
// @Produce json
// @Param player1_id query int true "First player"
// @Param player2_id query int true "Second player"
// @Param season query string false "Season"
// @Success 200 {object} store.Matchup
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /analytics/player-matchups [get]
func (h *Handler) GetPlayerMatchup(w http.ResponseWriter, r *http.Request) {
	p1, err := requiredID(r, "player1_id")
	if err != nil {
		fail(w, r, moduleAnalytics, err)
		return
	}
	p2, err := requiredID(r, "player2_id")
	if err != nil {
		fail(w, r, moduleAnalytics, err)
		return
	}
	if p1 == p2 {
		fail(w, r, moduleAnalytics, domain.Invalid("player1_id and player2_id must differ"))
		return
	}

	m, err := h.Analytics.PlayerMatchup(r.Context(), p1, p2, queryString(r, "season"))
	if err != nil {
		fail(w, r, moduleAnalytics, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, m)
}

// GetOpponentReport builds a scouting report on opponent_id for team_id.
// @Summary Opponent report
// @Tags analytics
// @Produce json
// @Param team_id query int true "Your team"
// @Param opponent_id query int true "Opponent"
// @Param last_n_games query int false "Window size (default 10)"
// @Success 200 {object} store.OpponentReport
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /analytics/opponent-reports [get]
func (h *Handler) GetOpponentReport(w http.ResponseWriter, r *http.Request) {
	teamID, err := requiredID(r, "team_id")
	if err != nil {
		fail(w, r, moduleAnalytics, err)
		return
	}
	oppID, err := requiredID(r, "opponent_id")
	if err != nil {
		fail(w, r, moduleAnalytics, err)
		return
	}
	lastN, err := queryInt(r, "last_n_games", 10)
	if err != nil {
		fail(w, r, moduleAnalytics, err)
		return
	}
	if lastN <= 0 {
		fail(w, r, moduleAnalytics, domain.Invalid("last_n_games must be positive"))
		return
	}

	rep, err := h.Analytics.OpponentReport(r.Context(), teamID, oppID, lastN)
	if err != nil {
		fail(w, r, moduleAnalytics, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, rep)
}

// ListLineups returns a team's ten best lineups by plus/minus.
// @Summary Lineup configurations
// @Tags analytics
// @Produce json
// @Param team_id query int true "Team"
// @Param min_games query int false "Minimum games together (default 5)"
// @Param season query string false "Season"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /analytics/lineup-configurations [get]
func (h *Handler) ListLineups(w http.ResponseWriter, r *http.Request) {
	teamID, err := requiredID(r, "team_id")
	if err != nil {
		fail(w, r, moduleAnalytics, err)
		return
	}
	minGames, err := queryInt(r, "min_games", 5)
	if err != nil {
		fail(w, r, moduleAnalytics, err)
		return
	}

	lineups, err := h.Analytics.Lineups(r.Context(), teamID, minGames, queryString(r, "season"))
	if err != nil {
		fail(w, r, moduleAnalytics, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{
		"team_id":     teamID,
		"lineups":     lineups,
		"total_count": len(lineups),
	})
}

// CreateLineup records a five-man unit.
// @Summary Create lineup configuration
// @Tags analytics
// @Accept json
// @Produce json
// @Param body body store.LineupInput true "Lineup; player_ids in positions 1..5"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /analytics/lineup-configurations [post]
func (h *Handler) CreateLineup(w http.ResponseWriter, r *http.Request) {
	var in store.LineupInput
	if err := h.decode(w, r, &in); err != nil {
		fail(w, r, moduleAnalytics, err)
		return
	}
	id, err := h.Analytics.CreateLineup(r.Context(), in)
	if err != nil {
		fail(w, r, moduleAnalytics, err)
		return
	}
	created(w, "Lineup created successfully", "lineup_id", id)
}

var summaryEntityTypes = []string{"team", "player"}

// GetSeasonSummary aggregates a season for a team or a player.
// @Summary Season summary
// @Tags analytics
// @Produce json
// @Param entity_type query string true "team or player" Enums(team, player)
// @Param entity_id query int true "Team or player ID"
// @Param season query string false "Season"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /analytics/season-summaries [get]
func (h *Handler) GetSeasonSummary(w http.ResponseWriter, r *http.Request) {
	entityType, err := queryOneOf(r, "entity_type", summaryEntityTypes)
	if err != nil {
		fail(w, r, moduleAnalytics, err)
		return
	}
	if entityType == nil {
		fail(w, r, moduleAnalytics, domain.Invalid("entity_type is required"))
		return
	}
	id, err := requiredID(r, "entity_id")
	if err != nil {
		fail(w, r, moduleAnalytics, err)
		return
	}
	season := queryString(r, "season")

	out := map[string]any{"entity_type": *entityType, "entity_id": id, "season": season}
	if *entityType == "team" {
		sum, err := h.Analytics.TeamSeason(r.Context(), id, season)
		if err != nil {
			fail(w, r, moduleAnalytics, err)
			return
		}
		out["summary"] = sum
	} else {
		p, err := h.Players.Get(r.Context(), id)
		if err != nil {
			fail(w, r, moduleAnalytics, err)
			return
		}
		avg, err := h.Players.Averages(r.Context(), id, store.StatsFilter{Season: season})
		if err != nil {
			fail(w, r, moduleAnalytics, err)
			return
		}
		out["player"] = p
		out["summary"] = avg
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// GetSituational returns clutch, per-quarter and close-game blocks.
// @Summary Situational performance
// @Tags analytics
// @Produce json
// @Param team_id query int true "Team"
// @Success 200 {object} store.Situational
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /analytics/situational-performance [get]
func (h *Handler) GetSituational(w http.ResponseWriter, r *http.Request) {
	teamID, err := requiredID(r, "team_id")
	if err != nil {
		fail(w, r, moduleAnalytics, err)
		return
	}
	s, err := h.Analytics.Situational(r.Context(), teamID)
	if err != nil {
		fail(w, r, moduleAnalytics, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, s)
}
