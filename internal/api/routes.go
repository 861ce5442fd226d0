package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/albapepper/courtside/internal/api/handler"
)

// routeSet registers one slice of the API on r. Canonical groups and persona
// aliases are assembled from the same sets so both always share one handler.
type routeSet func(r chi.Router, h *handler.Handler)

// ---- Basketball ----

func playerReads(r chi.Router, h *handler.Handler) {
	r.Get("/players", h.ListPlayers)
	r.Get("/players/{id}", h.GetPlayer)
	r.Get("/players/{id}/stats", h.GetPlayerStats)
}

func playerWrites(r chi.Router, h *handler.Handler) {
	r.Post("/players", h.CreatePlayer)
	r.Put("/players/{id}", h.UpdatePlayer)
}

func teamReads(r chi.Router, h *handler.Handler) {
	r.Get("/teams", h.ListTeams)
	r.Get("/teams/{id}", h.GetTeam)
	r.Get("/teams/{id}/players", h.GetRoster)
}

func teamWrites(r chi.Router, h *handler.Handler) {
	r.Post("/teams", h.CreateTeam)
}

func rosterWrites(r chi.Router, h *handler.Handler) {
	r.Post("/teams/{id}/players", h.AddRosterPlayer)
	r.Put("/teams/{id}/players/{player_id}", h.UpdateRosterPlayer)
}

func gameReads(r chi.Router, h *handler.Handler) {
	r.Get("/games", h.ListGames)
	r.Get("/games/{id}", h.GetGame)
}

func gameWrites(r chi.Router, h *handler.Handler) {
	r.Post("/games", h.CreateGame)
	r.Put("/games/{id}", h.UpdateGame)
	r.Post("/games/{id}/stats", h.RecordGameStats)
}

// ---- Analytics ----

func playerMatchups(r chi.Router, h *handler.Handler) {
	r.Get("/player-matchups", h.GetPlayerMatchup)
}

func opponentReports(r chi.Router, h *handler.Handler) {
	r.Get("/opponent-reports", h.GetOpponentReport)
}

func lineups(r chi.Router, h *handler.Handler) {
	r.Get("/lineup-configurations", h.ListLineups)
	r.Post("/lineup-configurations", h.CreateLineup)
}

func seasonSummaries(r chi.Router, h *handler.Handler) {
	r.Get("/season-summaries", h.GetSeasonSummary)
}

func situational(r chi.Router, h *handler.Handler) {
	r.Get("/situational-performance", h.GetSituational)
}

// ---- Strategy ----

func gamePlans(r chi.Router, h *handler.Handler) {
	r.Get("/game-plans", h.ListGamePlans)
	r.Post("/game-plans", h.CreateGamePlan)
	r.Get("/game-plans/{id}", h.GetGamePlan)
	r.Put("/game-plans/{id}", h.UpdateGamePlan)
}

func draftEvaluations(r chi.Router, h *handler.Handler) {
	r.Get("/draft-evaluations", h.ListEvaluations)
	r.Post("/draft-evaluations", h.CreateEvaluation)
	r.Get("/draft-evaluations/{id}", h.GetEvaluation)
	r.Put("/draft-evaluations/{id}", h.UpdateEvaluation)
}

// ---- Auth ----

func userReads(r chi.Router, h *handler.Handler) {
	r.Get("/users", h.ListUsers)
}

func userWrites(r chi.Router, h *handler.Handler) {
	r.Post("/users", h.CreateUser)
	r.Post("/login", h.Login)
}

func assignTeam(r chi.Router, h *handler.Handler) {
	r.Put("/users/{id}/assign-team", h.AssignTeam)
}

// ---- System ----

func systemHealth(r chi.Router, h *handler.Handler) {
	r.Get("/system-health", h.SystemHealth)
}

func dataLoads(r chi.Router, h *handler.Handler) {
	r.Get("/data-loads", h.ListDataLoads)
	r.Post("/data-loads", h.CreateDataLoad)
	r.Get("/data-loads/{id}", h.GetDataLoad)
	r.Put("/data-loads/{id}", h.UpdateDataLoad)
}

func errorLogs(r chi.Router, h *handler.Handler) {
	r.Get("/error-logs", h.ListErrorLogs)
	r.Post("/error-logs", h.CreateErrorLog)
	r.Delete("/error-logs", h.PurgeErrorLogs)
	r.Put("/error-logs/{id}", h.ResolveErrorLog)
}

func dataErrors(r chi.Router, h *handler.Handler) {
	r.Get("/data-errors", h.ListDataErrors)
	r.Post("/data-errors", h.CreateDataError)
	r.Delete("/data-errors", h.PurgeDataErrors)
	r.Put("/data-errors/{id}", h.ResolveDataError)
}

func dataCleanup(r chi.Router, h *handler.Handler) {
	r.Get("/data-cleanup", h.ListCleanup)
	r.Post("/data-cleanup", h.CreateCleanup)
	r.Post("/data-cleanup/history", h.RecordCleanupHistory)
	r.Put("/data-cleanup/{id}", h.UpdateCleanup)
}

func dataValidation(r chi.Router, h *handler.Handler) {
	r.Get("/data-validation", h.ListValidation)
	r.Post("/data-validation", h.RunValidation)
}

func systemLogs(r chi.Router, h *handler.Handler) {
	r.Get("/system-logs", h.ListSystemLogs)
}

// routeGroups maps each prefix under /api to the route sets it serves. The
// first five are the canonical groups; the rest are persona aliases.
var routeGroups = []struct {
	prefix string
	sets   []routeSet
}{
	{"/basketball", []routeSet{playerReads, playerWrites, teamReads, teamWrites, rosterWrites, gameReads, gameWrites}},
	{"/analytics", []routeSet{playerMatchups, opponentReports, lineups, seasonSummaries, situational}},
	{"/strategy", []routeSet{gamePlans, draftEvaluations}},
	{"/system", []routeSet{systemHealth, dataLoads, errorLogs, dataErrors, dataCleanup, dataValidation, systemLogs}},
	{"/auth", []routeSet{userReads, userWrites, assignTeam}},

	{"/superfan", []routeSet{playerReads, teamReads, gameReads, playerMatchups, seasonSummaries}},
	{"/coach", []routeSet{gamePlans, lineups, opponentReports, situational, playerMatchups, teamReads, gameReads}},
	{"/gm", []routeSet{draftEvaluations, playerReads, teamReads, rosterWrites, seasonSummaries, userReads, assignTeam}},
	{"/data-engineer", []routeSet{dataLoads, errorLogs, dataErrors, dataCleanup, dataValidation, systemHealth, systemLogs}},
}

// mountAPI registers every group on r.
func mountAPI(r chi.Router, h *handler.Handler) {
	for _, g := range routeGroups {
		r.Route(g.prefix, func(r chi.Router) {
			for _, set := range g.sets {
				set(r, h)
			}
		})
	}
}
