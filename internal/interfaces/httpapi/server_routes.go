package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/formations", handler.ListFormations)
	mux.HandleFunc("GET /v1/rounds", handler.ListRounds)
	mux.HandleFunc("GET /v1/rounds/active", handler.GetActiveRound)
	mux.HandleFunc("GET /v1/clubs", handler.ListClubs)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/standings", handler.ListStandings)
	mux.HandleFunc("GET /v1/rankings", handler.GetRoundRanking)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	auth := func(fn http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, fn)
	}

	mux.Handle("POST /v1/teams", auth(handler.CreateTeam))
	mux.Handle("GET /v1/teams/me", auth(handler.GetMyTeam))
	mux.Handle("PATCH /v1/teams/me", auth(handler.UpdateMyTeam))

	mux.Handle("GET /v1/roster", auth(handler.GetRoster))
	mux.Handle("POST /v1/roster/toggle", auth(handler.TogglePlayer))
	mux.Handle("PUT /v1/roster/captain", auth(handler.SetCaptain))
	mux.Handle("POST /v1/roster/confirm", auth(handler.ConfirmRoster))
	mux.Handle("POST /v1/roster/destructive-changes", auth(handler.RequestDestructiveChange))
	mux.Handle("POST /v1/roster/destructive-changes/{token}/confirm", auth(handler.ConfirmDestructiveChange))

	mux.Handle("POST /v1/leagues", auth(handler.CreateLeague))
	mux.Handle("GET /v1/leagues", auth(handler.ListMyLeagues))
	mux.Handle("POST /v1/leagues/join", auth(handler.JoinLeague))
	mux.Handle("GET /v1/leagues/{leagueID}/ranking", auth(handler.GetLeagueRanking))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	admin := func(fn http.HandlerFunc) http.Handler {
		return RequireAdminToken(adminToken, fn)
	}

	mux.Handle("POST /v1/admin/clubs", admin(handler.AdminCreateClub))
	mux.Handle("POST /v1/admin/players", admin(handler.AdminCreatePlayer))
	mux.Handle("PATCH /v1/admin/players/{playerID}", admin(handler.AdminUpdatePlayer))
	mux.Handle("DELETE /v1/admin/players/{playerID}", admin(handler.AdminDeletePlayer))
	mux.Handle("POST /v1/admin/rounds", admin(handler.AdminCreateRound))
	mux.Handle("PATCH /v1/admin/rounds/{roundID}", admin(handler.AdminUpdateRound))
	mux.Handle("POST /v1/admin/matches", admin(handler.AdminCreateMatch))
	mux.Handle("POST /v1/admin/matches/{matchID}/settle", admin(handler.AdminSettleMatch))
	mux.Handle("POST /v1/admin/rounds/{roundID}/close", admin(handler.AdminCloseRound))
}
