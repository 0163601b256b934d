package handler

import (
	"net/http"

	"github.com/msomdec/employee-polls/internal/service"
	"github.com/msomdec/employee-polls/internal/state"
)

// Login and signup attempts per client IP: one every two seconds
// sustained, bursts of five.
const (
	loginRate  = 0.5
	loginBurst = 5
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, polls *service.PollService, st *state.State, cookieSecure bool) {
	limiter := service.NewTokenBucket(loginRate, loginBurst)

	authHandler := NewAuthHandler(auth, st, limiter, cookieSecure)
	impersonationHandler := NewImpersonationHandler(auth, st)
	pollHandler := NewPollHandler(polls, st)
	leaderboardHandler := NewLeaderboardHandler(st)

	requireAuth := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(auth, st, h)
	}

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.HandleFunc("POST /api/auth/signup", authHandler.HandleSignup)
	mux.HandleFunc("POST /api/auth/login", authHandler.HandleLogin)
	mux.HandleFunc("POST /api/auth/logout", authHandler.HandleLogout)
	mux.Handle("GET /api/auth/me", requireAuth(authHandler.HandleMe))

	mux.Handle("POST /api/impersonation", requireAuth(impersonationHandler.HandleStart))
	mux.Handle("DELETE /api/impersonation", requireAuth(impersonationHandler.HandleStop))
	mux.Handle("GET /api/impersonation/candidates", requireAuth(impersonationHandler.HandleCandidates))

	mux.Handle("GET /api/polls/unanswered", requireAuth(pollHandler.HandleUnanswered))
	mux.Handle("GET /api/polls/answered", requireAuth(pollHandler.HandleAnswered))
	mux.Handle("GET /api/polls/{id}", requireAuth(pollHandler.HandleGet))
	mux.Handle("POST /api/polls", requireAuth(pollHandler.HandleCreate))
	mux.Handle("POST /api/polls/{id}/answers", requireAuth(pollHandler.HandleAnswer))

	mux.Handle("GET /api/leaderboard", requireAuth(leaderboardHandler.HandleLeaderboard))
}
