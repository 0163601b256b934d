package handler

import (
	"net/http"

	"github.com/msomdec/employee-polls/internal/state"
)

// LeaderboardHandler serves the contributor ranking.
type LeaderboardHandler struct {
	state *state.State
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
func NewLeaderboardHandler(st *state.State) *LeaderboardHandler {
	return &LeaderboardHandler{state: st}
}

// HandleLeaderboard returns all users ranked by answered plus created
// counts, descending.
// GET /api/leaderboard
// Response: {"leaderboard": [...]}
func (h *LeaderboardHandler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"leaderboard": toLeaderboardDTO(h.state.Leaderboard()),
	})
}
