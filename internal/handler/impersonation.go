package handler

import (
	"net/http"

	"github.com/msomdec/employee-polls/internal/service"
	"github.com/msomdec/employee-polls/internal/state"
)

// ImpersonationHandler handles the impersonation overlay endpoints.
type ImpersonationHandler struct {
	auth  *service.AuthService
	state *state.State
}

// NewImpersonationHandler creates a new ImpersonationHandler.
func NewImpersonationHandler(auth *service.AuthService, st *state.State) *ImpersonationHandler {
	return &ImpersonationHandler{auth: auth, state: st}
}

// HandleStart assumes another user's identity on top of the session.
// POST /api/impersonation
// Request:  {"userId":"..."}
// Response: {"user": {...}, "impersonating": true}
func (h *ImpersonationHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if err := h.auth.Impersonate(r.Context(), req.UserID); err != nil {
		writeDomainError(w, err)
		return
	}

	user, _ := h.state.EffectiveCurrentUser()
	writeJSON(w, http.StatusOK, map[string]any{
		"user":          toUserDTO(user),
		"impersonating": true,
	})
}

// HandleStop restores the real identity.
// DELETE /api/impersonation
// Response: {"user": {...}, "impersonating": false}
func (h *ImpersonationHandler) HandleStop(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.StopImpersonation(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}

	user, _ := h.state.EffectiveCurrentUser()
	writeJSON(w, http.StatusOK, map[string]any{
		"user":          toUserDTO(user),
		"impersonating": false,
	})
}

// HandleCandidates lists the users available for impersonation: everyone
// except the real logged-in user.
// GET /api/impersonation/candidates
// Response: {"users": [...]}
func (h *ImpersonationHandler) HandleCandidates(w http.ResponseWriter, r *http.Request) {
	candidates := h.state.ImpersonationCandidates()
	dtos := make([]UserDTO, 0, len(candidates))
	for _, user := range candidates {
		dtos = append(dtos, toUserDTO(user))
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": dtos})
}
