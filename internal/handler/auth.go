package handler

import (
	"log/slog"
	"net/http"

	"github.com/msomdec/employee-polls/internal/service"
	"github.com/msomdec/employee-polls/internal/state"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	auth         *service.AuthService
	state        *state.State
	limiter      *service.TokenBucket
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, st *state.State, limiter *service.TokenBucket, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, state: st, limiter: limiter, cookieSecure: cookieSecure}
}

// HandleSignup processes a JSON signup request. The new account is logged
// in immediately.
// POST /api/auth/signup
// Request:  {"id":"...","name":"...","password":"..."}
// Response: {"user": {...}}
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow(clientIP(r)) {
		writeError(w, http.StatusTooManyRequests, "Too many attempts. Please wait a moment.")
		return
	}

	var req struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.auth.Signup(r.Context(), req.ID, req.Name, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if err := h.setSessionCookie(w, user.ID); err != nil {
		slog.Error("issue token after signup", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"user": toUserDTO(user),
	})
}

// HandleLogin processes a JSON login request.
// POST /api/auth/login
// Request:  {"id":"...","password":"..."}
// Response: {"user": {...}}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow(clientIP(r)) {
		writeError(w, http.StatusTooManyRequests, "Too many attempts. Please wait a moment.")
		return
	}

	var req struct {
		ID       string `json:"id"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.auth.Login(r.Context(), req.ID, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if err := h.setSessionCookie(w, user.ID); err != nil {
		slog.Error("issue token after login", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": toUserDTO(user),
	})
}

// HandleLogout ends the session and clears the auth cookie.
// POST /api/auth/logout
// Response: 204 No Content
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.auth.Logout(r.Context())

	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	w.WriteHeader(http.StatusNoContent)
}

// HandleMe returns the effective acting user, the real logged-in user, and
// the impersonation flag.
// GET /api/auth/me
// Response: {"user": {...}, "realUser": {...}, "impersonating": bool}
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	effective, ok := h.state.EffectiveCurrentUser()
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}
	real, ok := UserFromContext(r.Context())
	if !ok {
		real, _ = h.state.RealLoggedInUser()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":          toUserDTO(effective),
		"realUser":      toUserDTO(real),
		"impersonating": h.state.ImpersonationActive(),
	})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, userID string) error {
	token, err := h.auth.IssueToken(userID)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400, // 24 hours
	})
	return nil
}
