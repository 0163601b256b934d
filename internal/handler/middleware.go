package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/msomdec/employee-polls/internal/domain"
	"github.com/msomdec/employee-polls/internal/service"
	"github.com/msomdec/employee-polls/internal/state"
)

type contextKey string

const userContextKey contextKey = "user"

// UserFromContext extracts the authenticated (real) user from the request
// context. Returns the zero user and false if no user is authenticated.
func UserFromContext(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(userContextKey).(domain.User)
	return user, ok
}

// RequireAuth is middleware that protects routes requiring authentication.
// It reads the auth_token cookie, validates the JWT, and cross-checks the
// token subject against the auth state slice, which is the system of
// record: a valid cookie for a session that has since logged out is
// rejected. The real logged-in user is injected into the request context.
func RequireAuth(auth *service.AuthService, st *state.State, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := authenticateRequest(r, auth, st)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Not authenticated.")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func authenticateRequest(r *http.Request, auth *service.AuthService, st *state.State) (domain.User, error) {
	cookie, err := r.Cookie("auth_token")
	if err != nil {
		return domain.User{}, err
	}

	userID, err := auth.ValidateToken(cookie.Value)
	if err != nil {
		return domain.User{}, err
	}

	session := st.Auth.Session()
	if !session.IsAuthenticated || session.RealUserID() != userID {
		return domain.User{}, domain.ErrUnauthorized
	}

	user, ok := st.Users.Get(userID)
	if !ok {
		return domain.User{}, domain.ErrUnauthorized
	}
	return user, nil
}

// WithLogging wraps a handler with request logging.
func WithLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// SecurityHeaders sets baseline security headers on every response.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "same-origin")
		next.ServeHTTP(w, r)
	})
}

// clientIP extracts the client address for rate limiting. Checks
// X-Forwarded-For and X-Real-IP before falling back to RemoteAddr.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexAny(xff, ", "); i >= 0 {
			return xff[:i]
		}
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	addr := r.RemoteAddr
	if i := strings.LastIndex(addr, ":"); i >= 0 {
		return addr[:i]
	}
	return addr
}
