package state

import (
	"context"
	"log/slog"
	"sync"

	"github.com/msomdec/employee-polls/internal/domain"
)

// AuthSlice owns the current session: the acting identity, the
// authentication flag, and the impersonation overlay. It moves through
// three states: logged out, logged in, impersonating.
type AuthSlice struct {
	mu      sync.Mutex
	store   domain.KeyValueStore
	session domain.Session
	loading bool
	loadErr error
}

// Load restores the session from durable storage. An absent entry means
// logged out. Stored records that predate the impersonation feature decode
// with an inactive overlay, so they keep working unchanged.
func (s *AuthSlice) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.loadErr = nil
	s.mu.Unlock()

	session, err := loadStored[domain.Session](ctx, s.store, sessionKey)

	s.mu.Lock()
	if err == nil {
		s.session = session
	}
	s.loading = false
	s.loadErr = err
	s.mu.Unlock()
	return err
}

// Login starts an authenticated session for userID and resets the
// impersonation overlay to inactive.
func (s *AuthSlice) Login(ctx context.Context, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = domain.Session{
		CurrentUser:     userID,
		IsAuthenticated: true,
	}
	s.persistLocked(ctx)
}

// Logout clears the session, forcibly ending any impersonation, and
// removes the durable session entry entirely rather than zeroing it.
func (s *AuthSlice) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = domain.Session{}
	if err := s.store.Delete(ctx, sessionKey); err != nil {
		slog.Error("remove session entry", "error", err)
	}
}

// StartImpersonation assumes the target identity on top of the current
// session. When already impersonating, only the target changes: the
// original identity recorded by the first call is never overwritten, so
// nested calls cannot lose the true identity. No-op when logged out.
func (s *AuthSlice) StartImpersonation(ctx context.Context, targetUserID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.session.IsAuthenticated {
		slog.Warn("impersonation attempt without a session", "target", targetUserID)
		return
	}

	if !s.session.Impersonation.Active {
		s.session.Impersonation.OriginalUserID = s.session.CurrentUser
		s.session.Impersonation.Active = true
	}
	s.session.Impersonation.ImpersonatedUserID = targetUserID
	s.session.CurrentUser = targetUserID
	s.persistLocked(ctx)
}

// StopImpersonation restores the original identity and clears the
// overlay. No-op when not impersonating.
func (s *AuthSlice) StopImpersonation(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.session.Impersonation.Active {
		slog.Warn("stop impersonation while not impersonating")
		return
	}

	s.session.CurrentUser = s.session.Impersonation.OriginalUserID
	s.session.Impersonation = domain.Impersonation{}
	s.persistLocked(ctx)
}

// Session returns a snapshot of the current session.
func (s *AuthSlice) Session() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Loading reports whether the initial session restore is in flight.
func (s *AuthSlice) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LoadErr returns the error from the most recent Load, if any.
func (s *AuthSlice) LoadErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// persistLocked writes the session to durable storage. Callers must hold
// s.mu. Failures are logged, not surfaced.
func (s *AuthSlice) persistLocked(ctx context.Context) {
	if err := saveStored(ctx, s.store, sessionKey, s.session); err != nil {
		slog.Error("persist session", "error", err)
	}
}
