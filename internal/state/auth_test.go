package state_test

import (
	"context"
	"errors"
	"testing"

	"github.com/msomdec/employee-polls/internal/backend"
	"github.com/msomdec/employee-polls/internal/domain"
	"github.com/msomdec/employee-polls/internal/state"
)

func TestAuthLogin(t *testing.T) {
	st, _ := newPairState(t)
	ctx := context.Background()

	st.Auth.Login(ctx, "alice")

	session := st.Auth.Session()
	if session.CurrentUser != "alice" || !session.IsAuthenticated {
		t.Fatalf("unexpected session after login: %+v", session)
	}
	if session.Impersonation.Active {
		t.Fatal("login must reset the impersonation overlay")
	}
}

func TestAuthLogin_SurvivesReload(t *testing.T) {
	st, kv := newPairState(t)
	ctx := context.Background()

	st.Auth.Login(ctx, "alice")

	users, questions := seedPair()
	st2 := state.New(kv, backend.New(backend.WithUsers(users), backend.WithQuestions(questions)))
	if err := st2.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	session := st2.Auth.Session()
	if session.CurrentUser != "alice" || !session.IsAuthenticated {
		t.Fatalf("session not restored from durable storage: %+v", session)
	}
}

func TestAuthLogout_RemovesDurableEntry(t *testing.T) {
	st, kv := newPairState(t)
	ctx := context.Background()

	st.Auth.Login(ctx, "alice")
	st.Auth.Logout(ctx)

	session := st.Auth.Session()
	if session.IsAuthenticated || session.CurrentUser != "" {
		t.Fatalf("expected cleared session, got %+v", session)
	}

	// The durable entry is removed, not zeroed.
	if _, err := kv.Get(ctx, "employeePolls_auth"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected the session entry to be gone, got err=%v", err)
	}
}

func TestAuthLogout_ClearsImpersonation(t *testing.T) {
	st, _ := newPairState(t)
	ctx := context.Background()

	st.Auth.Login(ctx, "alice")
	st.Auth.StartImpersonation(ctx, "bob")
	st.Auth.Logout(ctx)

	if st.Auth.Session().Impersonation.Active {
		t.Fatal("logout must forcibly clear impersonation")
	}
}

func TestAuthImpersonation(t *testing.T) {
	st, _ := newPairState(t)
	ctx := context.Background()

	st.Auth.Login(ctx, "alice")
	st.Auth.StartImpersonation(ctx, "bob")

	session := st.Auth.Session()
	if session.CurrentUser != "bob" {
		t.Fatalf("expected bob as acting identity, got %s", session.CurrentUser)
	}
	if !session.Impersonation.Active || session.Impersonation.OriginalUserID != "alice" {
		t.Fatalf("unexpected overlay: %+v", session.Impersonation)
	}

	st.Auth.StopImpersonation(ctx)

	session = st.Auth.Session()
	if session.CurrentUser != "alice" {
		t.Fatalf("expected restoration to alice, got %s", session.CurrentUser)
	}
	if session.Impersonation.Active {
		t.Fatal("overlay must clear on stop")
	}
}

// Starting impersonation while already impersonating must switch targets
// without losing the true original identity: stop returns to the identity
// active before the first start.
func TestAuthImpersonation_NestedKeepsOriginal(t *testing.T) {
	users, questions := seedPair()
	users["carol"] = domain.NewUser("carol", "Carol", "pw")

	kv := newTestKV(t)
	st := state.New(kv, backend.New(backend.WithUsers(users), backend.WithQuestions(questions)))
	ctx := context.Background()
	if err := st.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	st.Auth.Login(ctx, "alice")
	st.Auth.StartImpersonation(ctx, "bob")
	st.Auth.StartImpersonation(ctx, "carol")

	session := st.Auth.Session()
	if session.CurrentUser != "carol" {
		t.Fatalf("expected carol as acting identity, got %s", session.CurrentUser)
	}
	if session.Impersonation.OriginalUserID != "alice" {
		t.Fatalf("nested start must not overwrite the original, got %s", session.Impersonation.OriginalUserID)
	}

	st.Auth.StopImpersonation(ctx)
	if got := st.Auth.Session().CurrentUser; got != "alice" {
		t.Fatalf("expected restoration to alice, not an intermediate target, got %s", got)
	}
}

func TestAuthImpersonation_NoOpWhenLoggedOut(t *testing.T) {
	st, _ := newPairState(t)
	ctx := context.Background()

	st.Auth.StartImpersonation(ctx, "bob")

	session := st.Auth.Session()
	if session.Impersonation.Active || session.CurrentUser != "" {
		t.Fatalf("impersonation without a session must be a no-op, got %+v", session)
	}
}

func TestAuthStopImpersonation_NoOpWhenInactive(t *testing.T) {
	st, _ := newPairState(t)
	ctx := context.Background()

	st.Auth.Login(ctx, "alice")
	st.Auth.StopImpersonation(ctx)

	if got := st.Auth.Session().CurrentUser; got != "alice" {
		t.Fatalf("stop without an active overlay must be a no-op, got %s", got)
	}
}

// Session records written before the impersonation feature have no
// overlay field; they must restore as logged in with an inactive overlay.
func TestAuthLoad_LegacySessionRecord(t *testing.T) {
	users, questions := seedPair()
	kv := newTestKV(t)
	ctx := context.Background()

	legacy := []byte(`{"currentUser":"alice","isAuthenticated":true}`)
	if err := kv.Put(ctx, "employeePolls_auth", legacy); err != nil {
		t.Fatalf("Put: %v", err)
	}

	st := state.New(kv, backend.New(backend.WithUsers(users), backend.WithQuestions(questions)))
	if err := st.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	session := st.Auth.Session()
	if session.CurrentUser != "alice" || !session.IsAuthenticated {
		t.Fatalf("legacy session not restored: %+v", session)
	}
	if session.Impersonation.Active {
		t.Fatal("legacy records must default to an inactive overlay")
	}
}
