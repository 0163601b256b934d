package state_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/msomdec/employee-polls/internal/backend"
	"github.com/msomdec/employee-polls/internal/domain"
	"github.com/msomdec/employee-polls/internal/repository/sqlite"
	"github.com/msomdec/employee-polls/internal/state"
)

func newTestKV(t *testing.T) *sqlite.KV {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db.KV()
}

// seedPair is a minimal two-user, no-question seed used by scenario tests.
func seedPair() (map[string]domain.User, map[string]domain.Question) {
	return map[string]domain.User{
		"alice": domain.NewUser("alice", "Alice", "pw-alice"),
		"bob":   domain.NewUser("bob", "Bob", "pw-bob"),
	}, map[string]domain.Question{}
}

// newPairState builds a loaded State over a fresh store with the
// alice/bob seed.
func newPairState(t *testing.T) (*state.State, *sqlite.KV) {
	t.Helper()
	users, questions := seedPair()
	kv := newTestKV(t)
	st := state.New(kv, backend.New(backend.WithUsers(users), backend.WithQuestions(questions)))
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return st, kv
}

// newSeededState builds a loaded State over a fresh store with the full
// default seed.
func newSeededState(t *testing.T) (*state.State, *sqlite.KV) {
	t.Helper()
	kv := newTestKV(t)
	st := state.New(kv, backend.New())
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return st, kv
}

func question(id, author string, timestamp int64) domain.Question {
	return domain.Question{
		ID:        id,
		Author:    author,
		Timestamp: timestamp,
		OptionOne: domain.Option{Text: "option one", Votes: []string{}},
		OptionTwo: domain.Option{Text: "option two", Votes: []string{}},
	}
}
