// Package state holds the authoritative in-memory application state and
// mirrors every mutation into the durable key-value store. It is organized
// as three slices (users, questions, auth) plus pure selectors deriving
// read-only views from the combined state.
//
// Each slice persists its entire collection synchronously on every
// mutation, so durable storage and in-memory state are always consistent
// once a mutating call returns. Storage is treated as non-failing:
// persistence errors are logged and never surfaced to callers, and there
// is no rollback.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/msomdec/employee-polls/internal/domain"
)

// Durable storage keys. The names match the entries the browser client
// keeps in local storage, so an exported dump loads unchanged.
const (
	usersKey     = "employeePolls_localUsers"
	questionsKey = "employeePolls_localQuestions"
	sessionKey   = "employeePolls_auth"
)

// State is the application-state container. It is constructed once at
// startup and passed to whichever component needs it; all mutation funnels
// through the slice operations.
type State struct {
	Users     *UsersSlice
	Questions *QuestionsSlice
	Auth      *AuthSlice
}

// New creates an empty State over the given durable store and seed backend.
// Call Load before serving traffic.
func New(store domain.KeyValueStore, backend domain.Backend) *State {
	return &State{
		Users:     &UsersSlice{store: store, backend: backend, byID: make(map[string]domain.User)},
		Questions: &QuestionsSlice{store: store, backend: backend, byID: make(map[string]domain.Question)},
		Auth:      &AuthSlice{store: store},
	}
}

// Load initializes all three slices: seed data merged with durable
// entries for users and questions, and the restored session for auth.
func (s *State) Load(ctx context.Context) error {
	if err := s.Users.Load(ctx); err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	if err := s.Questions.Load(ctx); err != nil {
		return fmt.Errorf("load questions: %w", err)
	}
	if err := s.Auth.Load(ctx); err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	return nil
}

// mergeByID overlays durable entries onto seed entries. Right-biased:
// a durable entry wins over a seed entry with the same id.
func mergeByID[T any](seed, durable map[string]T) map[string]T {
	merged := make(map[string]T, len(seed)+len(durable))
	for id, v := range seed {
		merged[id] = v
	}
	for id, v := range durable {
		merged[id] = v
	}
	return merged
}

// loadStored reads and decodes the JSON document at key, returning the
// zero value of T when the key is absent.
func loadStored[T any](ctx context.Context, store domain.KeyValueStore, key string) (T, error) {
	var v T
	raw, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return v, nil
		}
		return v, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("decode %s: %w", key, err)
	}
	return v, nil
}

// saveStored encodes v and fully overwrites the document at key.
func saveStored(ctx context.Context, store domain.KeyValueStore, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := store.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
