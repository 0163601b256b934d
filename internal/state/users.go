package state

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/msomdec/employee-polls/internal/domain"
)

// UsersSlice owns the authoritative in-memory map of user records.
//
// Unknown-id mutations are deliberate no-ops: they signal a caller bug
// rather than a recoverable runtime error, so they log a warning instead
// of failing.
type UsersSlice struct {
	mu      sync.Mutex
	store   domain.KeyValueStore
	backend domain.Backend
	byID    map[string]domain.User
	seedIDs map[string]bool
	loading bool
	loadErr error
}

// Load fetches seed users from the backend, overlays any durable entries
// (durable wins per id), and normalizes every record so Answers and
// Questions are always present. The normalized local-only subset (ids not
// in the seed) is written back to durable storage so repeated loads no
// longer need defaulting.
func (s *UsersSlice) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.loadErr = nil
	s.mu.Unlock()

	err := s.load(ctx)

	s.mu.Lock()
	s.loading = false
	s.loadErr = err
	s.mu.Unlock()
	return err
}

func (s *UsersSlice) load(ctx context.Context) error {
	seed, err := s.backend.FetchUsers(ctx)
	if err != nil {
		return fmt.Errorf("fetch seed users: %w", err)
	}

	durable, err := loadStored[map[string]domain.User](ctx, s.store, usersKey)
	if err != nil {
		return err
	}

	merged := mergeByID(seed, durable)
	for id, user := range merged {
		user.Normalize()
		merged[id] = user
	}

	seedIDs := make(map[string]bool, len(seed))
	for id := range seed {
		seedIDs[id] = true
	}

	localOnly := make(map[string]domain.User)
	for id, user := range merged {
		if !seedIDs[id] {
			localOnly[id] = user
		}
	}
	if err := saveStored(ctx, s.store, usersKey, localOnly); err != nil {
		return err
	}

	s.mu.Lock()
	s.byID = merged
	s.seedIDs = seedIDs
	s.mu.Unlock()
	return nil
}

// Add inserts the user by id, overwriting any existing entry. Uniqueness
// is a caller-side precondition: check Get before calling.
func (s *UsersSlice) Add(ctx context.Context, user domain.User) {
	user = user.Clone()
	user.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[user.ID] = user
	s.persistLocked(ctx)
}

// AddQuestion appends questionID to the user's authored-questions list.
// The append is unconditional; no-op if the user is unknown.
func (s *UsersSlice) AddQuestion(ctx context.Context, userID, questionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[userID]
	if !ok {
		slog.Warn("add question to unknown user", "user", userID, "question", questionID)
		return
	}
	user = user.Clone()
	user.Questions = append(user.Questions, questionID)
	s.byID[userID] = user
	s.persistLocked(ctx)
}

// AddAnswer records the user's chosen option for a question, overwriting
// any previous value for that question id. No-op if the user is unknown.
func (s *UsersSlice) AddAnswer(ctx context.Context, userID, questionID string, answer domain.OptionKey) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[userID]
	if !ok {
		slog.Warn("add answer to unknown user", "user", userID, "question", questionID)
		return
	}
	user = user.Clone()
	user.Answers[questionID] = answer
	s.byID[userID] = user
	s.persistLocked(ctx)
}

// Get returns a copy of the user record, if present.
func (s *UsersSlice) Get(id string) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.byID[id]
	if !ok {
		return domain.User{}, false
	}
	return user.Clone(), true
}

// All returns a copy of the full user map.
func (s *UsersSlice) All() map[string]domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make(map[string]domain.User, len(s.byID))
	for id, user := range s.byID {
		all[id] = user.Clone()
	}
	return all
}

// Loading reports whether the initial seed+merge load is in flight.
func (s *UsersSlice) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LoadErr returns the error from the most recent Load, if any.
func (s *UsersSlice) LoadErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// persistLocked writes the entire user collection to durable storage.
// Callers must hold s.mu. Failures are logged, not surfaced.
func (s *UsersSlice) persistLocked(ctx context.Context) {
	if err := saveStored(ctx, s.store, usersKey, s.byID); err != nil {
		slog.Error("persist users collection", "error", err)
	}
}
