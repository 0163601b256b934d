package state

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/msomdec/employee-polls/internal/domain"
)

// QuestionsSlice owns the authoritative in-memory map of question records.
type QuestionsSlice struct {
	mu      sync.Mutex
	store   domain.KeyValueStore
	backend domain.Backend
	byID    map[string]domain.Question
	loading bool
	loadErr error
}

// Load fetches seed questions from the backend and overlays any durable
// entries (durable wins per id). Unlike users, no normalization or
// write-back happens here; the merge is the whole job.
func (s *QuestionsSlice) Load(ctx context.Context) error {
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

func (s *QuestionsSlice) load(ctx context.Context) error {
	seed, err := s.backend.FetchQuestions(ctx)
	if err != nil {
		return fmt.Errorf("fetch seed questions: %w", err)
	}

	durable, err := loadStored[map[string]domain.Question](ctx, s.store, questionsKey)
	if err != nil {
		return err
	}

	merged := mergeByID(seed, durable)

	s.mu.Lock()
	s.byID = merged
	s.mu.Unlock()
	return nil
}

// Add inserts the question by id, overwriting any existing entry.
func (s *QuestionsSlice) Add(ctx context.Context, question domain.Question) {
	question = question.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[question.ID] = question
	s.persistLocked(ctx)
}

// AddVote appends userID to the named option's vote list. The append is
// unconditional: this layer has no duplicate-vote guard, and calling it
// twice for the same triple double-counts the vote. Callers are
// responsible for checking the user's answers first. No-op if the
// question is unknown or the key does not name an option.
func (s *QuestionsSlice) AddVote(ctx context.Context, questionID string, option domain.OptionKey, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	question, ok := s.byID[questionID]
	if !ok {
		slog.Warn("vote on unknown question", "question", questionID, "user", userID)
		return
	}
	question = question.Clone()
	opt := question.Option(option)
	if opt == nil {
		slog.Warn("vote on unknown option", "question", questionID, "option", string(option))
		return
	}
	opt.Votes = append(opt.Votes, userID)
	s.byID[questionID] = question
	s.persistLocked(ctx)
}

// Get returns a copy of the question record, if present.
func (s *QuestionsSlice) Get(id string) (domain.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	question, ok := s.byID[id]
	if !ok {
		return domain.Question{}, false
	}
	return question.Clone(), true
}

// All returns a copy of the full question map.
func (s *QuestionsSlice) All() map[string]domain.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make(map[string]domain.Question, len(s.byID))
	for id, question := range s.byID {
		all[id] = question.Clone()
	}
	return all
}

// Loading reports whether the initial seed+merge load is in flight.
func (s *QuestionsSlice) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LoadErr returns the error from the most recent Load, if any.
func (s *QuestionsSlice) LoadErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// persistLocked writes the entire question collection to durable storage.
// Callers must hold s.mu. Failures are logged, not surfaced.
func (s *QuestionsSlice) persistLocked(ctx context.Context) {
	if err := saveStored(ctx, s.store, questionsKey, s.byID); err != nil {
		slog.Error("persist questions collection", "error", err)
	}
}
