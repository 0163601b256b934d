// Package backend provides the in-memory mock backend the application is
// seeded from. It simulates a remote server: reads return deep copies,
// writes validate their payloads, and an optional artificial latency can
// be configured to mimic network round trips.
package backend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/msomdec/employee-polls/internal/domain"
)

// Mock implements domain.Backend over in-memory seed data.
type Mock struct {
	mu        sync.Mutex
	users     map[string]domain.User
	questions map[string]domain.Question
	latency   time.Duration
}

// Option configures a Mock.
type Option func(*Mock)

// WithLatency makes every call sleep for d before responding.
func WithLatency(d time.Duration) Option {
	return func(m *Mock) { m.latency = d }
}

// WithUsers replaces the default seed users.
func WithUsers(users map[string]domain.User) Option {
	return func(m *Mock) { m.users = cloneUsers(users) }
}

// WithQuestions replaces the default seed questions.
func WithQuestions(questions map[string]domain.Question) Option {
	return func(m *Mock) { m.questions = cloneQuestions(questions) }
}

// New creates a Mock seeded with the default fixture data.
func New(opts ...Option) *Mock {
	m := &Mock{
		users:     seedUsers(),
		questions: seedQuestions(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// FetchUsers returns a deep copy of the seed user map.
func (m *Mock) FetchUsers(ctx context.Context) (map[string]domain.User, error) {
	if err := m.simulate(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneUsers(m.users), nil
}

// FetchQuestions returns a deep copy of the seed question map.
func (m *Mock) FetchQuestions(ctx context.Context) (map[string]domain.Question, error) {
	if err := m.simulate(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneQuestions(m.questions), nil
}

// SaveQuestion validates the payload and returns a fully formed question
// with a fresh id, a millisecond timestamp, and empty vote lists. The
// question is also recorded in the backend's own store, the way a real
// server would persist it.
func (m *Mock) SaveQuestion(ctx context.Context, q domain.NewQuestion) (domain.Question, error) {
	if err := m.simulate(ctx); err != nil {
		return domain.Question{}, err
	}
	if q.OptionOneText == "" || q.OptionTwoText == "" || q.Author == "" {
		return domain.Question{}, fmt.Errorf("%w: please provide optionOneText, optionTwoText, and author", domain.ErrInvalidInput)
	}

	question := domain.Question{
		ID:        uuid.NewString(),
		Author:    q.Author,
		Timestamp: time.Now().UnixMilli(),
		OptionOne: domain.Option{Text: q.OptionOneText, Votes: []string{}},
		OptionTwo: domain.Option{Text: q.OptionTwoText, Votes: []string{}},
	}

	m.mu.Lock()
	m.questions[question.ID] = question.Clone()
	m.mu.Unlock()

	return question, nil
}

// SaveQuestionAnswer validates the payload and records the vote in the
// backend's own store.
func (m *Mock) SaveQuestionAnswer(ctx context.Context, a domain.NewAnswer) error {
	if err := m.simulate(ctx); err != nil {
		return err
	}
	if a.AuthedUser == "" || a.QuestionID == "" || !a.Answer.Valid() {
		return fmt.Errorf("%w: please provide authedUser, qid, and answer", domain.ErrInvalidInput)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if question, ok := m.questions[a.QuestionID]; ok {
		if opt := question.Option(a.Answer); opt != nil {
			opt.Votes = append(opt.Votes, a.AuthedUser)
			m.questions[a.QuestionID] = question
		}
	}
	return nil
}

func (m *Mock) simulate(ctx context.Context) error {
	if m.latency <= 0 {
		return nil
	}
	select {
	case <-time.After(m.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func cloneUsers(users map[string]domain.User) map[string]domain.User {
	dup := make(map[string]domain.User, len(users))
	for id, u := range users {
		dup[id] = u.Clone()
	}
	return dup
}

func cloneQuestions(questions map[string]domain.Question) map[string]domain.Question {
	dup := make(map[string]domain.Question, len(questions))
	for id, q := range questions {
		dup[id] = q.Clone()
	}
	return dup
}
