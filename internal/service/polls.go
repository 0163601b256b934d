package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/msomdec/employee-polls/internal/domain"
	"github.com/msomdec/employee-polls/internal/state"
)

// Option texts shorter than this are rejected at creation.
const minOptionTextLen = 3

// PollService orchestrates poll creation and answering: it validates
// input, writes to the backend collaborator first, then applies the local
// state mutations. A backend failure aborts before any local mutation;
// once local mutation starts there is no rollback, and local state is the
// system of record.
type PollService struct {
	state   *state.State
	backend domain.Backend
}

// NewPollService creates a new PollService.
func NewPollService(st *state.State, backend domain.Backend) *PollService {
	return &PollService{state: st, backend: backend}
}

// Create makes a new two-option poll authored by authorID and attaches it
// to the author's record.
func (s *PollService) Create(ctx context.Context, authorID, optionOneText, optionTwoText string) (domain.Question, error) {
	optionOneText = strings.TrimSpace(optionOneText)
	optionTwoText = strings.TrimSpace(optionTwoText)

	if optionOneText == "" || optionTwoText == "" {
		return domain.Question{}, fmt.Errorf("%w: both options are required", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(optionOneText) < minOptionTextLen || utf8.RuneCountInString(optionTwoText) < minOptionTextLen {
		return domain.Question{}, fmt.Errorf("%w: options must be at least %d characters", domain.ErrInvalidInput, minOptionTextLen)
	}
	if _, ok := s.state.Users.Get(authorID); !ok {
		return domain.Question{}, fmt.Errorf("%w: user %q", domain.ErrNotFound, authorID)
	}

	question, err := s.backend.SaveQuestion(ctx, domain.NewQuestion{
		OptionOneText: optionOneText,
		OptionTwoText: optionTwoText,
		Author:        authorID,
	})
	if err != nil {
		return domain.Question{}, fmt.Errorf("save question: %w", err)
	}

	s.state.Questions.Add(ctx, question)
	s.state.Users.AddQuestion(ctx, authorID, question.ID)

	return question, nil
}

// Answer records userID's vote for one option of a question. Each user may
// answer a question at most once; the guard lives here because the
// questions slice appends votes unconditionally.
func (s *PollService) Answer(ctx context.Context, userID, questionID string, option domain.OptionKey) error {
	if !option.Valid() {
		return fmt.Errorf("%w: option must be optionOne or optionTwo", domain.ErrInvalidInput)
	}

	user, ok := s.state.Users.Get(userID)
	if !ok {
		return fmt.Errorf("%w: user %q", domain.ErrNotFound, userID)
	}
	if _, ok := s.state.Questions.Get(questionID); !ok {
		return fmt.Errorf("%w: question %q", domain.ErrNotFound, questionID)
	}
	if user.HasAnswered(questionID) {
		return fmt.Errorf("%w: question %q", domain.ErrAlreadyAnswered, questionID)
	}

	if err := s.backend.SaveQuestionAnswer(ctx, domain.NewAnswer{
		AuthedUser: userID,
		QuestionID: questionID,
		Answer:     option,
	}); err != nil {
		return fmt.Errorf("save answer: %w", err)
	}

	s.state.Users.AddAnswer(ctx, userID, questionID, option)
	s.state.Questions.AddVote(ctx, questionID, option, userID)

	return nil
}
