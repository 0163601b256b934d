package domain

import "context"

// NewQuestion is the payload accepted by Backend.SaveQuestion.
type NewQuestion struct {
	OptionOneText string
	OptionTwoText string
	Author        string
}

// NewAnswer is the payload accepted by Backend.SaveQuestionAnswer.
type NewAnswer struct {
	AuthedUser string
	QuestionID string
	Answer     OptionKey
}

// Backend is the collaborator that supplies seed data and accepts writes
// for questions and answers. The application treats it as authoritative
// only for seeding; after startup the local state is the system of record
// and backend write failures are never rolled back into local state.
type Backend interface {
	FetchUsers(ctx context.Context) (map[string]User, error)
	FetchQuestions(ctx context.Context) (map[string]Question, error)
	SaveQuestion(ctx context.Context, q NewQuestion) (Question, error)
	SaveQuestionAnswer(ctx context.Context, a NewAnswer) error
}
