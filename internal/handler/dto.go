package handler

import (
	"github.com/msomdec/employee-polls/internal/domain"
	"github.com/msomdec/employee-polls/internal/state"
)

// UserDTO is the JSON representation of a user. Passwords never leave the
// server.
type UserDTO struct {
	ID        string                      `json:"id"`
	Name      string                      `json:"name"`
	AvatarURL string                      `json:"avatarURL"`
	Answers   map[string]domain.OptionKey `json:"answers"`
	Questions []string                    `json:"questions"`
}

func toUserDTO(u domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		Answers:   u.Answers,
		Questions: u.Questions,
	}
}

// OptionDTO is one side of a poll, with a derived vote count.
type OptionDTO struct {
	Text      string   `json:"text"`
	Votes     []string `json:"votes"`
	VoteCount int      `json:"voteCount"`
}

func toOptionDTO(o domain.Option) OptionDTO {
	return OptionDTO{Text: o.Text, Votes: o.Votes, VoteCount: len(o.Votes)}
}

// PollDTO is the annotated JSON representation of a poll.
type PollDTO struct {
	ID           string           `json:"id"`
	Author       UserDTO          `json:"author"`
	Timestamp    int64            `json:"timestamp"`
	OptionOne    OptionDTO        `json:"optionOne"`
	OptionTwo    OptionDTO        `json:"optionTwo"`
	ChosenOption domain.OptionKey `json:"chosenOption,omitempty"`
}

func toPollDTO(view state.PollView) PollDTO {
	return PollDTO{
		ID:           view.Question.ID,
		Author:       toUserDTO(view.Author),
		Timestamp:    view.Question.Timestamp,
		OptionOne:    toOptionDTO(view.Question.OptionOne),
		OptionTwo:    toOptionDTO(view.Question.OptionTwo),
		ChosenOption: view.ChosenOption,
	}
}

func toPollDTOs(views []state.PollView) []PollDTO {
	dtos := make([]PollDTO, 0, len(views))
	for _, view := range views {
		dtos = append(dtos, toPollDTO(view))
	}
	return dtos
}

// LeaderboardEntryDTO is one row of the leaderboard.
type LeaderboardEntryDTO struct {
	User          UserDTO `json:"user"`
	AnsweredCount int     `json:"answeredCount"`
	CreatedCount  int     `json:"createdCount"`
	TotalScore    int     `json:"totalScore"`
}

func toLeaderboardDTO(entries []state.LeaderboardEntry) []LeaderboardEntryDTO {
	dtos := make([]LeaderboardEntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, LeaderboardEntryDTO{
			User:          toUserDTO(e.User),
			AnsweredCount: e.AnsweredCount,
			CreatedCount:  e.CreatedCount,
			TotalScore:    e.TotalScore,
		})
	}
	return dtos
}
