package state

import (
	"sort"

	"github.com/msomdec/employee-polls/internal/domain"
)

// Selectors are pure, referentially transparent reads over the current
// state. The collections here are small, so results are recomputed per
// call instead of memoized.

// PollView is a question annotated with its resolved author record and,
// when the effective current user has answered it, their chosen option.
type PollView struct {
	Question     domain.Question
	Author       domain.User
	ChosenOption domain.OptionKey
}

// LeaderboardEntry is one user's contribution ranking.
type LeaderboardEntry struct {
	User          domain.User
	AnsweredCount int
	CreatedCount  int
	TotalScore    int
}

// EffectiveCurrentUser resolves the acting identity (the impersonated user
// while the overlay is active) to its full record. False when not
// authenticated or the id resolves to no record.
func (s *State) EffectiveCurrentUser() (domain.User, bool) {
	session := s.Auth.Session()
	if !session.IsAuthenticated {
		return domain.User{}, false
	}
	return s.Users.Get(session.CurrentUser)
}

// RealLoggedInUser resolves the identity that actually authenticated,
// looking through any active impersonation.
func (s *State) RealLoggedInUser() (domain.User, bool) {
	session := s.Auth.Session()
	if !session.IsAuthenticated {
		return domain.User{}, false
	}
	return s.Users.Get(session.RealUserID())
}

// ImpersonationActive reports whether the impersonation overlay is active.
func (s *State) ImpersonationActive() bool {
	return s.Auth.Session().Impersonation.Active
}

// ImpersonatedUser resolves the impersonated identity to its full record.
func (s *State) ImpersonatedUser() (domain.User, bool) {
	session := s.Auth.Session()
	if !session.Impersonation.Active {
		return domain.User{}, false
	}
	return s.Users.Get(session.Impersonation.ImpersonatedUserID)
}

// ImpersonationCandidates returns every user except the real logged-in
// user, ordered by id.
func (s *State) ImpersonationCandidates() []domain.User {
	realID := s.Auth.Session().RealUserID()

	candidates := []domain.User{}
	for id, user := range s.Users.All() {
		if id == realID {
			continue
		}
		candidates = append(candidates, user)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ID < candidates[j].ID })
	return candidates
}

// UnansweredPolls returns the polls the effective current user has not
// answered yet, newest first.
func (s *State) UnansweredPolls() []PollView {
	unanswered, _ := s.partitionPolls()
	return unanswered
}

// AnsweredPolls returns the polls the effective current user has answered,
// newest first, each annotated with the chosen option.
func (s *State) AnsweredPolls() []PollView {
	_, answered := s.partitionPolls()
	return answered
}

// PollByID resolves a single poll with the same annotations as the
// partition selectors.
func (s *State) PollByID(id string) (PollView, bool) {
	question, ok := s.Questions.Get(id)
	if !ok {
		return PollView{}, false
	}
	return s.annotate(question), true
}

// Leaderboard ranks every user by answered plus created counts,
// descending. Users with equal scores are ordered by ascending id; the
// sort is stable over that order, so ties are deterministic.
func (s *State) Leaderboard() []LeaderboardEntry {
	users := s.Users.All()

	ids := make([]string, 0, len(users))
	for id := range users {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	entries := make([]LeaderboardEntry, 0, len(ids))
	for _, id := range ids {
		user := users[id]
		entry := LeaderboardEntry{
			User:          user,
			AnsweredCount: len(user.Answers),
			CreatedCount:  len(user.Questions),
		}
		entry.TotalScore = entry.AnsweredCount + entry.CreatedCount
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalScore > entries[j].TotalScore
	})
	return entries
}

func (s *State) partitionPolls() (unanswered, answered []PollView) {
	user, ok := s.EffectiveCurrentUser()
	unanswered = []PollView{}
	answered = []PollView{}

	for _, question := range s.Questions.All() {
		view := s.annotate(question)
		if ok && user.HasAnswered(question.ID) {
			answered = append(answered, view)
		} else {
			unanswered = append(unanswered, view)
		}
	}

	newestFirst := func(views []PollView) {
		sort.Slice(views, func(i, j int) bool {
			return views[i].Question.Timestamp > views[j].Question.Timestamp
		})
	}
	newestFirst(unanswered)
	newestFirst(answered)
	return unanswered, answered
}

func (s *State) annotate(question domain.Question) PollView {
	view := PollView{Question: question}
	if author, ok := s.Users.Get(question.Author); ok {
		view.Author = author
	}
	if user, ok := s.EffectiveCurrentUser(); ok {
		view.ChosenOption = user.Answers[question.ID]
	}
	return view
}
