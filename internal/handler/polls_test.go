package handler_test

import (
	"net/http"
	"testing"
)

type pollPayload struct {
	ID     string `json:"id"`
	Author struct {
		ID string `json:"id"`
	} `json:"author"`
	Timestamp int64 `json:"timestamp"`
	OptionOne struct {
		Text      string   `json:"text"`
		Votes     []string `json:"votes"`
		VoteCount int      `json:"voteCount"`
	} `json:"optionOne"`
	OptionTwo struct {
		Text      string   `json:"text"`
		Votes     []string `json:"votes"`
		VoteCount int      `json:"voteCount"`
	} `json:"optionTwo"`
	ChosenOption string `json:"chosenOption"`
}

func TestPollsRequireAuth(t *testing.T) {
	app := newTestApp(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/polls/unanswered"},
		{http.MethodGet, "/api/polls/answered"},
		{http.MethodGet, "/api/polls/8xf0y6ziyjabvozdd253nd"},
		{http.MethodPost, "/api/polls"},
		{http.MethodPost, "/api/polls/8xf0y6ziyjabvozdd253nd/answers"},
		{http.MethodGet, "/api/leaderboard"},
	}

	for _, p := range paths {
		resp := app.do(p.method, p.path, nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", p.method, p.path, resp.StatusCode)
		}
	}
}

func TestPollLists(t *testing.T) {
	app := newTestApp(t)
	app.login("sarahedo", "password123")

	var unanswered struct {
		Polls []pollPayload `json:"polls"`
	}
	app.decode(app.do(http.MethodGet, "/api/polls/unanswered", nil), &unanswered)

	var answered struct {
		Polls []pollPayload `json:"polls"`
	}
	app.decode(app.do(http.MethodGet, "/api/polls/answered", nil), &answered)

	if len(unanswered.Polls) != 2 || len(answered.Polls) != 4 {
		t.Fatalf("expected 2 unanswered / 4 answered, got %d/%d", len(unanswered.Polls), len(answered.Polls))
	}

	for _, poll := range unanswered.Polls {
		if poll.ChosenOption != "" {
			t.Fatalf("unanswered poll %s carries a chosen option", poll.ID)
		}
	}
	for _, poll := range answered.Polls {
		if poll.ChosenOption == "" {
			t.Fatalf("answered poll %s missing its chosen option", poll.ID)
		}
	}

	for i := 1; i < len(answered.Polls); i++ {
		if answered.Polls[i-1].Timestamp < answered.Polls[i].Timestamp {
			t.Fatal("answered polls not ordered newest first")
		}
	}
}

func TestPollLists_FollowImpersonation(t *testing.T) {
	app := newTestApp(t)
	app.login("sarahedo", "password123")

	resp := app.do(http.MethodPost, "/api/impersonation", map[string]string{"userId": "mtsamis"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("impersonate: status %d", resp.StatusCode)
	}

	var answered struct {
		Polls []pollPayload `json:"polls"`
	}
	app.decode(app.do(http.MethodGet, "/api/polls/answered", nil), &answered)

	if len(answered.Polls) != 1 {
		t.Fatalf("expected mtsamis's single answered poll, got %d", len(answered.Polls))
	}
	if answered.Polls[0].ID != "xj352vofupe1dqz9emx13r" {
		t.Fatalf("unexpected answered poll %s", answered.Polls[0].ID)
	}
}

func TestGetPoll(t *testing.T) {
	app := newTestApp(t)
	app.login("sarahedo", "password123")

	resp := app.do(http.MethodGet, "/api/polls/8xf0y6ziyjabvozdd253nd", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Poll pollPayload `json:"poll"`
	}
	app.decode(resp, &body)

	if body.Poll.Author.ID != "sarahedo" {
		t.Fatalf("expected author annotation, got %+v", body.Poll.Author)
	}
	if body.Poll.ChosenOption != "optionOne" {
		t.Fatalf("expected chosenOption optionOne, got %q", body.Poll.ChosenOption)
	}
	if body.Poll.OptionOne.VoteCount != 1 {
		t.Fatalf("expected derived vote count 1, got %d", body.Poll.OptionOne.VoteCount)
	}
}

func TestGetPoll_NotFound(t *testing.T) {
	app := newTestApp(t)
	app.login("sarahedo", "password123")

	resp := app.do(http.MethodGet, "/api/polls/ghost", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestCreatePoll(t *testing.T) {
	app := newTestApp(t)
	app.login("sarahedo", "password123")

	resp := app.do(http.MethodPost, "/api/polls", map[string]string{
		"optionOneText": "adopt trunk-based development",
		"optionTwoText": "keep long-lived feature branches",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var body struct {
		Poll pollPayload `json:"poll"`
	}
	app.decode(resp, &body)

	if body.Poll.ID == "" || body.Poll.Author.ID != "sarahedo" {
		t.Fatalf("unexpected poll payload: %+v", body.Poll)
	}
	if body.Poll.OptionOne.VoteCount != 0 || body.Poll.OptionTwo.VoteCount != 0 {
		t.Fatal("a new poll must start with no votes")
	}

	// The new poll shows up in the author's unanswered list.
	var unanswered struct {
		Polls []pollPayload `json:"polls"`
	}
	app.decode(app.do(http.MethodGet, "/api/polls/unanswered", nil), &unanswered)
	found := false
	for _, poll := range unanswered.Polls {
		if poll.ID == body.Poll.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("created poll missing from the unanswered list")
	}
}

func TestCreatePoll_Invalid(t *testing.T) {
	app := newTestApp(t)
	app.login("sarahedo", "password123")

	resp := app.do(http.MethodPost, "/api/polls", map[string]string{
		"optionOneText": "ok",
		"optionTwoText": "a valid option",
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for a too-short option, got %d", resp.StatusCode)
	}
}

func TestAnswerPoll(t *testing.T) {
	app := newTestApp(t)
	app.login("mtsamis", "xyz123")

	const pollID = "8xf0y6ziyjabvozdd253nd"
	resp := app.do(http.MethodPost, "/api/polls/"+pollID+"/answers", map[string]string{
		"option": "optionTwo",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Poll pollPayload `json:"poll"`
	}
	app.decode(resp, &body)

	if body.Poll.ChosenOption != "optionTwo" {
		t.Fatalf("expected chosenOption optionTwo, got %q", body.Poll.ChosenOption)
	}
	if body.Poll.OptionTwo.VoteCount != 1 || body.Poll.OptionTwo.Votes[0] != "mtsamis" {
		t.Fatalf("vote not reflected: %+v", body.Poll.OptionTwo)
	}

	// Voting again on the same poll is rejected.
	again := app.do(http.MethodPost, "/api/polls/"+pollID+"/answers", map[string]string{
		"option": "optionOne",
	})
	if again.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for a repeat answer, got %d", again.StatusCode)
	}
}

func TestAnswerPoll_Failures(t *testing.T) {
	app := newTestApp(t)
	app.login("mtsamis", "xyz123")

	tests := []struct {
		name   string
		pollID string
		option string
		want   int
	}{
		{"invalid option", "8xf0y6ziyjabvozdd253nd", "optionThree", http.StatusUnprocessableEntity},
		{"unknown poll", "ghost", "optionOne", http.StatusNotFound},
		{"already answered", "xj352vofupe1dqz9emx13r", "optionTwo", http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := app.do(http.MethodPost, "/api/polls/"+tt.pollID+"/answers", map[string]string{
				"option": tt.option,
			})
			if resp.StatusCode != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, resp.StatusCode)
			}
		})
	}
}

func TestLeaderboard(t *testing.T) {
	app := newTestApp(t)
	app.login("sarahedo", "password123")

	resp := app.do(http.MethodGet, "/api/leaderboard", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Leaderboard []struct {
			User struct {
				ID string `json:"id"`
			} `json:"user"`
			AnsweredCount int `json:"answeredCount"`
			CreatedCount  int `json:"createdCount"`
			TotalScore    int `json:"totalScore"`
		} `json:"leaderboard"`
	}
	app.decode(resp, &body)

	if len(body.Leaderboard) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(body.Leaderboard))
	}
	if body.Leaderboard[0].User.ID != "sarahedo" || body.Leaderboard[0].TotalScore != 6 {
		t.Fatalf("unexpected top entry: %+v", body.Leaderboard[0])
	}
	for i := 1; i < len(body.Leaderboard); i++ {
		if body.Leaderboard[i-1].TotalScore < body.Leaderboard[i].TotalScore {
			t.Fatal("leaderboard not sorted descending")
		}
	}
}
