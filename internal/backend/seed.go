package backend

import "github.com/msomdec/employee-polls/internal/domain"

// Seed fixture data. Vote lists and user answer maps are kept mutually
// consistent: every vote recorded on a question has a matching entry in
// that voter's answers, and every authored question id appears in the
// author's questions list.

func seedUsers() map[string]domain.User {
	return map[string]domain.User{
		"sarahedo": {
			ID:        "sarahedo",
			Name:      "Sarah Edo",
			Password:  "password123",
			AvatarURL: domain.AvatarURL("sarahedo"),
			Answers: map[string]domain.OptionKey{
				"8xf0y6ziyjabvozdd253nd": domain.OptionOne,
				"6ni6ok3ym7mf1p33lnez":   domain.OptionOne,
				"am8ehyc8byjqgar0jgpub9": domain.OptionTwo,
				"loxhs1bqm25b708cmbf3g":  domain.OptionTwo,
			},
			Questions: []string{"8xf0y6ziyjabvozdd253nd", "am8ehyc8byjqgar0jgpub9"},
		},
		"tylermcginnis": {
			ID:        "tylermcginnis",
			Name:      "Tyler McGinnis",
			Password:  "abc321",
			AvatarURL: domain.AvatarURL("tylermcginnis"),
			Answers: map[string]domain.OptionKey{
				"vthrdm985a262al8qx3do":  domain.OptionOne,
				"xj352vofupe1dqz9emx13r": domain.OptionTwo,
			},
			Questions: []string{"loxhs1bqm25b708cmbf3g", "vthrdm985a262al8qx3do"},
		},
		"johndoe": {
			ID:        "johndoe",
			Name:      "John Doe",
			Password:  "xyz123",
			AvatarURL: domain.AvatarURL("johndoe"),
			Answers: map[string]domain.OptionKey{
				"xj352vofupe1dqz9emx13r": domain.OptionOne,
				"vthrdm985a262al8qx3do":  domain.OptionTwo,
				"6ni6ok3ym7mf1p33lnez":   domain.OptionOne,
			},
			Questions: []string{"6ni6ok3ym7mf1p33lnez", "xj352vofupe1dqz9emx13r"},
		},
		"mtsamis": {
			ID:        "mtsamis",
			Name:      "Mike Tsamis",
			Password:  "xyz123",
			AvatarURL: domain.AvatarURL("mtsamis"),
			Answers: map[string]domain.OptionKey{
				"xj352vofupe1dqz9emx13r": domain.OptionOne,
			},
			Questions: []string{},
		},
	}
}

func seedQuestions() map[string]domain.Question {
	return map[string]domain.Question{
		"8xf0y6ziyjabvozdd253nd": {
			ID:        "8xf0y6ziyjabvozdd253nd",
			Author:    "sarahedo",
			Timestamp: 1467166872634,
			OptionOne: domain.Option{
				Text:  "Build our new application with Javascript",
				Votes: []string{"sarahedo"},
			},
			OptionTwo: domain.Option{
				Text:  "Build our new application with Typescript",
				Votes: []string{},
			},
		},
		"6ni6ok3ym7mf1p33lnez": {
			ID:        "6ni6ok3ym7mf1p33lnez",
			Author:    "johndoe",
			Timestamp: 1468479767190,
			OptionOne: domain.Option{
				Text:  "hire more frontend developers",
				Votes: []string{"sarahedo", "johndoe"},
			},
			OptionTwo: domain.Option{
				Text:  "hire more backend developers",
				Votes: []string{},
			},
		},
		"am8ehyc8byjqgar0jgpub9": {
			ID:        "am8ehyc8byjqgar0jgpub9",
			Author:    "sarahedo",
			Timestamp: 1488579767190,
			OptionOne: domain.Option{
				Text:  "conduct a release retrospective 1 week after a release",
				Votes: []string{},
			},
			OptionTwo: domain.Option{
				Text:  "conduct release retrospectives quarterly",
				Votes: []string{"sarahedo"},
			},
		},
		"loxhs1bqm25b708cmbf3g": {
			ID:        "loxhs1bqm25b708cmbf3g",
			Author:    "tylermcginnis",
			Timestamp: 1482579767190,
			OptionOne: domain.Option{
				Text:  "have code reviews conducted by peers",
				Votes: []string{},
			},
			OptionTwo: domain.Option{
				Text:  "have code reviews conducted by managers",
				Votes: []string{"sarahedo"},
			},
		},
		"vthrdm985a262al8qx3do": {
			ID:        "vthrdm985a262al8qx3do",
			Author:    "tylermcginnis",
			Timestamp: 1489579767190,
			OptionOne: domain.Option{
				Text:  "take a course on ReactJS",
				Votes: []string{"tylermcginnis"},
			},
			OptionTwo: domain.Option{
				Text:  "take a course on unit testing with Jest",
				Votes: []string{"johndoe"},
			},
		},
		"xj352vofupe1dqz9emx13r": {
			ID:        "xj352vofupe1dqz9emx13r",
			Author:    "johndoe",
			Timestamp: 1493579767190,
			OptionOne: domain.Option{
				Text:  "deploy to production once every two weeks",
				Votes: []string{"johndoe", "mtsamis"},
			},
			OptionTwo: domain.Option{
				Text:  "deploy to production once every month",
				Votes: []string{"tylermcginnis"},
			},
		},
	}
}
