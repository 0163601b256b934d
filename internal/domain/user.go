package domain

import "fmt"

// User represents a registered user of the application. The ID doubles as
// the login name and is chosen by the user at signup.
type User struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Password  string               `json:"password"`
	AvatarURL string               `json:"avatarURL"`
	Answers   map[string]OptionKey `json:"answers"`
	Questions []string             `json:"questions"`
}

// NewUser constructs a user with a deterministic avatar URL and allocated
// Answers/Questions collections. Code that builds users through this
// constructor never has to deal with nil collections.
func NewUser(id, name, password string) User {
	return User{
		ID:        id,
		Name:      name,
		Password:  password,
		AvatarURL: AvatarURL(id),
		Answers:   make(map[string]OptionKey),
		Questions: []string{},
	}
}

// AvatarURL derives a user's avatar location from their id.
func AvatarURL(userID string) string {
	return fmt.Sprintf("https://i.pravatar.cc/150?u=%s", userID)
}

// Normalize repairs a user record decoded from an external source. Records
// written before Answers/Questions existed, or hand-edited ones, may omit
// the collections entirely.
func (u *User) Normalize() {
	if u.Answers == nil {
		u.Answers = make(map[string]OptionKey)
	}
	if u.Questions == nil {
		u.Questions = []string{}
	}
}

// HasAnswered reports whether the user has already answered the question.
func (u *User) HasAnswered(questionID string) bool {
	_, ok := u.Answers[questionID]
	return ok
}

// Clone returns a deep copy of the user.
func (u User) Clone() User {
	dup := u
	dup.Answers = make(map[string]OptionKey, len(u.Answers))
	for id, answer := range u.Answers {
		dup.Answers[id] = answer
	}
	dup.Questions = make([]string, len(u.Questions))
	copy(dup.Questions, u.Questions)
	return dup
}
