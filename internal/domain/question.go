package domain

// OptionKey names one of the two options of a question.
type OptionKey string

const (
	OptionOne OptionKey = "optionOne"
	OptionTwo OptionKey = "optionTwo"
)

// Valid reports whether the key names an actual option.
func (k OptionKey) Valid() bool {
	return k == OptionOne || k == OptionTwo
}

// Option is one side of a two-option question.
type Option struct {
	Text  string   `json:"text"`
	Votes []string `json:"votes"`
}

// Question is a two-option poll. Timestamp is milliseconds since the Unix
// epoch, matching the wire format of the backend collaborator.
type Question struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Timestamp int64  `json:"timestamp"`
	OptionOne Option `json:"optionOne"`
	OptionTwo Option `json:"optionTwo"`
}

// Option returns a pointer to the option named by key, or nil when the key
// does not name an option on this question.
func (q *Question) Option(key OptionKey) *Option {
	switch key {
	case OptionOne:
		return &q.OptionOne
	case OptionTwo:
		return &q.OptionTwo
	default:
		return nil
	}
}

// Clone returns a deep copy of the question.
func (q Question) Clone() Question {
	dup := q
	dup.OptionOne.Votes = make([]string, len(q.OptionOne.Votes))
	copy(dup.OptionOne.Votes, q.OptionOne.Votes)
	dup.OptionTwo.Votes = make([]string, len(q.OptionTwo.Votes))
	copy(dup.OptionTwo.Votes, q.OptionTwo.Votes)
	return dup
}
