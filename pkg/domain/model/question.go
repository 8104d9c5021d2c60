package model

// Question is one survey question, either from the static catalog or
// generated by the assistant. Options may be empty for free-text questions;
// the JSON field names match what the survey frontend consumes.
type Question struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	FreeText bool     `json:"freeText"`
}

// Clone returns a copy of the question with its own options slice
func (q *Question) Clone() *Question {
	c := *q
	if q.Options != nil {
		c.Options = make([]string, len(q.Options))
		copy(c.Options, q.Options)
	}
	return &c
}
