package model

import (
	"time"

	"github.com/campus-lab/coursepath/pkg/domain/types"
	"github.com/google/uuid"
)

// SessionID is a UUID-based identifier for Session
type SessionID string

// NewSessionID generates a new UUID v4 SessionID
func NewSessionID() SessionID {
	return SessionID(uuid.New().String())
}

// SurveyResponse is one answered survey question. Responses are appended to
// a session and never mutated or removed.
type SurveyResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Session represents one student's end-to-end interaction: selection of
// university/major/student type, accumulated survey responses, and the
// generated learning path.
type Session struct {
	ID           SessionID           `json:"id"`
	UniversityID string              `json:"university_id"`
	MajorID      string              `json:"major_id"`
	StudentType  types.StudentType   `json:"student_type"`
	AssistantID  string              `json:"assistant_id"`
	Status       types.SessionStatus `json:"status"`

	// Responses holds every submitted answer in submission order.
	// TotalAnswered is kept denormalized so the status threshold check does
	// not depend on re-counting at read time.
	Responses     []SurveyResponse `json:"responses"`
	TotalAnswered int              `json:"total_answered"`
	SubmittedAt   *time.Time       `json:"submitted_at,omitempty"`

	LearningPath []PathStep `json:"learning_path,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a deep copy of the session
func (s *Session) Clone() *Session {
	c := *s
	if s.Responses != nil {
		c.Responses = make([]SurveyResponse, len(s.Responses))
		copy(c.Responses, s.Responses)
	}
	if s.LearningPath != nil {
		c.LearningPath = make([]PathStep, len(s.LearningPath))
		for i, step := range s.LearningPath {
			c.LearningPath[i] = *step.Clone()
		}
	}
	if s.SubmittedAt != nil {
		t := *s.SubmittedAt
		c.SubmittedAt = &t
	}
	return &c
}
