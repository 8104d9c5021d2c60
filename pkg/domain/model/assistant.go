package model

import (
	"fmt"
	"time"
)

// Assistant is the durable registration of a hosted conversational assistant
// bound to one (university, major) pair. Created lazily on first use and
// reused indefinitely; never mutated after creation.
type Assistant struct {
	AssistantID  string    `json:"assistant_id"`
	UniversityID string    `json:"university_id"`
	MajorID      string    `json:"major_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// AssistantKey computes the deterministic registry key for a
// (university, major) pair.
func AssistantKey(universityID, majorID string) string {
	return fmt.Sprintf("%s_%s", universityID, majorID)
}

// Key returns the registry key of this registration
func (a *Assistant) Key() string {
	return AssistantKey(a.UniversityID, a.MajorID)
}
