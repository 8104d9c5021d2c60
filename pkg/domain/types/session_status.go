package types

import "fmt"

// SessionStatus represents the lifecycle status of a survey session
type SessionStatus string

const (
	SessionStatusInitialized      SessionStatus = "initialized"
	SessionStatusSurveyInProgress SessionStatus = "survey_in_progress"
	SessionStatusSurveyCompleted  SessionStatus = "survey_completed"
	SessionStatusPathGenerated    SessionStatus = "learning_path_generated"
)

// AllSessionStatuses returns all valid session statuses in lifecycle order
func AllSessionStatuses() []SessionStatus {
	return []SessionStatus{
		SessionStatusInitialized,
		SessionStatusSurveyInProgress,
		SessionStatusSurveyCompleted,
		SessionStatusPathGenerated,
	}
}

// IsValid checks if the session status is valid
func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionStatusInitialized,
		SessionStatusSurveyInProgress,
		SessionStatusSurveyCompleted,
		SessionStatusPathGenerated:
		return true
	default:
		return false
	}
}

// order maps each status to its position in the lifecycle chain
func (s SessionStatus) order() int {
	switch s {
	case SessionStatusInitialized:
		return 0
	case SessionStatusSurveyInProgress:
		return 1
	case SessionStatusSurveyCompleted:
		return 2
	case SessionStatusPathGenerated:
		return 3
	default:
		return -1
	}
}

// CanTransitionTo reports whether moving from s to next is a forward
// transition. The lifecycle never moves backward and never revisits a state,
// but response submission may advance past survey_in_progress directly to
// survey_completed.
func (s SessionStatus) CanTransitionTo(next SessionStatus) bool {
	if !s.IsValid() || !next.IsValid() {
		return false
	}
	return next.order() >= s.order()
}

// String returns the string representation of the session status
func (s SessionStatus) String() string {
	return string(s)
}

// ParseSessionStatus parses a string into a SessionStatus
func ParseSessionStatus(s string) (SessionStatus, error) {
	status := SessionStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid session status: %s", s)
	}
	return status, nil
}
