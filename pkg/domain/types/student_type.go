package types

import "fmt"

// StudentType selects the initial survey question set for a session
type StudentType string

const (
	StudentTypeFirstYear      StudentType = "first_year"
	StudentTypeJuniorTransfer StudentType = "junior_transfer"
	StudentTypeTypical        StudentType = "typical"
)

// AllStudentTypes returns all valid student types
func AllStudentTypes() []StudentType {
	return []StudentType{
		StudentTypeFirstYear,
		StudentTypeJuniorTransfer,
		StudentTypeTypical,
	}
}

// IsValid checks if the student type is valid
func (t StudentType) IsValid() bool {
	switch t {
	case StudentTypeFirstYear,
		StudentTypeJuniorTransfer,
		StudentTypeTypical:
		return true
	default:
		return false
	}
}

// String returns the string representation of the student type
func (t StudentType) String() string {
	return string(t)
}

// ParseStudentType parses a string into a StudentType
func ParseStudentType(s string) (StudentType, error) {
	t := StudentType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid student type: %s", s)
	}
	return t, nil
}
