package memory

import (
	"github.com/campus-lab/coursepath/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	session   *sessionRepository
	assistant *assistantRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		session:   newSessionRepository(),
		assistant: newAssistantRepository(),
	}
}

func (m *Memory) Session() interfaces.SessionRepository {
	return m.session
}

func (m *Memory) Assistant() interfaces.AssistantRepository {
	return m.assistant
}

func (m *Memory) Close() error {
	return nil
}
