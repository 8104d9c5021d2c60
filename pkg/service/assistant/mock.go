package assistant

import (
	"context"
	"sync"
)

// Mock is a Service stub for tests. Each hook falls back to a fixed default
// when unset, and every call is recorded.
type Mock struct {
	mu sync.Mutex

	CreateAssistantFunc func(ctx context.Context, name, instructions string) (string, error)
	RunConversationFunc func(ctx context.Context, assistantID, prompt string) (string, error)

	CreateAssistantCalls []MockCreateAssistantCall
	RunConversationCalls []MockRunConversationCall
}

type MockCreateAssistantCall struct {
	Name         string
	Instructions string
}

type MockRunConversationCall struct {
	AssistantID string
	Prompt      string
}

var _ Service = (*Mock)(nil)

func (m *Mock) CreateAssistant(ctx context.Context, name, instructions string) (string, error) {
	m.mu.Lock()
	m.CreateAssistantCalls = append(m.CreateAssistantCalls, MockCreateAssistantCall{
		Name:         name,
		Instructions: instructions,
	})
	m.mu.Unlock()

	if m.CreateAssistantFunc != nil {
		return m.CreateAssistantFunc(ctx, name, instructions)
	}
	return "asst_mock", nil
}

func (m *Mock) RunConversation(ctx context.Context, assistantID, prompt string) (string, error) {
	m.mu.Lock()
	m.RunConversationCalls = append(m.RunConversationCalls, MockRunConversationCall{
		AssistantID: assistantID,
		Prompt:      prompt,
	})
	m.mu.Unlock()

	if m.RunConversationFunc != nil {
		return m.RunConversationFunc(ctx, assistantID, prompt)
	}
	return "{}", nil
}
