// Package assistant wraps the hosted conversational-assistant service. The
// orchestration is a sequential workflow: open a thread, append one user
// message, start a run, poll it to completion, read back the newest
// assistant-authored reply. Threads are not reused across calls.
package assistant

import (
	"context"
	"time"
)

// Service is the boundary the use cases depend on
type Service interface {
	// CreateAssistant provisions a hosted assistant and returns its ID
	CreateAssistant(ctx context.Context, name, instructions string) (string, error)

	// RunConversation submits the prompt to the assistant on a fresh thread
	// and returns the assistant's reply text
	RunConversation(ctx context.Context, assistantID, prompt string) (string, error)
}

// PollPolicy bounds the run-status poll loop. The interval grows linearly by
// Initial each attempt up to Max; the whole loop gives up after Deadline.
type PollPolicy struct {
	Initial  time.Duration
	Max      time.Duration
	Deadline time.Duration
}

// DefaultPollPolicy returns the poll bounds used unless overridden by
// configuration
func DefaultPollPolicy() PollPolicy {
	return PollPolicy{
		Initial:  time.Second,
		Max:      5 * time.Second,
		Deadline: 2 * time.Minute,
	}
}

// next returns the interval following the given one
func (p PollPolicy) next(current time.Duration) time.Duration {
	n := current + p.Initial
	if n > p.Max {
		return p.Max
	}
	return n
}
