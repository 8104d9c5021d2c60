package assistant

import (
	"context"
	"time"

	"github.com/campus-lab/coursepath/pkg/utils/errutil"
	"github.com/campus-lab/coursepath/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/sashabaranov/go-openai"
)

// API is the subset of the hosted service the orchestrator uses
type API interface {
	CreateAssistant(ctx context.Context, request openai.AssistantRequest) (openai.Assistant, error)
	CreateThread(ctx context.Context, request openai.ThreadRequest) (openai.Thread, error)
	CreateMessage(ctx context.Context, threadID string, request openai.MessageRequest) (openai.Message, error)
	CreateRun(ctx context.Context, threadID string, request openai.RunRequest) (openai.Run, error)
	RetrieveRun(ctx context.Context, threadID, runID string) (openai.Run, error)
	ListMessage(ctx context.Context, threadID string, limit *int, order *string, after *string, before *string, runID *string) (openai.MessagesList, error)
}

var _ API = (*openai.Client)(nil)

// Client runs conversations against the OpenAI Assistants API
type Client struct {
	api   API
	model string
	poll  PollPolicy
}

var _ Service = (*Client)(nil)

type Option func(*Client)

// WithModel overrides the model new assistants are provisioned with
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithPollPolicy overrides the run-status poll bounds
func WithPollPolicy(p PollPolicy) Option {
	return func(c *Client) {
		c.poll = p
	}
}

// WithAPI replaces the underlying API client
func WithAPI(api API) Option {
	return func(c *Client) {
		c.api = api
	}
}

// New creates a Client authenticated with the given API key
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		api:   openai.NewClient(apiKey),
		model: openai.GPT4oMini,
		poll:  DefaultPollPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateAssistant provisions a hosted assistant. Provisioning failure is
// fatal to the caller; there is no retry.
func (c *Client) CreateAssistant(ctx context.Context, name, instructions string) (string, error) {
	created, err := c.api.CreateAssistant(ctx, openai.AssistantRequest{
		Model:        c.model,
		Name:         &name,
		Instructions: &instructions,
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to create assistant",
			goerr.T(errutil.TagUpstream),
			goerr.V("name", name),
		)
	}

	logging.From(ctx).Info("provisioned assistant",
		"assistantID", created.ID,
		"name", name,
		"model", c.model,
	)
	return created.ID, nil
}

// RunConversation opens a fresh thread, submits the prompt as a user message,
// runs the assistant, and returns the newest assistant-authored reply.
func (c *Client) RunConversation(ctx context.Context, assistantID, prompt string) (string, error) {
	thread, err := c.api.CreateThread(ctx, openai.ThreadRequest{})
	if err != nil {
		return "", goerr.Wrap(err, "failed to create thread",
			goerr.T(errutil.TagUpstream),
			goerr.V("assistantID", assistantID),
		)
	}

	if _, err := c.api.CreateMessage(ctx, thread.ID, openai.MessageRequest{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	}); err != nil {
		return "", goerr.Wrap(err, "failed to append message to thread",
			goerr.T(errutil.TagUpstream),
			goerr.V("threadID", thread.ID),
		)
	}

	run, err := c.api.CreateRun(ctx, thread.ID, openai.RunRequest{
		AssistantID: assistantID,
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to start run",
			goerr.T(errutil.TagUpstream),
			goerr.V("threadID", thread.ID),
			goerr.V("assistantID", assistantID),
		)
	}

	if err := c.waitForRun(ctx, thread.ID, run.ID); err != nil {
		return "", err
	}

	return c.latestAssistantReply(ctx, thread.ID)
}

// waitForRun polls the run status until it completes. The loop is bounded:
// linear backoff between polls and an overall deadline, unlike the hosted
// service's own unbounded run lifetime.
func (c *Client) waitForRun(ctx context.Context, threadID, runID string) error {
	deadline := time.Now().Add(c.poll.Deadline)
	interval := c.poll.Initial

	for {
		run, err := c.api.RetrieveRun(ctx, threadID, runID)
		if err != nil {
			return goerr.Wrap(err, "failed to retrieve run",
				goerr.T(errutil.TagUpstream),
				goerr.V("threadID", threadID),
				goerr.V("runID", runID),
			)
		}

		switch run.Status {
		case openai.RunStatusCompleted:
			return nil

		case openai.RunStatusFailed, openai.RunStatusCancelled, openai.RunStatusExpired, openai.RunStatusIncomplete:
			opts := []goerr.Option{
				goerr.T(errutil.TagUpstream),
				goerr.V("threadID", threadID),
				goerr.V("runID", runID),
				goerr.V("status", string(run.Status)),
			}
			if run.LastError != nil {
				opts = append(opts, goerr.V("lastError", run.LastError.Message))
			}
			return goerr.New("assistant run did not complete", opts...)
		}

		if time.Now().Add(interval).After(deadline) {
			return goerr.New("assistant run poll deadline exceeded",
				goerr.T(errutil.TagTimeout),
				goerr.V("threadID", threadID),
				goerr.V("runID", runID),
				goerr.V("deadline", c.poll.Deadline),
				goerr.V("status", string(run.Status)),
			)
		}

		select {
		case <-ctx.Done():
			return goerr.Wrap(ctx.Err(), "conversation cancelled",
				goerr.V("threadID", threadID),
				goerr.V("runID", runID),
			)
		case <-time.After(interval):
		}

		interval = c.poll.next(interval)
	}
}

// latestAssistantReply returns the text of the newest assistant-authored
// message on the thread. A completed run without one is a contract violation
// by the hosted service.
func (c *Client) latestAssistantReply(ctx context.Context, threadID string) (string, error) {
	list, err := c.api.ListMessage(ctx, threadID, nil, nil, nil, nil, nil)
	if err != nil {
		return "", goerr.Wrap(err, "failed to list thread messages",
			goerr.T(errutil.TagUpstream),
			goerr.V("threadID", threadID),
		)
	}

	// Messages are returned newest first
	for _, msg := range list.Messages {
		if msg.Role != openai.ChatMessageRoleAssistant {
			continue
		}
		for _, content := range msg.Content {
			if content.Text != nil {
				return content.Text.Value, nil
			}
		}
	}

	return "", goerr.New("no assistant message found on completed thread",
		goerr.T(errutil.TagUpstream),
		goerr.V("threadID", threadID),
		goerr.V("messages", len(list.Messages)),
	)
}
