package assistant_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/campus-lab/coursepath/pkg/service/assistant"
	"github.com/campus-lab/coursepath/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/sashabaranov/go-openai"
)

// fakeAPI scripts the hosted service: run statuses are served in order, and
// the final message list is fixed.
type fakeAPI struct {
	statuses     []openai.RunStatus
	statusIdx    int
	messages     []openai.Message
	retrieveRuns int
	lastError    *openai.RunLastError

	createdMessages []openai.MessageRequest
}

func (f *fakeAPI) CreateAssistant(ctx context.Context, req openai.AssistantRequest) (openai.Assistant, error) {
	return openai.Assistant{ID: "asst_test"}, nil
}

func (f *fakeAPI) CreateThread(ctx context.Context, req openai.ThreadRequest) (openai.Thread, error) {
	return openai.Thread{ID: "thread_test"}, nil
}

func (f *fakeAPI) CreateMessage(ctx context.Context, threadID string, req openai.MessageRequest) (openai.Message, error) {
	f.createdMessages = append(f.createdMessages, req)
	return openai.Message{ID: "msg_user"}, nil
}

func (f *fakeAPI) CreateRun(ctx context.Context, threadID string, req openai.RunRequest) (openai.Run, error) {
	return openai.Run{ID: "run_test", Status: openai.RunStatusQueued}, nil
}

func (f *fakeAPI) RetrieveRun(ctx context.Context, threadID, runID string) (openai.Run, error) {
	f.retrieveRuns++
	status := f.statuses[f.statusIdx]
	if f.statusIdx < len(f.statuses)-1 {
		f.statusIdx++
	}
	return openai.Run{ID: runID, Status: status, LastError: f.lastError}, nil
}

func (f *fakeAPI) ListMessage(ctx context.Context, threadID string, limit *int, order *string, after *string, before *string, runID *string) (openai.MessagesList, error) {
	return openai.MessagesList{Messages: f.messages}, nil
}

func assistantMessage(text string) openai.Message {
	return openai.Message{
		Role: openai.ChatMessageRoleAssistant,
		Content: []openai.MessageContent{
			{Type: "text", Text: &openai.MessageText{Value: text}},
		},
	}
}

func fastPoll() assistant.PollPolicy {
	return assistant.PollPolicy{
		Initial:  time.Millisecond,
		Max:      2 * time.Millisecond,
		Deadline: time.Second,
	}
}

func TestRunConversation(t *testing.T) {
	t.Run("polls until completion and returns newest assistant reply", func(t *testing.T) {
		api := &fakeAPI{
			statuses: []openai.RunStatus{
				openai.RunStatusQueued,
				openai.RunStatusInProgress,
				openai.RunStatusCompleted,
			},
			messages: []openai.Message{
				assistantMessage("second reply"),
				{Role: openai.ChatMessageRoleUser, Content: []openai.MessageContent{{Type: "text", Text: &openai.MessageText{Value: "prompt"}}}},
				assistantMessage("first reply"),
			},
		}
		client := assistant.New("test-key", assistant.WithAPI(api), assistant.WithPollPolicy(fastPoll()))

		reply, err := client.RunConversation(context.Background(), "asst_test", "hello")
		gt.NoError(t, err).Required()
		gt.Value(t, reply).Equal("second reply")
		gt.Number(t, api.retrieveRuns).GreaterOrEqual(3)

		gt.Array(t, api.createdMessages).Length(1)
		gt.Value(t, api.createdMessages[0].Role).Equal(openai.ChatMessageRoleUser)
		gt.Value(t, api.createdMessages[0].Content).Equal("hello")
	})

	t.Run("failed run surfaces the reported status", func(t *testing.T) {
		api := &fakeAPI{
			statuses:  []openai.RunStatus{openai.RunStatusFailed},
			lastError: &openai.RunLastError{Message: "rate limit"},
		}
		client := assistant.New("test-key", assistant.WithAPI(api), assistant.WithPollPolicy(fastPoll()))

		_, err := client.RunConversation(context.Background(), "asst_test", "hello")
		gt.Error(t, err)
		gt.Value(t, goerr.HasTag(err, errutil.TagUpstream)).Equal(true)

		var ge *goerr.Error
		gt.Bool(t, errors.As(err, &ge)).True()
		gt.Value(t, ge.Values()["status"]).Equal("failed")
		gt.Value(t, ge.Values()["lastError"]).Equal("rate limit")
	})

	t.Run("expired run is fatal", func(t *testing.T) {
		api := &fakeAPI{statuses: []openai.RunStatus{openai.RunStatusExpired}}
		client := assistant.New("test-key", assistant.WithAPI(api), assistant.WithPollPolicy(fastPoll()))

		_, err := client.RunConversation(context.Background(), "asst_test", "hello")
		gt.Error(t, err)
		gt.Value(t, goerr.HasTag(err, errutil.TagUpstream)).Equal(true)
	})

	t.Run("never-completing run hits the poll deadline", func(t *testing.T) {
		api := &fakeAPI{statuses: []openai.RunStatus{openai.RunStatusInProgress}}
		client := assistant.New("test-key", assistant.WithAPI(api), assistant.WithPollPolicy(assistant.PollPolicy{
			Initial:  time.Millisecond,
			Max:      2 * time.Millisecond,
			Deadline: 10 * time.Millisecond,
		}))

		_, err := client.RunConversation(context.Background(), "asst_test", "hello")
		gt.Error(t, err)
		gt.Value(t, goerr.HasTag(err, errutil.TagTimeout)).Equal(true)
	})

	t.Run("completed run without assistant message is a contract violation", func(t *testing.T) {
		api := &fakeAPI{
			statuses: []openai.RunStatus{openai.RunStatusCompleted},
			messages: []openai.Message{
				{Role: openai.ChatMessageRoleUser, Content: []openai.MessageContent{{Type: "text", Text: &openai.MessageText{Value: "prompt"}}}},
			},
		}
		client := assistant.New("test-key", assistant.WithAPI(api), assistant.WithPollPolicy(fastPoll()))

		_, err := client.RunConversation(context.Background(), "asst_test", "hello")
		gt.Error(t, err)
		gt.String(t, err.Error()).Contains("no assistant message")
	})

	t.Run("cancelled context stops polling", func(t *testing.T) {
		api := &fakeAPI{statuses: []openai.RunStatus{openai.RunStatusInProgress}}
		client := assistant.New("test-key", assistant.WithAPI(api), assistant.WithPollPolicy(assistant.PollPolicy{
			Initial:  50 * time.Millisecond,
			Max:      50 * time.Millisecond,
			Deadline: 10 * time.Second,
		}))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.RunConversation(ctx, "asst_test", "hello")
		gt.Error(t, err)
	})
}

func TestCreateAssistant(t *testing.T) {
	t.Run("returns provisioned assistant ID", func(t *testing.T) {
		api := &fakeAPI{}
		client := assistant.New("test-key", assistant.WithAPI(api))

		id, err := client.CreateAssistant(context.Background(), "Course Advisor - stanford - cs", "instructions")
		gt.NoError(t, err).Required()
		gt.Value(t, id).Equal("asst_test")
	})
}
