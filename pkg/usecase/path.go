package usecase

import (
	"context"

	"github.com/campus-lab/coursepath/pkg/domain/interfaces"
	"github.com/campus-lab/coursepath/pkg/domain/model"
	"github.com/campus-lab/coursepath/pkg/domain/types"
	"github.com/campus-lab/coursepath/pkg/service/assistant"
	"github.com/campus-lab/coursepath/pkg/service/extract"
	"github.com/campus-lab/coursepath/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// PathUseCase drives the assistant conversations: follow-up question
// generation and learning path generation.
type PathUseCase struct {
	repo         interfaces.Repository
	assistant    assistant.Service
	universities *model.UniversityRegistry
}

func NewPathUseCase(repo interfaces.Repository, assistantSvc assistant.Service, universities *model.UniversityRegistry) *PathUseCase {
	return &PathUseCase{
		repo:         repo,
		assistant:    assistantSvc,
		universities: universities,
	}
}

// majorName resolves the display name of the session's major, falling back
// to the raw ID when the configuration no longer lists it
func (uc *PathUseCase) majorName(session *model.Session) string {
	if university, err := uc.universities.Get(session.UniversityID); err == nil {
		if name, ok := university.MajorName(session.MajorID); ok {
			return name
		}
	}
	return session.MajorID
}

// GenerateFollowUp asks the session's assistant for personalized follow-up
// questions based on the responses submitted so far.
func (uc *PathUseCase) GenerateFollowUp(ctx context.Context, sessionID model.SessionID) ([]model.Question, error) {
	session, err := uc.repo.Session().Get(ctx, sessionID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get session", goerr.V(SessionIDKey, sessionID))
	}
	if len(session.Responses) == 0 {
		return nil, goerr.Wrap(ErrNoResponses, "cannot generate follow-up questions",
			goerr.V(SessionIDKey, sessionID),
		)
	}

	prompt, err := buildFollowUpPrompt(session.Responses, session.StudentType, uc.majorName(session))
	if err != nil {
		return nil, err
	}

	reply, err := uc.assistant.RunConversation(ctx, session.AssistantID, prompt)
	if err != nil {
		return nil, goerr.Wrap(err, "follow-up question generation failed",
			goerr.V(SessionIDKey, sessionID),
			goerr.V("assistantID", session.AssistantID),
		)
	}

	questions, err := extract.Questions(reply)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse follow-up questions",
			goerr.V(SessionIDKey, sessionID),
		)
	}

	logging.From(ctx).Info("generated follow-up questions",
		"sessionID", sessionID,
		"count", len(questions),
	)

	return questions, nil
}

// GenerateLearningPath asks the session's assistant for a learning path and
// persists it onto the session. searchQuery is optional; when non-empty the
// prompt narrows recommendations toward it.
func (uc *PathUseCase) GenerateLearningPath(ctx context.Context, sessionID model.SessionID, searchQuery string) ([]model.PathStep, error) {
	session, err := uc.repo.Session().Get(ctx, sessionID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get session", goerr.V(SessionIDKey, sessionID))
	}
	if len(session.Responses) == 0 {
		return nil, goerr.Wrap(ErrNoResponses, "cannot generate learning path",
			goerr.V(SessionIDKey, sessionID),
		)
	}

	prompt, err := buildLearningPathPrompt(session.Responses, searchQuery)
	if err != nil {
		return nil, err
	}

	reply, err := uc.assistant.RunConversation(ctx, session.AssistantID, prompt)
	if err != nil {
		return nil, goerr.Wrap(err, "learning path generation failed",
			goerr.V(SessionIDKey, sessionID),
			goerr.V("assistantID", session.AssistantID),
		)
	}

	steps, err := extract.Steps(reply)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse learning path",
			goerr.V(SessionIDKey, sessionID),
		)
	}

	session.LearningPath = steps
	if session.Status.CanTransitionTo(types.SessionStatusPathGenerated) {
		session.Status = types.SessionStatusPathGenerated
	}
	if _, err := uc.repo.Session().Update(ctx, session); err != nil {
		return nil, goerr.Wrap(err, "failed to persist learning path",
			goerr.V(SessionIDKey, sessionID),
		)
	}

	logging.From(ctx).Info("generated learning path",
		"sessionID", sessionID,
		"steps", len(steps),
		"search", searchQuery,
	)

	return steps, nil
}
