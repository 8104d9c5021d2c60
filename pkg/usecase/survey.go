package usecase

import (
	"context"
	"time"

	"github.com/campus-lab/coursepath/pkg/domain/interfaces"
	"github.com/campus-lab/coursepath/pkg/domain/model"
	"github.com/campus-lab/coursepath/pkg/domain/types"
	"github.com/campus-lab/coursepath/pkg/service/catalog"
	"github.com/campus-lab/coursepath/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// completionThreshold is the total answered count at which the survey is
// considered complete
const completionThreshold = 10

type SurveyUseCase struct {
	repo interfaces.Repository
}

func NewSurveyUseCase(repo interfaces.Repository) *SurveyUseCase {
	return &SurveyUseCase{
		repo: repo,
	}
}

// InitialQuestions returns the fixed question set for the session's student
// type
func (uc *SurveyUseCase) InitialQuestions(ctx context.Context, sessionID model.SessionID) ([]model.Question, error) {
	session, err := uc.repo.Session().Get(ctx, sessionID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get session", goerr.V(SessionIDKey, sessionID))
	}

	questions, err := catalog.Questions(session.StudentType)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load initial survey",
			goerr.V(SessionIDKey, sessionID),
			goerr.V(StudentTypeKey, session.StudentType),
		)
	}

	return questions, nil
}

// SubmitResponses appends the given responses to the session and advances
// its status: survey_in_progress below the completion threshold,
// survey_completed at or above it. The status never moves backward.
func (uc *SurveyUseCase) SubmitResponses(ctx context.Context, sessionID model.SessionID, responses []model.SurveyResponse) (*model.Session, error) {
	if len(responses) == 0 {
		return nil, goerr.Wrap(ErrNoResponses, "nothing to submit",
			goerr.V(SessionIDKey, sessionID),
		)
	}

	session, err := uc.repo.Session().Get(ctx, sessionID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get session", goerr.V(SessionIDKey, sessionID))
	}

	session.Responses = append(session.Responses, responses...)
	session.TotalAnswered = len(session.Responses)
	now := time.Now().UTC()
	session.SubmittedAt = &now

	next := types.SessionStatusSurveyInProgress
	if session.TotalAnswered >= completionThreshold {
		next = types.SessionStatusSurveyCompleted
	}
	if session.Status.CanTransitionTo(next) {
		session.Status = next
	}

	updated, err := uc.repo.Session().Update(ctx, session)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store responses",
			goerr.V(SessionIDKey, sessionID),
		)
	}

	logging.From(ctx).Info("stored survey responses",
		"sessionID", sessionID,
		"submitted", len(responses),
		"totalAnswered", updated.TotalAnswered,
		"status", updated.Status,
	)

	return updated, nil
}
