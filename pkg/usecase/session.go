package usecase

import (
	"context"

	"github.com/campus-lab/coursepath/pkg/domain/interfaces"
	"github.com/campus-lab/coursepath/pkg/domain/model"
	"github.com/campus-lab/coursepath/pkg/domain/types"
	"github.com/campus-lab/coursepath/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

type SessionUseCase struct {
	repo         interfaces.Repository
	registry     *RegistryUseCase
	universities *model.UniversityRegistry
}

func NewSessionUseCase(repo interfaces.Repository, registry *RegistryUseCase, universities *model.UniversityRegistry) *SessionUseCase {
	return &SessionUseCase{
		repo:         repo,
		registry:     registry,
		universities: universities,
	}
}

// StartSession validates the student's selection, resolves (or provisions)
// the assistant for the (university, major) pair, and creates the session in
// the initialized state.
func (uc *SessionUseCase) StartSession(ctx context.Context, universityID, majorID, studentType string) (*model.Session, error) {
	st, err := types.ParseStudentType(studentType)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidStudent, "cannot start session",
			goerr.V(StudentTypeKey, studentType),
		)
	}

	university, err := uc.universities.Get(universityID)
	if err != nil {
		return nil, goerr.Wrap(ErrUnknownUniversty, "cannot start session",
			goerr.V("universityID", universityID),
		)
	}
	if _, ok := university.MajorName(majorID); !ok {
		return nil, goerr.Wrap(ErrUnknownMajor, "cannot start session",
			goerr.V("universityID", universityID),
			goerr.V("majorID", majorID),
		)
	}

	assistantID, err := uc.registry.GetOrCreate(ctx, universityID, majorID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve assistant for session")
	}

	session, err := uc.repo.Session().Create(ctx, &model.Session{
		UniversityID: universityID,
		MajorID:      majorID,
		StudentType:  st,
		AssistantID:  assistantID,
		Status:       types.SessionStatusInitialized,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create session")
	}

	logging.From(ctx).Info("started session",
		"sessionID", session.ID,
		"universityID", universityID,
		"majorID", majorID,
		"studentType", st,
	)

	return session, nil
}

// GetSession retrieves a session by ID
func (uc *SessionUseCase) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	session, err := uc.repo.Session().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get session", goerr.V(SessionIDKey, id))
	}
	return session, nil
}

// ListSessions retrieves sessions for operational inspection, optionally
// filtered by status
func (uc *SessionUseCase) ListSessions(ctx context.Context, status types.SessionStatus, limit, offset int) ([]*model.Session, int, error) {
	if limit <= 0 {
		limit = 50
	}
	sessions, total, err := uc.repo.Session().List(ctx, status, limit, offset)
	if err != nil {
		return nil, 0, goerr.Wrap(err, "failed to list sessions")
	}
	return sessions, total, nil
}
