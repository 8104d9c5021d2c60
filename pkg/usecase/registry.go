package usecase

import (
	"context"
	"fmt"

	"github.com/campus-lab/coursepath/pkg/domain/interfaces"
	"github.com/campus-lab/coursepath/pkg/domain/model"
	"github.com/campus-lab/coursepath/pkg/service/assistant"
	"github.com/campus-lab/coursepath/pkg/utils/errutil"
	"github.com/campus-lab/coursepath/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/singleflight"
)

// RegistryUseCase maps (university, major) pairs to durable hosted-assistant
// registrations, provisioning one on first use.
type RegistryUseCase struct {
	repo         interfaces.Repository
	assistant    assistant.Service
	universities *model.UniversityRegistry

	// group collapses concurrent first calls for the same key within this
	// process. Across processes the repository's CreateIfAbsent decides the
	// winner.
	group singleflight.Group
}

func NewRegistryUseCase(repo interfaces.Repository, assistantSvc assistant.Service, universities *model.UniversityRegistry) *RegistryUseCase {
	return &RegistryUseCase{
		repo:         repo,
		assistant:    assistantSvc,
		universities: universities,
	}
}

// GetOrCreate returns the assistant ID registered for the pair, provisioning
// and registering a new hosted assistant on the first call. Idempotent per
// pair: repeated calls return the same ID.
func (uc *RegistryUseCase) GetOrCreate(ctx context.Context, universityID, majorID string) (string, error) {
	if universityID == "" || majorID == "" {
		return "", goerr.New("university ID and major ID are required",
			goerr.T(errutil.TagValidation),
			goerr.V("universityID", universityID),
			goerr.V("majorID", majorID),
		)
	}

	key := model.AssistantKey(universityID, majorID)

	id, err, _ := uc.group.Do(key, func() (any, error) {
		existing, err := uc.repo.Assistant().Get(ctx, key)
		if err == nil {
			return existing.AssistantID, nil
		}
		if !goerr.HasTag(err, errutil.TagNotFound) {
			return "", goerr.Wrap(err, "failed to look up assistant registration",
				goerr.V("key", key),
			)
		}

		return uc.provision(ctx, universityID, majorID)
	})
	if err != nil {
		return "", err
	}

	return id.(string), nil
}

func (uc *RegistryUseCase) provision(ctx context.Context, universityID, majorID string) (string, error) {
	logger := logging.From(ctx)

	universityName := universityID
	majorName := majorID
	if university, err := uc.universities.Get(universityID); err == nil {
		universityName = university.Name
		if name, ok := university.MajorName(majorID); ok {
			majorName = name
		}
	}

	instructions, err := buildAssistantInstructions(universityName, majorName)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("Course Advisor - %s - %s", universityID, majorID)
	assistantID, err := uc.assistant.CreateAssistant(ctx, name, instructions)
	if err != nil {
		return "", goerr.Wrap(err, "failed to provision assistant",
			goerr.V("universityID", universityID),
			goerr.V("majorID", majorID),
		)
	}

	stored, created, err := uc.repo.Assistant().CreateIfAbsent(ctx, &model.Assistant{
		AssistantID:  assistantID,
		UniversityID: universityID,
		MajorID:      majorID,
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to register assistant",
			goerr.V("assistantID", assistantID),
		)
	}

	if !created {
		// Another process won the first registration. Keep its assistant and
		// abandon the one provisioned here.
		logger.Warn("assistant registration race lost, using stored registration",
			"key", stored.Key(),
			"storedAssistantID", stored.AssistantID,
			"abandonedAssistantID", assistantID,
		)
	} else {
		logger.Info("registered new assistant",
			"key", stored.Key(),
			"assistantID", stored.AssistantID,
		)
	}

	return stored.AssistantID, nil
}

// List returns all assistant registrations, newest first
func (uc *RegistryUseCase) List(ctx context.Context) ([]*model.Assistant, error) {
	registrations, err := uc.repo.Assistant().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list assistant registrations")
	}
	return registrations, nil
}
