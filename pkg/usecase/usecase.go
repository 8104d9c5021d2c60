package usecase

import (
	"github.com/campus-lab/coursepath/pkg/domain/interfaces"
	"github.com/campus-lab/coursepath/pkg/domain/model"
	"github.com/campus-lab/coursepath/pkg/service/assistant"
)

type UseCases struct {
	repo         interfaces.Repository
	universities *model.UniversityRegistry

	Registry *RegistryUseCase
	Session  *SessionUseCase
	Survey   *SurveyUseCase
	Path     *PathUseCase
}

func New(repo interfaces.Repository, assistantSvc assistant.Service, universities *model.UniversityRegistry) *UseCases {
	uc := &UseCases{
		repo:         repo,
		universities: universities,
	}

	uc.Registry = NewRegistryUseCase(repo, assistantSvc, universities)
	uc.Session = NewSessionUseCase(repo, uc.Registry, universities)
	uc.Survey = NewSurveyUseCase(repo)
	uc.Path = NewPathUseCase(repo, assistantSvc, universities)

	return uc
}
