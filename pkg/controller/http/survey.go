package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/campus-lab/coursepath/pkg/domain/model"
	"github.com/campus-lab/coursepath/pkg/utils/errutil"
	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
)

func sessionIDFrom(r *http.Request) model.SessionID {
	return model.SessionID(chi.URLParam(r, "sessionID"))
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

type questionsResponse struct {
	Questions []model.Question `json:"questions"`
}

func (s *Server) initialSurvey(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	questions, err := s.uc.Survey.InitialQuestions(ctx, sessionIDFrom(r))
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, questionsResponse{Questions: questions})
}

type submitResponsesRequest struct {
	Responses []model.SurveyResponse `json:"responses"`
}

type submitResponsesResponse struct {
	Status        string `json:"status"`
	TotalAnswered int    `json:"total_answered"`
	SessionStatus string `json:"session_status"`
}

func (s *Server) submitResponses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req submitResponsesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(ctx, w, goerr.Wrap(err, "invalid request body", goerr.T(errutil.TagValidation)))
		return
	}

	session, err := s.uc.Survey.SubmitResponses(ctx, sessionIDFrom(r), req.Responses)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, submitResponsesResponse{
		Status:        "success",
		TotalAnswered: session.TotalAnswered,
		SessionStatus: session.Status.String(),
	})
}

func (s *Server) generateFollowUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	questions, err := s.uc.Path.GenerateFollowUp(ctx, sessionIDFrom(r))
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, questionsResponse{Questions: questions})
}

type learningPathResponse struct {
	LearningPath []model.PathStep `json:"learning_path"`
}

func (s *Server) learningPath(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	steps, err := s.uc.Path.GenerateLearningPath(ctx, sessionIDFrom(r), r.URL.Query().Get("search"))
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, learningPathResponse{LearningPath: steps})
}
