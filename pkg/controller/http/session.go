package http

import (
	"encoding/json"
	"net/http"

	"github.com/campus-lab/coursepath/pkg/domain/model"
	"github.com/campus-lab/coursepath/pkg/domain/types"
	"github.com/campus-lab/coursepath/pkg/utils/errutil"
	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
)

type createSessionRequest struct {
	UniversityID string `json:"university_id"`
	MajorID      string `json:"major_id"`
	StudentType  string `json:"student_type"`
}

type createSessionResponse struct {
	SessionID model.SessionID     `json:"session_id"`
	Status    types.SessionStatus `json:"status"`
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(ctx, w, goerr.Wrap(err, "invalid request body", goerr.T(errutil.TagValidation)))
		return
	}

	session, err := s.uc.Session.StartSession(ctx, req.UniversityID, req.MajorID, req.StudentType)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusCreated, createSessionResponse{
		SessionID: session.ID,
		Status:    session.Status,
	})
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, err := s.uc.Session.GetSession(ctx, model.SessionID(chi.URLParam(r, "sessionID")))
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, session)
}

type listSessionsResponse struct {
	Sessions []*model.Session `json:"sessions"`
	Total    int              `json:"total"`
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var status types.SessionStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, err := types.ParseSessionStatus(raw)
		if err != nil {
			respondError(ctx, w, goerr.Wrap(err, "invalid status filter", goerr.T(errutil.TagValidation)))
			return
		}
		status = parsed
	}

	limit := queryInt(r, "limit", 0)
	offset := queryInt(r, "offset", 0)

	sessions, total, err := s.uc.Session.ListSessions(ctx, status, limit, offset)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, listSessionsResponse{
		Sessions: sessions,
		Total:    total,
	})
}

type listAssistantsResponse struct {
	Assistants []*model.Assistant `json:"assistants"`
}

func (s *Server) listAssistants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	assistants, err := s.uc.Registry.List(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, listAssistantsResponse{Assistants: assistants})
}
