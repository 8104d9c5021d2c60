package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	server "github.com/campus-lab/coursepath/pkg/controller/http"
	"github.com/campus-lab/coursepath/pkg/domain/model"
	"github.com/campus-lab/coursepath/pkg/repository/memory"
	"github.com/campus-lab/coursepath/pkg/service/assistant"
	"github.com/campus-lab/coursepath/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func newTestServer(mock *assistant.Mock) *server.Server {
	universities := model.NewUniversityRegistry()
	universities.Register(&model.University{
		ID:   "ucsd",
		Name: "UC San Diego",
		Majors: []model.Major{
			{ID: "cs", Name: "Computer Science"},
		},
	})
	return server.New(usecase.New(memory.New(), mock, universities))
}

func postJSON(t *testing.T, srv *server.Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	gt.NoError(t, err).Required()

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func getPath(srv *server.Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v)).Required()
	return v
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&assistant.Mock{})

	rec := getPath(srv, "/health")
	gt.Value(t, rec.Code).Equal(http.StatusOK)
}

func TestSurveyFlow(t *testing.T) {
	mock := &assistant.Mock{
		RunConversationFunc: func(ctx context.Context, assistantID, prompt string) (string, error) {
			return `Here is your path:
[{"title": "CSE 110", "description": "Software engineering", "match_percentage": 88}]`, nil
		},
	}
	srv := newTestServer(mock)

	// Create a session
	rec := postJSON(t, srv, "/api/sessions", map[string]string{
		"university_id": "ucsd",
		"major_id":      "cs",
		"student_type":  "first_year",
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)
	created := decode[struct {
		SessionID string `json:"session_id"`
		Status    string `json:"status"`
	}](t, rec)
	gt.String(t, created.SessionID).NotEqual("")
	gt.Value(t, created.Status).Equal("initialized")

	base := "/api/sessions/" + created.SessionID

	// Fetch the initial survey
	rec = getPath(srv, base+"/survey")
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	survey := decode[struct {
		Questions []model.Question `json:"questions"`
	}](t, rec)
	gt.Array(t, survey.Questions).Length(5)

	// Submit ten answers to complete the survey
	responses := make([]map[string]string, 10)
	for i := range responses {
		responses[i] = map[string]string{"question": "q", "answer": "a"}
	}
	rec = postJSON(t, srv, base+"/survey/responses", map[string]any{
		"responses": responses,
	})
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	submitted := decode[struct {
		Status        string `json:"status"`
		TotalAnswered int    `json:"total_answered"`
		SessionStatus string `json:"session_status"`
	}](t, rec)
	gt.Value(t, submitted.Status).Equal("success")
	gt.Value(t, submitted.TotalAnswered).Equal(10)
	gt.Value(t, submitted.SessionStatus).Equal("survey_completed")

	// Generate the learning path
	rec = getPath(srv, base+"/learning-path?search=software")
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	path := decode[struct {
		LearningPath []model.PathStep `json:"learning_path"`
	}](t, rec)
	gt.Array(t, path.LearningPath).Length(1)
	gt.Value(t, path.LearningPath[0].Title).Equal("CSE 110")

	// The session document reflects the final state
	rec = getPath(srv, base)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	session := decode[model.Session](t, rec)
	gt.Value(t, string(session.Status)).Equal("learning_path_generated")
	gt.Array(t, session.LearningPath).Length(1)
}

func TestGenerateFollowUpRoute(t *testing.T) {
	mock := &assistant.Mock{
		RunConversationFunc: func(ctx context.Context, assistantID, prompt string) (string, error) {
			return `{"questions": [{"id": 6, "question": "More?", "options": ["yes", "no"], "freeText": false}]}`, nil
		},
	}
	srv := newTestServer(mock)

	rec := postJSON(t, srv, "/api/sessions", map[string]string{
		"university_id": "ucsd",
		"major_id":      "cs",
		"student_type":  "typical",
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)
	created := decode[struct {
		SessionID string `json:"session_id"`
	}](t, rec)

	base := "/api/sessions/" + created.SessionID

	// Without responses the follow-up generation is rejected
	rec = postJSON(t, srv, base+"/survey/generate", nil)
	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)

	rec = postJSON(t, srv, base+"/survey/responses", map[string]any{
		"responses": []map[string]string{{"question": "q", "answer": "a"}},
	})
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	rec = postJSON(t, srv, base+"/survey/generate", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	followUp := decode[struct {
		Questions []model.Question `json:"questions"`
	}](t, rec)
	gt.Array(t, followUp.Questions).Length(1)
	gt.Value(t, followUp.Questions[0].ID).Equal(6)
}

func TestErrorMapping(t *testing.T) {
	srv := newTestServer(&assistant.Mock{})

	// Unknown session
	rec := getPath(srv, "/api/sessions/no-such-session")
	gt.Value(t, rec.Code).Equal(http.StatusNotFound)

	// Invalid student type
	rec = postJSON(t, srv, "/api/sessions", map[string]string{
		"university_id": "ucsd",
		"major_id":      "cs",
		"student_type":  "graduate",
	})
	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)

	// Malformed body
	req := httptest.NewRequest(http.MethodPost, "/api/sessions", bytes.NewReader([]byte("{not json")))
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
}

func TestListSessions(t *testing.T) {
	srv := newTestServer(&assistant.Mock{})

	for range 3 {
		rec := postJSON(t, srv, "/api/sessions", map[string]string{
			"university_id": "ucsd",
			"major_id":      "cs",
			"student_type":  "typical",
		})
		gt.Value(t, rec.Code).Equal(http.StatusCreated)
	}

	rec := getPath(srv, "/api/sessions?status=initialized")
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	list := decode[struct {
		Sessions []model.Session `json:"sessions"`
		Total    int             `json:"total"`
	}](t, rec)
	gt.Array(t, list.Sessions).Length(3)
	gt.Value(t, list.Total).Equal(3)
}
