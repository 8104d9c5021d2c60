package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/campus-lab/coursepath/pkg/domain/model"
	"github.com/campus-lab/coursepath/pkg/domain/types"
	"github.com/campus-lab/coursepath/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// responseDoc is the Firestore representation of model.SurveyResponse
type responseDoc struct {
	Question string `firestore:"Question"`
	Answer   string `firestore:"Answer"`
}

// pathStepDoc is the Firestore representation of model.PathStep
type pathStepDoc struct {
	Title            string   `firestore:"Title"`
	Description      string   `firestore:"Description"`
	EstimatedTime    string   `firestore:"EstimatedTime"`
	MatchPercentage  int      `firestore:"MatchPercentage"`
	PublicReviews    []string `firestore:"PublicReviews"`
	ProfessorReviews []string `firestore:"ProfessorReviews"`
	Resources        []string `firestore:"Resources"`
}

// sessionDoc is the Firestore document representation of model.Session
type sessionDoc struct {
	ID            string        `firestore:"ID"`
	UniversityID  string        `firestore:"UniversityID"`
	MajorID       string        `firestore:"MajorID"`
	StudentType   string        `firestore:"StudentType"`
	AssistantID   string        `firestore:"AssistantID"`
	Status        string        `firestore:"Status"`
	Responses     []responseDoc `firestore:"Responses"`
	TotalAnswered int           `firestore:"TotalAnswered"`
	SubmittedAt   *time.Time    `firestore:"SubmittedAt"`
	LearningPath  []pathStepDoc `firestore:"LearningPath"`
	CreatedAt     time.Time     `firestore:"CreatedAt"`
	UpdatedAt     time.Time     `firestore:"UpdatedAt"`
}

func toSessionDoc(s *model.Session) *sessionDoc {
	doc := &sessionDoc{
		ID:            string(s.ID),
		UniversityID:  s.UniversityID,
		MajorID:       s.MajorID,
		StudentType:   string(s.StudentType),
		AssistantID:   s.AssistantID,
		Status:        string(s.Status),
		TotalAnswered: s.TotalAnswered,
		SubmittedAt:   s.SubmittedAt,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
	for _, r := range s.Responses {
		doc.Responses = append(doc.Responses, responseDoc{Question: r.Question, Answer: r.Answer})
	}
	for _, p := range s.LearningPath {
		doc.LearningPath = append(doc.LearningPath, pathStepDoc{
			Title:            p.Title,
			Description:      p.Description,
			EstimatedTime:    p.EstimatedTime,
			MatchPercentage:  p.MatchPercentage,
			PublicReviews:    p.PublicReviews,
			ProfessorReviews: p.ProfessorReviews,
			Resources:        p.Resources,
		})
	}
	return doc
}

func fromSessionDoc(d *sessionDoc) *model.Session {
	s := &model.Session{
		ID:            model.SessionID(d.ID),
		UniversityID:  d.UniversityID,
		MajorID:       d.MajorID,
		StudentType:   types.StudentType(d.StudentType),
		AssistantID:   d.AssistantID,
		Status:        types.SessionStatus(d.Status),
		TotalAnswered: d.TotalAnswered,
		SubmittedAt:   d.SubmittedAt,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
	for _, r := range d.Responses {
		s.Responses = append(s.Responses, model.SurveyResponse{Question: r.Question, Answer: r.Answer})
	}
	for _, p := range d.LearningPath {
		s.LearningPath = append(s.LearningPath, model.PathStep{
			Title:            p.Title,
			Description:      p.Description,
			EstimatedTime:    p.EstimatedTime,
			MatchPercentage:  p.MatchPercentage,
			PublicReviews:    p.PublicReviews,
			ProfessorReviews: p.ProfessorReviews,
			Resources:        p.Resources,
		})
	}
	return s
}

type sessionRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newSessionRepository(client *firestore.Client) *sessionRepository {
	return &sessionRepository{client: client}
}

func (r *sessionRepository) sessionsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_sessions"
	}
	return "sessions"
}

func (r *sessionRepository) Create(ctx context.Context, session *model.Session) (*model.Session, error) {
	created := session.Clone()
	if created.ID == "" {
		created.ID = model.NewSessionID()
	}
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	docRef := r.client.Collection(r.sessionsCollection()).Doc(string(created.ID))
	if _, err := docRef.Set(ctx, toSessionDoc(created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create session",
			goerr.T(errutil.TagUpstream),
			goerr.V("sessionID", created.ID),
		)
	}

	return created, nil
}

func (r *sessionRepository) Get(ctx context.Context, id model.SessionID) (*model.Session, error) {
	doc, err := r.client.Collection(r.sessionsCollection()).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.New("session not found",
				goerr.T(errutil.TagNotFound),
				goerr.V("sessionID", id),
			)
		}
		return nil, goerr.Wrap(err, "failed to get session",
			goerr.T(errutil.TagUpstream),
			goerr.V("sessionID", id),
		)
	}

	var d sessionDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal session",
			goerr.V("sessionID", id),
		)
	}

	return fromSessionDoc(&d), nil
}

// Update overwrites the whole session document. Last writer wins.
func (r *sessionRepository) Update(ctx context.Context, session *model.Session) (*model.Session, error) {
	if session.ID == "" {
		return nil, goerr.New("session ID is required for update")
	}

	updated := session.Clone()
	updated.UpdatedAt = time.Now().UTC()

	docRef := r.client.Collection(r.sessionsCollection()).Doc(string(updated.ID))
	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.New("session not found",
				goerr.T(errutil.TagNotFound),
				goerr.V("sessionID", updated.ID),
			)
		}
		return nil, goerr.Wrap(err, "failed to check session existence",
			goerr.T(errutil.TagUpstream),
			goerr.V("sessionID", updated.ID),
		)
	}

	if _, err := docRef.Set(ctx, toSessionDoc(updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update session",
			goerr.T(errutil.TagUpstream),
			goerr.V("sessionID", updated.ID),
		)
	}

	return updated, nil
}

func (r *sessionRepository) List(ctx context.Context, st types.SessionStatus, limit, offset int) ([]*model.Session, int, error) {
	base := r.client.Collection(r.sessionsCollection()).Query
	if st != "" {
		base = base.Where("Status", "==", string(st))
	}

	allDocs, err := base.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, goerr.Wrap(err, "failed to count sessions",
			goerr.T(errutil.TagUpstream),
		)
	}
	totalCount := len(allDocs)

	query := base.OrderBy("CreatedAt", firestore.Desc).Offset(offset).Limit(limit)
	iter := query.Documents(ctx)
	defer iter.Stop()

	sessions := make([]*model.Session, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, goerr.Wrap(err, "failed to iterate sessions",
				goerr.T(errutil.TagUpstream),
			)
		}

		var d sessionDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, 0, goerr.Wrap(err, "failed to unmarshal session")
		}

		sessions = append(sessions, fromSessionDoc(&d))
	}

	return sessions, totalCount, nil
}
