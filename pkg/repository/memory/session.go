package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/campus-lab/coursepath/pkg/domain/model"
	"github.com/campus-lab/coursepath/pkg/domain/types"
	"github.com/campus-lab/coursepath/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[model.SessionID]*model.Session
}

func newSessionRepository() *sessionRepository {
	return &sessionRepository{
		sessions: make(map[model.SessionID]*model.Session),
	}
}

func (r *sessionRepository) Create(ctx context.Context, session *model.Session) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := session.Clone()
	if created.ID == "" {
		created.ID = model.NewSessionID()
	}
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	r.sessions[created.ID] = created
	return created.Clone(), nil
}

func (r *sessionRepository) Get(ctx context.Context, id model.SessionID) (*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, goerr.New("session not found",
			goerr.T(errutil.TagNotFound),
			goerr.V("sessionID", id),
		)
	}
	return session.Clone(), nil
}

func (r *sessionRepository) Update(ctx context.Context, session *model.Session) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[session.ID]; !ok {
		return nil, goerr.New("session not found",
			goerr.T(errutil.TagNotFound),
			goerr.V("sessionID", session.ID),
		)
	}

	updated := session.Clone()
	updated.UpdatedAt = time.Now().UTC()

	r.sessions[updated.ID] = updated
	return updated.Clone(), nil
}

func (r *sessionRepository) List(ctx context.Context, st types.SessionStatus, limit, offset int) ([]*model.Session, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := make([]*model.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		if st != "" && s.Status != st {
			continue
		}
		filtered = append(filtered, s)
	}

	// Sort by CreatedAt descending
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	totalCount := len(filtered)
	if offset >= totalCount {
		return []*model.Session{}, totalCount, nil
	}

	end := offset + limit
	if end > totalCount {
		end = totalCount
	}

	result := make([]*model.Session, 0, end-offset)
	for _, s := range filtered[offset:end] {
		result = append(result, s.Clone())
	}

	return result, totalCount, nil
}
