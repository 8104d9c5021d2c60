package interfaces

import (
	"context"

	"github.com/campus-lab/coursepath/pkg/domain/model"
	"github.com/campus-lab/coursepath/pkg/domain/types"
)

// SessionRepository defines the interface for Session data persistence
type SessionRepository interface {
	// Create stores a new session. A missing ID is assigned, and
	// CreatedAt/UpdatedAt are set to the current time.
	Create(ctx context.Context, session *model.Session) (*model.Session, error)

	// Get retrieves a session by ID. Returns an error tagged as not-found
	// when no such session exists.
	Get(ctx context.Context, id model.SessionID) (*model.Session, error)

	// Update overwrites the stored session document with the given one.
	// Last writer wins; there is no optimistic concurrency token because the
	// expected usage is one student submitting sequentially to one session.
	Update(ctx context.Context, session *model.Session) (*model.Session, error)

	// List retrieves sessions filtered by status (empty status means all),
	// ordered by CreatedAt descending. Returns items and the total count.
	List(ctx context.Context, status types.SessionStatus, limit, offset int) ([]*model.Session, int, error)
}
