package interfaces

import (
	"context"

	"github.com/campus-lab/coursepath/pkg/domain/model"
)

// AssistantRepository defines the interface for assistant registration
// persistence. Registrations are keyed by model.AssistantKey and immutable
// once stored.
type AssistantRepository interface {
	// Get retrieves a registration by key. Returns an error tagged as
	// not-found when the key has never been registered.
	Get(ctx context.Context, key string) (*model.Assistant, error)

	// CreateIfAbsent stores the registration unless one already exists for
	// its key. Returns the stored registration and whether this call created
	// it. When two processes race on the first registration of a key, exactly
	// one create wins and both callers observe the winner's record.
	CreateIfAbsent(ctx context.Context, assistant *model.Assistant) (*model.Assistant, bool, error)

	// List returns all registrations ordered by CreatedAt descending
	List(ctx context.Context) ([]*model.Assistant, error)
}
