package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/campus-lab/coursepath/pkg/domain/model"
	"github.com/campus-lab/coursepath/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

type assistantRepository struct {
	mu         sync.Mutex
	assistants map[string]*model.Assistant
}

func newAssistantRepository() *assistantRepository {
	return &assistantRepository{
		assistants: make(map[string]*model.Assistant),
	}
}

func copyAssistant(a *model.Assistant) *model.Assistant {
	c := *a
	return &c
}

func (r *assistantRepository) Get(ctx context.Context, key string) (*model.Assistant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	assistant, ok := r.assistants[key]
	if !ok {
		return nil, goerr.New("assistant registration not found",
			goerr.T(errutil.TagNotFound),
			goerr.V("key", key),
		)
	}
	return copyAssistant(assistant), nil
}

func (r *assistantRepository) CreateIfAbsent(ctx context.Context, assistant *model.Assistant) (*model.Assistant, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := assistant.Key()
	if existing, ok := r.assistants[key]; ok {
		return copyAssistant(existing), false, nil
	}

	stored := copyAssistant(assistant)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	r.assistants[key] = stored

	return copyAssistant(stored), true, nil
}

func (r *assistantRepository) List(ctx context.Context) ([]*model.Assistant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := make([]*model.Assistant, 0, len(r.assistants))
	for _, a := range r.assistants {
		list = append(list, copyAssistant(a))
	}

	// Sort by CreatedAt descending
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})

	return list, nil
}
