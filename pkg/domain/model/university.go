package model

import (
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
)

// Major is one major offered at a university
type Major struct {
	ID   string
	Name string
}

// University is one institution known to the service, with the majors the
// assistant can advise on
type University struct {
	ID     string
	Name   string
	Majors []Major
}

// MajorName resolves a major ID to its display name
func (u *University) MajorName(majorID string) (string, bool) {
	for _, m := range u.Majors {
		if m.ID == majorID {
			return m.Name, true
		}
	}
	return "", false
}

// UniversityRegistry holds the universities loaded from the application
// configuration. It is populated once at startup and read-only afterwards;
// the mutex only guards late registration from tests.
type UniversityRegistry struct {
	mu           sync.RWMutex
	universities map[string]*University
}

// NewUniversityRegistry creates an empty registry
func NewUniversityRegistry() *UniversityRegistry {
	return &UniversityRegistry{
		universities: make(map[string]*University),
	}
}

// Register adds a university to the registry
func (r *UniversityRegistry) Register(u *University) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.universities[u.ID] = u
}

// Get returns the university for the given ID
func (r *UniversityRegistry) Get(universityID string) (*University, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.universities[universityID]
	if !ok {
		return nil, goerr.New("unknown university", goerr.V("universityID", universityID))
	}
	return u, nil
}

// List returns all registered universities sorted by ID
func (r *UniversityRegistry) List() []*University {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*University, 0, len(r.universities))
	for _, u := range r.universities {
		list = append(list, u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}
