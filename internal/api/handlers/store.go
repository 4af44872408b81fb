package handlers

import (
	"sync"

	"github.com/bstlaurentnz/energy-provider-comparison/internal/compare"

	"github.com/google/uuid"
)

// RunStore keeps recent comparison outcomes in memory so ledgers can be
// fetched after the fact without re-running the simulation. Oldest runs are
// evicted once the store is full.
type RunStore struct {
	mu    sync.RWMutex
	runs  map[string]*compare.Outcome
	order []string
	limit int
}

const defaultRunLimit = 32

func NewRunStore() *RunStore {
	return &RunStore{
		runs:  map[string]*compare.Outcome{},
		limit: defaultRunLimit,
	}
}

// Put stores an outcome and returns its run ID.
func (s *RunStore) Put(outcome *compare.Outcome) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.order) >= s.limit {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.runs, oldest)
	}
	s.runs[id] = outcome
	s.order = append(s.order, id)
	return id
}

func (s *RunStore) Get(id string) (*compare.Outcome, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	outcome, ok := s.runs[id]
	return outcome, ok
}
