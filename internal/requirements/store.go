package requirements

import (
	"context"
	"sync"

	"github.com/jonathan/resume-intake/internal/types"
)

// MemoryStore is a JobStore over an in-memory map, used by the CLI and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	postings map[string]types.JobPosting
}

// NewMemoryStore creates a store holding postings.
func NewMemoryStore(postings ...types.JobPosting) *MemoryStore {
	s := &MemoryStore{postings: make(map[string]types.JobPosting, len(postings))}
	for _, p := range postings {
		s.postings[p.ID] = p
	}
	return s
}

// Put adds or replaces a posting.
func (s *MemoryStore) Put(p types.JobPosting) {
	s.mu.Lock()
	s.postings[p.ID] = p
	s.mu.Unlock()
}

// SelectJobPosting implements JobStore.
func (s *MemoryStore) SelectJobPosting(_ context.Context, id string) (*types.JobPosting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.postings[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}
