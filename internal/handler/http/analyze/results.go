package analyze

import (
	"sync"

	"readability-audit/internal/domain/entity"
)

// DefaultStoreCapacity is the number of recent audit results kept in memory
// for retrieval via GET /v1/audits/{id}.
const DefaultStoreCapacity = 1000

// ResultStore is a bounded in-memory store of recent audit results. When the
// capacity is exceeded the oldest results are evicted first. Safe for
// concurrent use.
type ResultStore struct {
	mu       sync.RWMutex
	results  map[string]*entity.AuditResult
	order    []string
	capacity int
}

// NewResultStore creates a ResultStore with the given capacity.
// Non-positive capacities use DefaultStoreCapacity.
func NewResultStore(capacity int) *ResultStore {
	if capacity <= 0 {
		capacity = DefaultStoreCapacity
	}
	return &ResultStore{
		results:  make(map[string]*entity.AuditResult, capacity),
		order:    make([]string, 0, capacity),
		capacity: capacity,
	}
}

// Add stores results, evicting the oldest entries when over capacity.
func (s *ResultStore) Add(results ...*entity.AuditResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range results {
		if r == nil {
			continue
		}
		if _, exists := s.results[r.ID]; !exists {
			s.order = append(s.order, r.ID)
		}
		s.results[r.ID] = r
	}

	for len(s.order) > s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.results, oldest)
	}
}

// Get returns the result with the given ID, or false if it is not present
// (never stored, or already evicted).
func (s *ResultStore) Get(id string) (*entity.AuditResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.results[id]
	return r, ok
}

// Len returns the number of stored results.
func (s *ResultStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}
