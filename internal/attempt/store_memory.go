package attempt

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/examforge/examforge/internal/apperr"
	"github.com/examforge/examforge/internal/catalog"
)

// MemoryStore holds attempts in process memory. It backs the engine
// and handler tests; the mutex gives it the same
// finalize-exactly-once guarantee the SQL store gets from its CAS
// update.
type MemoryStore struct {
	mu        sync.RWMutex
	attempts  map[string]Attempt
	questions map[string][]catalog.Question
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		attempts:  map[string]Attempt{},
		questions: map[string][]catalog.Question{},
	}
}

func (m *MemoryStore) Create(_ context.Context, a Attempt, questions []catalog.Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts[a.ID] = a
	qs := make([]catalog.Question, len(questions))
	copy(qs, questions)
	m.questions[a.ID] = qs
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (Attempt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.attempts[id]
	if !ok {
		return Attempt{}, fmt.Errorf("attempt %s: %w", id, apperr.ErrNotFound)
	}
	return a, nil
}

func (m *MemoryStore) Questions(_ context.Context, attemptID string) ([]catalog.Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	qs := m.questions[attemptID]
	out := make([]catalog.Question, len(qs))
	copy(out, qs)
	return out, nil
}

func (m *MemoryStore) Finalize(_ context.Context, id string, endedAt time.Time, score float64, isValid bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.attempts[id]
	if !ok {
		return fmt.Errorf("attempt %s: %w", id, apperr.ErrNotFound)
	}
	if a.EndedAt != nil {
		return fmt.Errorf("attempt %s: %w", id, apperr.ErrAlreadyFinalized)
	}
	t := endedAt
	a.EndedAt = &t
	a.Score = &score
	a.IsValid = isValid
	m.attempts[id] = a
	return nil
}
