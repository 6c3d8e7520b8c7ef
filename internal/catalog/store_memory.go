package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/examforge/examforge/internal/apperr"
)

type memoryStore struct {
	mu    sync.RWMutex
	exams map[string]Exam
}

// NewInMemoryStore is used by tests and by the importer's dry-run mode.
func NewInMemoryStore() Store {
	return &memoryStore{exams: map[string]Exam{}}
}

func (m *memoryStore) PutExam(_ context.Context, e Exam) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	for i := range e.Questions {
		if e.Questions[i].ID == "" {
			e.Questions[i].ID = uuid.NewString()
		}
		e.Questions[i].ExamID = e.ID
		for j := range e.Questions[i].Options {
			if e.Questions[i].Options[j].ID == "" {
				e.Questions[i].Options[j].ID = uuid.NewString()
			}
		}
	}
	m.exams[e.ID] = e
	return nil
}

func (m *memoryStore) GetExam(_ context.Context, id string) (Exam, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.exams[id]
	if !ok {
		return Exam{}, fmt.Errorf("exam %s: %w", id, apperr.ErrNotFound)
	}
	meta := e
	meta.Questions = nil
	return meta, nil
}

func (m *memoryStore) ListExams(_ context.Context) ([]Exam, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Exam, 0, len(m.exams))
	for _, e := range m.exams {
		meta := e
		meta.Questions = nil
		out = append(out, meta)
	}
	return out, nil
}

func (m *memoryStore) ListQuestions(_ context.Context, examID string) ([]Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.exams[examID]
	if !ok {
		return []Question{}, nil
	}
	qs := make([]Question, len(e.Questions))
	copy(qs, e.Questions)
	return qs, nil
}

func (m *memoryStore) DeleteExam(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.exams[id]; !ok {
		return fmt.Errorf("exam %s: %w", id, apperr.ErrNotFound)
	}
	delete(m.exams, id)
	return nil
}
