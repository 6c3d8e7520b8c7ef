package attempt

import (
	"context"
	"time"

	"github.com/examforge/examforge/internal/catalog"
)

// Store persists attempts and their sampled question sets.
type Store interface {
	// Create writes the attempt row and its sampled question set
	// atomically.
	Create(ctx context.Context, a Attempt, questions []catalog.Question) error
	// Get returns the attempt, apperr.ErrNotFound if absent.
	Get(ctx context.Context, id string) (Attempt, error)
	// Questions returns the attempt's sampled questions with options
	// including the grading key.
	Questions(ctx context.Context, attemptID string) ([]catalog.Question, error)
	// Finalize sets ended_at, score and is_valid exactly once. A second
	// call, including a concurrent one, fails with
	// apperr.ErrAlreadyFinalized and leaves the row untouched.
	Finalize(ctx context.Context, id string, endedAt time.Time, score float64, isValid bool) error
}
