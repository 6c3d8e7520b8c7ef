package attempt

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examforge/examforge/internal/apperr"
	"github.com/examforge/examforge/internal/catalog"
)

// firstKSampler always picks the first k indices, keeping engine tests
// deterministic.
type firstKSampler struct{}

func (firstKSampler) Sample(n, k int) []int {
	if k > n {
		k = n
	}
	out := make([]int, k)
	for i := range out {
		out[i] = i
	}
	return out
}

func seedExam(t *testing.T, cat catalog.Store, numQuestions, target int) catalog.Exam {
	t.Helper()
	e := catalog.Exam{
		ID:                "exam-1",
		Title:             "Go Fundamentals",
		DurationMinutes:   10,
		NumberOfQuestions: target,
		PassingScore:      60,
	}
	for i := 0; i < numQuestions; i++ {
		e.Questions = append(e.Questions, catalog.Question{
			ID:   fmt.Sprintf("q-%d", i),
			Text: fmt.Sprintf("question %d", i),
			Options: []catalog.Option{
				{ID: fmt.Sprintf("q-%d-a", i), Text: "right", IsCorrect: true},
				{ID: fmt.Sprintf("q-%d-b", i), Text: "wrong", IsCorrect: false},
			},
		})
	}
	require.NoError(t, cat.PutExam(context.Background(), e))
	return e
}

func newTestEngine(cat catalog.Store, store Store) *Engine {
	return NewEngine(cat, store, firstKSampler{})
}

func TestStartSamplesExpectedQuestionCount(t *testing.T) {
	ctx := context.Background()
	cat := catalog.NewInMemoryStore()
	store := NewMemoryStore()
	seedExam(t, cat, 10, 4)

	res, err := newTestEngine(cat, store).Start(ctx, "exam-1", "user-1")
	require.NoError(t, err)
	require.NotEmpty(t, res.AttemptID)
	assert.Equal(t, "exam-1", res.Exam.ExamID)
	assert.Equal(t, 10, res.Exam.DurationMinutes)
	require.Len(t, res.Exam.Questions, 4)

	seen := map[string]bool{}
	for _, q := range res.Exam.Questions {
		assert.False(t, seen[q.ID], "duplicate question %s", q.ID)
		seen[q.ID] = true
		assert.Len(t, q.Options, 2)
	}
}

func TestStartClampsToAvailableQuestions(t *testing.T) {
	ctx := context.Background()
	cat := catalog.NewInMemoryStore()
	store := NewMemoryStore()
	seedExam(t, cat, 3, 20)

	res, err := newTestEngine(cat, store).Start(ctx, "exam-1", "user-1")
	require.NoError(t, err)
	assert.Len(t, res.Exam.Questions, 3)
}

func TestStartEmptyQuestionSetIsLegal(t *testing.T) {
	ctx := context.Background()
	cat := catalog.NewInMemoryStore()
	store := NewMemoryStore()
	seedExam(t, cat, 0, 5)

	res, err := newTestEngine(cat, store).Start(ctx, "exam-1", "user-1")
	require.NoError(t, err)
	assert.Empty(t, res.Exam.Questions)

	end, err := newTestEngine(cat, store).End(ctx, res.AttemptID, "user-1", nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, end.Score)
}

func TestStartUnknownExam(t *testing.T) {
	cat := catalog.NewInMemoryStore()
	store := NewMemoryStore()

	_, err := newTestEngine(cat, store).Start(context.Background(), "nope", "user-1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestEndGradesAllOrNothingPerQuestion(t *testing.T) {
	cases := []struct {
		name    string
		answers map[string]bool
		score   float64
	}{
		{"exact match", map[string]bool{"q-0-a": true, "q-0-b": false}, 100},
		{"extra selection", map[string]bool{"q-0-a": true, "q-0-b": true}, 0},
		{"nothing selected", map[string]bool{"q-0-a": false, "q-0-b": false}, 0},
		{"absence means unselected", map[string]bool{"q-0-a": true}, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			cat := catalog.NewInMemoryStore()
			store := NewMemoryStore()
			seedExam(t, cat, 1, 1)
			eng := newTestEngine(cat, store)

			res, err := eng.Start(ctx, "exam-1", "user-1")
			require.NoError(t, err)
			end, err := eng.End(ctx, res.AttemptID, "user-1", tc.answers)
			require.NoError(t, err)
			assert.Equal(t, tc.score, end.Score)
			assert.True(t, end.IsValid)
		})
	}
}

func TestEndScorePercentage(t *testing.T) {
	ctx := context.Background()
	cat := catalog.NewInMemoryStore()
	store := NewMemoryStore()
	seedExam(t, cat, 4, 4)
	eng := newTestEngine(cat, store)

	res, err := eng.Start(ctx, "exam-1", "user-1")
	require.NoError(t, err)

	// 3 of 4 correct: q-3 left fully unselected, so its correct
	// option mismatches.
	answers := map[string]bool{"q-0-a": true, "q-1-a": true, "q-2-a": true}
	end, err := eng.End(ctx, res.AttemptID, "user-1", answers)
	require.NoError(t, err)
	assert.Equal(t, 75.0, end.Score)
}

func TestEndTwiceRejectsSecondCall(t *testing.T) {
	ctx := context.Background()
	cat := catalog.NewInMemoryStore()
	store := NewMemoryStore()
	seedExam(t, cat, 2, 2)
	eng := newTestEngine(cat, store)

	res, err := eng.Start(ctx, "exam-1", "user-1")
	require.NoError(t, err)

	first, err := eng.End(ctx, res.AttemptID, "user-1", map[string]bool{"q-0-a": true})
	require.NoError(t, err)

	_, err = eng.End(ctx, res.AttemptID, "user-1", map[string]bool{"q-0-a": true, "q-1-a": true})
	assert.ErrorIs(t, err, apperr.ErrAlreadyFinalized)

	a, err := store.Get(ctx, res.AttemptID)
	require.NoError(t, err)
	require.NotNil(t, a.Score)
	assert.Equal(t, first.Score, *a.Score)
}

func TestEndRequiresOwnership(t *testing.T) {
	ctx := context.Background()
	cat := catalog.NewInMemoryStore()
	store := NewMemoryStore()
	seedExam(t, cat, 1, 1)
	eng := newTestEngine(cat, store)

	res, err := eng.Start(ctx, "exam-1", "user-1")
	require.NoError(t, err)

	_, err = eng.End(ctx, res.AttemptID, "someone-else", nil)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestEndUnknownAttempt(t *testing.T) {
	cat := catalog.NewInMemoryStore()
	store := NewMemoryStore()
	_, err := newTestEngine(cat, store).End(context.Background(), "missing", "user-1", nil)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestEndDurationValidity(t *testing.T) {
	// 10 minutes allowed, 10% grace: 660s.
	cases := []struct {
		name    string
		elapsed time.Duration
		valid   bool
	}{
		{"within grace", 650 * time.Second, true},
		{"past grace", 700 * time.Second, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			cat := catalog.NewInMemoryStore()
			store := NewMemoryStore()
			seedExam(t, cat, 1, 1)
			eng := newTestEngine(cat, store)

			t0 := time.Now()
			eng.now = func() time.Time { return t0 }
			res, err := eng.Start(ctx, "exam-1", "user-1")
			require.NoError(t, err)

			eng.now = func() time.Time { return t0.Add(tc.elapsed) }
			end, err := eng.End(ctx, res.AttemptID, "user-1", map[string]bool{"q-0-a": true})
			require.NoError(t, err)
			assert.Equal(t, tc.valid, end.IsValid)
			assert.Equal(t, 100.0, end.Score, "late submissions are still graded")
		})
	}
}
