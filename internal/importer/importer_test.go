package importer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examforge/examforge/internal/apperr"
	"github.com/examforge/examforge/internal/catalog"
	"github.com/examforge/examforge/internal/importer"
)

const validPayload = `[
  {
    "title": "Go Fundamentals",
    "duration_minutes": 30,
    "number_of_questions": 2,
    "passing_score": 60,
    "questions": [
      {"text": "Is nil a value?", "options": [
        {"text": "yes", "is_correct": true},
        {"text": "no", "is_correct": false}
      ]},
      {"text": "Does Go have classes?", "options": [
        {"text": "yes", "is_correct": false},
        {"text": "no", "is_correct": true}
      ]}
    ]
  }
]`

func TestRunCreatesExams(t *testing.T) {
	ctx := context.Background()
	store := catalog.NewInMemoryStore()

	n, err := importer.New(store).Run(ctx, strings.NewReader(validPayload))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	exams, err := store.ListExams(ctx)
	require.NoError(t, err)
	require.Len(t, exams, 1)
	assert.Equal(t, "Go Fundamentals", exams[0].Title)
	assert.Equal(t, 30, exams[0].DurationMinutes)

	qs, err := store.ListQuestions(ctx, exams[0].ID)
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Len(t, qs[0].Options, 2)
	assert.True(t, qs[0].Options[0].IsCorrect)
}

func TestRunRejectsMissingTitle(t *testing.T) {
	payload := `[{"duration_minutes": 30, "number_of_questions": 2, "passing_score": 60}]`
	_, err := importer.New(catalog.NewInMemoryStore()).Run(context.Background(), strings.NewReader(payload))
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestRunRejectsNonPositiveDuration(t *testing.T) {
	payload := `[{"title": "x", "duration_minutes": 0, "number_of_questions": 2, "passing_score": 60}]`
	_, err := importer.New(catalog.NewInMemoryStore()).Run(context.Background(), strings.NewReader(payload))
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestRunRejectsMalformedJSON(t *testing.T) {
	_, err := importer.New(catalog.NewInMemoryStore()).Run(context.Background(), strings.NewReader("{not json"))
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestRunValidatesBeforeWriting(t *testing.T) {
	ctx := context.Background()
	store := catalog.NewInMemoryStore()
	// Second exam invalid: nothing from the batch may land.
	payload := `[
	  {"title": "ok", "duration_minutes": 10, "number_of_questions": 1, "passing_score": 50},
	  {"title": "", "duration_minutes": 10, "number_of_questions": 1, "passing_score": 50}
	]`
	_, err := importer.New(store).Run(ctx, strings.NewReader(payload))
	require.ErrorIs(t, err, apperr.ErrValidation)

	exams, err := store.ListExams(ctx)
	require.NoError(t, err)
	assert.Empty(t, exams)
}
