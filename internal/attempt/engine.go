package attempt

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/examforge/examforge/internal/apperr"
	"github.com/examforge/examforge/internal/catalog"
)

// graceFactor is the extra fraction of the exam duration an attempt
// may run before it is marked invalid.
const graceFactor = 0.10

// Engine drives the attempt lifecycle: Start samples questions and
// opens an attempt, End grades it and closes it for good.
type Engine struct {
	catalog  catalog.Store
	attempts Store
	sampler  Sampler
	now      func() time.Time
}

func NewEngine(cat catalog.Store, attempts Store, sampler Sampler) *Engine {
	return &Engine{catalog: cat, attempts: attempts, sampler: sampler, now: time.Now}
}

// Start opens a new attempt for userID against examID and returns the
// sampled questions without grading keys.
func (e *Engine) Start(ctx context.Context, examID, userID string) (StartResult, error) {
	exam, err := e.catalog.GetExam(ctx, examID)
	if err != nil {
		return StartResult{}, err
	}
	questions, err := e.catalog.ListQuestions(ctx, examID)
	if err != nil {
		return StartResult{}, err
	}

	k := exam.NumberOfQuestions
	if len(questions) < k {
		k = len(questions)
	}
	picked := make([]catalog.Question, 0, k)
	for _, i := range e.sampler.Sample(len(questions), k) {
		picked = append(picked, questions[i])
	}

	a := Attempt{
		ID:        uuid.NewString(),
		ExamID:    exam.ID,
		UserID:    userID,
		StartedAt: e.now(),
		IsValid:   true,
	}
	if err := e.attempts.Create(ctx, a, picked); err != nil {
		return StartResult{}, err
	}

	snap := ExamSnapshot{
		ExamID:          exam.ID,
		Title:           exam.Title,
		DurationMinutes: exam.DurationMinutes,
		Questions:       make([]QuestionView, 0, len(picked)),
	}
	for _, q := range picked {
		qv := QuestionView{ID: q.ID, Text: q.Text, Options: make([]OptionView, 0, len(q.Options))}
		for _, o := range q.Options {
			qv.Options = append(qv.Options, OptionView{ID: o.ID, Text: o.Text})
		}
		snap.Questions = append(snap.Questions, qv)
	}
	return StartResult{AttemptID: a.ID, Exam: snap}, nil
}

// End grades the attempt and finalizes it. answers maps option ID to
// the selected flag; options absent from the map count as unselected.
func (e *Engine) End(ctx context.Context, attemptID, userID string, answers map[string]bool) (EndResult, error) {
	a, err := e.attempts.Get(ctx, attemptID)
	if err != nil {
		return EndResult{}, err
	}
	if a.UserID != userID {
		return EndResult{}, fmt.Errorf("attempt %s: %w", attemptID, apperr.ErrForbidden)
	}
	if a.Finalized() {
		return EndResult{}, fmt.Errorf("attempt %s: %w", attemptID, apperr.ErrAlreadyFinalized)
	}

	endedAt := e.now()

	questions, err := e.attempts.Questions(ctx, attemptID)
	if err != nil {
		return EndResult{}, err
	}
	score := Grade(questions, answers)

	exam, err := e.catalog.GetExam(ctx, a.ExamID)
	if err != nil {
		return EndResult{}, err
	}
	isValid := a.IsValid
	if !withinDuration(exam.DurationMinutes, a.StartedAt, endedAt) {
		isValid = false
	}

	if err := e.attempts.Finalize(ctx, attemptID, endedAt, score, isValid); err != nil {
		return EndResult{}, err
	}
	return EndResult{Score: score, IsValid: isValid}, nil
}

// Grade scores an answer sheet against the sampled questions. A
// question counts as correct only when the selected state of every one
// of its options matches is_correct. Returns a 0-100 percentage, 0 for
// an empty question set.
func Grade(questions []catalog.Question, answers map[string]bool) float64 {
	if len(questions) == 0 {
		return 0
	}
	correct := 0
	for _, q := range questions {
		match := true
		for _, o := range q.Options {
			if answers[o.ID] != o.IsCorrect {
				match = false
				break
			}
		}
		if match {
			correct++
		}
	}
	return float64(correct) / float64(len(questions)) * 100
}

func withinDuration(durationMinutes int, start, end time.Time) bool {
	allowed := float64(durationMinutes) * 60 * (1 + graceFactor)
	return end.Sub(start).Seconds() <= allowed
}
