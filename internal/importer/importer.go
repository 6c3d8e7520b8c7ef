// Package importer ingests the bulk exam description format: a JSON
// array of exams, each carrying its questions and options verbatim.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"

	"github.com/examforge/examforge/internal/apperr"
	"github.com/examforge/examforge/internal/catalog"
)

type OptionInput struct {
	Text      string `json:"text" validate:"required"`
	IsCorrect bool   `json:"is_correct"`
}

type QuestionInput struct {
	Text    string        `json:"text" validate:"required"`
	Options []OptionInput `json:"options" validate:"min=1,dive"`
}

type ExamInput struct {
	Title             string          `json:"title" validate:"required"`
	DurationMinutes   int             `json:"duration_minutes" validate:"gt=0"`
	NumberOfQuestions int             `json:"number_of_questions" validate:"gt=0"`
	PassingScore      float64         `json:"passing_score" validate:"gte=0,lte=100"`
	Questions         []QuestionInput `json:"questions" validate:"dive"`
}

type Importer struct {
	store    catalog.Store
	validate *validator.Validate
}

func New(store catalog.Store) *Importer {
	return &Importer{store: store, validate: validator.New()}
}

// Run decodes and validates the payload, then creates every exam.
// Returns the number of exams created. Validation failures surface as
// apperr.ErrValidation before anything is written.
func (im *Importer) Run(ctx context.Context, r io.Reader) (int, error) {
	var inputs []ExamInput
	if err := json.NewDecoder(r).Decode(&inputs); err != nil {
		return 0, fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}
	for i, in := range inputs {
		if err := im.validate.Struct(in); err != nil {
			return 0, fmt.Errorf("%w: exam %d: %v", apperr.ErrValidation, i, err)
		}
	}
	for _, in := range inputs {
		if err := im.store.PutExam(ctx, toExam(in)); err != nil {
			return 0, err
		}
	}
	return len(inputs), nil
}

func toExam(in ExamInput) catalog.Exam {
	e := catalog.Exam{
		Title:             in.Title,
		DurationMinutes:   in.DurationMinutes,
		NumberOfQuestions: in.NumberOfQuestions,
		PassingScore:      in.PassingScore,
	}
	for _, q := range in.Questions {
		cq := catalog.Question{Text: q.Text}
		for _, o := range q.Options {
			cq.Options = append(cq.Options, catalog.Option{Text: o.Text, IsCorrect: o.IsCorrect})
		}
		e.Questions = append(e.Questions, cq)
	}
	return e
}
