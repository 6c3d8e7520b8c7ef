package catalog

import "context"

// Store is the read-mostly catalog of exams, questions and options.
// PutExam persists an exam together with its questions and options in
// one transaction (the bulk-import path). DeleteExam cascades to
// questions and options at the application level.
type Store interface {
	PutExam(ctx context.Context, e Exam) error
	GetExam(ctx context.Context, id string) (Exam, error)
	ListExams(ctx context.Context) ([]Exam, error)
	ListQuestions(ctx context.Context, examID string) ([]Question, error)
	DeleteExam(ctx context.Context, id string) error
}
