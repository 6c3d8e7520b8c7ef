package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/examforge/examforge/internal/apperr"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) PutExam(ctx context.Context, e Exam) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO exams (id,title,duration_minutes,number_of_questions,passing_score,created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		e.ID, e.Title, e.DurationMinutes, e.NumberOfQuestions, e.PassingScore, time.Now().Unix())
	if err != nil {
		return err
	}
	for _, q := range e.Questions {
		qid := q.ID
		if qid == "" {
			qid = uuid.NewString()
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO questions (id,exam_id,text) VALUES ($1,$2,$3)`,
			qid, e.ID, q.Text); err != nil {
			return err
		}
		for _, o := range q.Options {
			oid := o.ID
			if oid == "" {
				oid = uuid.NewString()
			}
			if _, err := tx.ExecContext(ctx, `INSERT INTO options (id,question_id,text,is_correct) VALUES ($1,$2,$3,$4)`,
				oid, qid, o.Text, o.IsCorrect); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

func (s *SQLStore) GetExam(ctx context.Context, id string) (Exam, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,title,duration_minutes,number_of_questions,passing_score,created_at FROM exams WHERE id=$1`, id)
	var e Exam
	if err := row.Scan(&e.ID, &e.Title, &e.DurationMinutes, &e.NumberOfQuestions, &e.PassingScore, &e.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Exam{}, fmt.Errorf("exam %s: %w", id, apperr.ErrNotFound)
		}
		return Exam{}, err
	}
	return e, nil
}

func (s *SQLStore) ListExams(ctx context.Context) ([]Exam, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,title,duration_minutes,number_of_questions,passing_score,created_at FROM exams ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Exam{}
	for rows.Next() {
		var e Exam
		if err := rows.Scan(&e.ID, &e.Title, &e.DurationMinutes, &e.NumberOfQuestions, &e.PassingScore, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListQuestions returns the exam's questions with their options,
// including the grading key. Callers serving exam takers must strip
// is_correct before responding.
func (s *SQLStore) ListQuestions(ctx context.Context, examID string) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,exam_id,text FROM questions WHERE exam_id=$1 ORDER BY id`, examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	qs := []Question{}
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.ExamID, &q.Text); err != nil {
			return nil, err
		}
		qs = append(qs, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range qs {
		opts, err := s.listOptions(ctx, qs[i].ID)
		if err != nil {
			return nil, err
		}
		qs[i].Options = opts
	}
	return qs, nil
}

func (s *SQLStore) listOptions(ctx context.Context, questionID string) ([]Option, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,text,is_correct FROM options WHERE question_id=$1 ORDER BY id`, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	opts := []Option{}
	for rows.Next() {
		var o Option
		if err := rows.Scan(&o.ID, &o.Text, &o.IsCorrect); err != nil {
			return nil, err
		}
		opts = append(opts, o)
	}
	return opts, rows.Err()
}

// DeleteExam removes the exam and everything it owns in one
// transaction. The schema carries no ON DELETE CASCADE, so the
// question/option cleanup happens here.
func (s *SQLStore) DeleteExam(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM options WHERE question_id IN (SELECT id FROM questions WHERE exam_id=$1)`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM questions WHERE exam_id=$1`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM exams WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("exam %s: %w", id, apperr.ErrNotFound)
	}
	return tx.Commit()
}
