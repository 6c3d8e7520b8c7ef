package attempt

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/examforge/examforge/internal/apperr"
	"github.com/examforge/examforge/internal/catalog"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Create(ctx context.Context, a Attempt, questions []catalog.Question) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `INSERT INTO attempts (id,user_id,exam_id,started_at,is_valid)
		VALUES ($1,$2,$3,$4,$5)`,
		a.ID, a.UserID, a.ExamID, a.StartedAt.Unix(), a.IsValid)
	if err != nil {
		return err
	}
	for _, q := range questions {
		if _, err := tx.ExecContext(ctx, `INSERT INTO attempt_questions (attempt_id,question_id) VALUES ($1,$2)`,
			a.ID, q.ID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLStore) Get(ctx context.Context, id string) (Attempt, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,user_id,exam_id,started_at,ended_at,is_valid,score FROM attempts WHERE id=$1`, id)
	return scanAttempt(row, id)
}

func scanAttempt(row *sql.Row, id string) (Attempt, error) {
	var a Attempt
	var started int64
	var ended sql.NullInt64
	var score sql.NullFloat64
	if err := row.Scan(&a.ID, &a.UserID, &a.ExamID, &started, &ended, &a.IsValid, &score); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Attempt{}, fmt.Errorf("attempt %s: %w", id, apperr.ErrNotFound)
		}
		return Attempt{}, err
	}
	a.StartedAt = time.Unix(started, 0)
	if ended.Valid {
		t := time.Unix(ended.Int64, 0)
		a.EndedAt = &t
	}
	if score.Valid {
		v := score.Float64
		a.Score = &v
	}
	return a, nil
}

func (s *SQLStore) Questions(ctx context.Context, attemptID string) ([]catalog.Question, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT q.id,q.exam_id,q.text FROM questions q
		JOIN attempt_questions aq ON aq.question_id=q.id
		WHERE aq.attempt_id=$1 ORDER BY q.id`, attemptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	qs := []catalog.Question{}
	for rows.Next() {
		var q catalog.Question
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

func (s *SQLStore) listOptions(ctx context.Context, questionID string) ([]catalog.Option, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,text,is_correct FROM options WHERE question_id=$1 ORDER BY id`, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	opts := []catalog.Option{}
	for rows.Next() {
		var o catalog.Option
		if err := rows.Scan(&o.ID, &o.Text, &o.IsCorrect); err != nil {
			return nil, err
		}
		opts = append(opts, o)
	}
	return opts, rows.Err()
}

// Finalize is the compare-and-set that makes finalization one-way:
// the WHERE ended_at IS NULL guard means only one of two racing End
// calls can ever see a row to update.
func (s *SQLStore) Finalize(ctx context.Context, id string, endedAt time.Time, score float64, isValid bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE attempts SET ended_at=$1, score=$2, is_valid=$3
		WHERE id=$4 AND ended_at IS NULL`,
		endedAt.Unix(), score, isValid, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Row either absent or already finalized; disambiguate.
		var exists int
		err := s.db.QueryRowContext(ctx, `SELECT 1 FROM attempts WHERE id=$1`, id).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("attempt %s: %w", id, apperr.ErrNotFound)
		}
		if err != nil {
			return err
		}
		return fmt.Errorf("attempt %s: %w", id, apperr.ErrAlreadyFinalized)
	}
	return nil
}
