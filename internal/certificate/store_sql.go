package certificate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/examforge/examforge/internal/apperr"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

const recordQuery = `SELECT a.id, e.title, COALESCE(p.name,''), e.passing_score, a.ended_at, a.is_valid, a.score
	FROM attempts a
	JOIN exams e ON e.id = a.exam_id
	LEFT JOIN profiles p ON p.user_id = a.user_id`

func (s *SQLStore) ByUser(ctx context.Context, userID string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, recordQuery+` WHERE a.user_id=$1 ORDER BY a.ended_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Record{}
	for rows.Next() {
		r, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLStore) ByAttempt(ctx context.Context, attemptID string) (Record, error) {
	row := s.db.QueryRowContext(ctx, recordQuery+` WHERE a.id=$1`, attemptID)
	r, err := scanRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("attempt %s: %w", attemptID, apperr.ErrNotFound)
	}
	return r, err
}

func scanRecord(scan func(...any) error) (Record, error) {
	var r Record
	var ended sql.NullInt64
	var score sql.NullFloat64
	if err := scan(&r.AttemptID, &r.ExamTitle, &r.HolderName, &r.PassingScore, &ended, &r.IsValid, &score); err != nil {
		return Record{}, err
	}
	if ended.Valid {
		t := time.Unix(ended.Int64, 0)
		r.EndedAt = &t
	}
	if score.Valid {
		v := score.Float64
		r.Score = &v
	}
	return r, nil
}
