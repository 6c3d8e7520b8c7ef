package certificate

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examforge/examforge/internal/apperr"
)

var recordCols = []string{"id", "title", "name", "passing_score", "ended_at", "is_valid", "score"}

func TestSQLStoreByAttempt(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM attempts a").
		WithArgs("att-1").
		WillReturnRows(sqlmock.NewRows(recordCols).
			AddRow("att-1", "Go Fundamentals", "Ada", 60.0, int64(5000), true, 80.0))

	r, err := NewSQLStore(db).ByAttempt(context.Background(), "att-1")
	require.NoError(t, err)
	assert.Equal(t, "att-1", r.AttemptID)
	assert.Equal(t, "Ada", r.HolderName)
	require.NotNil(t, r.EndedAt)
	assert.Equal(t, time.Unix(5000, 0), *r.EndedAt)
	require.NotNil(t, r.Score)
	assert.Equal(t, 80.0, *r.Score)
}

func TestSQLStoreByAttemptNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM attempts a").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(recordCols))

	_, err = NewSQLStore(db).ByAttempt(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSQLStoreByUserScansInFlightAttempts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM attempts a").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(recordCols).
			AddRow("done", "Go Fundamentals", "Ada", 60.0, int64(5000), true, 80.0).
			AddRow("open", "Go Fundamentals", "Ada", 60.0, nil, true, nil))

	recs, err := NewSQLStore(db).ByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Nil(t, recs[1].EndedAt)
	assert.Nil(t, recs[1].Score)
}
