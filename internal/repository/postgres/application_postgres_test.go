package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitecms/internal/model"
	"sitecms/internal/repository"
)

var applicationRowColumns = []string{"id", "name", "email", "phone", "position", "linkedin_url", "cv_url", "message", "is_read", "created_at"}

func TestJobApplicationPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewJobApplicationPostgres(db)
	now := time.Now().UTC()
	app := &model.JobApplication{
		ID:        "app-1",
		Name:      "Jane",
		Email:     "jane@example.com",
		Position:  model.StringPtr("Designer"),
		CVURL:     model.StringPtr("/uploads/cv.pdf"),
		CreatedAt: now,
	}

	mock.ExpectQuery("INSERT INTO job_applications").
		WithArgs("app-1", "Jane", "jane@example.com", nil, "Designer", nil, "/uploads/cv.pdf", nil, false, now).
		WillReturnRows(sqlmock.NewRows(applicationRowColumns).
			AddRow("app-1", "Jane", "jane@example.com", nil, "Designer", nil, "/uploads/cv.pdf", nil, false, now))

	got, err := repo.Create(context.Background(), app)

	require.NoError(t, err)
	assert.Equal(t, "/uploads/cv.pdf", model.Deref(got.CVURL))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobApplicationPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewJobApplicationPostgres(db)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM job_applications WHERE id = \\$1").
		WithArgs("app-1").
		WillReturnRows(sqlmock.NewRows(applicationRowColumns).
			AddRow("app-1", "Jane", "jane@example.com", nil, nil, nil, nil, nil, true, now))
	mock.ExpectQuery("SELECT (.+) FROM job_applications WHERE id = \\$1").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	got, err := repo.FindByID(context.Background(), "app-1")
	require.NoError(t, err)
	assert.True(t, got.IsRead)

	_, err = repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobApplicationPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewJobApplicationPostgres(db)
	now := time.Now().UTC()
	read := false

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM job_applications WHERE is_read = \\$1").
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM job_applications WHERE is_read = \\$1 ORDER BY created_at DESC, id DESC LIMIT 20 OFFSET 0").
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows(applicationRowColumns).
			AddRow("app-1", "Jane", "jane@example.com", nil, nil, nil, nil, nil, true, now))

	res, err := repo.List(context.Background(), repository.SubmissionFilter{
		PageQuery: repository.PageQuery{Limit: 20},
		Unread:    &read,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Len(t, res.Items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobApplicationPostgres_MarkReadAndDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewJobApplicationPostgres(db)
	now := time.Now().UTC()

	mock.ExpectQuery("UPDATE job_applications SET is_read = TRUE WHERE id = \\$1").
		WithArgs("app-1").
		WillReturnRows(sqlmock.NewRows(applicationRowColumns).
			AddRow("app-1", "Jane", "jane@example.com", nil, nil, nil, nil, nil, true, now))
	mock.ExpectExec("DELETE FROM job_applications WHERE id = \\$1").
		WithArgs("app-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.MarkRead(context.Background(), "app-1")
	require.NoError(t, err)
	assert.True(t, got.IsRead)

	assert.NoError(t, repo.Delete(context.Background(), "app-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
