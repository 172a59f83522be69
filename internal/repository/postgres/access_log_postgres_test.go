package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitecms/internal/model"
	"sitecms/internal/repository"
)

func TestAccessLogPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAccessLogPostgres(db)
	now := time.Now().UTC()
	entry := &model.AccessLogEntry{
		ID:        "log-1",
		Email:     "jane@example.com",
		IP:        model.StringPtr("1.2.3.4"),
		Method:    model.AccessMethodContactForm,
		Success:   true,
		CreatedAt: now,
	}

	mock.ExpectExec("INSERT INTO access_logs").
		WithArgs("log-1", nil, "jane@example.com", "1.2.3.4", nil, "contact_form", true, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Create(context.Background(), entry))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessLogPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAccessLogPostgres(db)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM access_logs").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM access_logs ORDER BY").
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "subject_id", "email", "ip", "user_agent", "method", "success", "created_at"}).
			AddRow("log-1", nil, "admin@example.com", "1.2.3.4", "curl/8", "api_key", false, now))

	res, err := repo.List(context.Background(), repository.PageQuery{Limit: 10})

	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Nil(t, res.Items[0].SubjectID)
	assert.Equal(t, "curl/8", model.Deref(res.Items[0].UserAgent))
	assert.NoError(t, mock.ExpectationsWereMet())
}
