package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitecms/internal/model"
	"sitecms/internal/repository"
)

var contactRowColumns = []string{"id", "name", "email", "phone", "subject", "message", "is_read", "created_at"}

func TestContactMessagePostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewContactMessagePostgres(db)
	now := time.Now().UTC()
	msg := &model.ContactMessage{
		ID:        "msg-1",
		Name:      "Jane",
		Email:     "jane@example.com",
		Phone:     model.StringPtr("555"),
		Message:   "Hello",
		CreatedAt: now,
	}

	mock.ExpectQuery("INSERT INTO contact_messages").
		WithArgs("msg-1", "Jane", "jane@example.com", "555", nil, "Hello", false, now).
		WillReturnRows(sqlmock.NewRows(contactRowColumns).
			AddRow("msg-1", "Jane", "jane@example.com", "555", nil, "Hello", false, now))

	got, err := repo.Create(context.Background(), msg)

	require.NoError(t, err)
	assert.Equal(t, "msg-1", got.ID)
	assert.Equal(t, "555", model.Deref(got.Phone))
	assert.Nil(t, got.Subject)
	assert.False(t, got.IsRead)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactMessagePostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewContactMessagePostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("all messages", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM contact_messages$").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectQuery("SELECT id, name, email, phone, subject, message, is_read, created_at FROM contact_messages ORDER BY created_at DESC, id DESC LIMIT 10 OFFSET 0").
			WillReturnRows(sqlmock.NewRows(contactRowColumns).
				AddRow("b", "Bob", "bob@example.com", nil, nil, "Hi", true, now).
				AddRow("a", "Ann", "ann@example.com", nil, nil, "Yo", false, now))

		res, err := repo.List(ctx, repository.SubmissionFilter{PageQuery: repository.PageQuery{Limit: 10}})

		require.NoError(t, err)
		assert.Equal(t, 2, res.Total)
		assert.Len(t, res.Items, 2)
	})

	t.Run("unread only", func(t *testing.T) {
		unread := true
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM contact_messages WHERE is_read = \\$1").
			WithArgs(false).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery("SELECT (.+) FROM contact_messages WHERE is_read = \\$1 ORDER BY created_at DESC, id DESC LIMIT 5 OFFSET 5").
			WithArgs(false).
			WillReturnRows(sqlmock.NewRows(contactRowColumns).
				AddRow("a", "Ann", "ann@example.com", nil, nil, "Yo", false, now))

		res, err := repo.List(ctx, repository.SubmissionFilter{
			PageQuery: repository.PageQuery{Limit: 5, Offset: 5},
			Unread:    &unread,
		})

		require.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.False(t, res.Items[0].IsRead)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactMessagePostgres_MarkRead(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewContactMessagePostgres(db)
	now := time.Now().UTC()

	mock.ExpectQuery("UPDATE contact_messages SET is_read = TRUE WHERE id = \\$1").
		WithArgs("msg-1").
		WillReturnRows(sqlmock.NewRows(contactRowColumns).
			AddRow("msg-1", "Jane", "jane@example.com", nil, nil, "Hello", true, now))
	mock.ExpectQuery("UPDATE contact_messages SET is_read = TRUE WHERE id = \\$1").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(contactRowColumns))

	got, err := repo.MarkRead(context.Background(), "msg-1")
	require.NoError(t, err)
	assert.True(t, got.IsRead)

	_, err = repo.MarkRead(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactMessagePostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewContactMessagePostgres(db)

	mock.ExpectExec("DELETE FROM contact_messages WHERE id = \\$1").
		WithArgs("msg-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM contact_messages WHERE id = \\$1").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), "msg-1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "missing"), sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactMessagePostgres_CreateReply(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewContactMessagePostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()
	reply := &model.ContactReply{ID: "rep-1", MessageID: "msg-1", Reply: "Thanks!", CreatedAt: now}

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO contact_replies").
			WithArgs("rep-1", "msg-1", "Thanks!", now).
			WillReturnRows(sqlmock.NewRows([]string{"id", "message_id", "reply", "created_at"}).
				AddRow("rep-1", "msg-1", "Thanks!", now))

		got, err := repo.CreateReply(ctx, reply)

		require.NoError(t, err)
		assert.Equal(t, "msg-1", got.MessageID)
	})

	t.Run("parent deleted maps to no rows", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO contact_replies").
			WithArgs("rep-1", "msg-1", "Thanks!", now).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})

		got, err := repo.CreateReply(ctx, reply)

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, got)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO contact_replies").
			WithArgs("rep-1", "msg-1", "Thanks!", now).
			WillReturnError(errors.New("connection reset"))

		_, err := repo.CreateReply(ctx, reply)

		assert.EqualError(t, err, "connection reset")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactMessagePostgres_ListReplies(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewContactMessagePostgres(db)
	newer := time.Now().UTC()
	older := newer.Add(-time.Hour)

	mock.ExpectQuery("SELECT (.+) FROM contact_replies WHERE message_id = \\$1 ORDER BY created_at DESC").
		WithArgs("msg-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "message_id", "reply", "created_at"}).
			AddRow("rep-2", "msg-1", "Second", newer).
			AddRow("rep-1", "msg-1", "First", older))

	replies, err := repo.ListReplies(context.Background(), "msg-1")

	require.NoError(t, err)
	require.Len(t, replies, 2)
	assert.Equal(t, "rep-2", replies[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
