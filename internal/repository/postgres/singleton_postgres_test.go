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
)

var (
	singletonRowColumns = []string{"id", "kind", "fields", "created_at", "updated_at"}
	mergeRowColumns     = []string{"id", "kind", "fields", "created_at", "updated_at", "old_fields", "old_updated_at"}
)

func TestSingletonPostgres_FindByKind(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSingletonPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM singleton_records WHERE kind = \\$1").
			WithArgs("config").
			WillReturnRows(sqlmock.NewRows(singletonRowColumns).
				AddRow("rec-1", "config", []byte(`{"company_name":"Acme","is_hiring":true}`), now, now))

		rec, err := repo.FindByKind(ctx, "config")

		require.NoError(t, err)
		assert.Equal(t, "rec-1", rec.ID)
		assert.Equal(t, "Acme", rec.Fields["company_name"])
		assert.Equal(t, true, rec.Fields["is_hiring"])
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM singleton_records WHERE kind = \\$1").
			WithArgs("hero").
			WillReturnError(sql.ErrNoRows)

		rec, err := repo.FindByKind(ctx, "hero")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, rec)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSingletonPostgres_CreateIfAbsent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSingletonPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()
	rec := &model.SingletonRecord{
		ID:        "new-id",
		Kind:      "config",
		Fields:    map[string]any{"company_name": "Acme"},
		CreatedAt: now,
	}

	t.Run("inserted", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO singleton_records (.+) ON CONFLICT \\(kind\\) DO NOTHING").
			WithArgs("new-id", "config", `{"company_name":"Acme"}`, now).
			WillReturnRows(sqlmock.NewRows(singletonRowColumns).
				AddRow("new-id", "config", []byte(`{"company_name":"Acme"}`), now, now))

		got, err := repo.CreateIfAbsent(ctx, rec)

		require.NoError(t, err)
		assert.Equal(t, "new-id", got.ID)
	})

	t.Run("conflict returns the existing row", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO singleton_records").
			WithArgs("new-id", "config", `{"company_name":"Acme"}`, now).
			WillReturnRows(sqlmock.NewRows(singletonRowColumns))
		mock.ExpectQuery("SELECT (.+) FROM singleton_records WHERE kind = \\$1").
			WithArgs("config").
			WillReturnRows(sqlmock.NewRows(singletonRowColumns).
				AddRow("winner-id", "config", []byte(`{"company_name":"First"}`), now, now))

		got, err := repo.CreateIfAbsent(ctx, rec)

		require.NoError(t, err)
		assert.Equal(t, "winner-id", got.ID)
		assert.Equal(t, "First", got.Fields["company_name"])
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSingletonPostgres_Merge(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSingletonPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()
	before := now.Add(-time.Hour)

	t.Run("set and clear in one statement", func(t *testing.T) {
		mock.ExpectQuery("WITH old AS \\(\\s*SELECT fields, updated_at FROM singleton_records WHERE kind = \\$1 FOR UPDATE\\s*\\)\\s*" +
			"UPDATE singleton_records s SET fields = \\(s.fields \\|\\| \\$2::jsonb\\) - ARRAY").
			WithArgs("config", `{"tagline":"Hi"}`, `["phone"]`, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(mergeRowColumns).
				AddRow("rec-1", "config", []byte(`{"company_name":"Acme","tagline":"Hi"}`), before, now,
					[]byte(`{"company_name":"Acme","phone":"555"}`), before))

		prev, rec, err := repo.Merge(ctx, "config", map[string]any{"tagline": "Hi"}, []string{"phone"})

		require.NoError(t, err)
		assert.Equal(t, "Hi", rec.Fields["tagline"])
		assert.NotContains(t, rec.Fields, "phone")
		assert.Equal(t, "555", prev.String("phone"))
		assert.NotContains(t, prev.Fields, "tagline")
		assert.Equal(t, "rec-1", prev.ID)
		assert.Equal(t, before, prev.UpdatedAt)
	})

	t.Run("empty update sends empty documents", func(t *testing.T) {
		mock.ExpectQuery("UPDATE singleton_records").
			WithArgs("config", `{}`, `[]`, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(mergeRowColumns).
				AddRow("rec-1", "config", []byte(`{"company_name":"Acme"}`), now, now, []byte(`{"company_name":"Acme"}`), now))

		_, _, err := repo.Merge(ctx, "config", nil, nil)
		require.NoError(t, err)
	})

	t.Run("missing row", func(t *testing.T) {
		mock.ExpectQuery("UPDATE singleton_records").
			WithArgs("hero", `{}`, `[]`, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(mergeRowColumns))

		prev, rec, err := repo.Merge(ctx, "hero", map[string]any{}, []string{})

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, prev)
		assert.Nil(t, rec)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
