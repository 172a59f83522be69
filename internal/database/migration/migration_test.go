package migration

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitecms/internal/logger"
)

func TestFiles_OrderedAndAnnotated(t *testing.T) {
	files, err := Files()
	require.NoError(t, err)
	require.Equal(t, []string{
		"sql/00001_content.sql",
		"sql/00002_intake.sql",
		"sql/00003_access_logs.sql",
	}, files)

	for _, f := range files {
		body, err := fs.ReadFile(embedded, f)
		require.NoError(t, err)
		assert.Contains(t, string(body), "-- +goose Up", path.Base(f))
		assert.Contains(t, string(body), "-- +goose Down", path.Base(f))
	}
}

func TestSchema_DefinesEveryTable(t *testing.T) {
	var all strings.Builder
	files, err := Files()
	require.NoError(t, err)
	for _, f := range files {
		body, err := fs.ReadFile(embedded, f)
		require.NoError(t, err)
		all.Write(body)
	}
	schema := all.String()

	for _, table := range []string{
		"singleton_records",
		"clients",
		"contact_messages",
		"contact_replies",
		"job_applications",
		"access_logs",
	} {
		assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS "+table+" (", table)
	}
	assert.Contains(t, schema, "kind       TEXT        NOT NULL UNIQUE")
	assert.Contains(t, schema, "REFERENCES contact_messages (id) ON DELETE CASCADE")
}

func TestEnsureMigrated_NilDB(t *testing.T) {
	err := EnsureMigrated(context.Background(), nil, logger.Nop(), "db")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db is nil")
}

func TestEnsureMigrated_DBError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	// Whatever goose asks for first fails.
	mock.MatchExpectationsInOrder(false)
	boom := errors.New("connection refused")
	mock.ExpectQuery(".*").WillReturnError(boom)
	mock.ExpectExec(".*").WillReturnError(boom)

	err = EnsureMigrated(context.Background(), db, logger.Nop(), "db")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration error")
}
