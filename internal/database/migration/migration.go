package migration

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed sql/*.sql
var embedded embed.FS

const dir = "sql"

// goose keeps its dialect and filesystem in package globals.
var gooseMu sync.Mutex

// Files lists the embedded migration files in apply order.
func Files() ([]string, error) {
	return fs.Glob(embedded, dir+"/*.sql")
}

// EnsureMigrated applies every pending migration.
func EnsureMigrated(ctx context.Context, db *sql.DB, log zerolog.Logger, dbHost string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}
	start := time.Now()
	log = log.With().Str("component", "database").Str("db_host", dbHost).Logger()

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedded)
	goose.SetLogger(gooseLogger{log: log})
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("migration error setting dialect: %w", err)
	}

	log.Info().Str("event", "db_migration_start").Msg("applying migrations")
	if err := goose.UpContext(ctx, db, dir); err != nil {
		log.Error().Err(err).
			Str("event", "db_migration_failed").
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("migration failed")
		return fmt.Errorf("migration error: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("migration error reading version: %w", err)
	}
	log.Info().
		Str("event", "db_migration_success").
		Int64("version", version).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("schema up to date")
	return nil
}

// gooseLogger routes goose output through zerolog.
type gooseLogger struct {
	log zerolog.Logger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.log.Debug().Str("event", "db_migration_step").Msgf(format, v...)
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.log.Error().Str("event", "db_migration_failed").Msgf(format, v...)
}
