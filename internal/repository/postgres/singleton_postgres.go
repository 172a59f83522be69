package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// SingletonPostgres stores singleton content rows in singleton_records,
// one per kind (enforced by a UNIQUE constraint on kind). Field values
// live in a JSONB column so partial merges happen inside the database.
type SingletonPostgres struct {
	db *sql.DB
}

// NewSingletonPostgres creates a new SingletonPostgres repository.
func NewSingletonPostgres(db *sql.DB) *SingletonPostgres {
	return &SingletonPostgres{db: db}
}

var _ repository.SingletonRepository = (*SingletonPostgres)(nil)

const singletonColumns = `id, kind, fields, created_at, updated_at`

// FindByKind fetches the row for kind.
func (r *SingletonPostgres) FindByKind(ctx context.Context, kind string) (*model.SingletonRecord, error) {
	const q = `
		SELECT ` + singletonColumns + `
		FROM singleton_records
		WHERE kind = $1
	`
	return scanSingleton(r.db.QueryRowContext(ctx, q, kind))
}

// CreateIfAbsent inserts rec, or leaves the existing row alone when another
// writer got there first, and returns the stored row either way.
func (r *SingletonPostgres) CreateIfAbsent(ctx context.Context, rec *model.SingletonRecord) (*model.SingletonRecord, error) {
	fields, err := json.Marshal(nonNilFields(rec.Fields))
	if err != nil {
		return nil, fmt.Errorf("encode fields: %w", err)
	}

	const q = `
		INSERT INTO singleton_records (id, kind, fields, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (kind) DO NOTHING
		RETURNING ` + singletonColumns + `
	`
	out, err := scanSingleton(r.db.QueryRowContext(ctx, q, rec.ID, rec.Kind, string(fields), rec.CreatedAt))
	if errors.Is(err, sql.ErrNoRows) {
		// Lost the race: the conflicting row is the one to return.
		return r.FindByKind(ctx, rec.Kind)
	}
	return out, err
}

// Merge applies set and clear to the stored fields in one statement and
// returns the row as it was before and after. The old row is read under
// FOR UPDATE, so concurrent merges of one kind each see the other's result
// as their previous state.
func (r *SingletonPostgres) Merge(ctx context.Context, kind string, set map[string]any, clear []string) (prev, rec *model.SingletonRecord, err error) {
	setJSON, err := json.Marshal(nonNilFields(set))
	if err != nil {
		return nil, nil, fmt.Errorf("encode set fields: %w", err)
	}
	if clear == nil {
		clear = []string{}
	}
	clearJSON, err := json.Marshal(clear)
	if err != nil {
		return nil, nil, fmt.Errorf("encode cleared fields: %w", err)
	}

	const q = `
		WITH old AS (
			SELECT fields, updated_at FROM singleton_records WHERE kind = $1 FOR UPDATE
		)
		UPDATE singleton_records s
		SET fields = (s.fields || $2::jsonb) - ARRAY(SELECT jsonb_array_elements_text($3::jsonb)),
		    updated_at = $4
		FROM old
		WHERE s.kind = $1
		RETURNING s.id, s.kind, s.fields, s.created_at, s.updated_at, old.fields, old.updated_at
	`
	var (
		after, before       model.SingletonRecord
		afterRaw, beforeRaw []byte
	)
	row := r.db.QueryRowContext(ctx, q, kind, string(setJSON), string(clearJSON), time.Now().UTC())
	if err := row.Scan(&after.ID, &after.Kind, &afterRaw, &after.CreatedAt, &after.UpdatedAt, &beforeRaw, &before.UpdatedAt); err != nil {
		return nil, nil, err
	}
	if after.Fields, err = decodeFields(afterRaw); err != nil {
		return nil, nil, err
	}
	if before.Fields, err = decodeFields(beforeRaw); err != nil {
		return nil, nil, err
	}
	before.ID, before.Kind, before.CreatedAt = after.ID, after.Kind, after.CreatedAt
	return &before, &after, nil
}

func scanSingleton(row *sql.Row) (*model.SingletonRecord, error) {
	var (
		rec    model.SingletonRecord
		fields []byte
	)
	if err := row.Scan(&rec.ID, &rec.Kind, &fields, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	var err error
	if rec.Fields, err = decodeFields(fields); err != nil {
		return nil, err
	}
	return &rec, nil
}

func decodeFields(raw []byte) (map[string]any, error) {
	fields := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("decode fields: %w", err)
		}
	}
	return fields, nil
}

func nonNilFields(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
