package postgres

import (
	"context"
	"database/sql"

	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// AccessLogPostgres appends audit rows to access_logs. Rows are never updated.
type AccessLogPostgres struct {
	db *sql.DB
}

// NewAccessLogPostgres creates a new AccessLogPostgres repository.
func NewAccessLogPostgres(db *sql.DB) *AccessLogPostgres {
	return &AccessLogPostgres{db: db}
}

var _ repository.AccessLogRepository = (*AccessLogPostgres)(nil)

// Create inserts one entry.
func (r *AccessLogPostgres) Create(ctx context.Context, e *model.AccessLogEntry) error {
	const q = `
		INSERT INTO access_logs (id, subject_id, email, ip, user_agent, method, success, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, q,
		e.ID,
		e.SubjectID,
		e.Email,
		e.IP,
		e.UserAgent,
		e.Method,
		e.Success,
		e.CreatedAt,
	)
	return err
}

// List returns entries newest first.
func (r *AccessLogPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.AccessLogEntry], error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM access_logs`).Scan(&total); err != nil {
		return nil, err
	}

	const q = `
		SELECT id, subject_id, email, ip, user_agent, method, success, created_at
		FROM access_logs
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, q, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.AccessLogEntry, 0)
	for rows.Next() {
		var e model.AccessLogEntry
		if err := rows.Scan(&e.ID, &e.SubjectID, &e.Email, &e.IP, &e.UserAgent, &e.Method, &e.Success, &e.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.AccessLogEntry]{Items: items, Total: total}, nil
}
