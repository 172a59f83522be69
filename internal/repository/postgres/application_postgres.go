package postgres

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// JobApplicationPostgres is a PostgreSQL implementation of repository.JobApplicationRepository.
type JobApplicationPostgres struct {
	db *sql.DB
}

// NewJobApplicationPostgres creates a new JobApplicationPostgres repository.
func NewJobApplicationPostgres(db *sql.DB) *JobApplicationPostgres {
	return &JobApplicationPostgres{db: db}
}

var _ repository.JobApplicationRepository = (*JobApplicationPostgres)(nil)

var applicationColumns = []string{"id", "name", "email", "phone", "position", "linkedin_url", "cv_url", "message", "is_read", "created_at"}

func scanApplication(row rowScanner) (*model.JobApplication, error) {
	var a model.JobApplication
	if err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Email,
		&a.Phone,
		&a.Position,
		&a.LinkedInURL,
		&a.CVURL,
		&a.Message,
		&a.IsRead,
		&a.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new application and returns the stored row.
func (r *JobApplicationPostgres) Create(ctx context.Context, app *model.JobApplication) (*model.JobApplication, error) {
	const q = `
		INSERT INTO job_applications (id, name, email, phone, position, linkedin_url, cv_url, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, name, email, phone, position, linkedin_url, cv_url, message, is_read, created_at
	`
	return scanApplication(r.db.QueryRowContext(ctx, q,
		app.ID,
		app.Name,
		app.Email,
		app.Phone,
		app.Position,
		app.LinkedInURL,
		app.CVURL,
		app.Message,
		app.IsRead,
		app.CreatedAt,
	))
}

// FindByID fetches a single application by its ID.
func (r *JobApplicationPostgres) FindByID(ctx context.Context, id string) (*model.JobApplication, error) {
	const q = `
		SELECT id, name, email, phone, position, linkedin_url, cv_url, message, is_read, created_at
		FROM job_applications
		WHERE id = $1
	`
	return scanApplication(r.db.QueryRowContext(ctx, q, id))
}

// List returns applications newest first, optionally filtered by read state.
func (r *JobApplicationPostgres) List(ctx context.Context, f repository.SubmissionFilter) (*repository.PageResult[model.JobApplication], error) {
	count := psql.Select("COUNT(*)").From("job_applications")
	page := psql.Select(applicationColumns...).From("job_applications").
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset))
	if f.Unread != nil {
		count = count.Where(sq.Eq{"is_read": !*f.Unread})
		page = page.Where(sq.Eq{"is_read": !*f.Unread})
	}

	total, err := queryCount(ctx, r.db, count)
	if err != nil {
		return nil, err
	}

	query, args, err := page.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.JobApplication, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.JobApplication]{Items: items, Total: total}, nil
}

// MarkRead flags an application as read. Missing rows yield sql.ErrNoRows.
func (r *JobApplicationPostgres) MarkRead(ctx context.Context, id string) (*model.JobApplication, error) {
	const q = `
		UPDATE job_applications SET is_read = TRUE
		WHERE id = $1
		RETURNING id, name, email, phone, position, linkedin_url, cv_url, message, is_read, created_at
	`
	return scanApplication(r.db.QueryRowContext(ctx, q, id))
}

// Delete removes an application. Missing rows yield sql.ErrNoRows.
func (r *JobApplicationPostgres) Delete(ctx context.Context, id string) error {
	return execAffectingOne(ctx, r.db, `DELETE FROM job_applications WHERE id = $1`, id)
}
