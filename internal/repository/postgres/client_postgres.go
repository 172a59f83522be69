package postgres

import (
	"context"
	"database/sql"
	"time"

	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// ClientPostgres is a PostgreSQL implementation of repository.ClientRepository.
type ClientPostgres struct {
	db *sql.DB
}

// NewClientPostgres creates a new ClientPostgres repository.
func NewClientPostgres(db *sql.DB) *ClientPostgres {
	return &ClientPostgres{db: db}
}

var _ repository.ClientRepository = (*ClientPostgres)(nil)

func scanClient(row rowScanner) (*model.Client, error) {
	var c model.Client
	if err := row.Scan(&c.ID, &c.Name, &c.WebsiteURL, &c.LogoURL, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a client.
func (r *ClientPostgres) Create(ctx context.Context, c *model.Client) (*model.Client, error) {
	const q = `
		INSERT INTO clients (id, name, website_url, logo_url, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id, name, website_url, logo_url, sort_order, created_at, updated_at
	`
	return scanClient(r.db.QueryRowContext(ctx, q, c.ID, c.Name, c.WebsiteURL, c.LogoURL, c.SortOrder, c.CreatedAt))
}

// FindByID fetches a client by ID.
func (r *ClientPostgres) FindByID(ctx context.Context, id string) (*model.Client, error) {
	const q = `
		SELECT id, name, website_url, logo_url, sort_order, created_at, updated_at
		FROM clients
		WHERE id = $1
	`
	return scanClient(r.db.QueryRowContext(ctx, q, id))
}

// List returns all clients in display order.
func (r *ClientPostgres) List(ctx context.Context) ([]model.Client, error) {
	const q = `
		SELECT id, name, website_url, logo_url, sort_order, created_at, updated_at
		FROM clients
		ORDER BY sort_order ASC, name ASC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// Update overwrites every mutable column. Missing rows yield sql.ErrNoRows.
func (r *ClientPostgres) Update(ctx context.Context, c *model.Client) (*model.Client, error) {
	const q = `
		UPDATE clients
		SET name = $2, website_url = $3, logo_url = $4, sort_order = $5, updated_at = $6
		WHERE id = $1
		RETURNING id, name, website_url, logo_url, sort_order, created_at, updated_at
	`
	return scanClient(r.db.QueryRowContext(ctx, q, c.ID, c.Name, c.WebsiteURL, c.LogoURL, c.SortOrder, time.Now().UTC()))
}

// Delete removes a client. Missing rows yield sql.ErrNoRows.
func (r *ClientPostgres) Delete(ctx context.Context, id string) error {
	return execAffectingOne(ctx, r.db, `DELETE FROM clients WHERE id = $1`, id)
}
