package postgres

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// psql builds statements with PostgreSQL placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ContactMessagePostgres is a PostgreSQL implementation of repository.ContactMessageRepository.
type ContactMessagePostgres struct {
	db *sql.DB
}

// NewContactMessagePostgres creates a new ContactMessagePostgres repository.
func NewContactMessagePostgres(db *sql.DB) *ContactMessagePostgres {
	return &ContactMessagePostgres{db: db}
}

var _ repository.ContactMessageRepository = (*ContactMessagePostgres)(nil)

var contactColumns = []string{"id", "name", "email", "phone", "subject", "message", "is_read", "created_at"}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (*model.ContactMessage, error) {
	var m model.ContactMessage
	if err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Message, &m.IsRead, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a new contact message and returns the stored row.
func (r *ContactMessagePostgres) Create(ctx context.Context, msg *model.ContactMessage) (*model.ContactMessage, error) {
	const q = `
		INSERT INTO contact_messages (id, name, email, phone, subject, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, name, email, phone, subject, message, is_read, created_at
	`
	return scanContact(r.db.QueryRowContext(ctx, q,
		msg.ID,
		msg.Name,
		msg.Email,
		msg.Phone,
		msg.Subject,
		msg.Message,
		msg.IsRead,
		msg.CreatedAt,
	))
}

// FindByID fetches a single contact message by its ID.
func (r *ContactMessagePostgres) FindByID(ctx context.Context, id string) (*model.ContactMessage, error) {
	const q = `
		SELECT id, name, email, phone, subject, message, is_read, created_at
		FROM contact_messages
		WHERE id = $1
	`
	return scanContact(r.db.QueryRowContext(ctx, q, id))
}

// List returns contact messages newest first, optionally filtered by read state.
func (r *ContactMessagePostgres) List(ctx context.Context, f repository.SubmissionFilter) (*repository.PageResult[model.ContactMessage], error) {
	count := psql.Select("COUNT(*)").From("contact_messages")
	page := psql.Select(contactColumns...).From("contact_messages").
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

	items := make([]model.ContactMessage, 0)
	for rows.Next() {
		m, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.ContactMessage]{Items: items, Total: total}, nil
}

// MarkRead flags a message as read and returns it. Missing rows yield sql.ErrNoRows.
func (r *ContactMessagePostgres) MarkRead(ctx context.Context, id string) (*model.ContactMessage, error) {
	const q = `
		UPDATE contact_messages SET is_read = TRUE
		WHERE id = $1
		RETURNING id, name, email, phone, subject, message, is_read, created_at
	`
	return scanContact(r.db.QueryRowContext(ctx, q, id))
}

// Delete removes a message; replies go with it (ON DELETE CASCADE).
// Missing rows yield sql.ErrNoRows.
func (r *ContactMessagePostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM contact_messages WHERE id = $1`
	return execAffectingOne(ctx, r.db, q, id)
}

// CreateReply appends a reply. A reply to a message that no longer exists
// yields sql.ErrNoRows.
func (r *ContactMessagePostgres) CreateReply(ctx context.Context, reply *model.ContactReply) (*model.ContactReply, error) {
	const q = `
		INSERT INTO contact_replies (id, message_id, reply, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, message_id, reply, created_at
	`
	var out model.ContactReply
	err := r.db.QueryRowContext(ctx, q, reply.ID, reply.MessageID, reply.Reply, reply.CreatedAt).
		Scan(&out.ID, &out.MessageID, &out.Reply, &out.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &out, nil
}

// ListReplies returns the replies of a message, newest first.
func (r *ContactMessagePostgres) ListReplies(ctx context.Context, messageID string) ([]model.ContactReply, error) {
	const q = `
		SELECT id, message_id, reply, created_at
		FROM contact_replies
		WHERE message_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, messageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	replies := make([]model.ContactReply, 0)
	for rows.Next() {
		var rep model.ContactReply
		if err := rows.Scan(&rep.ID, &rep.MessageID, &rep.Reply, &rep.CreatedAt); err != nil {
			return nil, err
		}
		replies = append(replies, rep)
	}
	return replies, rows.Err()
}

func queryCount(ctx context.Context, db *sql.DB, b sq.SelectBuilder) (int, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	var total int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func execAffectingOne(ctx context.Context, db *sql.DB, q string, args ...any) error {
	res, err := db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
