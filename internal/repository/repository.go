package repository

import (
	"context"

	"sitecms/internal/model"
)

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (postgres) inside this directory.
// Missing rows are reported as sql.ErrNoRows so services can map them.

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}

// SubmissionFilter narrows submission listings. Unread selects only rows
// with is_read = false when true, only read rows when false, and all rows
// when nil.
type SubmissionFilter struct {
	PageQuery
	Unread *bool
}

// SingletonRepository persists one row per content kind.
type SingletonRepository interface {
	// FindByKind returns the row for kind.
	FindByKind(ctx context.Context, kind string) (*model.SingletonRecord, error)

	// CreateIfAbsent inserts rec unless a row for rec.Kind already exists,
	// and returns whichever row is stored afterwards. It must be atomic
	// with respect to concurrent callers for the same kind.
	CreateIfAbsent(ctx context.Context, rec *model.SingletonRecord) (*model.SingletonRecord, error)

	// Merge writes set and removes the clear keys in a single statement,
	// leaving every other field as stored. prev is the row exactly as this
	// write found it, which may differ from an earlier FindByKind.
	Merge(ctx context.Context, kind string, set map[string]any, clear []string) (prev, rec *model.SingletonRecord, err error)
}

// ContactMessageRepository persists contact messages and their replies.
type ContactMessageRepository interface {
	Create(ctx context.Context, msg *model.ContactMessage) (*model.ContactMessage, error)
	FindByID(ctx context.Context, id string) (*model.ContactMessage, error)
	List(ctx context.Context, f SubmissionFilter) (*PageResult[model.ContactMessage], error)
	MarkRead(ctx context.Context, id string) (*model.ContactMessage, error)
	// Delete removes a message and, through the foreign key, its replies.
	Delete(ctx context.Context, id string) error

	CreateReply(ctx context.Context, reply *model.ContactReply) (*model.ContactReply, error)
	// ListReplies returns replies newest first.
	ListReplies(ctx context.Context, messageID string) ([]model.ContactReply, error)
}

// JobApplicationRepository persists job applications.
type JobApplicationRepository interface {
	Create(ctx context.Context, app *model.JobApplication) (*model.JobApplication, error)
	FindByID(ctx context.Context, id string) (*model.JobApplication, error)
	List(ctx context.Context, f SubmissionFilter) (*PageResult[model.JobApplication], error)
	MarkRead(ctx context.Context, id string) (*model.JobApplication, error)
	Delete(ctx context.Context, id string) error
}

// AccessLogRepository appends audit entries.
type AccessLogRepository interface {
	Create(ctx context.Context, entry *model.AccessLogEntry) error
	List(ctx context.Context, pq PageQuery) (*PageResult[model.AccessLogEntry], error)
}

// ClientRepository persists the clients collection.
type ClientRepository interface {
	Create(ctx context.Context, c *model.Client) (*model.Client, error)
	FindByID(ctx context.Context, id string) (*model.Client, error)
	// List returns clients ordered by sort_order, then name.
	List(ctx context.Context) ([]model.Client, error)
	Update(ctx context.Context, c *model.Client) (*model.Client, error)
	Delete(ctx context.Context, id string) error
}
