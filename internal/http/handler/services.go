package handler

import (
	"context"

	"sitecms/internal/model"
	"sitecms/internal/service"
)

// The interfaces below list what the handlers need from the service layer.
// The concrete services in internal/service satisfy them.

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type ContentService interface {
	Get(ctx context.Context, kind string) (*model.SingletonRecord, error)
	Update(ctx context.Context, kind string, updates model.FieldUpdates) (*model.SingletonRecord, error)
	ReplaceAsset(ctx context.Context, kind, field string, f service.UploadFile) (*model.SingletonRecord, error)
	ClearAsset(ctx context.Context, kind, field string) (*model.SingletonRecord, error)
}

type IntakeService interface {
	SubmitContact(ctx context.Context, sub service.ContactSubmission, meta service.RequestMeta) (*service.SubmitResult, error)
	SubmitApplication(ctx context.Context, sub service.ApplicationSubmission, meta service.RequestMeta) (*service.SubmitResult, error)
	Reply(ctx context.Context, messageID, text string, meta service.RequestMeta) (*model.ContactReply, error)

	ListContactMessages(ctx context.Context, limit, offset int, unread *bool) (*service.ListResult[model.ContactMessage], error)
	GetContactMessage(ctx context.Context, id string) (*model.ContactThread, error)
	MarkContactMessageRead(ctx context.Context, id string) (*model.ContactMessage, error)
	DeleteContactMessage(ctx context.Context, id string) error

	ListJobApplications(ctx context.Context, limit, offset int, unread *bool) (*service.ListResult[model.JobApplication], error)
	GetJobApplication(ctx context.Context, id string) (*model.JobApplication, error)
	MarkJobApplicationRead(ctx context.Context, id string) (*model.JobApplication, error)
	DeleteJobApplication(ctx context.Context, id string) error
}

type ClientService interface {
	List(ctx context.Context) ([]model.Client, error)
	Get(ctx context.Context, id string) (*model.Client, error)
	Create(ctx context.Context, in service.ClientInput) (*model.Client, error)
	Update(ctx context.Context, id string, in service.ClientInput) (*model.Client, error)
	ReplaceLogo(ctx context.Context, id string, f service.UploadFile) (*model.Client, error)
	ClearLogo(ctx context.Context, id string) (*model.Client, error)
	Delete(ctx context.Context, id string) error
}

type AccessLog interface {
	LogEvent(ctx context.Context, ev service.AuditEvent)
	List(ctx context.Context, limit, offset int) (*service.ListResult[model.AccessLogEntry], error)
}

type AssetOpener interface {
	Open(ctx context.Context, name string) (*service.AssetDownload, error)
}

var (
	_ ContentService = (*service.SingletonService)(nil)
	_ IntakeService  = (*service.IntakeService)(nil)
	_ ClientService  = (*service.ClientService)(nil)
	_ AccessLog      = (*service.AuditService)(nil)
	_ AssetOpener    = (*service.AssetService)(nil)
)
