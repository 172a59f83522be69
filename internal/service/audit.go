package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"sitecms/internal/logger"
	"sitecms/internal/metrics"
	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// AuditEvent is one access or submission to record. Empty strings are
// stored as nulls.
type AuditEvent struct {
	SubjectID string
	Email     string
	IP        string
	UserAgent string
	Method    string
	Success   bool
}

// RequestMeta carries the caller details handlers pass to services.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// AuditService writes the access log.
type AuditService struct {
	repo    repository.AccessLogRepository
	log     zerolog.Logger
	metrics *metrics.Metrics
}

// NewAuditService constructs an AuditService.
func NewAuditService(repo repository.AccessLogRepository, log zerolog.Logger, m *metrics.Metrics) *AuditService {
	return &AuditService{repo: repo, log: log, metrics: m}
}

// LogEvent appends an entry. It never fails the caller: write errors are
// logged and counted.
func (s *AuditService) LogEvent(ctx context.Context, ev AuditEvent) {
	entry := &model.AccessLogEntry{
		ID:        uuid.NewString(),
		SubjectID: model.StringPtr(ev.SubjectID),
		Email:     ev.Email,
		IP:        model.StringPtr(ev.IP),
		UserAgent: model.StringPtr(ev.UserAgent),
		Method:    ev.Method,
		Success:   ev.Success,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		s.metrics.AuditWriteFailed()
		log := logger.FromContext(ctx, s.log)
		log.Warn().Err(err).
			Str("method", ev.Method).
			Str("email", ev.Email).
			Msg("access log write failed")
	}
}

// List returns entries newest first.
func (s *AuditService) List(ctx context.Context, limit, offset int) (*ListResult[model.AccessLogEntry], error) {
	limit, offset = clampPage(limit, offset)
	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, &PersistenceError{Op: "list access logs", Err: err}
	}
	return &ListResult[model.AccessLogEntry]{Items: res.Items, Total: res.Total}, nil
}
