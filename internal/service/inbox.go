package service

import (
	"context"
	"database/sql"
	"errors"

	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// Admin inbox over stored submissions.

// ListContactMessages returns messages newest first. unread filters by
// read state when non-nil.
func (s *IntakeService) ListContactMessages(ctx context.Context, limit, offset int, unread *bool) (*ListResult[model.ContactMessage], error) {
	limit, offset = clampPage(limit, offset)
	res, err := s.contacts.List(ctx, repository.SubmissionFilter{
		PageQuery: repository.PageQuery{Limit: limit, Offset: offset},
		Unread:    unread,
	})
	if err != nil {
		return nil, &PersistenceError{Op: "list contact messages", Err: err}
	}
	return &ListResult[model.ContactMessage]{Items: res.Items, Total: res.Total}, nil
}

// GetContactMessage returns a message with its replies, newest first.
func (s *IntakeService) GetContactMessage(ctx context.Context, id string) (*model.ContactThread, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	msg, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, "contact message", id)
	}
	replies, err := s.contacts.ListReplies(ctx, id)
	if err != nil {
		return nil, &PersistenceError{Op: "list replies", Err: err}
	}
	return &model.ContactThread{ContactMessage: *msg, Replies: replies}, nil
}

// MarkContactMessageRead flags a message as read.
func (s *IntakeService) MarkContactMessageRead(ctx context.Context, id string) (*model.ContactMessage, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	msg, err := s.contacts.MarkRead(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, "contact message", id)
	}
	return msg, nil
}

// DeleteContactMessage removes a message and its replies.
func (s *IntakeService) DeleteContactMessage(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if err := s.contacts.Delete(ctx, id); err != nil {
		return mapLookupError(err, "contact message", id)
	}
	return nil
}

// ListJobApplications returns applications newest first.
func (s *IntakeService) ListJobApplications(ctx context.Context, limit, offset int, unread *bool) (*ListResult[model.JobApplication], error) {
	limit, offset = clampPage(limit, offset)
	res, err := s.apps.List(ctx, repository.SubmissionFilter{
		PageQuery: repository.PageQuery{Limit: limit, Offset: offset},
		Unread:    unread,
	})
	if err != nil {
		return nil, &PersistenceError{Op: "list job applications", Err: err}
	}
	return &ListResult[model.JobApplication]{Items: res.Items, Total: res.Total}, nil
}

// GetJobApplication returns one application.
func (s *IntakeService) GetJobApplication(ctx context.Context, id string) (*model.JobApplication, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	app, err := s.apps.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, "job application", id)
	}
	return app, nil
}

// MarkJobApplicationRead flags an application as read.
func (s *IntakeService) MarkJobApplicationRead(ctx context.Context, id string) (*model.JobApplication, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	app, err := s.apps.MarkRead(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, "job application", id)
	}
	return app, nil
}

// DeleteJobApplication removes an application, then its managed CV
// best-effort.
func (s *IntakeService) DeleteJobApplication(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	app, err := s.apps.FindByID(ctx, id)
	if err != nil {
		return mapLookupError(err, "job application", id)
	}
	if err := s.apps.Delete(ctx, id); err != nil {
		return mapLookupError(err, "job application", id)
	}
	s.assets.Delete(ctx, model.Deref(app.CVURL))
	return nil
}

func mapLookupError(err error, resource, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return &NotFoundError{Resource: resource, ID: id}
	}
	return &PersistenceError{Op: resource, Err: err}
}
