package mocks

import (
	"context"

	"sitecms/internal/model"
	"sitecms/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockSingletonRepository struct {
	mock.Mock
}

func (m *MockSingletonRepository) FindByKind(ctx context.Context, kind string) (*model.SingletonRecord, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SingletonRecord), args.Error(1)
}

func (m *MockSingletonRepository) CreateIfAbsent(ctx context.Context, rec *model.SingletonRecord) (*model.SingletonRecord, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SingletonRecord), args.Error(1)
}

// Merge returns (prev, rec, err) as configured.
func (m *MockSingletonRepository) Merge(ctx context.Context, kind string, set map[string]any, clear []string) (*model.SingletonRecord, *model.SingletonRecord, error) {
	args := m.Called(ctx, kind, set, clear)
	prev, _ := args.Get(0).(*model.SingletonRecord)
	rec, _ := args.Get(1).(*model.SingletonRecord)
	return prev, rec, args.Error(2)
}

type MockContactMessageRepository struct {
	mock.Mock
}

func (m *MockContactMessageRepository) Create(ctx context.Context, msg *model.ContactMessage) (*model.ContactMessage, error) {
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContactMessage), args.Error(1)
}

func (m *MockContactMessageRepository) FindByID(ctx context.Context, id string) (*model.ContactMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContactMessage), args.Error(1)
}

func (m *MockContactMessageRepository) List(ctx context.Context, f repository.SubmissionFilter) (*repository.PageResult[model.ContactMessage], error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.ContactMessage]), args.Error(1)
}

func (m *MockContactMessageRepository) MarkRead(ctx context.Context, id string) (*model.ContactMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContactMessage), args.Error(1)
}

func (m *MockContactMessageRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContactMessageRepository) CreateReply(ctx context.Context, reply *model.ContactReply) (*model.ContactReply, error) {
	args := m.Called(ctx, reply)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContactReply), args.Error(1)
}

func (m *MockContactMessageRepository) ListReplies(ctx context.Context, messageID string) ([]model.ContactReply, error) {
	args := m.Called(ctx, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ContactReply), args.Error(1)
}

type MockJobApplicationRepository struct {
	mock.Mock
}

func (m *MockJobApplicationRepository) Create(ctx context.Context, app *model.JobApplication) (*model.JobApplication, error) {
	args := m.Called(ctx, app)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.JobApplication), args.Error(1)
}

func (m *MockJobApplicationRepository) FindByID(ctx context.Context, id string) (*model.JobApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.JobApplication), args.Error(1)
}

func (m *MockJobApplicationRepository) List(ctx context.Context, f repository.SubmissionFilter) (*repository.PageResult[model.JobApplication], error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.JobApplication]), args.Error(1)
}

func (m *MockJobApplicationRepository) MarkRead(ctx context.Context, id string) (*model.JobApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.JobApplication), args.Error(1)
}

func (m *MockJobApplicationRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAccessLogRepository struct {
	mock.Mock
}

func (m *MockAccessLogRepository) Create(ctx context.Context, entry *model.AccessLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAccessLogRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.AccessLogEntry], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.AccessLogEntry]), args.Error(1)
}

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) Create(ctx context.Context, c *model.Client) (*model.Client, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientRepository) FindByID(ctx context.Context, id string) (*model.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientRepository) List(ctx context.Context) ([]model.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Client), args.Error(1)
}

func (m *MockClientRepository) Update(ctx context.Context, c *model.Client) (*model.Client, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
