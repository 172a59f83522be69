package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sitecms/internal/model"
	repoMocks "sitecms/internal/repository/mocks"
	"sitecms/internal/storage"
)

func newClientFixture(t *testing.T) (*ClientService, *repoMocks.MockClientRepository, storage.Storage) {
	t.Helper()
	repo := new(repoMocks.MockClientRepository)
	store := storage.NewMemory()
	assets, _ := newTestAssets(t, store)
	return NewClientService(repo, assets), repo, store
}

func putFile(t *testing.T, store storage.Storage, name string) {
	t.Helper()
	_, err := store.Put(context.Background(), name, bytes.NewReader(pngBytes), storage.PutObjectOptions{})
	require.NoError(t, err)
}

func TestClientService_Create(t *testing.T) {
	svc, repo, _ := newClientFixture(t)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Client) bool {
		return c.ID != "" && c.Name == "Acme" && model.Deref(c.WebsiteURL) == "https://acme.test" && c.LogoURL == nil
	})).Return(&model.Client{ID: "c1", Name: "Acme"}, nil)

	c, err := svc.Create(context.Background(), ClientInput{Name: " Acme ", WebsiteURL: "https://acme.test"})

	require.NoError(t, err)
	assert.Equal(t, "c1", c.ID)
	repo.AssertExpectations(t)
}

func TestClientService_Create_Validation(t *testing.T) {
	svc, repo, _ := newClientFixture(t)

	tests := []struct {
		name  string
		in    ClientInput
		field string
	}{
		{"missing name", ClientInput{}, "name"},
		{"bad website", ClientInput{Name: "A", WebsiteURL: "acme"}, "website_url"},
		{"managed logo", ClientInput{Name: "A", LogoURL: "/uploads/x.png"}, "logo_url"},
		{"negative order", ClientInput{Name: "A", SortOrder: -1}, "sort_order"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestClientService_Update_KeepsLogoWhenOmitted(t *testing.T) {
	svc, repo, store := newClientFixture(t)
	putFile(t, store, "logo.png")
	cur := &model.Client{ID: "c1", Name: "Acme", LogoURL: model.StringPtr("/uploads/logo.png")}
	repo.On("FindByID", mock.Anything, "c1").Return(cur, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(c *model.Client) bool {
		return c.Name == "Acme Corp" && model.Deref(c.LogoURL) == "/uploads/logo.png"
	})).Return(&model.Client{ID: "c1", Name: "Acme Corp", LogoURL: model.StringPtr("/uploads/logo.png")}, nil)

	_, err := svc.Update(context.Background(), "c1", ClientInput{Name: "Acme Corp"})

	require.NoError(t, err)
	_, _, err = store.Get(context.Background(), "logo.png")
	assert.NoError(t, err)
}

func TestClientService_Update_ExternalLogoReplacesManaged(t *testing.T) {
	svc, repo, store := newClientFixture(t)
	putFile(t, store, "logo.png")
	repo.On("FindByID", mock.Anything, "c1").Return(&model.Client{ID: "c1", Name: "Acme", LogoURL: model.StringPtr("/uploads/logo.png")}, nil)
	repo.On("Update", mock.Anything, mock.Anything).
		Return(&model.Client{ID: "c1", Name: "Acme", LogoURL: model.StringPtr("https://cdn.acme.test/logo.svg")}, nil)

	_, err := svc.Update(context.Background(), "c1", ClientInput{Name: "Acme", LogoURL: "https://cdn.acme.test/logo.svg"})

	require.NoError(t, err)
	_, _, err = store.Get(context.Background(), "logo.png")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestClientService_Update_NotFound(t *testing.T) {
	svc, repo, _ := newClientFixture(t)
	repo.On("FindByID", mock.Anything, "nope").Return(nil, sql.ErrNoRows)

	_, err := svc.Update(context.Background(), "nope", ClientInput{Name: "A"})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientService_ReplaceLogo(t *testing.T) {
	svc, repo, store := newClientFixture(t)
	putFile(t, store, "old.png")
	repo.On("FindByID", mock.Anything, "c1").Return(&model.Client{ID: "c1", Name: "Acme", LogoURL: model.StringPtr("/uploads/old.png")}, nil)

	var newRef string
	repo.On("Update", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		newRef = model.Deref(args.Get(1).(*model.Client).LogoURL)
	}).Return(&model.Client{ID: "c1", Name: "Acme"}, nil)

	_, err := svc.ReplaceLogo(context.Background(), "c1", pngUpload("acme.png"))

	require.NoError(t, err)
	name, ok := ManagedName(newRef)
	require.True(t, ok)
	_, _, err = store.Get(context.Background(), name)
	assert.NoError(t, err)
	_, _, err = store.Get(context.Background(), "old.png")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestClientService_ReplaceLogo_UpdateFailureKeepsOldLogo(t *testing.T) {
	svc, repo, store := newClientFixture(t)
	putFile(t, store, "old.png")
	repo.On("FindByID", mock.Anything, "c1").Return(&model.Client{ID: "c1", LogoURL: model.StringPtr("/uploads/old.png")}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	_, err := svc.ReplaceLogo(context.Background(), "c1", pngUpload("acme.png"))

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	_, _, err = store.Get(context.Background(), "old.png")
	assert.NoError(t, err)
}

func TestClientService_ClearLogo(t *testing.T) {
	svc, repo, store := newClientFixture(t)
	putFile(t, store, "old.png")
	repo.On("FindByID", mock.Anything, "c1").Return(&model.Client{ID: "c1", LogoURL: model.StringPtr("/uploads/old.png")}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(c *model.Client) bool { return c.LogoURL == nil })).
		Return(&model.Client{ID: "c1"}, nil)

	c, err := svc.ClearLogo(context.Background(), "c1")

	require.NoError(t, err)
	assert.Nil(t, c.LogoURL)
	_, _, err = store.Get(context.Background(), "old.png")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestClientService_Delete(t *testing.T) {
	svc, repo, store := newClientFixture(t)
	putFile(t, store, "old.png")
	repo.On("FindByID", mock.Anything, "c1").Return(&model.Client{ID: "c1", LogoURL: model.StringPtr("/uploads/old.png")}, nil)
	repo.On("Delete", mock.Anything, "c1").Return(nil)

	require.NoError(t, svc.Delete(context.Background(), "c1"))

	_, _, err := store.Get(context.Background(), "old.png")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestClientService_List(t *testing.T) {
	svc, repo, _ := newClientFixture(t)
	repo.On("List", mock.Anything).Return([]model.Client{{ID: "a"}, {ID: "b"}}, nil).Once()
	repo.On("List", mock.Anything).Return(nil, errors.New("boom")).Once()

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = svc.List(context.Background())
	var perr *PersistenceError
	assert.ErrorAs(t, err, &perr)

	_, err = svc.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrIDRequired)
}
