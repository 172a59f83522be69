package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// ClientInput is the admin payload for creating or updating a client.
// LogoURL accepts only an absolute http(s) URL; managed logos are uploaded.
type ClientInput struct {
	Name       string `json:"name" validate:"required,max=200"`
	WebsiteURL string `json:"website_url" validate:"omitempty,http_url,max=500"`
	LogoURL    string `json:"logo_url" validate:"omitempty,http_url,max=500"`
	SortOrder  int    `json:"sort_order" validate:"min=0"`
}

// ClientService manages the clients collection and its logos.
type ClientService struct {
	repo   repository.ClientRepository
	assets *AssetService
}

// NewClientService constructs a ClientService.
func NewClientService(repo repository.ClientRepository, assets *AssetService) *ClientService {
	return &ClientService{repo: repo, assets: assets}
}

// List returns every client in display order.
func (s *ClientService) List(ctx context.Context) ([]model.Client, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "list clients", Err: err}
	}
	return items, nil
}

// Get returns one client.
func (s *ClientService) Get(ctx context.Context, id string) (*model.Client, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, "client", id)
	}
	return c, nil
}

// Create adds a client.
func (s *ClientService) Create(ctx context.Context, in ClientInput) (*model.Client, error) {
	if err := s.check(&in); err != nil {
		return nil, err
	}
	c, err := s.repo.Create(ctx, &model.Client{
		ID:         uuid.NewString(),
		Name:       in.Name,
		WebsiteURL: model.StringPtr(in.WebsiteURL),
		LogoURL:    model.StringPtr(in.LogoURL),
		SortOrder:  in.SortOrder,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return nil, &PersistenceError{Op: "create client", Err: err}
	}
	return c, nil
}

// Update overwrites a client's fields. An empty LogoURL keeps the current
// logo; use ClearLogo to remove it.
func (s *ClientService) Update(ctx context.Context, id string, in ClientInput) (*model.Client, error) {
	if err := s.check(&in); err != nil {
		return nil, err
	}
	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next := *cur
	next.Name = in.Name
	next.WebsiteURL = model.StringPtr(in.WebsiteURL)
	next.SortOrder = in.SortOrder
	if in.LogoURL != "" {
		next.LogoURL = model.StringPtr(in.LogoURL)
	}

	updated, err := s.repo.Update(ctx, &next)
	if err != nil {
		return nil, mapLookupError(err, "client", id)
	}
	if old := model.Deref(cur.LogoURL); old != model.Deref(updated.LogoURL) {
		s.assets.Delete(ctx, old)
	}
	return updated, nil
}

// ReplaceLogo uploads a new logo image and points the client at it. The
// previous managed logo is removed after the client row is updated.
func (s *ClientService) ReplaceLogo(ctx context.Context, id string, f UploadFile) (*model.Client, error) {
	if err := s.assets.Validate(f, ClassImage); err != nil {
		return nil, err
	}
	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var updated *model.Client
	_, err = s.assets.Replace(ctx, model.Deref(cur.LogoURL), f, ClassImage, func(ref string) error {
		next := *cur
		next.LogoURL = model.StringPtr(ref)
		var uerr error
		updated, uerr = s.repo.Update(ctx, &next)
		if uerr != nil {
			return mapLookupError(uerr, "client", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ClearLogo removes a client's logo and deletes the managed file.
func (s *ClientService) ClearLogo(ctx context.Context, id string) (*model.Client, error) {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next := *cur
	next.LogoURL = nil
	updated, err := s.repo.Update(ctx, &next)
	if err != nil {
		return nil, mapLookupError(err, "client", id)
	}
	s.assets.Delete(ctx, model.Deref(cur.LogoURL))
	return updated, nil
}

// Delete removes a client and then its managed logo.
func (s *ClientService) Delete(ctx context.Context, id string) error {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapLookupError(err, "client", id)
	}
	s.assets.Delete(ctx, model.Deref(cur.LogoURL))
	return nil
}

func (s *ClientService) check(in *ClientInput) error {
	trimStrings(&in.Name, &in.WebsiteURL, &in.LogoURL)
	return validateStruct(in)
}
