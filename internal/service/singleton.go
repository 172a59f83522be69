package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// SingletonService serves the one-row-per-kind content records.
type SingletonService struct {
	repo   repository.SingletonRepository
	assets *AssetService
	log    zerolog.Logger
	group  singleflight.Group
}

// NewSingletonService constructs a SingletonService.
func NewSingletonService(repo repository.SingletonRepository, assets *AssetService, log zerolog.Logger) *SingletonService {
	return &SingletonService{repo: repo, assets: assets, log: log}
}

// GetOrCreate returns the record for kind, creating it from defaults if it
// does not exist yet. Concurrent first reads of one kind all observe the
// same record: callers in this process share one insert attempt, and the
// unique constraint on kind settles races between processes.
func (s *SingletonService) GetOrCreate(ctx context.Context, kind string, defaults map[string]any) (*model.SingletonRecord, error) {
	rec, err := s.repo.FindByKind(ctx, kind)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, &PersistenceError{Op: "find " + kind, Err: err}
	}

	// The shared insert must not fail for everyone because the first
	// caller went away.
	shared := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(kind, func() (any, error) {
		fields := maps.Clone(defaults)
		if fields == nil {
			fields = map[string]any{}
		}
		return s.repo.CreateIfAbsent(shared, &model.SingletonRecord{
			ID:        uuid.NewString(),
			Kind:      kind,
			Fields:    fields,
			CreatedAt: time.Now().UTC(),
		})
	})
	if err != nil {
		return nil, &PersistenceError{Op: "create " + kind, Err: err}
	}
	return cloneRecord(v.(*model.SingletonRecord)), nil
}

// Get returns the record of a registered kind, creating it with the
// registry defaults on first access.
func (s *SingletonService) Get(ctx context.Context, kind string) (*model.SingletonRecord, error) {
	spec, ok := model.LookupKind(kind)
	if !ok {
		return nil, &NotFoundError{Resource: "content kind", ID: kind}
	}
	return s.GetOrCreate(ctx, kind, spec.Defaults)
}

// Update applies a partial update. Unset fields keep their stored value,
// cleared fields are removed and set fields are overwritten, all in one
// statement. Asset fields accept only a clear or an external http(s) URL
// here; managed files enter through ReplaceAsset. A managed asset that
// the update cleared or replaced is deleted once the update is stored.
func (s *SingletonService) Update(ctx context.Context, kind string, updates model.FieldUpdates) (*model.SingletonRecord, error) {
	prev, rec, err := s.merge(ctx, kind, updates, false)
	if err != nil {
		return nil, err
	}
	s.deleteReplacedAssets(ctx, kind, prev, rec, updates)
	return rec, nil
}

// ReplaceAsset stores an uploaded image for an asset field and points the
// record at it. The managed file the update displaced is deleted after the
// record has been updated.
func (s *SingletonService) ReplaceAsset(ctx context.Context, kind, field string, f UploadFile) (*model.SingletonRecord, error) {
	if err := s.checkAssetField(kind, field); err != nil {
		return nil, err
	}
	if err := s.assets.Validate(f, ClassImage); err != nil {
		return nil, err
	}

	if _, err := s.Get(ctx, kind); err != nil {
		return nil, err
	}

	// The file to delete is whatever the merge overwrote, not what an
	// earlier read saw; another upload may have landed in between.
	var (
		updates   model.FieldUpdates
		prev, rec *model.SingletonRecord
	)
	_, err := s.assets.Replace(ctx, "", f, ClassImage, func(ref string) error {
		updates = model.FieldUpdates{field: model.Set(ref)}
		var merr error
		prev, rec, merr = s.merge(ctx, kind, updates, true)
		return merr
	})
	if err != nil {
		return nil, err
	}
	s.deleteReplacedAssets(ctx, kind, prev, rec, updates)
	return rec, nil
}

// ClearAsset removes an asset field and deletes the managed file behind it.
func (s *SingletonService) ClearAsset(ctx context.Context, kind, field string) (*model.SingletonRecord, error) {
	if err := s.checkAssetField(kind, field); err != nil {
		return nil, err
	}
	return s.Update(ctx, kind, model.FieldUpdates{field: model.Clear()})
}

func (s *SingletonService) checkAssetField(kind, field string) error {
	spec, ok := model.LookupKind(kind)
	if !ok {
		return &NotFoundError{Resource: "content kind", ID: kind}
	}
	if spec.Fields[field] != model.FieldAsset {
		return newValidationError("not an asset field", map[string]string{field: "is not an asset field of " + kind})
	}
	return nil
}

// merge validates updates and writes them. It returns the record as the
// write found it and as it left it.
func (s *SingletonService) merge(ctx context.Context, kind string, updates model.FieldUpdates, allowManaged bool) (prev, rec *model.SingletonRecord, err error) {
	spec, ok := model.LookupKind(kind)
	if !ok {
		return nil, nil, &NotFoundError{Resource: "content kind", ID: kind}
	}
	if err := validateFieldUpdates(spec, updates, allowManaged); err != nil {
		return nil, nil, err
	}

	set, clear := updates.Split()
	if len(set) == 0 && len(clear) == 0 {
		rec, err = s.repo.FindByKind(ctx, kind)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, nil, &NotFoundError{Resource: "content", ID: kind}
			}
			return nil, nil, &PersistenceError{Op: "find " + kind, Err: err}
		}
		return rec, rec, nil
	}

	prev, rec, err = s.repo.Merge(ctx, kind, set, clear)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, &NotFoundError{Resource: "content", ID: kind}
		}
		return nil, nil, &PersistenceError{Op: "update " + kind, Err: err}
	}
	return prev, rec, nil
}

func (s *SingletonService) deleteReplacedAssets(ctx context.Context, kind string, prev, rec *model.SingletonRecord, updates model.FieldUpdates) {
	spec, _ := model.LookupKind(kind)
	for name, u := range updates {
		if u.Op == model.FieldUnset || spec.Fields[name] != model.FieldAsset {
			continue
		}
		if old := prev.String(name); old != rec.String(name) {
			s.assets.Delete(ctx, old)
		}
	}
}

func validateFieldUpdates(spec model.KindSpec, updates model.FieldUpdates, allowManaged bool) error {
	problems := map[string]string{}
	for name, u := range updates {
		typ, ok := spec.Fields[name]
		if !ok {
			problems[name] = "unknown field"
			continue
		}
		if u.Op != model.FieldSet {
			continue
		}
		switch typ {
		case model.FieldString:
			if _, ok := u.Value.(string); !ok {
				problems[name] = "must be a string"
			}
		case model.FieldBool:
			if _, ok := u.Value.(bool); !ok {
				problems[name] = "must be a boolean"
			}
		case model.FieldAsset:
			ref, ok := u.Value.(string)
			switch {
			case !ok:
				problems[name] = "must be a URL string"
			case IsManaged(ref):
				if !allowManaged {
					problems[name] = "upload a file to set a managed asset"
				}
			case !isExternalURL(ref):
				problems[name] = "must be an absolute http(s) URL"
			}
		}
	}
	if len(problems) > 0 {
		return newValidationError(fmt.Sprintf("invalid %s update", spec.Kind), problems)
	}
	return nil
}

func isExternalURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func cloneRecord(r *model.SingletonRecord) *model.SingletonRecord {
	c := *r
	c.Fields = maps.Clone(r.Fields)
	return &c
}
