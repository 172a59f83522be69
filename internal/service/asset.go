package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"sitecms/internal/logger"
	"sitecms/internal/metrics"
	"sitecms/internal/storage"
)

// ManagedPrefix marks asset references this system owns.
const ManagedPrefix = "/uploads/"

// presignExpiry bounds redirect URLs handed out for managed assets.
const presignExpiry = 15 * time.Minute

// AssetClass selects the allow-list a file is validated against.
type AssetClass int

const (
	ClassImage AssetClass = iota
	ClassDocument
)

type classRule struct {
	name    string
	maxSize int64
	// ext -> accepted declared content types
	types map[string][]string
	sniff bool
}

var classRules = map[AssetClass]classRule{
	ClassImage: {
		name:    "image",
		maxSize: 5 << 20,
		types: map[string][]string{
			".jpg":  {"image/jpeg"},
			".jpeg": {"image/jpeg"},
			".png":  {"image/png"},
			".gif":  {"image/gif"},
			".webp": {"image/webp"},
		},
		sniff: true,
	},
	ClassDocument: {
		name:    "document",
		maxSize: 10 << 20,
		types: map[string][]string{
			".pdf":  {"application/pdf"},
			".doc":  {"application/msword"},
			".docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		},
	},
}

// UploadFile is an incoming file. Content must be rewindable so it can be
// sniffed before it is stored.
type UploadFile struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.ReadSeeker
}

// ManagedName returns the blob key behind a managed reference. Anything
// that is not exactly ManagedPrefix plus a bare file name is foreign.
func ManagedName(ref string) (string, bool) {
	if !strings.HasPrefix(ref, ManagedPrefix) {
		return "", false
	}
	name := strings.TrimPrefix(ref, ManagedPrefix)
	if name == "" || strings.ContainsAny(name, `/\?#`) || strings.Contains(name, "..") {
		return "", false
	}
	return name, true
}

// IsManaged reports whether ref points at an asset this system may delete.
func IsManaged(ref string) bool {
	_, ok := ManagedName(ref)
	return ok
}

// AssetService owns the bytes behind managed asset references.
type AssetService struct {
	store   storage.Storage
	log     zerolog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewAssetService constructs an AssetService over store.
func NewAssetService(store storage.Storage, log zerolog.Logger, m *metrics.Metrics) *AssetService {
	return &AssetService{store: store, log: log, metrics: m, now: time.Now}
}

// Validate checks f against the class allow-list. Extension and declared
// type must agree, and for images the sniffed content must agree as well.
func (s *AssetService) Validate(f UploadFile, class AssetClass) error {
	rule, ok := classRules[class]
	if !ok {
		return fmt.Errorf("unknown asset class %d", class)
	}
	if f.Content == nil {
		return newValidationError("file is required", map[string]string{"file": "is required"})
	}

	ext := strings.ToLower(filepath.Ext(f.Filename))
	accepted, ok := rule.types[ext]
	if !ok {
		return newValidationError("unsupported file extension",
			map[string]string{"file": fmt.Sprintf("extension %q is not allowed for %s uploads", ext, rule.name)})
	}

	declared := normalizeContentType(f.ContentType)
	if !slices.Contains(accepted, declared) {
		return newValidationError("file type mismatch",
			map[string]string{"file": fmt.Sprintf("content type %q does not match extension %q", declared, ext)})
	}

	if f.Size <= 0 {
		return newValidationError("empty file", map[string]string{"file": "is empty"})
	}
	if f.Size > rule.maxSize {
		return newValidationError("file too large",
			map[string]string{"file": fmt.Sprintf("exceeds %d MB limit", rule.maxSize>>20)})
	}

	if rule.sniff {
		mt, err := mimetype.DetectReader(f.Content)
		if _, serr := f.Content.Seek(0, io.SeekStart); serr != nil {
			return fmt.Errorf("rewind upload: %w", serr)
		}
		if err != nil {
			return fmt.Errorf("sniff upload: %w", err)
		}
		if !mt.Is(declared) {
			return newValidationError("file content mismatch",
				map[string]string{"file": fmt.Sprintf("content looks like %s, not %s", mt.String(), declared)})
		}
	}
	return nil
}

// Store validates f and writes it under a fresh collision-resistant name.
// It returns the managed reference. Blob failures surface as StorageError.
func (s *AssetService) Store(ctx context.Context, f UploadFile, class AssetClass) (string, error) {
	if err := s.Validate(f, class); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(f.Filename))
	name := fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), uuid.NewString(), ext)

	if _, err := s.store.Put(ctx, name, f.Content, storage.PutObjectOptions{
		Size:        f.Size,
		ContentType: normalizeContentType(f.ContentType),
		Metadata: map[string]string{
			"original-filename": filepath.Base(f.Filename),
		},
	}); err != nil {
		return "", &StorageError{Op: "put", Err: err}
	}
	return ManagedPrefix + name, nil
}

// Replace stores f, hands the new reference to commit, and only then
// deletes oldRef best-effort. When commit fails the new file is removed
// again and oldRef is left alone, so the referencing record never points
// at a deleted file. A failed delete of oldRef never fails the replace.
// commit may be nil.
func (s *AssetService) Replace(ctx context.Context, oldRef string, f UploadFile, class AssetClass, commit func(newRef string) error) (string, error) {
	ref, err := s.Store(ctx, f, class)
	if err != nil {
		return "", err
	}
	if commit != nil {
		if err := commit(ref); err != nil {
			s.Delete(ctx, ref)
			return "", err
		}
	}
	if oldRef != ref {
		s.Delete(ctx, oldRef)
	}
	return ref, nil
}

// Delete removes a managed asset. Empty and foreign references are ignored
// without touching the store, a missing blob counts as deleted, and other
// failures are logged and counted only.
func (s *AssetService) Delete(ctx context.Context, ref string) {
	name, ok := ManagedName(ref)
	if !ok {
		return
	}
	log := logger.FromContext(ctx, s.log)

	err := s.store.Delete(ctx, name)
	switch {
	case err == nil:
		log.Debug().Str("asset", ref).Msg("asset deleted")
	case errors.Is(err, storage.ErrNotFound):
		log.Debug().Str("asset", ref).Msg("asset already gone")
	default:
		s.metrics.AssetDeleteFailed()
		log.Warn().Err(err).Str("asset", ref).Msg("asset delete failed, leaving orphan")
	}
}

// AssetDownload is either a redirect target or an open stream.
type AssetDownload struct {
	RedirectURL string
	Body        io.ReadCloser
	Info        storage.ObjectInfo
}

// Open resolves a managed file name for download. Backends that can presign
// get a redirect, the rest are streamed.
func (s *AssetService) Open(ctx context.Context, name string) (*AssetDownload, error) {
	if _, ok := ManagedName(ManagedPrefix + name); !ok {
		return nil, &NotFoundError{Resource: "asset", ID: name}
	}

	url, err := s.store.PresignGet(ctx, name, presignExpiry)
	if err == nil {
		return &AssetDownload{RedirectURL: url}, nil
	}
	if !errors.Is(err, storage.ErrPresignUnsupported) {
		return nil, &StorageError{Op: "presign", Err: err}
	}

	body, info, err := s.store.Get(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, &NotFoundError{Resource: "asset", ID: name}
		}
		return nil, &StorageError{Op: "get", Err: err}
	}
	return &AssetDownload{Body: body, Info: info}, nil
}

func normalizeContentType(ct string) string {
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}
