package service

import (
	"bytes"
	"context"
	"database/sql"
	"maps"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"sitecms/internal/logger"
	"sitecms/internal/metrics"
	"sitecms/internal/model"
	"sitecms/internal/repository"
	"sitecms/internal/storage"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00\x90wS\xde")

func pngUpload(name string) UploadFile {
	return UploadFile{Filename: name, ContentType: "image/png", Size: int64(len(pngBytes)), Content: bytes.NewReader(pngBytes)}
}

func pdfUpload(name string) UploadFile {
	body := []byte("%PDF-1.4\n%test\n")
	return UploadFile{Filename: name, ContentType: "application/pdf", Size: int64(len(body)), Content: bytes.NewReader(body)}
}

func newTestMetrics(t *testing.T) (*metrics.Metrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)
	return m, reg
}

// counterValue reads a counter from reg. Labels not listed are ignored.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			match := true
			for _, lp := range m.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					match = false
				}
			}
			if match {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func newTestAssets(t *testing.T, store storage.Storage) (*AssetService, *prometheus.Registry) {
	t.Helper()
	m, reg := newTestMetrics(t)
	return NewAssetService(store, logger.Nop(), m), reg
}

// memSingletonRepo is an in-memory SingletonRepository whose
// CreateIfAbsent is atomic, standing in for the unique constraint.
type memSingletonRepo struct {
	mu      sync.Mutex
	rows    map[string]*model.SingletonRecord
	inserts int
	delay   time.Duration
	// beforeMerge, when set, runs once at the start of the next Merge.
	beforeMerge func()
}

var _ repository.SingletonRepository = (*memSingletonRepo)(nil)

func newMemSingletonRepo() *memSingletonRepo {
	return &memSingletonRepo{rows: map[string]*model.SingletonRecord{}}
}

func (r *memSingletonRepo) FindByKind(_ context.Context, kind string) (*model.SingletonRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.rows[kind]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return cloneRecord(rec), nil
}

func (r *memSingletonRepo) CreateIfAbsent(_ context.Context, rec *model.SingletonRecord) (*model.SingletonRecord, error) {
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.rows[rec.Kind]; ok {
		return cloneRecord(existing), nil
	}
	r.inserts++
	stored := cloneRecord(rec)
	stored.UpdatedAt = stored.CreatedAt
	r.rows[rec.Kind] = stored
	return cloneRecord(stored), nil
}

func (r *memSingletonRepo) Merge(_ context.Context, kind string, set map[string]any, clear []string) (*model.SingletonRecord, *model.SingletonRecord, error) {
	if hook := r.beforeMerge; hook != nil {
		r.beforeMerge = nil
		hook()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.rows[kind]
	if !ok {
		return nil, nil, sql.ErrNoRows
	}
	prev := cloneRecord(rec)
	maps.Copy(rec.Fields, set)
	for _, k := range clear {
		delete(rec.Fields, k)
	}
	rec.UpdatedAt = time.Now().UTC()
	return prev, cloneRecord(rec), nil
}

func (r *memSingletonRepo) seed(kind string, fields map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[kind] = &model.SingletonRecord{ID: "seed-" + kind, Kind: kind, Fields: fields}
}
